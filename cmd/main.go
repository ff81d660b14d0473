package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

type VersionTags struct {
	Version   string
	GitCommit string
	BuildDate string
	BuildOS   string
}

// contextual errors can show the source line they refer to.
type contextual interface {
	Context() string
}

func Main(info VersionTags) {
	app := NewApp(info)

	err := app.Run(os.Args)
	if err != nil {
		var c contextual
		if errors.As(err, &c) {
			fmt.Fprintln(os.Stderr, c.Context())
		}
		logrus.Fatal(err)
	}
}

// NewApp builds the command line app. Rendering is the default action.
func NewApp(info VersionTags) *cli.App {
	app := cli.NewApp()
	logrus.SetLevel(logrus.WarnLevel)

	app.EnableBashCompletion = true

	app.Name = "tsebnf"
	app.Usage = "render a tree-sitter grammar.js as EBNF"
	app.ArgsUsage = "<grammar.js>"
	app.Version = info.Version
	app.Metadata = map[string]interface{}{
		"commit": info.GitCommit,
		"built":  info.BuildDate,
		"os":     info.BuildOS,
	}

	app.Action = renderGrammar
	app.Commands = []cli.Command{dumpCommand}
	return app
}
