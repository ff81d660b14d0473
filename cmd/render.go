package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/arr-ai/tsebnf/render"
)

func loadGrammar(c *cli.Context) (path, text string, err error) {
	if c.NArg() != 1 {
		return "", "", ArgumentError{Got: c.NArg()}
	}
	path = c.Args().First()
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", "", FileReadError{Path: path, Err: err}
	}
	logrus.WithField("path", path).WithField("bytes", len(buf)).Debug("read grammar")
	return path, string(buf), nil
}

func renderGrammar(c *cli.Context) error {
	path, text, err := loadGrammar(c)
	if err != nil {
		return err
	}
	w := c.App.Writer
	err = render.Source(path, text, w)
	var ee render.EvaluationError
	if errors.As(err, &ee) {
		fmt.Fprintf(w, "**==>>**\n%s\n**==<<**\n", ee.Unit)
	}
	return err
}
