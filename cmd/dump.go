package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/arr-ai/tsebnf/extract"
	"github.com/arr-ai/tsebnf/js"
	"github.com/arr-ai/tsebnf/refs"
)

var dumpCommand = cli.Command{
	Name:      "dump",
	Aliases:   []string{"d"},
	Usage:     "Show how a grammar is read",
	ArgsUsage: "<grammar.js>",
	Action:    dump,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "verbose logging",
		},
	},
}

func dump(c *cli.Context) error {
	if c.Bool("v") {
		logrus.SetLevel(logrus.TraceLevel)
	}
	path, text, err := loadGrammar(c)
	if err != nil {
		return err
	}
	unit, err := extract.Extract(path, text)
	if err != nil {
		return err
	}
	rules := refs.Build(unit.Tree, unit.Grammar())

	w := c.App.Writer
	fmt.Fprint(w, js.TreeView(path, unit.Tree))
	fmt.Fprintln(w)
	writeConstants(w, unit.Constants)
	fmt.Fprintln(w)
	writeRules(w, rules)
	fmt.Fprintf(w, "\n%s\n", unit.Text)
	return nil
}

func newTable(w io.Writer, header ...interface{}) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func writeConstants(w io.Writer, constants []extract.Constant) {
	t := newTable(w, "constant", "value")
	for _, c := range constants {
		t.AppendRow(table.Row{c.Name, c.Text()})
	}
	t.Render()
}

func writeRules(w io.Writer, rules refs.Table) {
	t := newTable(w, "rule", "declared")
	for _, name := range rules.Names() {
		t.AppendRow(table.Row{name, rules.IsDeclared(name)})
	}
	t.Render()
}
