// Package render turns a grammar source into EBNF-style text.
package render

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/arr-ai/tsebnf/extract"
	"github.com/arr-ai/tsebnf/gotree"
	"github.com/arr-ai/tsebnf/interp"
	"github.com/arr-ai/tsebnf/js"
	"github.com/arr-ai/tsebnf/refs"
)

// UnitName is the filename positions in the evaluable unit are reported against.
const UnitName = "<evaluable unit>"

// EvaluationError reports a failure evaluating the assembled unit. Unit holds
// its text, since positions in Err refer to it rather than to the source file.
type EvaluationError struct {
	Unit string
	Err  error
}

func (e EvaluationError) Error() string {
	tree := gotree.New("evaluation failed")
	node := tree.Add(e.Err.Error())
	var ie *interp.Error
	if errors.As(e.Err, &ie) {
		for _, at := range ie.Trace {
			node.Add("called from " + at.Location())
		}
	}
	return strings.TrimSuffix(tree.Print(), "\n")
}

func (e EvaluationError) Unwrap() error {
	return e.Err
}

// Source renders the grammar in text to w. Nothing is written if any stage fails.
func Source(filename, text string, w io.Writer) error {
	unit, err := extract.Extract(filename, text)
	if err != nil {
		return err
	}
	table := refs.Build(unit.Tree, unit.Grammar())

	var buf bytes.Buffer
	if err := Unit(unit, table, &buf); err != nil {
		return EvaluationError{Unit: unit.Text, Err: err}
	}
	_, err = buf.WriteTo(w)
	return err
}

// Unit evaluates an extracted unit against table and renders its definition.
func Unit(unit *extract.Unit, table refs.Table, w io.Writer) error {
	prog, err := js.Parse(UnitName, unit.Text)
	if err != nil {
		return err
	}
	in := interp.New(table)
	exports, err := in.Run(prog)
	if err != nil {
		return err
	}
	def, err := NewDefinition(exports)
	if err != nil {
		return err
	}
	return def.Render(in, w)
}
