package render

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/arr-ai/tsebnf/ebnf"
	"github.com/arr-ai/tsebnf/interp"
)

// Field is a named function of the rule namespace.
type Field struct {
	Name string
	Fn   interp.Value
}

// Definition is an evaluated grammar definition.
type Definition struct {
	Name       string
	Directives []Field
	Rules      []Field
}

// DefinitionError reports an exported value that is not a grammar definition.
type DefinitionError struct {
	Msg string
}

func (e DefinitionError) Error() string {
	return e.Msg
}

func definitionErrorf(format string, args ...interface{}) error {
	return DefinitionError{Msg: fmt.Sprintf(format, args...)}
}

// NewDefinition reads the exported grammar object, keeping declaration order.
func NewDefinition(exports interp.Value) (*Definition, error) {
	obj, ok := exports.(*interp.Object)
	if !ok {
		return nil, definitionErrorf("module.exports must be a grammar definition object, got %s", interp.KindOf(exports))
	}
	d := &Definition{}
	var rules *interp.Object
	for _, key := range obj.Keys() {
		v, _ := obj.Get(key)
		switch key {
		case "name":
			if name, ok := v.(string); ok {
				d.Name = name
			}
		case "rules":
			if rules, ok = v.(*interp.Object); !ok {
				return nil, definitionErrorf("rules must be an object, got %s", interp.KindOf(v))
			}
		default:
			if !isFunction(v) {
				return nil, definitionErrorf("directive %s must be a function, got %s", key, interp.KindOf(v))
			}
			d.Directives = append(d.Directives, Field{Name: key, Fn: v})
		}
	}
	if rules == nil {
		return nil, definitionErrorf("grammar definition has no rules")
	}
	for _, key := range rules.Keys() {
		v, _ := rules.Get(key)
		if !isFunction(v) {
			return nil, definitionErrorf("rule %s must be a function, got %s", key, interp.KindOf(v))
		}
		d.Rules = append(d.Rules, Field{Name: key, Fn: v})
	}
	return d, nil
}

func isFunction(v interp.Value) bool {
	switch v.(type) {
	case *interp.Closure, *interp.Builtin:
		return true
	}
	return false
}

// Render writes the directives, then the rules, each calling its function
// with the rule namespace exactly once.
func (d *Definition) Render(in *interp.Interp, w io.Writer) error {
	for _, f := range d.Directives {
		expansion, err := expand(in, f)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s ::= %s\n\n", f.Name, expansion); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "rules:"); err != nil {
		return err
	}
	for _, r := range d.Rules {
		expansion, err := expand(in, r)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  %s ::= %s\n", r.Name, expansion); err != nil {
			return err
		}
	}
	logrus.WithFields(logrus.Fields{
		"directives": len(d.Directives),
		"rules":      len(d.Rules),
	}).Debug("rendered grammar")
	return nil
}

func expand(in *interp.Interp, f Field) (string, error) {
	v, err := in.Call(f.Fn, in.Namespace())
	if err != nil {
		return "", err
	}
	op, err := interp.Operand(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", f.Name, err)
	}
	expansion := ebnf.Render(op).Unwrapped()
	logrus.WithField("field", f.Name).Tracef("expanded to %s", expansion)
	return expansion, nil
}
