package interp

import (
	"fmt"

	"github.com/arr-ai/tsebnf/ebnf"
	"github.com/arr-ai/tsebnf/js"
)

// OperandError reports a value that cannot appear in a grammar expression.
type OperandError struct {
	Kind string
}

func (e OperandError) Error() string {
	return fmt.Sprintf("cannot use %s as a grammar operand", e.Kind)
}

// Operand converts a value to a combinator operand. Strings are literals,
// numbers and regular expressions render verbatim and arrays become groups.
func Operand(v Value) (ebnf.Operand, error) {
	switch v := v.(type) {
	case string:
		return ebnf.Literal(v), nil
	case float64:
		return ebnf.Verbatim(js.FormatNumber(v)), nil
	case *Regex:
		return ebnf.Verbatim(v.String()), nil
	case ebnf.Expression:
		return v, nil
	case ebnf.RuleRef:
		return v, nil
	case *Array:
		g := make(ebnf.Group, 0, len(v.Elems))
		for _, e := range v.Elems {
			op, err := Operand(e)
			if err != nil {
				return nil, err
			}
			g = append(g, op)
		}
		return g, nil
	}
	return nil, OperandError{Kind: KindOf(v)}
}

func (c *call) operand(v Value) ebnf.Operand {
	op, err := Operand(v)
	if err != nil {
		c.failf("%v", err)
	}
	return op
}

func (c *call) operands(args []Value) []ebnf.Operand {
	ops := make([]ebnf.Operand, 0, len(args))
	for _, a := range args {
		ops = append(ops, c.operand(a))
	}
	return ops
}
