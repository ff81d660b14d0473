package interp

import (
	"math"
	"strconv"

	"github.com/arr-ai/tsebnf/ebnf"
	"github.com/arr-ai/tsebnf/refs"
)

func globals(in *Interp) scope {
	var s scope
	def := func(name string, v Value) {
		s = s.define(name, "const", v)
	}

	def("choice", method("choice", func(c *call, args []Value) Value {
		return ebnf.Choice(c.operands(args)...)
	}))
	def("seq", method("seq", func(c *call, args []Value) Value {
		return ebnf.Seq(c.operands(args)...)
	}))
	def("optional", method("optional", func(c *call, args []Value) Value {
		return ebnf.Optional(c.operand(c.arg(args, 0)))
	}))
	def("repeat", method("repeat", func(c *call, args []Value) Value {
		return ebnf.Repeat(c.operand(c.arg(args, 0)))
	}))
	def("repeat1", method("repeat1", func(c *call, args []Value) Value {
		return ebnf.Repeat1(c.operand(c.arg(args, 0)))
	}))
	def("alias", method("alias", func(c *call, args []Value) Value {
		return ebnf.Alias(c.operand(c.arg(args, 0)), c.operand(c.arg(args, 1)))
	}))
	def("field", method("field", func(c *call, args []Value) Value {
		name, ok := c.arg(args, 0).(string)
		if !ok {
			c.failf("field name must be a string, got %s", KindOf(c.arg(args, 0)))
		}
		return ebnf.Field(name, c.operand(c.arg(args, 1)))
	}))

	prec := precedence("prec", ebnf.NoAssoc)
	prec.Props = NewObject()
	prec.Props.Set("left", precedence("prec.left", ebnf.Left))
	prec.Props.Set("right", precedence("prec.right", ebnf.Right))
	prec.Props.Set("dynamic", precedence("prec.dynamic", ebnf.Dynamic))
	def("prec", prec)
	def("_prec", precedence("_prec", ebnf.NoAssoc))

	token := method("token", func(c *call, args []Value) Value {
		return ebnf.Token(c.operand(c.arg(args, 0)))
	})
	token.Props = NewObject()
	token.Props.Set("immediate", method("token.immediate", func(c *call, args []Value) Value {
		return ebnf.ImmediateToken(c.operand(c.arg(args, 0)))
	}))
	def("token", token)
	def("_token", method("_token", token.Fn))

	def("grammar", method("grammar", func(c *call, args []Value) Value {
		if len(args) != 1 {
			c.failf("grammar expects a single definition object, got %d arguments", len(args))
		}
		obj, ok := args[0].(*Object)
		if !ok {
			c.failf("grammar expects a definition object, got %s", KindOf(args[0]))
		}
		return obj
	}))

	def(refs.Namespace, in.ns)
	def("module", in.module)
	def("Object", objectBuiltin())
	def("RegExp", method("RegExp", func(c *call, args []Value) Value {
		r := &Regex{}
		switch p := c.arg(args, 0).(type) {
		case *Regex:
			r.Source, r.Flags = p.Source, p.Flags
		case undefinedValue:
			r.Source = "(?:)"
		default:
			r.Source = toString(p)
		}
		if f := c.arg(args, 1); f != Undefined {
			r.Flags = toString(f)
		}
		return r
	}))
	def("undefined", Undefined)
	def("NaN", math.NaN())
	def("Infinity", math.Inf(1))
	return s
}

// precedence builds a prec function. With one argument it is the operand;
// with two the first is the level, omitted when falsy.
func precedence(name string, assoc ebnf.Assoc) *Builtin {
	return method(name, func(c *call, args []Value) Value {
		switch len(args) {
		case 0:
			c.failf("%s expects an operand", name)
		case 1:
			return ebnf.Prec(assoc, "", c.operand(args[0]))
		}
		level := ""
		if truthy(args[0]) {
			level = toString(args[0])
		}
		return ebnf.Prec(assoc, level, c.operand(args[1]))
	})
}

func objectBuiltin() *Builtin {
	o := method("Object", func(c *call, args []Value) Value {
		if obj, ok := c.arg(args, 0).(*Object); ok {
			return obj
		}
		return NewObject()
	})
	o.Props = NewObject()
	o.Props.Set("keys", method("keys", func(c *call, args []Value) Value {
		keys, _ := entries(c, c.arg(args, 0))
		out := make([]Value, 0, len(keys))
		for _, k := range keys {
			out = append(out, k)
		}
		return NewArray(out...)
	}))
	o.Props.Set("values", method("values", func(c *call, args []Value) Value {
		_, values := entries(c, c.arg(args, 0))
		return NewArray(values...)
	}))
	o.Props.Set("entries", method("entries", func(c *call, args []Value) Value {
		keys, values := entries(c, c.arg(args, 0))
		out := make([]Value, 0, len(keys))
		for i, k := range keys {
			out = append(out, NewArray(k, values[i]))
		}
		return NewArray(out...)
	}))
	o.Props.Set("assign", method("assign", func(c *call, args []Value) Value {
		target, ok := c.arg(args, 0).(*Object)
		if !ok {
			c.failf("Object.assign expects an object target, got %s", KindOf(c.arg(args, 0)))
		}
		for _, src := range args[1:] {
			if src == Undefined || src == Null {
				continue
			}
			keys, values := entries(c, src)
			for i, k := range keys {
				target.Set(k, values[i])
			}
		}
		return target
	}))
	o.Props.Set("fromEntries", method("fromEntries", func(c *call, args []Value) Value {
		out := NewObject()
		arr, ok := c.arg(args, 0).(*Array)
		if !ok {
			c.failf("Object.fromEntries expects an array, got %s", KindOf(c.arg(args, 0)))
		}
		for _, e := range arr.Elems {
			pair, ok := e.(*Array)
			if !ok {
				c.failf("Object.fromEntries expects [key, value] pairs, got %s", KindOf(e))
			}
			out.Set(toString(pair.arg(0)), pair.arg(1))
		}
		return out
	}))
	return o
}

// entries lists the own enumerable properties of v.
func entries(c *call, v Value) ([]string, []Value) {
	var keys []string
	var values []Value
	switch o := v.(type) {
	case *Object:
		for _, k := range o.keys {
			keys = append(keys, k)
			values = append(values, o.props[k])
		}
	case *Array:
		for i, e := range o.Elems {
			keys = append(keys, strconv.Itoa(i))
			values = append(values, e)
		}
	case *Namespace:
		for _, k := range o.table.Names() {
			ref, _ := o.table.Get(k)
			keys = append(keys, k)
			values = append(values, ref)
		}
	case string:
		for i, r := range []rune(o) {
			keys = append(keys, strconv.Itoa(i))
			values = append(values, string(r))
		}
	case undefinedValue, nullValue:
		c.failf("cannot convert %s to object", KindOf(v))
	}
	return keys, values
}

func (a *Array) arg(i int) Value {
	if i < len(a.Elems) {
		return a.Elems[i]
	}
	return Undefined
}
