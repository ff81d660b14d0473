// Package interp evaluates grammar programs, with the grammar combinators
// bound as builtins that build ebnf expressions.
package interp

import (
	"github.com/sirupsen/logrus"

	"github.com/arr-ai/tsebnf/js"
	"github.com/arr-ai/tsebnf/refs"
)

const maxCallDepth = 512

// Interp evaluates one grammar program against a rule reference table.
type Interp struct {
	globals scope
	module  *Object
	ns      *Namespace
	depth   int
}

func New(table refs.Table) *Interp {
	in := &Interp{module: NewObject(), ns: &Namespace{table: table}}
	in.module.Set("exports", NewObject())
	in.globals = globals(in)
	return in
}

// Namespace returns the value rule functions are called with.
func (in *Interp) Namespace() *Namespace {
	return in.ns
}

// Run evaluates prog and returns the final value of module.exports.
func (in *Interp) Run(prog *js.Program) (exports Value, err error) {
	defer recoverError(&err)
	logrus.WithField("statements", len(prog.Body)).Trace("evaluating program")
	in.execBlock(in.globals, prog.Body)
	exports, _ = in.module.Get("exports")
	return exports, nil
}

// Call invokes fn with args.
func (in *Interp) Call(fn Value, args ...Value) (result Value, err error) {
	defer recoverError(&err)
	return in.call(nil, fn, Undefined, args), nil
}

// call is the context a builtin runs in.
type call struct {
	in   *Interp
	at   js.Node
	this Value
}

func (c *call) failf(format string, args ...interface{}) {
	panic(newError(c.at, format, args...))
}

func (c *call) arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Undefined
}

func (c *call) invoke(fn Value, args ...Value) Value {
	return c.in.call(c.at, fn, Undefined, args)
}

func (in *Interp) failf(at js.Node, format string, args ...interface{}) {
	panic(newError(at, format, args...))
}

func (in *Interp) call(at js.Node, fn Value, this Value, args []Value) Value {
	switch f := fn.(type) {
	case *Builtin:
		return f.Fn(&call{in: in, at: at, this: this}, args)
	case *Closure:
		return in.callClosure(at, f, args)
	}
	in.failf(at, "%s is not a function", KindOf(fn))
	return nil
}

func (in *Interp) callClosure(at js.Node, f *Closure, args []Value) Value {
	if in.depth >= maxCallDepth {
		in.failf(at, "maximum call depth exceeded calling %s", f.Name())
	}
	in.depth++
	defer func() {
		in.depth--
		if r := recover(); r != nil {
			if e, ok := r.(*Error); ok && at != nil {
				e.Trace = append(e.Trace, at.Span())
			}
			panic(r)
		}
	}()

	fn := f.Func
	s := f.env
	for i, p := range fn.Params {
		if p.Rest {
			var rest []Value
			if i < len(args) {
				rest = append(rest, args[i:]...)
			}
			s = in.define(s, p.Target, "param", NewArray(rest...))
			break
		}
		v := Undefined
		if i < len(args) {
			v = args[i]
		}
		if v == Undefined && p.Default != nil {
			v = in.eval(s, p.Default)
		}
		s = in.define(s, p.Target, "param", v)
	}
	if fn.Expr != nil {
		return in.eval(s, fn.Expr)
	}
	if v, returned := in.execBlock(s, fn.Body.List); returned {
		return v
	}
	return Undefined
}
