package interp

import (
	"math"
	"strings"

	"github.com/arr-ai/tsebnf/ebnf"
	"github.com/arr-ai/tsebnf/js"
	"github.com/arr-ai/tsebnf/refs"
)

// Value is any value a grammar program can compute: Undefined, Null, bool,
// float64, string, *Regex, *Array, *Object, *Closure, *Builtin, *Namespace,
// ebnf.Expression or ebnf.RuleRef.
type Value interface{}

type undefinedValue struct{}
type nullValue struct{}

var (
	Undefined Value = undefinedValue{}
	Null      Value = nullValue{}
)

type Regex struct {
	Source string
	Flags  string
}

func (r *Regex) String() string {
	return "/" + r.Source + "/" + r.Flags
}

type Array struct {
	Elems []Value
}

func NewArray(elems ...Value) *Array {
	return &Array{Elems: elems}
}

// Object is a property bag that remembers insertion order.
type Object struct {
	keys  []string
	props map[string]Value
}

func NewObject() *Object {
	return &Object{props: map[string]Value{}}
}

func (o *Object) Get(key string) (Value, bool) {
	v, has := o.props[key]
	return v, has
}

func (o *Object) Set(key string, v Value) {
	if _, has := o.props[key]; !has {
		o.keys = append(o.keys, key)
	}
	o.props[key] = v
}

// Keys returns the property names in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Closure is a function defined by the grammar program.
type Closure struct {
	Func *js.FuncLit
	env  scope
}

func (c *Closure) Name() string {
	if c.Func.Name != "" {
		return c.Func.Name
	}
	return "anonymous function"
}

// Builtin is a function provided by the interpreter. Props holds its
// properties, such as prec.left.
type Builtin struct {
	Name  string
	Fn    func(c *call, args []Value) Value
	Props *Object
}

// Namespace is the value of `$`: member access yields rule references.
type Namespace struct {
	table refs.Table
}

func (n *Namespace) Table() refs.Table {
	return n.table
}

func truthy(v Value) bool {
	switch v := v.(type) {
	case undefinedValue, nullValue:
		return false
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case string:
		return v != ""
	}
	return true
}

func typeOf(v Value) string {
	switch v.(type) {
	case undefinedValue:
		return "undefined"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *Closure, *Builtin:
		return "function"
	}
	return "object"
}

// KindOf names the shape of v for messages.
func KindOf(v Value) string {
	switch v.(type) {
	case undefinedValue:
		return "undefined"
	case nullValue:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *Regex:
		return "regular expression"
	case *Array:
		return "array"
	case *Object:
		return "object"
	case *Closure, *Builtin:
		return "function"
	case *Namespace:
		return "rule namespace"
	case ebnf.Expression:
		return "grammar expression"
	case ebnf.RuleRef:
		return "rule reference"
	}
	return "unknown value"
}

func toString(v Value) string {
	switch v := v.(type) {
	case undefinedValue:
		return "undefined"
	case nullValue:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return js.FormatNumber(v)
	case string:
		return v
	case *Regex:
		return v.String()
	case *Array:
		return join(v.Elems, ",")
	case *Object, *Namespace:
		return "[object Object]"
	case *Closure:
		return v.Func.Span().String()
	case *Builtin:
		return "function " + v.Name + "() { [native code] }"
	case ebnf.Expression:
		return v.String()
	case ebnf.RuleRef:
		return string(v)
	}
	return ""
}

func join(elems []Value, sep string) string {
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		switch e.(type) {
		case undefinedValue, nullValue:
			parts = append(parts, "")
		default:
			parts = append(parts, toString(e))
		}
	}
	return strings.Join(parts, sep)
}

func strictEquals(a, b Value) bool {
	return a == b
}

func looseEquals(a, b Value) bool {
	isNullish := func(v Value) bool { return v == Undefined || v == Null }
	if isNullish(a) || isNullish(b) {
		return isNullish(a) && isNullish(b)
	}
	return strictEquals(a, b)
}
