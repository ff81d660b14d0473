package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/arr-ai/tsebnf/js"
)

func (in *Interp) eval(s scope, x js.Expr) Value {
	switch x := x.(type) {
	case *js.Ident:
		return in.lookup(s, x)
	case *js.StringLit:
		return x.Value
	case *js.NumberLit:
		return x.Value
	case *js.BoolLit:
		return x.Value
	case *js.NullLit:
		return Null
	case *js.RegexLit:
		return &Regex{Source: x.Pattern, Flags: x.Flags}
	case *js.TemplateLit:
		var sb strings.Builder
		for i, q := range x.Quasis {
			sb.WriteString(q)
			if i < len(x.Exprs) {
				sb.WriteString(toString(in.eval(s, x.Exprs[i])))
			}
		}
		return sb.String()
	case *js.ArrayLit:
		return NewArray(in.elements(s, x.Elems)...)
	case *js.ObjectLit:
		return in.object(s, x)
	case *js.FuncLit:
		c := &Closure{Func: x, env: s}
		if x.Name != "" && !x.Arrow {
			c.env = s.define(x.Name, "function", c)
		}
		return c
	case *js.CallExpr:
		return in.evalCall(s, x)
	case *js.MemberExpr:
		return in.member(x, in.eval(s, x.X), in.key(s, x))
	case *js.UnaryExpr:
		return in.unary(s, x)
	case *js.BinaryExpr:
		return in.binary(s, x)
	case *js.CondExpr:
		if truthy(in.eval(s, x.Cond)) {
			return in.eval(s, x.Then)
		}
		return in.eval(s, x.Else)
	case *js.AssignExpr:
		return in.assignExpr(s, x)
	case *js.Spread:
		in.failf(x, "unexpected spread")
	}
	in.failf(x, "unsupported expression")
	return nil
}

func (in *Interp) lookup(s scope, id *js.Ident) Value {
	b, has := s.Get(id.Name)
	if !has {
		in.failf(id, "%s is not defined", id.Name)
	}
	if !b.ready {
		in.failf(id, "cannot access %s before initialization", id.Name)
	}
	return b.v
}

// elements evaluates a list of array elements or call arguments, expanding spreads.
func (in *Interp) elements(s scope, xs []js.Expr) []Value {
	out := make([]Value, 0, len(xs))
	for _, x := range xs {
		if sp, ok := x.(*js.Spread); ok {
			out = append(out, in.iterate(sp.X, in.eval(s, sp.X))...)
			continue
		}
		out = append(out, in.eval(s, x))
	}
	return out
}

func (in *Interp) object(s scope, o *js.ObjectLit) *Object {
	obj := NewObject()
	for _, p := range o.Props {
		switch {
		case p.Spread:
			switch v := in.eval(s, p.Value).(type) {
			case *Object:
				for _, k := range v.keys {
					obj.Set(k, v.props[k])
				}
			case *Array:
				for i, e := range v.Elems {
					obj.Set(strconv.Itoa(i), e)
				}
			}
		case p.Computed != nil:
			key := toString(in.eval(s, p.Computed))
			obj.Set(key, in.eval(s, p.Value))
		default:
			obj.Set(p.Key, in.eval(s, p.Value))
		}
	}
	return obj
}

func (in *Interp) key(s scope, m *js.MemberExpr) string {
	if m.Index == nil {
		return m.Name
	}
	return toString(in.eval(s, m.Index))
}

func (in *Interp) evalCall(s scope, x *js.CallExpr) Value {
	this := Undefined
	var fn Value
	if m, ok := x.Callee.(*js.MemberExpr); ok {
		this = in.eval(s, m.X)
		fn = in.member(m, this, in.key(s, m))
	} else {
		fn = in.eval(s, x.Callee)
	}
	args := in.elements(s, x.Args)
	switch fn.(type) {
	case *Builtin:
	case *Closure:
		if x.New {
			in.failf(x.Callee, "%s is not a constructor", x.Callee.Span())
		}
	default:
		in.failf(x.Callee, "%s is not a function", x.Callee.Span())
	}
	return in.call(x, fn, this, args)
}

func (in *Interp) member(at js.Node, obj Value, key string) Value {
	switch o := obj.(type) {
	case undefinedValue, nullValue:
		in.failf(at, "cannot read property %q of %s", key, KindOf(obj))
	case *Object:
		if v, has := o.Get(key); has {
			return v
		}
	case *Array:
		return arrayMember(o, key)
	case string:
		return stringMember(o, key)
	case *Regex:
		switch key {
		case "source":
			return o.Source
		case "flags":
			return o.Flags
		}
	case *Builtin:
		if o.Props != nil {
			if v, has := o.Props.Get(key); has {
				return v
			}
		}
		if key == "name" {
			return o.Name
		}
	case *Closure:
		switch key {
		case "name":
			return o.Func.Name
		case "length":
			return float64(len(o.Func.Params))
		}
	case *Namespace:
		if ref, has := o.table.Get(key); has {
			return ref
		}
		in.failf(at, "undefined rule %q", key)
	}
	return Undefined
}

func (in *Interp) setMember(at js.Node, obj Value, key string, v Value) {
	switch o := obj.(type) {
	case *Object:
		o.Set(key, v)
		return
	case *Array:
		if key == "length" {
			f := toNumber(v)
			if f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
				in.failf(at, "invalid array length %s", toString(v))
			}
			n := int(f)
			for len(o.Elems) < n {
				o.Elems = append(o.Elems, Undefined)
			}
			o.Elems = o.Elems[:n]
			return
		}
		if i, ok := arrayIndex(key); ok {
			for len(o.Elems) <= i {
				o.Elems = append(o.Elems, Undefined)
			}
			o.Elems[i] = v
			return
		}
	}
	in.failf(at, "cannot set property %q of %s", key, KindOf(obj))
}

func (in *Interp) assignExpr(s scope, x *js.AssignExpr) Value {
	op := strings.TrimSuffix(x.Op, "=")
	switch t := x.Target.(type) {
	case *js.Ident:
		var v Value
		if op == "" {
			v = in.eval(s, x.Value)
		} else {
			v = in.arith(x, op, in.lookup(s, t), in.eval(s, x.Value))
		}
		in.assign(s, t, v)
		return v
	case *js.MemberExpr:
		obj := in.eval(s, t.X)
		key := in.key(s, t)
		var v Value
		if op == "" {
			v = in.eval(s, x.Value)
		} else {
			v = in.arith(x, op, in.member(t, obj, key), in.eval(s, x.Value))
		}
		in.setMember(t, obj, key, v)
		return v
	}
	in.failf(x.Target, "invalid assignment target")
	return nil
}

func (in *Interp) unary(s scope, x *js.UnaryExpr) Value {
	if x.Op == "typeof" {
		if id, ok := x.X.(*js.Ident); ok && !s.Has(id.Name) {
			return "undefined"
		}
		return typeOf(in.eval(s, x.X))
	}
	v := in.eval(s, x.X)
	switch x.Op {
	case "!":
		return !truthy(v)
	case "-":
		return -toNumber(v)
	case "+":
		return toNumber(v)
	case "~":
		return float64(^toInt32(toNumber(v)))
	case "void":
		return Undefined
	}
	in.failf(x, "unsupported operator %s", x.Op)
	return nil
}

func (in *Interp) binary(s scope, x *js.BinaryExpr) Value {
	l := in.eval(s, x.X)
	switch x.Op {
	case "&&":
		if !truthy(l) {
			return l
		}
		return in.eval(s, x.Y)
	case "||":
		if truthy(l) {
			return l
		}
		return in.eval(s, x.Y)
	case "??":
		if l != Undefined && l != Null {
			return l
		}
		return in.eval(s, x.Y)
	}
	r := in.eval(s, x.Y)
	switch x.Op {
	case "===":
		return strictEquals(l, r)
	case "!==":
		return !strictEquals(l, r)
	case "==":
		return looseEquals(l, r)
	case "!=":
		return !looseEquals(l, r)
	case "<", ">", "<=", ">=":
		return compare(x.Op, l, r)
	case "in":
		return in.has(x.Y, r, toString(l))
	}
	return in.arith(x, x.Op, l, r)
}

func (in *Interp) has(at js.Node, obj Value, key string) bool {
	switch o := obj.(type) {
	case *Object:
		_, has := o.Get(key)
		return has
	case *Array:
		i, ok := arrayIndex(key)
		return key == "length" || ok && i < len(o.Elems)
	case *Namespace:
		return o.table.Has(key)
	}
	in.failf(at, "cannot use 'in' to search for %q in %s", key, KindOf(obj))
	return false
}

func (in *Interp) arith(at js.Node, op string, l, r Value) Value {
	if op == "+" {
		_, lstr := l.(string)
		_, rstr := r.(string)
		if lstr || rstr || !isPrimitive(l) || !isPrimitive(r) {
			return toString(l) + toString(r)
		}
		return toNumber(l) + toNumber(r)
	}
	a, b := toNumber(l), toNumber(r)
	switch op {
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		return a / b
	case "%":
		return math.Mod(a, b)
	case "**":
		return math.Pow(a, b)
	case "&":
		return float64(toInt32(a) & toInt32(b))
	case "|":
		return float64(toInt32(a) | toInt32(b))
	case "^":
		return float64(toInt32(a) ^ toInt32(b))
	}
	in.failf(at, "unsupported operator %s", op)
	return nil
}

func compare(op string, l, r Value) bool {
	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok {
			switch op {
			case "<":
				return ls < rs
			case ">":
				return ls > rs
			case "<=":
				return ls <= rs
			}
			return ls >= rs
		}
	}
	a, b := toNumber(l), toNumber(r)
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	}
	return a >= b
}

func isPrimitive(v Value) bool {
	switch v.(type) {
	case undefinedValue, nullValue, bool, float64, string:
		return true
	}
	return false
}

func toNumber(v Value) float64 {
	switch v := v.(type) {
	case float64:
		return v
	case bool:
		if v {
			return 1
		}
		return 0
	case nullValue:
		return 0
	case string:
		t := strings.TrimSpace(v)
		if t == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	case *Array:
		switch len(v.Elems) {
		case 0:
			return 0
		case 1:
			return toNumber(v.Elems[0])
		}
	}
	return math.NaN()
}

func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(uint32(int64(math.Mod(math.Trunc(f), 1<<32))))
}

// arrayIndex parses a canonical non-negative integer property key.
func arrayIndex(key string) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || strconv.Itoa(i) != key {
		return 0, false
	}
	return i, true
}
