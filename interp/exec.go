package interp

import (
	"github.com/arr-ai/tsebnf/js"
)

// execBlock runs list in a new block scope. Declarations in the block are
// bound before the first statement runs, functions fully so.
func (in *Interp) execBlock(s scope, list []js.Stmt) (Value, bool) {
	s = in.hoist(s, list)
	for _, stmt := range list {
		if v, returned := in.exec(s, stmt); returned {
			return v, true
		}
	}
	return Undefined, false
}

func (in *Interp) hoist(s scope, list []js.Stmt) scope {
	var funcs []*js.FuncLit
	for _, stmt := range list {
		switch stmt := stmt.(type) {
		case *js.VarDecl:
			for _, d := range stmt.Decls {
				for _, name := range boundNames(d.Target) {
					s = s.With(name, &binding{v: Undefined, kind: stmt.Kind, ready: stmt.Kind == "var"})
				}
			}
		case *js.FuncDecl:
			funcs = append(funcs, stmt.Func)
			s = s.With(stmt.Func.Name, &binding{kind: "function"})
		}
	}
	for _, f := range funcs {
		b, _ := s.Get(f.Name)
		b.v = &Closure{Func: f, env: s}
		b.ready = true
	}
	return s
}

func (in *Interp) exec(s scope, stmt js.Stmt) (Value, bool) {
	switch stmt := stmt.(type) {
	case *js.VarDecl:
		for _, d := range stmt.Decls {
			v := Undefined
			if d.Init != nil {
				v = in.eval(s, d.Init)
			}
			in.destructure(s, d.Target, v, func(id *js.Ident, v Value) {
				b, _ := s.Get(id.Name)
				b.v = v
				b.ready = true
			})
		}
	case *js.FuncDecl, *js.EmptyStmt:
	case *js.ExprStmt:
		in.eval(s, stmt.X)
	case *js.ReturnStmt:
		if stmt.Result == nil {
			return Undefined, true
		}
		return in.eval(s, stmt.Result), true
	case *js.IfStmt:
		switch {
		case truthy(in.eval(s, stmt.Cond)):
			return in.execBlock(s, []js.Stmt{stmt.Then})
		case stmt.Else != nil:
			return in.execBlock(s, []js.Stmt{stmt.Else})
		}
	case *js.ForOfStmt:
		for _, v := range in.iterate(stmt.Iter, in.eval(s, stmt.Iter)) {
			is := in.define(s, stmt.Target, stmt.Kind, v)
			if r, returned := in.execBlock(is, []js.Stmt{stmt.Body}); returned {
				return r, true
			}
		}
	case *js.BlockStmt:
		return in.execBlock(s, stmt.List)
	default:
		in.failf(stmt, "unsupported statement")
	}
	return Undefined, false
}

// iterate returns the elements a for-of loop or spread visits.
func (in *Interp) iterate(at js.Node, v Value) []Value {
	switch v := v.(type) {
	case *Array:
		return append([]Value(nil), v.Elems...)
	case string:
		var out []Value
		for _, r := range v {
			out = append(out, string(r))
		}
		return out
	}
	in.failf(at, "%s is not iterable", KindOf(v))
	return nil
}

// define extends s with fresh bindings for the names in target.
func (in *Interp) define(s scope, target js.Pattern, kind string, v Value) scope {
	in.destructure(s, target, v, func(id *js.Ident, v Value) {
		s = s.define(id.Name, kind, v)
	})
	return s
}

func (in *Interp) assign(s scope, id *js.Ident, v Value) {
	b, has := s.Get(id.Name)
	switch {
	case !has:
		in.failf(id, "%s is not defined", id.Name)
	case !b.ready:
		in.failf(id, "cannot access %s before initialization", id.Name)
	case b.kind == "const":
		in.failf(id, "assignment to constant %s", id.Name)
	}
	b.v = v
}

// destructure matches v against target, calling bind for each identifier.
// Defaults are evaluated in s.
func (in *Interp) destructure(s scope, target js.Pattern, v Value, bind func(*js.Ident, Value)) {
	element := func(p *js.Param, v Value) {
		if v == Undefined && p.Default != nil {
			v = in.eval(s, p.Default)
		}
		in.destructure(s, p.Target, v, bind)
	}
	switch t := target.(type) {
	case *js.Ident:
		bind(t, v)
	case *js.ArrayPattern:
		elems := in.iterate(t, v)
		for i, p := range t.Elems {
			if p == nil {
				continue
			}
			if p.Rest {
				var rest []Value
				if i < len(elems) {
					rest = append(rest, elems[i:]...)
				}
				in.destructure(s, p.Target, NewArray(rest...), bind)
				break
			}
			e := Undefined
			if i < len(elems) {
				e = elems[i]
			}
			element(p, e)
		}
	case *js.ObjectPattern:
		if v == Undefined || v == Null {
			in.failf(t, "cannot destructure %s", KindOf(v))
		}
		used := map[string]bool{}
		for _, p := range t.Props {
			if p.Key == "" {
				rest := NewObject()
				if obj, ok := v.(*Object); ok {
					for _, k := range obj.keys {
						if !used[k] {
							rest.Set(k, obj.props[k])
						}
					}
				}
				in.destructure(s, p.Value.Target, rest, bind)
				continue
			}
			used[p.Key] = true
			element(p.Value, in.member(p, v, p.Key))
		}
	default:
		in.failf(target, "unsupported binding pattern")
	}
}

// boundNames lists the identifiers a pattern binds.
func boundNames(target js.Pattern) []string {
	var names []string
	switch t := target.(type) {
	case *js.Ident:
		names = append(names, t.Name)
	case *js.ArrayPattern:
		for _, p := range t.Elems {
			if p != nil {
				names = append(names, boundNames(p.Target)...)
			}
		}
	case *js.ObjectPattern:
		for _, p := range t.Props {
			names = append(names, boundNames(p.Value.Target)...)
		}
	}
	return names
}
