package interp

import (
	"github.com/arr-ai/frozen"
)

type binding struct {
	v     Value
	kind  string // const, let, var, param or function
	ready bool
}

// scope is a persistent map of names to mutable bindings. Entering a block
// extends it; the enclosing scope is unaffected.
type scope struct {
	m frozen.Map[string, *binding]
}

func (s scope) With(name string, b *binding) scope {
	return scope{m: s.m.With(name, b)}
}

func (s scope) Get(name string) (*binding, bool) {
	return s.m.Get(name)
}

func (s scope) Has(name string) bool {
	return s.m.Has(name)
}

// define binds name to an initialised value.
func (s scope) define(name, kind string, v Value) scope {
	return s.With(name, &binding{v: v, kind: kind, ready: true})
}
