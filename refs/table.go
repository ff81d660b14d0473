// Package refs builds the table of rule references that rule bodies resolve
// `$.<name>` against.
package refs

import (
	"github.com/arr-ai/frozen"
	"github.com/sirupsen/logrus"

	"github.com/arr-ai/tsebnf/ebnf"
	"github.com/arr-ai/tsebnf/js"
)

// Namespace is the identifier rule bodies use for the table.
const Namespace = "$"

// Table maps rule names to their references. It is read-only once built.
type Table struct {
	m frozen.Map[string, ebnf.RuleRef]

	// names holds every key in insertion order; the first declared of them
	// are the keys of the rules object in declaration order.
	names    []string
	declared int
}

// Build seeds the table with the keys of grammar's rules object, then adds
// every other name accessed on the namespace anywhere in tree.
func Build(tree js.Node, grammar *js.ObjectLit) Table {
	var t Table
	if grammar != nil {
		if rules, ok := grammar.Lookup("rules").(*js.ObjectLit); ok {
			for _, p := range rules.Props {
				if p.Spread || p.Computed != nil {
					continue
				}
				t = t.with(p.Key)
			}
		}
	}
	t.declared = len(t.names)

	js.Walk(tree, func(n js.Node) bool {
		if m, ok := n.(*js.MemberExpr); ok && m.Index == nil {
			if id, ok := m.X.(*js.Ident); ok && id.Name == Namespace {
				t = t.with(m.Name)
			}
		}
		return true
	})

	logrus.WithFields(logrus.Fields{
		"declared":   t.declared,
		"referenced": len(t.names) - t.declared,
	}).Debug("built rule reference table")
	return t
}

func (t Table) with(name string) Table {
	if t.m.Has(name) {
		return t
	}
	t.m = t.m.With(name, ebnf.RuleRef(name))
	t.names = append(t.names[:len(t.names):len(t.names)], name)
	return t
}

func (t Table) Get(name string) (ebnf.RuleRef, bool) {
	return t.m.Get(name)
}

func (t Table) Has(name string) bool {
	return t.m.Has(name)
}

func (t Table) Count() int {
	return t.m.Count()
}

// Declared returns the rule names in declaration order.
func (t Table) Declared() []string {
	return append([]string(nil), t.names[:t.declared]...)
}

// Names returns every name in the table: declared rules first, then the
// remaining references in source order.
func (t Table) Names() []string {
	return append([]string(nil), t.names...)
}

// IsDeclared reports whether name is a key of the rules object.
func (t Table) IsDeclared(name string) bool {
	for _, n := range t.names[:t.declared] {
		if n == name {
			return true
		}
	}
	return false
}
