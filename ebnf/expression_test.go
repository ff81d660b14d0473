package ebnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteSingleChars(t *testing.T) {
	for _, test := range []struct {
		in, out string
	}{
		{"\x00", `'\0'`},
		{"\b", `'\b'`},
		{"\f", `'\f'`},
		{"\n", `'\n'`},
		{"\r", `'\r'`},
		{"\t", `'\t'`},
		{"\v", `'\v'`},
		{`\`, `'\\'`},
		{`'`, `"'"`},
		{`"`, `'"'`},
	} {
		test := test
		t.Run(test.out, func(t *testing.T) {
			assert.Equal(t, test.out, Quote(test.in).String())
		})
	}
}

func TestQuoteStrings(t *testing.T) {
	for _, test := range []struct {
		in, out string
	}{
		{"a", "'a'"},
		{"", "''"},
		{"don't", `"don't"`},
		{`say "hi"`, `'say "hi"'`},
		{"a\nb", "'a\nb'"},
		{`\\`, `'\\'`},
	} {
		test := test
		t.Run(test.in, func(t *testing.T) {
			assert.Equal(t, test.out, Quote(test.in).String())
		})
	}
}

func TestRenderOperands(t *testing.T) {
	for _, test := range []struct {
		name string
		op   Operand
		out  string
	}{
		{name: "literal", op: Literal("x"), out: "'x'"},
		{name: "rule", op: RuleRef("expr"), out: "expr"},
		{name: "expression", op: Choice(Literal("a")), out: "('a')"},
		{name: "verbatim", op: Verbatim("/a+/i"), out: "/a+/i"},
		{name: "empty group", op: Group{}, out: "{}"},
		{name: "group", op: Group{Literal("a"), RuleRef("b")}, out: "{ 'a' b }"},
		{name: "nested group", op: Group{Group{RuleRef("c")}}, out: "{ { c } }"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.out, Render(test.op).String())
		})
	}
}

func TestUnwrapped(t *testing.T) {
	for _, test := range []struct {
		name string
		e    Expression
		out  string
	}{
		{name: "choice", e: Choice(Literal("x"), Literal("y")), out: "'x' | 'y'"},
		{name: "seq", e: Seq(Literal("a"), RuleRef("b")), out: "'a' b"},
		{name: "bare", e: RuleRef("b").Expression(), out: "b"},
		{name: "suffixed", e: Optional(Choice(RuleRef("a"))), out: "(a)?"},
		{name: "two groups", e: Seq(Choice(RuleRef("a")), Choice(RuleRef("b"))), out: "(a) (b)"},
		{name: "verbatim parens", e: Verbatim("(a)"), out: "(a)"},
		{name: "plain prec", e: Prec(NoAssoc, "", RuleRef("a")), out: "a"},
		{name: "left prec", e: Prec(Left, "1", RuleRef("a")), out: "<1(a)"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.out, test.e.Unwrapped())
		})
	}
}
