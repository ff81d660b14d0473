package ebnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombinators(t *testing.T) {
	a, b, c := RuleRef("a"), RuleRef("b"), RuleRef("c")
	for _, test := range []struct {
		name string
		e    Expression
		out  string
	}{
		{name: "empty choice", e: Choice(), out: "()"},
		{name: "choice of one", e: Choice(a), out: "(a)"},
		{name: "choice", e: Choice(a, b), out: "(a | b)"},
		{name: "choice of literals", e: Choice(Literal("x"), Literal("y"), c), out: "('x' | 'y' | c)"},
		{name: "empty seq", e: Seq(), out: ""},
		{name: "seq of one", e: Seq(a), out: "a"},
		{name: "seq", e: Seq(a, b), out: "(a b)"},
		{name: "seq with group", e: Seq(a, Group{b, c}), out: "(a { b c })"},
		{name: "optional", e: Optional(a), out: "a?"},
		{name: "repeat", e: Repeat(Literal(",")), out: "','*"},
		{name: "repeat1", e: Repeat1(Seq(a, b)), out: "(a b)+"},
		{name: "field", e: Field("lhs", a), out: "(a: lhs)"},
		{name: "alias", e: Alias(a, Literal("b")), out: "(a -> 'b')"},
		{name: "alias to rule", e: Alias(Seq(a, b), c), out: "((a b) -> c)"},
		{name: "prec", e: Prec(NoAssoc, "2", a), out: "2(a)"},
		{name: "prec without level", e: Prec(NoAssoc, "", a), out: "(a)"},
		{name: "prec.left", e: Prec(Left, "1", a), out: "<1(a)"},
		{name: "prec.right", e: Prec(Right, "", a), out: ">(a)"},
		{name: "prec.dynamic", e: Prec(Dynamic, "-1", a), out: "~-1(a)"},
		{name: "prec on parenthesised", e: Prec(Left, "1", Seq(a, b)), out: "<1(a b)"},
		{name: "prec on paren-led", e: Prec(Right, "", Optional(Choice(a, b))), out: ">(a | b)?"},
		{name: "token", e: Token(Literal("x")), out: "@('x')"},
		{name: "token of seq", e: Token(Seq(Literal("//"), Verbatim("/.*/"))), out: "@('//' /.*/)"},
		{name: "immediate token", e: ImmediateToken(Verbatim("/[a-z]+/")), out: "!(/[a-z]+/)"},
		{name: "field in seq", e: Seq(Field("op", Literal("+")), b), out: "(('+': op) b)"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.out, test.e.String())
		})
	}
}

func TestCombinatorsArePure(t *testing.T) {
	inner := Choice(Literal("x"), Literal("y"))
	first := Seq(Literal("a"), Optional(inner))
	second := Seq(Literal("a"), Optional(inner))
	assert.Equal(t, first, second)
	assert.Equal(t, "('x' | 'y')", inner.String())
}
