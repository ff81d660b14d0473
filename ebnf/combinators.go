package ebnf

import (
	"strings"
)

// Assoc is the sigil that marks a precedence's associativity.
type Assoc string

const (
	NoAssoc Assoc = ""
	Left    Assoc = "<"
	Right   Assoc = ">"
	Dynamic Assoc = "~"
)

const (
	tokenSigil     = "@"
	immediateSigil = "!"
)

// Prec marks op with an associativity and an optional level. An empty level is omitted.
func Prec(assoc Assoc, level string, op Operand) Expression {
	return tagged(string(assoc)+level, op)
}

func Token(op Operand) Expression {
	return tagged(tokenSigil, op)
}

func ImmediateToken(op Operand) Expression {
	return tagged(immediateSigil, op)
}

// tagged prefixes op, parenthesising it unless it already starts with '('.
func tagged(prefix string, op Operand) Expression {
	e := Render(op)
	inner, enclosed := e.text, e.enclosed
	if !strings.HasPrefix(inner, "(") {
		inner, enclosed = "("+inner+")", true
	}
	return Expression{text: prefix + inner, enclosed: prefix == "" && enclosed}
}

func Field(name string, op Operand) Expression {
	return enclose(Render(op).text + ": " + name)
}

func Choice(ops ...Operand) Expression {
	return enclose(join(ops, " | "))
}

func Optional(op Operand) Expression {
	return Expression{text: Render(op).text + "?"}
}

func Repeat(op Operand) Expression {
	return Expression{text: Render(op).text + "*"}
}

func Repeat1(op Operand) Expression {
	return Expression{text: Render(op).text + "+"}
}

func Alias(from, to Operand) Expression {
	return enclose(Render(from).text + " -> " + Render(to).text)
}

// Seq joins ops with spaces, parenthesised only when there are two or more.
func Seq(ops ...Operand) Expression {
	switch len(ops) {
	case 0:
		return Expression{}
	case 1:
		return Render(ops[0])
	}
	return enclose(join(ops, " "))
}

func join(ops []Operand, sep string) string {
	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		parts = append(parts, Render(op).text)
	}
	return strings.Join(parts, sep)
}
