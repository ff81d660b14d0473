// Package ebnf renders grammar combinators as EBNF-style text.
package ebnf

import (
	"fmt"
	"strings"
)

// Expression is an immutable fragment of rendered grammar text.
type Expression struct {
	text string

	// enclosed is set when text is a single parenthesised group produced by
	// a combinator, i.e. its first '(' matches its last ')'.
	enclosed bool
}

func (e Expression) String() string {
	return e.text
}

// Unwrapped returns the text with one redundant enclosing pair of
// parentheses removed, if it has one.
func (e Expression) Unwrapped() string {
	if e.enclosed {
		return e.text[1 : len(e.text)-1]
	}
	return e.text
}

// Verbatim makes an expression of text that needs no quoting, such as a
// number or a regular expression.
func Verbatim(text string) Expression {
	return Expression{text: text}
}

func enclose(inner string) Expression {
	return Expression{text: "(" + inner + ")", enclosed: true}
}

// Operand is anything a combinator accepts: Literal, Expression, RuleRef or Group.
type Operand interface {
	isOperand()
}

// Literal is a string to be matched verbatim; it renders quoted.
type Literal string

// RuleRef refers to a rule by name; it renders as the bare name.
type RuleRef string

// Group is an ordered list of operands; it renders as a brace group.
type Group []Operand

func (Expression) isOperand() {}
func (Literal) isOperand()    {}
func (RuleRef) isOperand()    {}
func (Group) isOperand()      {}

func (r RuleRef) Expression() Expression {
	return Expression{text: string(r)}
}

// Render converts any operand to its expression.
func Render(op Operand) Expression {
	switch op := op.(type) {
	case Expression:
		return op
	case Literal:
		return Quote(string(op))
	case RuleRef:
		return op.Expression()
	case Group:
		var sb strings.Builder
		sb.WriteString("{")
		for _, o := range op {
			sb.WriteString(" ")
			sb.WriteString(Render(o).text)
		}
		if len(op) > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("}")
		return Expression{text: sb.String()}
	}
	panic(fmt.Sprintf("ebnf: unexpected operand %#v", op))
}

var singleCharQuotes = map[string]string{
	"\x00": `'\0'`,
	"\b":   `'\b'`,
	"\f":   `'\f'`,
	"\n":   `'\n'`,
	"\r":   `'\r'`,
	"\t":   `'\t'`,
	"\v":   `'\v'`,
	`\`:    `'\\'`,
	`'`:    `"'"`,
	`"`:    `'"'`,
}

// Quote renders a literal string. Single control characters and quote
// characters get fixed escaped spellings; any other string is single quoted
// unless it contains a single quote, in which case it is double quoted.
func Quote(s string) Expression {
	if q, has := singleCharQuotes[s]; has {
		return Expression{text: q}
	}
	if strings.Contains(s, "'") {
		return Expression{text: `"` + s + `"`}
	}
	return Expression{text: "'" + s + "'"}
}
