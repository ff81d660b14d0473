package js

import "fmt"

type TokenKind int

const (
	EOF TokenKind = iota
	IdentToken
	Punct
	String
	Number
	Template
	Regex
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case IdentToken:
		return "identifier"
	case Punct:
		return "punctuator"
	case String:
		return "string"
	case Number:
		return "number"
	case Template:
		return "template"
	case Regex:
		return "regular expression"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexeme. Text is the raw source; the decoded payload lives
// in the kind-specific fields.
type Token struct {
	Kind TokenKind
	Src  Scanner

	// Set when at least one line terminator separates the token from the
	// previous one. Drives automatic semicolon insertion.
	NewlineBefore bool

	Value  string    // String: cooked value
	Num    float64   // Number
	Quasis []string  // Template: cooked text between substitutions
	Subs   []Scanner // Template: source of each ${...} substitution
	Flags  string    // Regex: flags; Value holds the pattern
}

func (t Token) Text() string {
	return t.Src.String()
}

// Is reports whether t is the punctuator or identifier spelled text.
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == IdentToken) && t.Src.String() == text
}

func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text())
}

var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "export": true, "extends": true, "false": true, "finally": true,
	"for": true, "function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "new": true, "null": true, "return": true, "super": true,
	"switch": true, "this": true, "throw": true, "true": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true, "with": true,
	"let": true, "yield": true,
}

// IsReserved reports whether name cannot be used as a binding identifier.
func IsReserved(name string) bool {
	return reserved[name]
}
