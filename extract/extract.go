// Package extract classifies the top-level statements of a grammar source and
// assembles them into a single evaluable unit.
package extract

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/arr-ai/tsebnf/js"
)

// renames maps combinator identifiers to the private names they are called
// by inside the evaluable unit.
var renames = map[string]string{
	"prec":  "_prec",
	"token": "_token",
}

// Constant is one literal property of a top-level constant group.
type Constant struct {
	Name  string // <group>.<property>
	Value js.Expr
}

// Text returns the literal's source text.
func (c Constant) Text() string {
	return c.Value.Span().String()
}

// Unit is the evaluable unit assembled from a grammar source.
type Unit struct {
	Filename  string
	Text      string
	Tree      *js.Program
	Export    *js.AssignExpr
	Constants []Constant
	Helpers   []string
}

// Grammar returns the object literal defining the grammar: the export's
// right-hand side, or the last object literal passed to a call there.
func (u *Unit) Grammar() *js.ObjectLit {
	switch v := u.Export.Value.(type) {
	case *js.ObjectLit:
		return v
	case *js.CallExpr:
		for i := len(v.Args) - 1; i >= 0; i-- {
			if o, ok := v.Args[i].(*js.ObjectLit); ok {
				return o
			}
		}
	}
	return nil
}

// Extract parses text and classifies its top-level statements.
func Extract(filename, text string) (*Unit, error) {
	prog, err := js.Parse(filename, text)
	if err != nil {
		return nil, err
	}
	u := &Unit{Filename: filename, Tree: prog}

	var constants, helpers []string
	var export string
	for _, stmt := range prog.Body {
		log := logrus.WithField("at", stmt.Span().Location())
		switch s := stmt.(type) {
		case *js.VarDecl:
			if s.Kind != "const" {
				return nil, UnsupportedTopLevelConstructError{Construct: s.Kind + " declaration", Pos: s.Span()}
			}
			u.Constants = append(u.Constants, constantsOf(s)...)
			constants = append(constants, s.Span().String()+"\n")
			log.Debug("constant group")
		case *js.FuncDecl:
			t, err := rewrite(s.Span())
			if err != nil {
				return nil, err
			}
			u.Helpers = append(u.Helpers, s.Func.Name)
			helpers = append(helpers, t+"\n")
			log.WithField("name", s.Func.Name).Debug("helper function")
		case *js.ExprStmt:
			assign, ok := s.X.(*js.AssignExpr)
			if !ok || assign.Op != "=" {
				return nil, UnsupportedTopLevelConstructError{Construct: describe(s.X), Pos: s.Span()}
			}
			if !js.IsMemberOf(assign.Target, "module", "exports") {
				return nil, UnexpectedExportTargetError{Target: assign.Target.Span().String(), Pos: assign.Target.Span()}
			}
			if u.Export != nil {
				return nil, UnsupportedTopLevelConstructError{Construct: "second module.exports assignment", Pos: s.Span()}
			}
			t, err := rewrite(s.Span())
			if err != nil {
				return nil, err
			}
			u.Export = assign
			export = t
			log.Debug("export expression")
		case *js.EmptyStmt:
		default:
			return nil, UnsupportedTopLevelConstructError{Construct: describe(stmt), Pos: stmt.Span()}
		}
	}
	if u.Export == nil {
		return nil, MissingExportError{Filename: filename}
	}

	u.Text = strings.Join(constants, "") + strings.Join(helpers, "") + export
	logrus.WithFields(logrus.Fields{
		"constants": len(u.Constants),
		"helpers":   len(u.Helpers),
	}).Debug("extracted evaluable unit")
	return u, nil
}

func constantsOf(decl *js.VarDecl) []Constant {
	var out []Constant
	for _, d := range decl.Decls {
		id, ok := d.Target.(*js.Ident)
		if !ok {
			continue
		}
		obj, ok := d.Init.(*js.ObjectLit)
		if !ok {
			continue
		}
		for _, p := range obj.Props {
			if p.Spread || p.Computed != nil || !isLiteral(p.Value) {
				continue
			}
			out = append(out, Constant{Name: id.Name + "." + p.Key, Value: p.Value})
		}
	}
	return out
}

func isLiteral(x js.Expr) bool {
	switch x := x.(type) {
	case *js.StringLit, *js.NumberLit, *js.BoolLit, *js.NullLit:
		return true
	case *js.UnaryExpr:
		_, ok := x.X.(*js.NumberLit)
		return ok && (x.Op == "-" || x.Op == "+")
	}
	return false
}

// rewrite returns the text of span with each call to a renamed combinator
// identifier replaced by its private name. Method calls such as x.prec(...)
// are left alone.
func rewrite(span js.Scanner) (string, error) {
	var sb strings.Builder
	last := span.Offset()
	text := span.String()
	var visit func(s js.Scanner) error
	visit = func(s js.Scanner) error {
		toks, err := js.Lex(s)
		if err != nil {
			return err
		}
		for i, tok := range toks {
			if tok.Kind == js.Template {
				for _, sub := range tok.Subs {
					if err := visit(sub); err != nil {
						return err
					}
				}
				continue
			}
			name, renamed := renames[tok.Text()]
			if tok.Kind != js.IdentToken || !renamed || !toks[i+1].Is("(") || i > 0 && toks[i-1].Is(".") {
				continue
			}
			at := tok.Src.Offset()
			sb.WriteString(text[last-span.Offset() : at-span.Offset()])
			sb.WriteString(name)
			last = tok.Src.End()
		}
		return nil
	}
	if err := visit(span); err != nil {
		return "", err
	}
	sb.WriteString(text[last-span.Offset():])
	return sb.String(), nil
}

func describe(n js.Node) string {
	switch n := n.(type) {
	case *js.VarDecl:
		return n.Kind + " declaration"
	case *js.IfStmt:
		return "if statement"
	case *js.ForOfStmt:
		return "for statement"
	case *js.BlockStmt:
		return "block"
	case *js.ReturnStmt:
		return "return statement"
	case *js.CallExpr:
		return "call expression"
	case *js.AssignExpr:
		return "compound assignment " + n.Op
	case *js.FuncLit:
		return "function expression"
	}
	return "expression statement"
}
