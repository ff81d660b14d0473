package js

import (
	"fmt"
	"reflect"

	"github.com/iancoleman/strcase"

	"github.com/arr-ai/tsebnf/gotree"
)

// TreeView renders the syntax tree rooted at root as an indented text tree.
func TreeView(rootname string, root Node) string {
	tree := gotree.New(rootname)
	for _, c := range Children(root) {
		tree.AddTree(fromNode(c))
	}
	return tree.Print()
}

func fromNode(n Node) gotree.Tree {
	tree := gotree.New(label(n))
	for _, c := range Children(n) {
		tree.AddTree(fromNode(c))
	}
	return tree
}

// label names a node by its snake_cased type, plus whatever payload it carries.
func label(n Node) string {
	kind := strcase.ToSnake(reflect.TypeOf(n).Elem().Name())
	line, col := n.Span().Position()
	pos := fmt.Sprintf("%s @%d:%d", kind, line, col)
	switch n := n.(type) {
	case *Ident:
		return fmt.Sprintf("%s %s", pos, n.Name)
	case *StringLit:
		return fmt.Sprintf("%s %q", pos, n.Value)
	case *NumberLit:
		return fmt.Sprintf("%s %s", pos, FormatNumber(n.Value))
	case *BoolLit:
		return fmt.Sprintf("%s %t", pos, n.Value)
	case *RegexLit:
		return fmt.Sprintf("%s /%s/%s", pos, n.Pattern, n.Flags)
	case *VarDecl:
		return fmt.Sprintf("%s %s", pos, n.Kind)
	case *FuncLit:
		if n.Arrow {
			return pos + " =>"
		}
		if n.Name != "" {
			return fmt.Sprintf("%s %s", pos, n.Name)
		}
	case *MemberExpr:
		if n.Index == nil {
			return fmt.Sprintf("%s .%s", pos, n.Name)
		}
	case *Property:
		switch {
		case n.Spread:
			return pos + " ..."
		case n.Computed == nil:
			return fmt.Sprintf("%s %s", pos, n.Key)
		}
	case *PatternProp:
		if n.Key != "" {
			return fmt.Sprintf("%s %s", pos, n.Key)
		}
	case *Param:
		if n.Rest {
			return pos + " ..."
		}
	case *CallExpr:
		if n.New {
			return pos + " new"
		}
	case *UnaryExpr:
		return fmt.Sprintf("%s %s", pos, n.Op)
	case *BinaryExpr:
		return fmt.Sprintf("%s %s", pos, n.Op)
	case *AssignExpr:
		return fmt.Sprintf("%s %s", pos, n.Op)
	case *ForOfStmt:
		return fmt.Sprintf("%s %s", pos, n.Kind)
	}
	return pos
}
