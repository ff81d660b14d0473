package js

// Walk traverses the tree rooted at n depth-first in source order, calling f
// for each node. Children of a node are skipped when f returns false.
func Walk(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, f)
	}
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	addExpr := func(x Expr) {
		if x != nil {
			out = append(out, x)
		}
	}
	addStmt := func(s Stmt) {
		if s != nil {
			out = append(out, s)
		}
	}
	addParam := func(p *Param) {
		if p != nil {
			out = append(out, p)
		}
	}

	switch n := n.(type) {
	case *Program:
		for _, s := range n.Body {
			addStmt(s)
		}
	case *VarDecl:
		for _, d := range n.Decls {
			add(d)
		}
	case *Declarator:
		add(n.Target)
		addExpr(n.Init)
	case *FuncDecl:
		add(n.Func)
	case *ExprStmt:
		addExpr(n.X)
	case *ReturnStmt:
		addExpr(n.Result)
	case *IfStmt:
		addExpr(n.Cond)
		addStmt(n.Then)
		addStmt(n.Else)
	case *ForOfStmt:
		add(n.Target)
		addExpr(n.Iter)
		addStmt(n.Body)
	case *BlockStmt:
		for _, s := range n.List {
			addStmt(s)
		}
	case *TemplateLit:
		for _, x := range n.Exprs {
			addExpr(x)
		}
	case *ArrayLit:
		for _, x := range n.Elems {
			addExpr(x)
		}
	case *ObjectLit:
		for _, p := range n.Props {
			add(p)
		}
	case *Property:
		addExpr(n.Computed)
		addExpr(n.Value)
	case *FuncLit:
		for _, p := range n.Params {
			addParam(p)
		}
		if n.Body != nil {
			add(n.Body)
		}
		addExpr(n.Expr)
	case *Param:
		add(n.Target)
		addExpr(n.Default)
	case *CallExpr:
		addExpr(n.Callee)
		for _, x := range n.Args {
			addExpr(x)
		}
	case *MemberExpr:
		addExpr(n.X)
		addExpr(n.Index)
	case *UnaryExpr:
		addExpr(n.X)
	case *BinaryExpr:
		addExpr(n.X)
		addExpr(n.Y)
	case *CondExpr:
		addExpr(n.Cond)
		addExpr(n.Then)
		addExpr(n.Else)
	case *AssignExpr:
		addExpr(n.Target)
		addExpr(n.Value)
	case *Spread:
		addExpr(n.X)
	case *ArrayPattern:
		for _, p := range n.Elems {
			addParam(p)
		}
	case *ObjectPattern:
		for _, p := range n.Props {
			add(p)
		}
	case *PatternProp:
		addParam(n.Value)
	}
	return out
}
