package js

// Node is any element of the syntax tree.
type Node interface {
	Span() Scanner
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

// Pattern is a binding target: *Ident, *ArrayPattern or *ObjectPattern.
type Pattern interface {
	Node
	patternNode()
}

type node struct {
	src Scanner
}

func (n node) Span() Scanner { return n.src }

type (
	Program struct {
		node
		Body []Stmt
	}

	// VarDecl is a const, let or var declaration.
	VarDecl struct {
		node
		Kind  string
		Decls []*Declarator
	}

	Declarator struct {
		node
		Target Pattern
		Init   Expr // nil if absent
	}

	FuncDecl struct {
		node
		Func *FuncLit
	}

	ExprStmt struct {
		node
		X Expr
	}

	ReturnStmt struct {
		node
		Result Expr // nil if absent
	}

	IfStmt struct {
		node
		Cond Expr
		Then Stmt
		Else Stmt // nil if absent
	}

	// ForOfStmt is `for (<kind> <target> of <iter>) <body>`.
	ForOfStmt struct {
		node
		Kind   string
		Target Pattern
		Iter   Expr
		Body   Stmt
	}

	BlockStmt struct {
		node
		List []Stmt
	}

	EmptyStmt struct {
		node
	}
)

type (
	Ident struct {
		node
		Name string
	}

	StringLit struct {
		node
		Value string
	}

	NumberLit struct {
		node
		Value float64
	}

	BoolLit struct {
		node
		Value bool
	}

	NullLit struct {
		node
	}

	RegexLit struct {
		node
		Pattern string
		Flags   string
	}

	// TemplateLit has one more quasi than substitution.
	TemplateLit struct {
		node
		Quasis []string
		Exprs  []Expr
	}

	// ArrayLit elements may be *Spread.
	ArrayLit struct {
		node
		Elems []Expr
	}

	ObjectLit struct {
		node
		Props []*Property
	}

	// Property is one member of an object literal. Exactly one of Key and
	// Computed identifies it unless Spread is set, in which case Value is the
	// spread operand.
	Property struct {
		node
		Key      string
		Computed Expr
		Value    Expr
		Spread   bool
	}

	// FuncLit is a function expression, arrow function or method. Arrow
	// functions with an expression body set Expr instead of Body.
	FuncLit struct {
		node
		Name   string
		Params []*Param
		Body   *BlockStmt
		Expr   Expr
		Arrow  bool
	}

	// Param is a binding element: a target with optional default, or a rest element.
	Param struct {
		node
		Target  Pattern
		Default Expr
		Rest    bool
	}

	CallExpr struct {
		node
		Callee Expr
		Args   []Expr
		New    bool
	}

	// MemberExpr is X.Name, or X[Index] when Index is set.
	MemberExpr struct {
		node
		X     Expr
		Name  string
		Index Expr
	}

	UnaryExpr struct {
		node
		Op string
		X  Expr
	}

	BinaryExpr struct {
		node
		Op   string
		X, Y Expr
	}

	CondExpr struct {
		node
		Cond, Then, Else Expr
	}

	AssignExpr struct {
		node
		Op     string
		Target Expr
		Value  Expr
	}

	Spread struct {
		node
		X Expr
	}

	// ArrayPattern elements are nil for holes.
	ArrayPattern struct {
		node
		Elems []*Param
	}

	ObjectPattern struct {
		node
		Props []*PatternProp
	}

	// PatternProp binds property Key to Value; a rest element has an empty Key.
	PatternProp struct {
		node
		Key   string
		Value *Param
	}
)

func (*VarDecl) stmtNode()    {}
func (*FuncDecl) stmtNode()   {}
func (*ExprStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*ForOfStmt) stmtNode()  {}
func (*BlockStmt) stmtNode()  {}
func (*EmptyStmt) stmtNode()  {}

func (*Ident) exprNode()       {}
func (*StringLit) exprNode()   {}
func (*NumberLit) exprNode()   {}
func (*BoolLit) exprNode()     {}
func (*NullLit) exprNode()     {}
func (*RegexLit) exprNode()    {}
func (*TemplateLit) exprNode() {}
func (*ArrayLit) exprNode()    {}
func (*ObjectLit) exprNode()   {}
func (*FuncLit) exprNode()     {}
func (*CallExpr) exprNode()    {}
func (*MemberExpr) exprNode()  {}
func (*UnaryExpr) exprNode()   {}
func (*BinaryExpr) exprNode()  {}
func (*CondExpr) exprNode()    {}
func (*AssignExpr) exprNode()  {}
func (*Spread) exprNode()      {}

func (*Ident) patternNode()         {}
func (*ArrayPattern) patternNode()  {}
func (*ObjectPattern) patternNode() {}

// IsMemberOf reports whether x is the non-computed member access obj.prop.
func IsMemberOf(x Node, obj, prop string) bool {
	m, ok := x.(*MemberExpr)
	if !ok || m.Index != nil || m.Name != prop {
		return false
	}
	id, ok := m.X.(*Ident)
	return ok && id.Name == obj
}

// Lookup returns the value of the first non-computed, non-spread property
// named key, or nil.
func (o *ObjectLit) Lookup(key string) Expr {
	for _, p := range o.Props {
		if !p.Spread && p.Computed == nil && p.Key == key {
			return p.Value
		}
	}
	return nil
}
