package js

import (
	"github.com/sirupsen/logrus"
)

// maxNesting bounds how deeply statements, expressions, binding patterns and
// template literals may nest.
const maxNesting = 512

type parser struct {
	toks  []Token
	pos   int
	depth int
}

// Parse parses a whole grammar source file.
func Parse(filename, text string) (*Program, error) {
	return ParseScanner(*NewScannerWithFilename(text, filename))
}

// ParseScanner parses the text visible to s. Node spans refer back into s's source.
func ParseScanner(s Scanner) (prog *Program, err error) {
	toks, err := Lex(s)
	if err != nil {
		return nil, err
	}
	logrus.WithField("file", s.Filename()).Tracef("lexed %d tokens", len(toks))

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
		}
	}()

	p := &parser{toks: toks}
	var body []Stmt
	for p.tok().Kind != EOF {
		body = append(body, p.parseStatement())
	}
	return &Program{node: node{s}, Body: body}, nil
}

func (p *parser) tok() Token {
	return p.toks[p.pos]
}

func (p *parser) peek(n int) Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) prev() Token {
	return p.toks[p.pos-1]
}

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if t.Kind != EOF {
		p.pos++
	}
	return t
}

func (p *parser) is(text string) bool {
	return p.tok().Is(text)
}

func (p *parser) accept(text string) bool {
	if p.is(text) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(text string) Token {
	if !p.is(text) {
		p.failf(p.tok(), "expected %q, found %s", text, p.tok())
	}
	return p.advance()
}

func (p *parser) failf(t Token, format string, args ...interface{}) {
	panic(bailout{newSyntaxError(t.Src, format, args...)})
}

// nest enters one level of nesting. Call the result on the way out.
func (p *parser) nest() func() {
	p.depth++
	if p.depth > maxNesting {
		p.failf(p.tok(), "nesting exceeds %d levels", maxNesting)
	}
	return func() { p.depth-- }
}

// span covers everything from start to the most recently consumed token.
func (p *parser) span(start Scanner) node {
	return node{start.Between(p.prev().Src)}
}

func (p *parser) semicolon() {
	t := p.tok()
	switch {
	case t.Is(";"):
		p.advance()
	case t.Is("}"), t.Kind == EOF, t.NewlineBefore:
	default:
		p.failf(t, "expected ';', found %s", t)
	}
}

// - statements

func (p *parser) parseStatement() Stmt {
	defer p.nest()()
	t := p.tok()
	switch {
	case t.Is("{"):
		return p.parseBlock()
	case t.Is(";"):
		p.advance()
		return &EmptyStmt{node: node{t.Src}}
	case t.Is("const"), t.Is("let"), t.Is("var"):
		d := p.parseVarDecl()
		p.semicolon()
		d.node = p.span(t.Src)
		return d
	case t.Is("function"):
		fn := p.parseFunction(true)
		return &FuncDecl{node: p.span(t.Src), Func: fn}
	case t.Is("return"):
		p.advance()
		var result Expr
		if n := p.tok(); !(n.Is(";") || n.Is("}") || n.Kind == EOF || n.NewlineBefore) {
			result = p.parseExpression()
		}
		p.semicolon()
		return &ReturnStmt{node: p.span(t.Src), Result: result}
	case t.Is("if"):
		p.advance()
		p.expect("(")
		cond := p.parseExpression()
		p.expect(")")
		then := p.parseStatement()
		var els Stmt
		if p.accept("else") {
			els = p.parseStatement()
		}
		return &IfStmt{node: p.span(t.Src), Cond: cond, Then: then, Else: els}
	case t.Is("for"):
		return p.parseForOf()
	}
	x := p.parseExpression()
	p.semicolon()
	return &ExprStmt{node: p.span(t.Src), X: x}
}

func (p *parser) parseBlock() *BlockStmt {
	start := p.expect("{").Src
	var list []Stmt
	for !p.is("}") {
		if p.tok().Kind == EOF {
			p.failf(p.tok(), "unterminated block")
		}
		list = append(list, p.parseStatement())
	}
	p.advance()
	return &BlockStmt{node: p.span(start), List: list}
}

func (p *parser) parseVarDecl() *VarDecl {
	start := p.advance()
	d := &VarDecl{Kind: start.Text()}
	for {
		declStart := p.tok().Src
		target := p.parseBindingTarget()
		var init Expr
		if p.accept("=") {
			init = p.parseAssign()
		}
		d.Decls = append(d.Decls, &Declarator{node: p.span(declStart), Target: target, Init: init})
		if !p.accept(",") {
			break
		}
	}
	d.node = p.span(start.Src)
	return d
}

func (p *parser) parseForOf() Stmt {
	start := p.expect("for").Src
	p.expect("(")
	kind := p.tok()
	if !(kind.Is("const") || kind.Is("let") || kind.Is("var")) {
		p.failf(kind, "only for-of loops over a declaration are supported")
	}
	p.advance()
	target := p.parseBindingTarget()
	if !p.accept("of") {
		p.failf(p.tok(), "only for-of loops are supported, found %s", p.tok())
	}
	iter := p.parseExpression()
	p.expect(")")
	body := p.parseStatement()
	return &ForOfStmt{node: p.span(start), Kind: kind.Text(), Target: target, Iter: iter, Body: body}
}

func (p *parser) parseFunction(decl bool) *FuncLit {
	start := p.expect("function").Src
	fn := &FuncLit{}
	if t := p.tok(); t.Kind == IdentToken {
		if IsReserved(t.Text()) {
			p.failf(t, "unexpected keyword %q", t.Text())
		}
		fn.Name = p.advance().Text()
	} else if decl {
		p.failf(t, "function declaration requires a name")
	}
	fn.Params = p.parseParams()
	fn.Body = p.parseBlock()
	fn.node = p.span(start)
	return fn
}

// - binding patterns

func (p *parser) parseParams() []*Param {
	p.expect("(")
	var params []*Param
	for !p.is(")") {
		param := p.parseBindingElement()
		params = append(params, param)
		if param.Rest || !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return params
}

func (p *parser) parseBindingElement() *Param {
	start := p.tok().Src
	param := &Param{}
	if p.accept("...") {
		param.Rest = true
	}
	param.Target = p.parseBindingTarget()
	if !param.Rest && p.accept("=") {
		param.Default = p.parseAssign()
	}
	param.node = p.span(start)
	return param
}

func (p *parser) parseBindingTarget() Pattern {
	defer p.nest()()
	t := p.tok()
	switch {
	case t.Is("["):
		return p.parseArrayPattern()
	case t.Is("{"):
		return p.parseObjectPattern()
	case t.Kind == IdentToken && !IsReserved(t.Text()):
		p.advance()
		return &Ident{node: node{t.Src}, Name: t.Text()}
	}
	p.failf(t, "expected binding target, found %s", t)
	return nil
}

func (p *parser) parseArrayPattern() Pattern {
	start := p.expect("[").Src
	pat := &ArrayPattern{}
	for !p.is("]") {
		if p.accept(",") {
			pat.Elems = append(pat.Elems, nil)
			continue
		}
		el := p.parseBindingElement()
		pat.Elems = append(pat.Elems, el)
		if el.Rest || !p.accept(",") {
			break
		}
	}
	p.expect("]")
	pat.node = p.span(start)
	return pat
}

func (p *parser) parseObjectPattern() Pattern {
	start := p.expect("{").Src
	pat := &ObjectPattern{}
	for !p.is("}") {
		propStart := p.tok()
		if propStart.Is("...") {
			el := p.parseBindingElement()
			pat.Props = append(pat.Props, &PatternProp{node: p.span(propStart.Src), Value: el})
			break
		}
		key := p.parsePropertyName()
		var value *Param
		if p.accept(":") {
			value = p.parseBindingElement()
		} else {
			if propStart.Kind != IdentToken || IsReserved(key) {
				p.failf(propStart, "expected ':' after %s", propStart)
			}
			value = &Param{
				node:   node{propStart.Src},
				Target: &Ident{node: node{propStart.Src}, Name: key},
			}
			if p.accept("=") {
				value.Default = p.parseAssign()
				value.node = p.span(propStart.Src)
			}
		}
		pat.Props = append(pat.Props, &PatternProp{node: p.span(propStart.Src), Key: key, Value: value})
		if !p.accept(",") {
			break
		}
	}
	p.expect("}")
	pat.node = p.span(start)
	return pat
}

func (p *parser) parsePropertyName() string {
	t := p.tok()
	switch t.Kind {
	case IdentToken:
		p.advance()
		return t.Text()
	case String:
		p.advance()
		return t.Value
	case Number:
		p.advance()
		return FormatNumber(t.Num)
	}
	p.failf(t, "expected property name, found %s", t)
	return ""
}

// - expressions

var assignOps = map[string]bool{"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "**=": true}

var binaryPrec = map[string]int{
	"??": 1,
	"||": 2,
	"&&": 3,
	"|":  4,
	"^":  5,
	"&":  6,
	"==": 7, "!=": 7, "===": 7, "!==": 7,
	"<": 8, ">": 8, "<=": 8, ">=": 8, "instanceof": 8, "in": 8,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
	"**": 12,
}

func (p *parser) parseExpression() Expr {
	return p.parseAssign()
}

func (p *parser) parseAssign() Expr {
	defer p.nest()()
	if p.isArrowStart() {
		return p.parseArrow()
	}
	start := p.tok().Src
	x := p.parseConditional()
	if t := p.tok(); t.Kind == Punct && assignOps[t.Text()] {
		switch x.(type) {
		case *Ident, *MemberExpr:
		default:
			p.failf(t, "invalid assignment target")
		}
		p.advance()
		value := p.parseAssign()
		return &AssignExpr{node: p.span(start), Op: t.Text(), Target: x, Value: value}
	}
	return x
}

func (p *parser) isArrowStart() bool {
	t := p.tok()
	if t.Kind == IdentToken && !IsReserved(t.Text()) {
		return p.peek(1).Is("=>")
	}
	if !t.Is("(") {
		return false
	}
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch tk := p.toks[i]; {
		case tk.Kind == EOF:
			return false
		case tk.Is("("), tk.Is("["), tk.Is("{"):
			depth++
		case tk.Is(")"), tk.Is("]"), tk.Is("}"):
			depth--
			if depth == 0 {
				return i+1 < len(p.toks) && p.toks[i+1].Is("=>")
			}
		}
	}
	return false
}

func (p *parser) parseArrow() Expr {
	start := p.tok().Src
	fn := &FuncLit{Arrow: true}
	if t := p.tok(); t.Kind == IdentToken {
		p.advance()
		fn.Params = []*Param{{node: node{t.Src}, Target: &Ident{node: node{t.Src}, Name: t.Text()}}}
	} else {
		fn.Params = p.parseParams()
	}
	p.expect("=>")
	if p.is("{") {
		fn.Body = p.parseBlock()
	} else {
		fn.Expr = p.parseAssign()
	}
	fn.node = p.span(start)
	return fn
}

func (p *parser) parseConditional() Expr {
	start := p.tok().Src
	x := p.parseBinary(1)
	if !p.accept("?") {
		return x
	}
	then := p.parseAssign()
	p.expect(":")
	els := p.parseAssign()
	return &CondExpr{node: p.span(start), Cond: x, Then: then, Else: els}
}

func (p *parser) parseBinary(minPrec int) Expr {
	start := p.tok().Src
	x := p.parseUnary()
	for {
		t := p.tok()
		if t.Kind != Punct && !t.Is("in") && !t.Is("instanceof") {
			return x
		}
		prec, ok := binaryPrec[t.Text()]
		if !ok || prec < minPrec {
			return x
		}
		p.advance()
		var y Expr
		if t.Text() == "**" {
			done := p.nest()
			y = p.parseBinary(prec)
			done()
		} else {
			y = p.parseBinary(prec + 1)
		}
		x = &BinaryExpr{node: p.span(start), Op: t.Text(), X: x, Y: y}
	}
}

func (p *parser) parseUnary() Expr {
	t := p.tok()
	if t.Is("!") || t.Is("-") || t.Is("+") || t.Is("~") || t.Is("typeof") || t.Is("void") {
		defer p.nest()()
		p.advance()
		x := p.parseUnary()
		return &UnaryExpr{node: p.span(t.Src), Op: t.Text(), X: x}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() Expr {
	start := p.tok().Src
	x := p.parsePrimary()
	for {
		if m, ok := p.parseMember(start, x); ok {
			x = m
			continue
		}
		if !p.is("(") {
			return x
		}
		args := p.parseArgs()
		x = &CallExpr{node: p.span(start), Callee: x, Args: args}
	}
}

// parseMember parses one .name or [index] suffix of x, if present.
func (p *parser) parseMember(start Scanner, x Expr) (Expr, bool) {
	switch {
	case p.is("."):
		p.advance()
		name := p.tok()
		if name.Kind != IdentToken {
			p.failf(name, "expected property name, found %s", name)
		}
		p.advance()
		return &MemberExpr{node: p.span(start), X: x, Name: name.Text()}, true
	case p.is("["):
		p.advance()
		index := p.parseExpression()
		p.expect("]")
		return &MemberExpr{node: p.span(start), X: x, Index: index}, true
	}
	return x, false
}

func (p *parser) parseArgs() []Expr {
	p.expect("(")
	var args []Expr
	for !p.is(")") {
		args = append(args, p.parseElement())
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return args
}

func (p *parser) parseElement() Expr {
	if t := p.tok(); t.Is("...") {
		p.advance()
		x := p.parseAssign()
		return &Spread{node: p.span(t.Src), X: x}
	}
	return p.parseAssign()
}

func (p *parser) parsePrimary() Expr {
	t := p.tok()
	switch t.Kind {
	case IdentToken:
		switch t.Text() {
		case "true", "false":
			p.advance()
			return &BoolLit{node: node{t.Src}, Value: t.Text() == "true"}
		case "null":
			p.advance()
			return &NullLit{node: node{t.Src}}
		case "function":
			return p.parseFunction(false)
		case "new":
			return p.parseNew()
		}
		if IsReserved(t.Text()) && t.Text() != "this" {
			p.failf(t, "unexpected keyword %q", t.Text())
		}
		p.advance()
		return &Ident{node: node{t.Src}, Name: t.Text()}
	case String:
		p.advance()
		return &StringLit{node: node{t.Src}, Value: t.Value}
	case Number:
		p.advance()
		return &NumberLit{node: node{t.Src}, Value: t.Num}
	case Regex:
		p.advance()
		return &RegexLit{node: node{t.Src}, Pattern: t.Value, Flags: t.Flags}
	case Template:
		return p.parseTemplate()
	case Punct:
		switch t.Text() {
		case "(":
			p.advance()
			x := p.parseExpression()
			p.expect(")")
			return x
		case "[":
			return p.parseArray()
		case "{":
			return p.parseObject()
		}
	}
	p.failf(t, "unexpected %s", t)
	return nil
}

func (p *parser) parseNew() Expr {
	start := p.expect("new").Src
	calleeStart := p.tok().Src
	callee := p.parsePrimary()
	for {
		m, ok := p.parseMember(calleeStart, callee)
		if !ok {
			break
		}
		callee = m
	}
	var args []Expr
	if p.is("(") {
		args = p.parseArgs()
	}
	return &CallExpr{node: p.span(start), Callee: callee, Args: args, New: true}
}

func (p *parser) parseTemplate() Expr {
	t := p.advance()
	lit := &TemplateLit{node: node{t.Src}, Quasis: t.Quasis}
	for _, sub := range t.Subs {
		toks, err := Lex(sub)
		if err != nil {
			panic(bailout{err})
		}
		sp := &parser{toks: toks, depth: p.depth}
		x := sp.parseExpression()
		if end := sp.tok(); end.Kind != EOF {
			sp.failf(end, "unexpected %s in template substitution", end)
		}
		lit.Exprs = append(lit.Exprs, x)
	}
	return lit
}

func (p *parser) parseArray() Expr {
	start := p.expect("[").Src
	lit := &ArrayLit{}
	for !p.is("]") {
		if p.is(",") {
			p.failf(p.tok(), "array holes are not supported")
		}
		lit.Elems = append(lit.Elems, p.parseElement())
		if !p.accept(",") {
			break
		}
	}
	p.expect("]")
	lit.node = p.span(start)
	return lit
}

func (p *parser) parseObject() Expr {
	start := p.expect("{").Src
	lit := &ObjectLit{}
	for !p.is("}") {
		lit.Props = append(lit.Props, p.parseProperty())
		if !p.accept(",") {
			break
		}
	}
	p.expect("}")
	lit.node = p.span(start)
	return lit
}

func (p *parser) parseProperty() *Property {
	start := p.tok()
	prop := &Property{}
	if p.accept("...") {
		prop.Spread = true
		prop.Value = p.parseAssign()
		prop.node = p.span(start.Src)
		return prop
	}
	if p.accept("[") {
		prop.Computed = p.parseAssign()
		p.expect("]")
	} else {
		prop.Key = p.parsePropertyName()
	}
	switch {
	case p.accept(":"):
		prop.Value = p.parseAssign()
	case p.is("("):
		fnStart := p.tok().Src
		fn := &FuncLit{Name: prop.Key, Params: p.parseParams()}
		fn.Body = p.parseBlock()
		fn.node = p.span(fnStart)
		prop.Value = fn
	case start.Kind == IdentToken && prop.Computed == nil && !IsReserved(prop.Key):
		prop.Value = &Ident{node: node{start.Src}, Name: prop.Key}
	default:
		p.failf(p.tok(), "expected ':' after property name, found %s", p.tok())
	}
	prop.node = p.span(start.Src)
	return prop
}
