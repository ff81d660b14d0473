package interp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arr-ai/tsebnf/ebnf"
	"github.com/arr-ai/tsebnf/js"
	"github.com/arr-ai/tsebnf/refs"
)

func run(t *testing.T, src string) (*Interp, Value, error) {
	t.Helper()
	prog, err := js.Parse("unit.js", src)
	require.NoError(t, err)
	in := New(refs.Build(prog, nil))
	v, err := in.Run(prog)
	return in, v, err
}

func export(t *testing.T, expr string) Value {
	t.Helper()
	_, v, err := run(t, "module.exports = "+expr)
	require.NoError(t, err)
	return v
}

func TestCombinatorBuiltins(t *testing.T) {
	for _, test := range []struct {
		expr string
		out  string
	}{
		{expr: `choice('a', $.b)`, out: `('a' | b)`},
		{expr: `choice()`, out: `()`},
		{expr: `seq($.a)`, out: `a`},
		{expr: `seq('a', optional($.b))`, out: `('a' b?)`},
		{expr: `prec.left(1, seq($.a, '+', $.a))`, out: `<1(a '+' a)`},
		{expr: `prec.right(seq($.a, $.b))`, out: `>(a b)`},
		{expr: `prec.dynamic(-1, $.a)`, out: `~-1(a)`},
		{expr: `_prec(2, $.a)`, out: `2(a)`},
		{expr: `_prec(0, 'x')`, out: `('x')`},
		{expr: `_prec('named', $.a)`, out: `named(a)`},
		{expr: `prec(1, $.a)`, out: `1(a)`},
		{expr: `_token(seq('//', /.*/))`, out: `@('//' /.*/)`},
		{expr: `token.immediate(/\w+/)`, out: `!(/\w+/)`},
		{expr: `field('name', $.id)`, out: `(id: name)`},
		{expr: `alias($.a, 'b')`, out: `(a -> 'b')`},
		{expr: `repeat(1.5)`, out: `1.5*`},
		{expr: `repeat1(choice("'", '"'))`, out: `("'" | '"')+`},
		{expr: `optional([$.a, 'b'])`, out: `{ a 'b' }?`},
		{expr: `seq(...['a', 'b'].map(x => x.toUpperCase()))`, out: `('A' 'B')`},
		{
			expr: `choice(...[['+', 1], ['*', 2]].map(([op, p]) => prec.left(p, seq($.e, op, $.e))))`,
			out:  `(<1(e '+' e) | <2(e '*' e))`,
		},
		{expr: `seq(RegExp('[a-z]', 'i'), new RegExp(/x/g))`, out: `(/[a-z]/i /x/g)`},
	} {
		test := test
		t.Run(test.expr, func(t *testing.T) {
			v := export(t, test.expr)
			e, ok := v.(ebnf.Expression)
			require.True(t, ok, "%#v", v)
			assert.Equal(t, test.out, e.String())
		})
	}
}

func TestLanguageSubset(t *testing.T) {
	for _, test := range []struct {
		expr string
		out  Value
	}{
		{expr: `[1, 2, 3].filter(x => x > 1).map(x => x * 2).join('-')`, out: "4-6"},
		{expr: `Object.keys({b: 1, a: 2}).join()`, out: "b,a"},
		{expr: `Object.values({b: 1, a: 2})[1]`, out: 2.0},
		{expr: `Object.entries({a: 1})[0][1]`, out: 1.0},
		{expr: `Object.fromEntries([['x', 'y']]).x`, out: "y"},
		{expr: `Object.keys(Object.assign({}, {a: 1}, {b: 2})).length`, out: 2.0},
		{expr: "`a${1 + 1}b`", out: "a2b"},
		{expr: `'abc'.slice(-2)`, out: "bc"},
		{expr: `'abc'.charAt(1) + 'abc'[2]`, out: "bc"},
		{expr: `'a,b'.split(',').length`, out: 2.0},
		{expr: `' x '.trim().length`, out: 1.0},
		{expr: `'grammar'.startsWith('gram') && 'grammar'.endsWith('mar')`, out: true},
		{expr: `[1, 2, 3].slice(1).length`, out: 2.0},
		{expr: `[1, [2, 3]].flatMap(x => x).length`, out: 3.0},
		{expr: `[1].concat([2], 3).join('')`, out: "123"},
		{expr: `[3, 1].reverse()[0]`, out: 1.0},
		{expr: `[NaN].includes(NaN)`, out: true},
		{expr: `typeof notDeclared`, out: "undefined"},
		{expr: `typeof choice`, out: "function"},
		{expr: `null ?? 'default'`, out: "default"},
		{expr: `0 || 'fallback'`, out: "fallback"},
		{expr: `1 && 'second'`, out: "second"},
		{expr: `2 ** 3 ** 2`, out: 512.0},
		{expr: `7 % 4 + -1`, out: 2.0},
		{expr: `'a' + 1`, out: "a1"},
		{expr: `1 === 1.0 && null == undefined && null !== undefined`, out: true},
		{expr: `'b' > 'a' ? 'yes' : 'no'`, out: "yes"},
		{expr: `RegExp('a+').source`, out: "a+"},
		{expr: `'a' in {a: 1}`, out: true},
		{expr: `'x' in $`, out: false},
		{expr: `(({a, b: [c] = [3], ...rest}) => a + c + Object.keys(rest).join())({a: 1, d: 4, e: 5})`, out: "4d,e"},
		{expr: `((a, b = 2, ...c) => a + b + c.length)(1)`, out: 3.0},
	} {
		test := test
		t.Run(test.expr, func(t *testing.T) {
			assert.Equal(t, test.out, export(t, test.expr))
		})
	}
}

func TestStatements(t *testing.T) {
	_, v, err := run(t, `const PREC = {add: 1, mul: 2}
function list(rule, sep) { return seq(rule, repeat(seq(sep, rule))) }
function fact(n) {
  if (n <= 1) return 1
  return n * fact(n - 1)
}
module.exports = {a: list($.x, ','), b: fact(5), c: later()}
function later() {
  let r = []
  for (const [k, v] of Object.entries(PREC)) {
    r = r.concat([k + '=' + v])
  }
  var o = {}
  o.n = r.length
  o.n += 1
  return r.join(';') + '/' + o.n
}`)
	require.NoError(t, err)
	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys())

	a, _ := obj.Get("a")
	assert.Equal(t, "(x (',' x)*)", a.(ebnf.Expression).String())
	b, _ := obj.Get("b")
	assert.Equal(t, 120.0, b)
	c, _ := obj.Get("c")
	assert.Equal(t, "add=1;mul=2/3", c)
}

func TestCallRuleFunction(t *testing.T) {
	in, v, err := run(t, `module.exports = grammar({rules: {a: $ => seq($.b, 'c'), b: _ => 'b'}})`)
	require.NoError(t, err)
	rules, _ := v.(*Object).Get("rules")
	fn, _ := rules.(*Object).Get("a")

	r, err := in.Call(fn, in.Namespace())
	require.NoError(t, err)
	assert.Equal(t, "(b 'c')", r.(ebnf.Expression).String())
	assert.Equal(t, []string{"b"}, in.Namespace().Table().Names())
}

func TestOperand(t *testing.T) {
	for _, test := range []struct {
		name string
		v    Value
		out  string
		err  string
	}{
		{name: "string", v: "x", out: "'x'"},
		{name: "number", v: 1e21, out: "1e+21"},
		{name: "regex", v: &Regex{Source: `\d`, Flags: "u"}, out: `/\d/u`},
		{name: "array", v: NewArray("a", ebnf.RuleRef("b"), NewArray()), out: "{ 'a' b {} }"},
		{name: "bool", v: true, err: "cannot use boolean as a grammar operand"},
		{name: "undefined", v: Undefined, err: "cannot use undefined as a grammar operand"},
		{name: "object", v: NewObject(), err: "cannot use object as a grammar operand"},
		{name: "nested", v: NewArray(Null), err: "cannot use null as a grammar operand"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			op, err := Operand(test.v)
			if test.err != "" {
				assert.EqualError(t, err, test.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.out, ebnf.Render(op).String())
		})
	}
}

func TestErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		src  string
		msg  string
	}{
		{name: "undefined name", src: `module.exports = foo`, msg: "unit.js:1:18: foo is not defined"},
		{name: "const assignment", src: "const a = 1\na = 2", msg: "unit.js:2:1: assignment to constant a"},
		{name: "temporal dead zone", src: "module.exports = x\nconst x = 1", msg: "unit.js:1:18: cannot access x before initialization"},
		{name: "bad operand", src: `module.exports = choice('a', true)`, msg: "unit.js:1:18: cannot use boolean as a grammar operand"},
		{name: "unknown rule", src: `module.exports = $['nope']`, msg: `unit.js:1:18: undefined rule "nope"`},
		{name: "grammar arity", src: `module.exports = grammar({}, {})`, msg: "grammar expects a single definition object, got 2 arguments"},
		{name: "grammar object", src: `module.exports = grammar('x')`, msg: "grammar expects a definition object, got string"},
		{name: "field name", src: `module.exports = field(1, 'x')`, msg: "field name must be a string, got number"},
		{name: "undefined member", src: `module.exports = undefined.x`, msg: `cannot read property "x" of undefined`},
		{name: "not a function", src: `module.exports = (1)()`, msg: "unit.js:1:19: 1 is not a function"},
		{name: "not iterable", src: `module.exports = [...1]`, msg: "number is not iterable"},
		{name: "runaway recursion", src: "function f() { return f() }\nmodule.exports = f()", msg: "maximum call depth exceeded calling f"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, _, err := run(t, test.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.msg)
			var e *Error
			assert.True(t, errors.As(err, &e))
		})
	}
}

func TestErrorTrace(t *testing.T) {
	_, _, err := run(t, "function inner() { return nope }\nfunction outer() { return inner() }\nmodule.exports = outer()")
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "unit.js:1:27: nope is not defined", e.Error())
	require.Len(t, e.Trace, 2)
	assert.Equal(t, "inner()", e.Trace[0].String())
	assert.Equal(t, "outer()", e.Trace[1].String())
}
