package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arr-ai/tsebnf/extract"
	"github.com/arr-ai/tsebnf/interp"
)

func renderString(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Source("grammar.js", src, &buf))
	return buf.String()
}

func TestRenderExample(t *testing.T) {
	out := renderString(t, `module.exports = grammar({
  name: 'example',
  rules: {
    start: $ => seq('a', optional($.b)),
    b: $ => choice('x', 'y'),
  }
});
`)
	assert.Equal(t, "rules:\n  start ::= 'a' b?\n  b ::= 'x' | 'y'\n", out)
}

const sampleGrammar = `#!/usr/bin/env node
const PREC = {
  add: 1,
  mul: 2,
};

function commaSep1(rule) {
  return seq(rule, repeat(seq(',', rule)))
}

module.exports = grammar({
  name: 'sample',
  extras: $ => [/\s/, $.comment],
  word: $ => $.identifier,
  rules: {
    program: $ => repeat($._expr),
    _expr: $ => choice($.binary, $.number, $.call),
    binary: $ => choice(...[['+', PREC.add], ['*', PREC.mul]].map(([op, p]) =>
      prec.left(p, seq(field('left', $._expr), op, field('right', $._expr))))),
    call: $ => seq($.identifier, '(', optional(commaSep1($._expr)), ')'),
    number: _ => token(prec(1, /\d+/)),
    identifier: _ => /[a-z]+/,
    comment: _ => token(seq('//', /.*/)),
    string: $ => seq('"', repeat(choice(/[^"\\]/, '\\')), "'"),
  }
});
`

func TestRenderSampleGrammar(t *testing.T) {
	assert.Equal(t, `extras ::= { /\s/ comment }

word ::= identifier

rules:
  program ::= _expr*
  _expr ::= binary | number | call
  binary ::= <1((_expr: left) '+' (_expr: right)) | <2((_expr: left) '*' (_expr: right))
  call ::= identifier '(' (_expr (',' _expr)*)? ')'
  number ::= @(1(/\d+/))
  identifier ::= /[a-z]+/
  comment ::= @('//' /.*/)
  string ::= '"' (/[^"\\]/ | '\\')* "'"
`, renderString(t, sampleGrammar))
}

func TestRenderIsIdempotent(t *testing.T) {
	assert.Equal(t, renderString(t, sampleGrammar), renderString(t, sampleGrammar))
}

func TestRenderCyclicReferences(t *testing.T) {
	out := renderString(t, `module.exports = grammar({rules: {
  a: $ => seq($.b, 'x'),
  b: $ => choice($.a, 'y', $.b),
}})`)
	assert.Equal(t, "rules:\n  a ::= b 'x'\n  b ::= a | 'y' | b\n", out)
}

func TestRenderKeepsDeclarationOrder(t *testing.T) {
	out := renderString(t, `module.exports = grammar({
  zeta: $ => [$.r1],
  rules: {
    r2: $ => 'two',
    r1: $ => 'one',
  },
  alpha: $ => [],
})`)
	assert.Equal(t, "zeta ::= { r1 }\n\nalpha ::= {}\n\nrules:\n  r2 ::= 'two'\n  r1 ::= 'one'\n", out)
}

func TestRenderHelperReferences(t *testing.T) {
	out := renderString(t, `function ghost() { return $.ghost }
module.exports = grammar({rules: {
  a: _ => seq(ghost(), token.immediate('!')),
}})`)
	assert.Equal(t, "rules:\n  a ::= ghost !('!')\n", out)
}

func TestRenderStripsOnlyEnclosingParens(t *testing.T) {
	out := renderString(t, `module.exports = grammar({rules: {
  a: $ => seq(choice($.x), choice($.y)),
  b: $ => optional(choice($.x, $.y)),
  c: $ => prec(1, $.x),
  d: $ => '(',
}})`)
	assert.Equal(t, "rules:\n  a ::= (x) (y)\n  b ::= (x | y)?\n  c ::= 1(x)\n  d ::= '('\n", out)
}

func TestRenderErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		src  string
		msg  string
	}{
		{
			name: "bad operand",
			src:  `module.exports = grammar({rules: {a: $ => choice(true)}})`,
			msg:  "<evaluable unit>:1:43: cannot use boolean as a grammar operand",
		},
		{
			name: "unknown computed rule",
			src:  `module.exports = grammar({rules: {a: $ => $['zz']}})`,
			msg:  `undefined rule "zz"`,
		},
		{
			name: "rule not a function",
			src:  `module.exports = grammar({rules: {a: 'x'}})`,
			msg:  "rule a must be a function, got string",
		},
		{
			name: "directive not a function",
			src:  `module.exports = grammar({extras: [], rules: {}})`,
			msg:  "directive extras must be a function, got array",
		},
		{
			name: "missing rules",
			src:  `module.exports = grammar({name: 'x'})`,
			msg:  "grammar definition has no rules",
		},
		{
			name: "rules not an object",
			src:  `module.exports = grammar({rules: []})`,
			msg:  "rules must be an object, got array",
		},
		{
			name: "export not an object",
			src:  `module.exports = 1`,
			msg:  "module.exports must be a grammar definition object, got number",
		},
		{
			name: "late failure",
			src:  `module.exports = grammar({extras: $ => [], rules: {a: $ => 'a', b: $ => undefined}})`,
			msg:  "b: cannot use undefined as a grammar operand",
		},
		{
			name: "undefined helper",
			src:  `module.exports = grammar({rules: {a: $ => missing($)}})`,
			msg:  "missing is not defined",
		},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Source("grammar.js", test.src, &buf)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.msg)
			assert.Zero(t, buf.Len())

			var ee EvaluationError
			require.True(t, errors.As(err, &ee))
			assert.Equal(t, test.src, ee.Unit)
		})
	}
}

func TestEvaluationErrorTree(t *testing.T) {
	src := "function h($) { return choice(null) }\nmodule.exports = grammar({rules: {a: $ => h($)}})"
	err := Source("grammar.js", src, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, `evaluation failed
└── <evaluable unit>:1:24: cannot use null as a grammar operand
    └── called from <evaluable unit>:2:43`, err.Error())

	var ie *interp.Error
	assert.True(t, errors.As(err, &ie))
}

func TestSourceErrorsBeforeEvaluation(t *testing.T) {
	var buf bytes.Buffer
	err := Source("grammar.js", "let x = 1\nmodule.exports = grammar({rules: {}})", &buf)
	require.Error(t, err)
	var unsupported extract.UnsupportedTopLevelConstructError
	assert.True(t, errors.As(err, &unsupported))
	var ee EvaluationError
	assert.False(t, errors.As(err, &ee))
	assert.Zero(t, buf.Len())
}
