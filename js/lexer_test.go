package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexKinds(t *testing.T, src string) ([]Token, []TokenKind, []string) {
	toks, err := Lex(*NewScanner(src))
	require.NoError(t, err)
	kinds := make([]TokenKind, 0, len(toks))
	texts := make([]string, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
		texts = append(texts, tok.Text())
	}
	return toks, kinds, texts
}

func TestLexCall(t *testing.T) {
	_, kinds, texts := lexKinds(t, `prec.left(1, 'a') // trailing`)
	assert.Equal(t, []TokenKind{IdentToken, Punct, IdentToken, Punct, Number, Punct, String, Punct, EOF}, kinds)
	assert.Equal(t, []string{"prec", ".", "left", "(", "1", ",", "'a'", ")", ""}, texts)
}

func TestLexRegexOrDivision(t *testing.T) {
	for _, test := range []struct {
		name  string
		src   string
		kinds []TokenKind
	}{
		{name: "division", src: `a / b`, kinds: []TokenKind{IdentToken, Punct, IdentToken, EOF}},
		{name: "call result division", src: `f() / 2`, kinds: []TokenKind{IdentToken, Punct, Punct, Punct, Number, EOF}},
		{name: "regex argument", src: `f(/a/)`, kinds: []TokenKind{IdentToken, Punct, Regex, Punct, EOF}},
		{name: "regex after assign", src: `x = /a/g`, kinds: []TokenKind{IdentToken, Punct, Regex, EOF}},
		{name: "regex after return", src: `return /a/`, kinds: []TokenKind{IdentToken, Regex, EOF}},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, kinds, _ := lexKinds(t, test.src)
			assert.Equal(t, test.kinds, kinds)
		})
	}
}

func TestLexRegexPayload(t *testing.T) {
	toks, _, _ := lexKinds(t, `x = /[/\]]+\//gi`)
	require.Equal(t, Regex, toks[2].Kind)
	assert.Equal(t, `[/\]]+\/`, toks[2].Value)
	assert.Equal(t, "gi", toks[2].Flags)
}

func TestLexStringEscapes(t *testing.T) {
	toks, _, _ := lexKinds(t, `'\n\t\\\'\x41B\u{43}' "it's" '\0'`)
	assert.Equal(t, "\n\t\\'ABC", toks[0].Value)
	assert.Equal(t, "it's", toks[1].Value)
	assert.Equal(t, "\x00", toks[2].Value)
}

func TestLexNumbers(t *testing.T) {
	toks, _, _ := lexKinds(t, `1 2.5 0x10 1e3 .5 1_000`)
	var nums []float64
	for _, tok := range toks[:len(toks)-1] {
		nums = append(nums, tok.Num)
	}
	assert.Equal(t, []float64{1, 2.5, 16, 1000, 0.5, 1000}, nums)
}

func TestLexTemplate(t *testing.T) {
	toks, _, _ := lexKinds(t, "`a${b + '}'}c${`d${e}`}`")
	require.Equal(t, Template, toks[0].Kind)
	assert.Equal(t, []string{"a", "c", ""}, toks[0].Quasis)
	require.Len(t, toks[0].Subs, 2)
	assert.Equal(t, "b + '}'", toks[0].Subs[0].String())
	assert.Equal(t, "`d${e}`", toks[0].Subs[1].String())
}

func TestLexNewlineBefore(t *testing.T) {
	toks, _, _ := lexKinds(t, "a /* x */ b\nc /*\n*/ d")
	assert.Equal(t, []bool{false, false, true, true, false},
		[]bool{toks[0].NewlineBefore, toks[1].NewlineBefore, toks[2].NewlineBefore, toks[3].NewlineBefore, toks[4].NewlineBefore})
}

func TestLexPositions(t *testing.T) {
	toks, _, _ := lexKinds(t, "a\n  bc")
	line, col := toks[1].Src.Position()
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)
	assert.Equal(t, 4, toks[1].Src.Offset())
}

func TestLexErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		src  string
		msg  string
	}{
		{name: "unterminated string", src: "'abc", msg: "1:1: syntax error: unterminated string"},
		{name: "newline in string", src: "x = 'a\nb'", msg: "1:5: syntax error: unterminated string"},
		{name: "unterminated comment", src: "a /* b", msg: "1:3: syntax error: unterminated comment"},
		{name: "unterminated template", src: "`abc", msg: "1:1: syntax error: unterminated template literal"},
		{name: "bad character", src: "a # b", msg: `1:3: syntax error: unexpected character '#'`},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, err := Lex(*NewScanner(test.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.msg)
		})
	}
}
