package js

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Longest first so that prefixes never shadow longer punctuators.
var punctuators = []string{
	"...", "===", "!==", "**=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "**", "+=", "-=", "*=", "/=", "++", "--",
	"{", "}", "(", ")", "[", "]", ";", ",", ".", "<", ">", "+", "-", "*", "/", "%",
	"!", "?", ":", "=", "&", "|", "^", "~",
}

// Keywords after which a '/' starts a regular expression rather than a division.
var regexAfterKeyword = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true,
}

type lexer struct {
	src  Scanner
	text string
	pos  int
	nl   bool
	toks []Token

	templates int // template literals currently open
}

// Lex splits the text visible to s into tokens, ending with an EOF token.
func Lex(s Scanner) ([]Token, error) {
	l := &lexer{src: s, text: s.String()}
	for {
		if err := l.skipSpace(); err != nil {
			return nil, err
		}
		if l.pos >= len(l.text) {
			l.emit(Token{Kind: EOF}, l.pos)
			return l.toks, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

func (l *lexer) errorf(at int, format string, args ...interface{}) error {
	return newSyntaxError(l.src.Slice(at, at), format, args...)
}

func (l *lexer) emit(t Token, start int) {
	t.Src = l.src.Slice(start, l.pos)
	t.NewlineBefore = l.nl
	l.nl = false
	l.toks = append(l.toks, t)
}

func (l *lexer) skipSpace() error {
	if l.pos == 0 && strings.HasPrefix(l.text, "#!") && l.src.Offset() == 0 {
		l.skipLine()
	}
	for l.pos < len(l.text) {
		r, size := utf8.DecodeRuneInString(l.text[l.pos:])
		switch {
		case r == '\n' || r == '\u2028' || r == '\u2029':
			l.nl = true
			l.pos += size
		case r == ' ' || r == '\t' || r == '\r' || r == '\v' || r == '\f' || r == '\ufeff' || r == '\u00a0':
			l.pos += size
		case strings.HasPrefix(l.text[l.pos:], "//"):
			l.skipLine()
		case strings.HasPrefix(l.text[l.pos:], "/*"):
			end := strings.Index(l.text[l.pos+2:], "*/")
			if end < 0 {
				return l.errorf(l.pos, "unterminated comment")
			}
			if strings.ContainsAny(l.text[l.pos:l.pos+2+end], "\n\u2028\u2029") {
				l.nl = true
			}
			l.pos += end + 4
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) skipLine() {
	if i := strings.IndexByte(l.text[l.pos:], '\n'); i >= 0 {
		l.pos += i
	} else {
		l.pos = len(l.text)
	}
}

func (l *lexer) next() error {
	start := l.pos
	r, _ := utf8.DecodeRuneInString(l.text[l.pos:])
	switch {
	case isIdentStart(r):
		l.scanIdent()
		l.emit(Token{Kind: IdentToken}, start)
	case isDigit(r) || (r == '.' && l.pos+1 < len(l.text) && isDigit(rune(l.text[l.pos+1]))):
		n, err := l.scanNumber()
		if err != nil {
			return err
		}
		l.emit(Token{Kind: Number, Num: n}, start)
	case r == '\'' || r == '"':
		s, err := l.scanString(byte(r))
		if err != nil {
			return err
		}
		l.emit(Token{Kind: String, Value: s}, start)
	case r == '`':
		quasis, subs, err := l.scanTemplate()
		if err != nil {
			return err
		}
		l.emit(Token{Kind: Template, Quasis: quasis, Subs: subs}, start)
	case r == '/' && l.regexAllowed():
		pattern, flags, err := l.scanRegex()
		if err != nil {
			return err
		}
		l.emit(Token{Kind: Regex, Value: pattern, Flags: flags}, start)
	default:
		for _, p := range punctuators {
			if strings.HasPrefix(l.text[l.pos:], p) {
				l.pos += len(p)
				l.emit(Token{Kind: Punct}, start)
				return nil
			}
		}
		return l.errorf(start, "unexpected character %q", r)
	}
	return nil
}

func (l *lexer) regexAllowed() bool {
	if len(l.toks) == 0 {
		return true
	}
	prev := l.toks[len(l.toks)-1]
	switch prev.Kind {
	case Punct:
		switch prev.Text() {
		case ")", "]", "}", "++", "--":
			return false
		}
		return true
	case IdentToken:
		return regexAfterKeyword[prev.Text()]
	}
	return false
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\u200c' || r == '\u200d'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (l *lexer) scanIdent() {
	for l.pos < len(l.text) {
		r, size := utf8.DecodeRuneInString(l.text[l.pos:])
		if !isIdentPart(r) {
			return
		}
		l.pos += size
	}
}

func (l *lexer) scanNumber() (float64, error) {
	start := l.pos
	if l.text[l.pos] == '0' && l.pos+1 < len(l.text) {
		base := 0
		switch l.text[l.pos+1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			l.pos += 2
			for l.pos < len(l.text) && isBaseDigit(rune(l.text[l.pos]), base) {
				l.pos++
			}
			digits := strings.ReplaceAll(l.text[start+2:l.pos], "_", "")
			n, err := strconv.ParseUint(digits, base, 64)
			if err != nil {
				return 0, l.errorf(start, "invalid number %q", l.text[start:l.pos])
			}
			return float64(n), nil
		}
	}
	digits := func() {
		for l.pos < len(l.text) && (isDigit(rune(l.text[l.pos])) || l.text[l.pos] == '_') {
			l.pos++
		}
	}
	digits()
	if l.pos < len(l.text) && l.text[l.pos] == '.' {
		l.pos++
		digits()
	}
	if l.pos < len(l.text) && (l.text[l.pos] == 'e' || l.text[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.text) && (l.text[l.pos] == '+' || l.text[l.pos] == '-') {
			l.pos++
		}
		digits()
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(l.text[start:l.pos], "_", ""), 64)
	if err != nil {
		return 0, l.errorf(start, "invalid number %q", l.text[start:l.pos])
	}
	return n, nil
}

func isBaseDigit(r rune, base int) bool {
	if r == '_' {
		return true
	}
	switch base {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return '0' <= r && r <= '7'
	}
	return isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

func (l *lexer) scanString(quote byte) (string, error) {
	start := l.pos
	l.pos++
	var sb strings.Builder
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		switch c {
		case quote:
			l.pos++
			return sb.String(), nil
		case '\n', '\r':
			return "", l.errorf(start, "unterminated string")
		case '\\':
			s, next, err := l.escape(l.pos + 1)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
			l.pos = next
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return "", l.errorf(start, "unterminated string")
}

// escape decodes the escape sequence whose backslash precedes i, returning
// the decoded text and the position following the sequence.
func (l *lexer) escape(i int) (string, int, error) {
	if i >= len(l.text) {
		return "", i, l.errorf(i-1, "unterminated escape sequence")
	}
	switch c := l.text[i]; c {
	case 'n':
		return "\n", i + 1, nil
	case 't':
		return "\t", i + 1, nil
	case 'r':
		return "\r", i + 1, nil
	case 'b':
		return "\b", i + 1, nil
	case 'f':
		return "\f", i + 1, nil
	case 'v':
		return "\v", i + 1, nil
	case '0':
		if i+1 < len(l.text) && isDigit(rune(l.text[i+1])) {
			return "0", i + 1, nil
		}
		return "\x00", i + 1, nil
	case '\r':
		if i+1 < len(l.text) && l.text[i+1] == '\n' {
			return "", i + 2, nil
		}
		return "", i + 1, nil
	case '\n':
		return "", i + 1, nil
	case 'x':
		if i+3 > len(l.text) {
			return "", i, l.errorf(i-1, "invalid hexadecimal escape")
		}
		n, err := strconv.ParseUint(l.text[i+1:i+3], 16, 8)
		if err != nil {
			return "", i, l.errorf(i-1, "invalid hexadecimal escape")
		}
		return string(rune(n)), i + 3, nil
	case 'u':
		var digits string
		next := i + 1
		if next < len(l.text) && l.text[next] == '{' {
			end := strings.IndexByte(l.text[next:], '}')
			if end < 0 {
				return "", i, l.errorf(i-1, "invalid unicode escape")
			}
			digits = l.text[next+1 : next+end]
			next += end + 1
		} else {
			if next+4 > len(l.text) {
				return "", i, l.errorf(i-1, "invalid unicode escape")
			}
			digits = l.text[next : next+4]
			next += 4
		}
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return "", i, l.errorf(i-1, "invalid unicode escape")
		}
		return string(rune(n)), next, nil
	default:
		r, size := utf8.DecodeRuneInString(l.text[i:])
		return string(r), i + size, nil
	}
}

func (l *lexer) scanTemplate() ([]string, []Scanner, error) {
	start := l.pos
	l.templates++
	defer func() { l.templates-- }()
	if l.templates > maxNesting {
		return nil, nil, l.errorf(start, "template literals nest deeper than %d levels", maxNesting)
	}
	l.pos++
	var quasis []string
	var subs []Scanner
	var sb strings.Builder
	for l.pos < len(l.text) {
		switch c := l.text[l.pos]; {
		case c == '`':
			l.pos++
			return append(quasis, sb.String()), subs, nil
		case c == '\\':
			s, next, err := l.escape(l.pos + 1)
			if err != nil {
				return nil, nil, err
			}
			sb.WriteString(s)
			l.pos = next
		case c == '$' && strings.HasPrefix(l.text[l.pos:], "${"):
			quasis = append(quasis, sb.String())
			sb.Reset()
			l.pos += 2
			subStart := l.pos
			if err := l.skipBalanced(); err != nil {
				return nil, nil, err
			}
			subs = append(subs, l.src.Slice(subStart, l.pos))
			l.pos++ // closing brace
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return nil, nil, l.errorf(start, "unterminated template literal")
}

// skipBalanced advances to the '}' closing a template substitution, stepping
// over nested braces, strings and templates.
func (l *lexer) skipBalanced() error {
	start := l.pos
	depth := 0
	for l.pos < len(l.text) {
		switch c := l.text[l.pos]; c {
		case '{':
			depth++
			l.pos++
		case '}':
			if depth == 0 {
				return nil
			}
			depth--
			l.pos++
		case '\'', '"':
			if _, err := l.scanString(c); err != nil {
				return err
			}
		case '`':
			if _, _, err := l.scanTemplate(); err != nil {
				return err
			}
		default:
			l.pos++
		}
	}
	return l.errorf(start, "unterminated template substitution")
}

func (l *lexer) scanRegex() (string, string, error) {
	start := l.pos
	l.pos++
	inClass := false
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		switch {
		case c == '\n' || c == '\r':
			return "", "", l.errorf(start, "unterminated regular expression")
		case c == '\\':
			l.pos += 2
			continue
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			pattern := l.text[start+1 : l.pos]
			l.pos++
			flagStart := l.pos
			l.scanIdent()
			return pattern, l.text[flagStart:l.pos], nil
		}
		l.pos++
	}
	return "", "", l.errorf(start, "unterminated regular expression")
}
