package js

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Scanner is a window onto a source text. Tokens and syntax tree nodes carry
// one so that the exact source of any construct can be recovered.
type Scanner struct {
	src         *source // the source the scanner is drawing from
	sliceStart  int     // the start of the slice visible to the scanner
	sliceLength int     // the length of the slice visible to the scanner
}

type source struct {
	origin string // the entire source string
	f      string // the source filename
}

func NewScanner(str string) *Scanner {
	return &Scanner{&source{origin: str}, 0, len(str)}
}

func NewScannerWithFilename(str, filename string) *Scanner {
	return &Scanner{&source{str, filename}, 0, len(str)}
}

// - Scanner

// The name of the file from which the source is derived (or empty if none).
func (s Scanner) Filename() string {
	if s.src == nil {
		return ""
	}
	return s.src.f
}

func (s Scanner) String() string {
	if s.src == nil {
		return ""
	}
	return s.src.origin[s.sliceStart : s.sliceStart+s.sliceLength]
}

func (s Scanner) IsNil() bool {
	return s.src == nil
}

func (s Scanner) Format(state fmt.State, c rune) {
	if c == 'q' {
		_, _ = fmt.Fprintf(state, "%q", s.String())
	} else {
		_, _ = state.Write([]byte(s.String()))
	}
}

// The position of the start of the scanner within the original source.
func (s Scanner) Offset() int {
	return s.sliceStart
}

// The position just past the end of the scanner within the original source.
func (s Scanner) End() int {
	return s.sliceStart + s.sliceLength
}

func (s Scanner) Len() int {
	return s.sliceLength
}

// The 1-indexed line and column number of the start of the scanner within the original source.
func (s Scanner) Position() (int, int) {
	if s.src == nil {
		return 0, 0
	}
	return lineColumn(s.src.origin, s.sliceStart)
}

// Slice returns the sub-scanner from a to b, both relative to the start of s.
func (s Scanner) Slice(a, b int) Scanner {
	return Scanner{s.src, s.sliceStart + a, b - a}
}

func (s Scanner) Skip(i int) Scanner {
	return Scanner{s.src, s.sliceStart + i, s.sliceLength - i}
}

// Between returns the scanner spanning from the start of s to the end of e.
func (s Scanner) Between(e Scanner) Scanner {
	if e.src != s.src || e.End() < s.sliceStart {
		return s
	}
	return Scanner{s.src, s.sliceStart, e.End() - s.sliceStart}
}

// Location formats the start of the scanner as file:line:col.
func (s Scanner) Location() string {
	line, col := s.Position()
	name := s.Filename()
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", name, line, col)
}

// Context returns the source line holding the start of the scanner with the
// scanned text highlighted, prefixed by its location.
func (s Scanner) Context() string {
	if s.src == nil {
		return ""
	}
	origin := s.src.origin
	lineStart := strings.LastIndexByte(origin[:s.sliceStart], '\n') + 1
	lineEnd := len(origin)
	if i := strings.IndexByte(origin[s.sliceStart:], '\n'); i >= 0 {
		lineEnd = s.sliceStart + i
	}
	end := s.End()
	if end > lineEnd {
		end = lineEnd
	}
	highlight := color.New(color.FgRed, color.Bold).SprintFunc()
	return fmt.Sprintf("%s:\n%s%s%s",
		s.Location(),
		origin[lineStart:s.sliceStart],
		highlight(origin[s.sliceStart:end]),
		origin[end:lineEnd],
	)
}

// The 1-indexed line and column number of the given position within the given string.
func lineColumn(str string, pos int) (line, col int) {
	prefix := str[:pos]
	line = strings.Count(prefix, "\n") + 1
	col = pos - strings.LastIndex(prefix, "\n")
	return
}
