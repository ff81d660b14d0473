package js

import (
	"fmt"
)

// SyntaxError reports source text outside the supported language subset.
type SyntaxError struct {
	At  Scanner
	Msg string
}

func newSyntaxError(at Scanner, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{At: at, Msg: fmt.Sprintf(format, args...)}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.At.Location(), e.Msg)
}

// Context renders the offending source line.
func (e *SyntaxError) Context() string {
	return e.At.Context()
}

// bailout carries a SyntaxError up through the recursive descent parser.
type bailout struct {
	err error
}
