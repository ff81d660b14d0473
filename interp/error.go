package interp

import (
	"fmt"

	"github.com/arr-ai/tsebnf/js"
)

// Error reports a failure while evaluating a grammar program.
type Error struct {
	At  js.Scanner
	Msg string

	// Trace holds the call sites of the functions the failure unwound
	// through, innermost first.
	Trace []js.Scanner
}

func (e *Error) Error() string {
	if e.At.IsNil() {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.At.Location(), e.Msg)
}

func (e *Error) Context() string {
	return e.At.Context()
}

func newError(at js.Node, format string, args ...interface{}) *Error {
	e := &Error{Msg: fmt.Sprintf(format, args...)}
	if at != nil {
		e.At = at.Span()
	}
	return e
}

// recoverError turns a panicking *Error into an error return.
func recoverError(err *error) {
	if r := recover(); r != nil {
		e, ok := r.(*Error)
		if !ok {
			panic(r)
		}
		*err = e
	}
}
