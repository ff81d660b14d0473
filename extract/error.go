package extract

import (
	"fmt"

	"github.com/arr-ai/tsebnf/js"
)

// UnsupportedTopLevelConstructError reports a top-level statement that is
// not a constant group, a helper function or the single export expression.
type UnsupportedTopLevelConstructError struct {
	Construct string
	Pos       js.Scanner
}

func (e UnsupportedTopLevelConstructError) Error() string {
	return fmt.Sprintf("%s: unsupported top-level construct: %s", e.Pos.Location(), e.Construct)
}

func (e UnsupportedTopLevelConstructError) Context() string {
	return e.Pos.Context()
}

// UnexpectedExportTargetError reports an assignment to anything other than module.exports.
type UnexpectedExportTargetError struct {
	Target string
	Pos    js.Scanner
}

func (e UnexpectedExportTargetError) Error() string {
	return fmt.Sprintf("%s: only module.exports may be assigned (got %s)", e.Pos.Location(), e.Target)
}

func (e UnexpectedExportTargetError) Context() string {
	return e.Pos.Context()
}

// MissingExportError reports a source with no export expression.
type MissingExportError struct {
	Filename string
}

func (e MissingExportError) Error() string {
	name := e.Filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s: no module.exports assignment found", name)
}
