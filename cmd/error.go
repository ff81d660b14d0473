package cmd

import "fmt"

// FileReadError reports a grammar file that could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e FileReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e FileReadError) Unwrap() error {
	return e.Err
}

// ArgumentError reports a command invoked without exactly one grammar file.
type ArgumentError struct {
	Got int
}

func (e ArgumentError) Error() string {
	return fmt.Sprintf("expected exactly one grammar file argument, got %d", e.Got)
}
