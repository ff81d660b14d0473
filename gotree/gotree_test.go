package gotree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	root := New("program")
	decl := root.Add("const PREC")
	decl.Add("add")
	decl.Add("mul")
	root.Add("module.exports")

	assert.Equal(t,
		"program\n"+
			"├── const PREC\n"+
			"│   ├── add\n"+
			"│   └── mul\n"+
			"└── module.exports\n",
		root.Print())
}

func TestPrintMultiline(t *testing.T) {
	root := New("err")
	root.Add("line one\nline two")
	child := New("last")
	child.Add("a\nb")
	root.AddTree(child)

	assert.Equal(t,
		"err\n"+
			"├── line one\n"+
			"│   line two\n"+
			"└── last\n"+
			"    └── a\n"+
			"        b\n",
		root.Print())
}
