// Package gotree builds and prints indented text trees.
package gotree

import (
	"strings"
)

const (
	newLine      = "\n"
	emptySpace   = "    "
	middleItem   = "├── "
	continueItem = "│   "
	lastItem     = "└── "
)

type (
	tree struct {
		text  string
		items []Tree
	}

	// Tree is a node with a text label and ordered children.
	Tree interface {
		Add(text string) Tree
		AddTree(tree Tree)
		Items() []Tree
		Text() string
		Print() string
	}
)

// New returns a tree with a single root labelled text.
func New(text string) Tree {
	return &tree{text: text}
}

// Add appends a leaf labelled text and returns it.
func (t *tree) Add(text string) Tree {
	n := New(text)
	t.items = append(t.items, n)
	return n
}

// AddTree appends an existing tree as a child.
func (t *tree) AddTree(tree Tree) {
	t.items = append(t.items, tree)
}

func (t *tree) Text() string {
	return t.text
}

func (t *tree) Items() []Tree {
	return t.items
}

// Print renders the tree, one label per line, children indented under their parent.
func (t *tree) Print() string {
	var sb strings.Builder
	sb.WriteString(t.text)
	sb.WriteString(newLine)
	printItems(&sb, t.items, nil)
	return sb.String()
}

func printText(sb *strings.Builder, text string, spaces []bool, last bool) {
	var prefix strings.Builder
	for _, space := range spaces {
		if space {
			prefix.WriteString(emptySpace)
		} else {
			prefix.WriteString(continueItem)
		}
	}

	indicator := middleItem
	for i, line := range strings.Split(text, newLine) {
		if i > 0 {
			if last {
				indicator = emptySpace
			} else {
				indicator = continueItem
			}
		} else if last {
			indicator = lastItem
		}
		sb.WriteString(prefix.String())
		sb.WriteString(indicator)
		sb.WriteString(line)
		sb.WriteString(newLine)
	}
}

func printItems(sb *strings.Builder, items []Tree, spaces []bool) {
	for i, item := range items {
		last := i == len(items)-1
		printText(sb, item.Text(), spaces, last)
		if len(item.Items()) > 0 {
			// copy so sibling subtrees never share a backing array
			childSpaces := append(append([]bool{}, spaces...), last)
			printItems(sb, item.Items(), childSpaces)
		}
	}
}
