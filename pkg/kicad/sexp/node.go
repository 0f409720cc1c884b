// Package sexp navigates parsed KiCad S-expressions.
//
// A Node is a read-only view of one list such as (at 100 50 90). Lookups by
// child name return the first match; accessors index the list the way KiCad
// documents its tokens, with the name at index 0.
package sexp

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/kifan/pkg/kicad/sexp/kicadsexp"
)

// Node wraps a parsed list. The zero Node is empty and every lookup on it
// fails.
type Node struct {
	list *kicadsexp.List
}

// Wrap returns a Node for x, or false when x is not a list.
func Wrap(x kicadsexp.Sexp) (Node, bool) {
	l, ok := x.(*kicadsexp.List)
	return Node{list: l}, ok && l != nil
}

// Name returns the leading symbol, or "" for an empty or anonymous list.
func (n Node) Name() string {
	if n.list == nil || n.list.Len() == 0 {
		return ""
	}
	if s, ok := n.list.Items()[0].(kicadsexp.Symbol); ok {
		return string(s)
	}
	return ""
}

// Len returns the number of items, name included.
func (n Node) Len() int {
	if n.list == nil {
		return 0
	}
	return n.list.Len()
}

// Raw returns the underlying list.
func (n Node) Raw() *kicadsexp.List { return n.list }

func (n Node) String() string {
	if n.list == nil {
		return "()"
	}
	return n.list.String()
}

// rest returns the items after the name.
func (n Node) rest() []kicadsexp.Sexp {
	if n.Len() < 2 {
		return nil
	}
	return n.list.Items()[1:]
}

// Text returns the atom at index i, quoted or bare.
func (n Node) Text(i int) (string, error) {
	if i < 0 || i >= n.Len() {
		return "", fmt.Errorf("(%s): no value at index %d", n.Name(), i)
	}
	a, ok := n.list.Items()[i].(kicadsexp.Atom)
	if !ok {
		return "", fmt.Errorf("(%s): value %d is a list", n.Name(), i)
	}
	return a.Text(), nil
}

// TextOr returns the atom at index i, or def when there is none.
func (n Node) TextOr(i int, def string) string {
	if s, err := n.Text(i); err == nil {
		return s
	}
	return def
}

// Float parses the atom at index i.
func (n Node) Float(i int) (float64, error) {
	s, err := n.Text(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("(%s): %q is not a number", n.Name(), s)
	}
	return v, nil
}

// Int parses the atom at index i.
func (n Node) Int(i int) (int, error) {
	s, err := n.Text(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("(%s): %q is not an integer", n.Name(), s)
	}
	return v, nil
}

// XY reads the two numbers after the name, as in (start 1 2).
func (n Node) XY() (x, y float64, err error) {
	if x, err = n.Float(1); err != nil {
		return 0, 0, err
	}
	if y, err = n.Float(2); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// Child returns the first child list called name.
func (n Node) Child(name string) (Node, bool) {
	for _, item := range n.rest() {
		if c, ok := Wrap(item); ok && c.Name() == name {
			return c, true
		}
	}
	return Node{}, false
}

// Require is Child with an error naming the missing child.
func (n Node) Require(name string) (Node, error) {
	c, ok := n.Child(name)
	if !ok {
		return Node{}, fmt.Errorf("(%s): missing (%s ...)", n.Name(), name)
	}
	return c, nil
}

// Children returns every child list called name, in order.
func (n Node) Children(name string) []Node {
	var out []Node
	for _, item := range n.rest() {
		if c, ok := Wrap(item); ok && c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// Lists returns every child list after the name.
func (n Node) Lists() []Node {
	var out []Node
	for _, item := range n.rest() {
		if c, ok := Wrap(item); ok {
			out = append(out, c)
		}
	}
	return out
}

// Atoms returns the text of every atom after the name, as in
// (layers "F.Cu" "B.Cu").
func (n Node) Atoms() []string {
	var out []string
	for _, item := range n.rest() {
		if a, ok := item.(kicadsexp.Atom); ok {
			out = append(out, a.Text())
		}
	}
	return out
}

// Flag reports a boolean attribute written either as a bare symbol
// (segment locked ...) or as a child (locked yes).
func (n Node) Flag(name string) bool {
	for _, item := range n.rest() {
		if s, ok := item.(kicadsexp.Symbol); ok && string(s) == name {
			return true
		}
	}
	c, ok := n.Child(name)
	if !ok {
		return false
	}
	v := c.TextOr(1, "yes")
	return v == "yes" || v == "true"
}

// ChildText returns the first value of the named child, as in
// (layer "F.Cu").
func (n Node) ChildText(name string) (string, bool) {
	c, ok := n.Child(name)
	if !ok {
		return "", false
	}
	s, err := c.Text(1)
	return s, err == nil
}
