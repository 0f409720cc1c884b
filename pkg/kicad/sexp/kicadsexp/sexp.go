// Package kicadsexp reads and writes the S-expression dialect of KiCad files.
//
// Quoted atoms stay distinct from bare symbols, so parsed or newly built
// nodes print back in a form KiCad accepts.
package kicadsexp

import (
	"strconv"
	"strings"
)

// Sexp represents an S-expression node.
// It can be either a leaf (atom) or a list (cons cell).
type Sexp interface {
	// IsLeaf returns true if this is an atom (not a list)
	IsLeaf() bool

	// LeafCount returns the number of elements in a list (1 for atoms)
	LeafCount() int

	// Head returns the first element of a list (the atom itself for atoms)
	Head() Sexp

	// Tail returns the rest of the list after the first element (nil for atoms)
	Tail() Sexp

	// String returns the serialized representation
	String() string
}

// Atom is implemented by both leaf kinds and returns the unquoted text.
type Atom interface {
	Sexp
	Text() string
}

// Symbol represents a bare atom (keyword, number, identifier)
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) LeafCount() int { return 1 }
func (s Symbol) Head() Sexp     { return s }
func (s Symbol) Tail() Sexp     { return nil }
func (s Symbol) String() string { return string(s) }
func (s Symbol) Text() string   { return string(s) }

// Quoted represents a double-quoted string atom. The value is stored
// unescaped; String re-quotes it.
type Quoted string

func (q Quoted) IsLeaf() bool   { return true }
func (q Quoted) LeafCount() int { return 1 }
func (q Quoted) Head() Sexp     { return q }
func (q Quoted) Tail() Sexp     { return nil }
func (q Quoted) String() string { return quote(string(q)) }
func (q Quoted) Text() string   { return string(q) }

// quote escapes a string the way KiCad writes it.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// List represents a list of S-expressions
type List struct {
	elements []Sexp
}

// NewList builds a list from its elements.
func NewList(elements ...Sexp) *List {
	return &List{elements: elements}
}

// Node builds a (key args...) list. Plain Go values are converted:
// strings become Symbols, numbers are formatted without trailing zeros.
func Node(key string, args ...any) *List {
	l := &List{elements: make([]Sexp, 0, len(args)+1)}
	l.elements = append(l.elements, Symbol(key))
	for _, a := range args {
		l.elements = append(l.elements, toSexp(a))
	}
	return l
}

func toSexp(v any) Sexp {
	switch x := v.(type) {
	case Sexp:
		return x
	case string:
		return Symbol(x)
	case int:
		return Symbol(strconv.Itoa(x))
	case int64:
		return Symbol(strconv.FormatInt(x, 10))
	case float64:
		return Symbol(FormatFloat(x))
	case bool:
		if x {
			return Symbol("yes")
		}
		return Symbol("no")
	default:
		panic("kicadsexp: unsupported node argument type")
	}
}

// FormatFloat formats a number the way KiCad does: shortest representation,
// no exponent, no trailing zeros.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if s == "-0" {
		return "0"
	}
	return s
}

func (l *List) IsLeaf() bool { return false }

func (l *List) LeafCount() int {
	return len(l.elements)
}

func (l *List) Head() Sexp {
	if len(l.elements) == 0 {
		return nil
	}
	return l.elements[0]
}

func (l *List) Tail() Sexp {
	if len(l.elements) <= 1 {
		return nil
	}
	return &List{elements: l.elements[1:]}
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, elem := range l.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(elem.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Get returns the element at the given index
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Len returns the number of elements in the list
func (l *List) Len() int {
	return len(l.elements)
}

// Items returns the elements of the list. The slice must not be modified.
func (l *List) Items() []Sexp {
	return l.elements
}

// Append adds elements to the end of the list and returns it.
func (l *List) Append(elements ...Sexp) *List {
	l.elements = append(l.elements, elements...)
	return l
}
