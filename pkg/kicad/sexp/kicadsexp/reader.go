package kicadsexp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxDepth bounds list nesting so malformed input cannot exhaust the stack.
const maxDepth = 512

// SyntaxError reports malformed input and the line it was found on.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Decoder reads top-level expressions one at a time, so a caller can stop
// after the root of a large board without buffering the rest.
type Decoder struct {
	r    *bufio.Reader
	line int
	buf  strings.Builder
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r), line: 1}
}

// Decode returns the next top-level expression, or io.EOF when the input
// holds only whitespace and comments.
func (d *Decoder) Decode() (Sexp, error) {
	c, err := d.skipSpace()
	if err != nil {
		return nil, err
	}
	return d.expr(c, 0)
}

// Parse parses every top-level expression in r.
func Parse(r io.Reader) ([]Sexp, error) {
	d := NewDecoder(r)
	var out []Sexp
	for {
		x, err := d.Decode()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
}

// ParseString parses every top-level expression in s.
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}

func (d *Decoder) errorf(format string, args ...any) error {
	return &SyntaxError{Line: d.line, Msg: fmt.Sprintf(format, args...)}
}

func (d *Decoder) next() (byte, error) {
	c, err := d.r.ReadByte()
	if err == nil && c == '\n' {
		d.line++
	}
	return c, err
}

func (d *Decoder) unread(c byte) {
	_ = d.r.UnreadByte()
	if c == '\n' {
		d.line--
	}
}

// skipSpace consumes whitespace and '#' line comments and returns the first
// significant byte.
func (d *Decoder) skipSpace() (byte, error) {
	for {
		c, err := d.next()
		if err != nil {
			return 0, err
		}
		switch {
		case isSpace(c):
		case c == '#':
			for c != '\n' {
				if c, err = d.next(); err != nil {
					return 0, err
				}
			}
		default:
			return c, nil
		}
	}
}

// expr reads the expression starting with the already consumed byte c.
func (d *Decoder) expr(c byte, depth int) (Sexp, error) {
	switch c {
	case '(':
		return d.list(depth + 1)
	case ')':
		return nil, d.errorf("unexpected ')'")
	case '"':
		return d.quoted()
	}
	d.unread(c)
	return d.symbol()
}

func (d *Decoder) list(depth int) (Sexp, error) {
	if depth > maxDepth {
		return nil, d.errorf("nesting deeper than %d levels", maxDepth)
	}
	start := d.line

	l := &List{}
	for {
		c, err := d.skipSpace()
		if errors.Is(err, io.EOF) {
			return nil, d.errorf("list opened on line %d is never closed", start)
		}
		if err != nil {
			return nil, err
		}
		if c == ')' {
			return l, nil
		}
		x, err := d.expr(c, depth)
		if err != nil {
			return nil, err
		}
		l.elements = append(l.elements, x)
	}
}

func (d *Decoder) quoted() (Sexp, error) {
	start := d.line
	d.buf.Reset()
	for {
		c, err := d.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, d.errorf("string opened on line %d is never closed", start)
			}
			return nil, err
		}
		switch c {
		case '"':
			return Quoted(d.buf.String()), nil
		case '\\':
			e, err := d.next()
			if err != nil {
				return nil, d.errorf("input ends inside an escape sequence")
			}
			d.buf.WriteByte(unescape(e))
		default:
			d.buf.WriteByte(c)
		}
	}
}

func (d *Decoder) symbol() (Sexp, error) {
	d.buf.Reset()
	for {
		c, err := d.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isSpace(c) || c == '(' || c == ')' || c == '"' {
			d.unread(c)
			break
		}
		d.buf.WriteByte(c)
	}
	if d.buf.Len() == 0 {
		return nil, d.errorf("empty symbol")
	}
	return Symbol(d.buf.String()), nil
}

// unescape maps the byte after a backslash to the byte it stands for.
// Unknown escapes stand for themselves.
func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return c
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
