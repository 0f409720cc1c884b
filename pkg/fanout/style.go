package fanout

import (
	"strconv"
	"strings"

	"github.com/OpenTraceLab/kifan/pkg/errors"
)

// Style selects how a pad's fan-out direction is chosen.
type Style int

const (
	Quadrant Style = iota
	Diagonal
	SquareQuadrant
	Angled
)

type styleInfo struct {
	name      string
	rotatable bool
}

var styles = [...]styleInfo{
	Quadrant:       {name: "quadrant", rotatable: true},
	Diagonal:       {name: "diagonal", rotatable: false},
	SquareQuadrant: {name: "square-quadrant", rotatable: true},
	Angled:         {name: "angled", rotatable: false},
}

// Styles returns every style in declaration order.
func Styles() []Style {
	return []Style{Quadrant, Diagonal, SquareQuadrant, Angled}
}

// Valid reports whether s is one of the four defined styles.
func (s Style) Valid() bool {
	return s >= Quadrant && s <= Angled
}

func (s Style) String() string {
	if !s.Valid() {
		return "Style(" + strconv.Itoa(int(s)) + ")"
	}
	return styles[s].name
}

// Rotatable reports whether the configured angle is applied on top of the
// style's own direction.
func (s Style) Rotatable() bool {
	return s.Valid() && styles[s].rotatable
}

// ParseStyle resolves a style name. Matching ignores case and treats '-',
// '_' and spaces alike, so "Square Quadrant" and "square_quadrant" both work.
func ParseStyle(name string) (Style, error) {
	key := normalizeStyleName(name)
	for _, s := range Styles() {
		if normalizeStyleName(styles[s].name) == key {
			return s, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidStyle, "unknown fan-out style %q", name)
}

func normalizeStyleName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown fan-out style %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
