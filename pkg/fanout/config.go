package fanout

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/kifan/pkg/errors"
)

// LayerPair names the copper layers a via spans.
type LayerPair struct {
	From string
	To   string
}

// MaxLength is the largest length, in nanometres, that fits the int32
// coordinate range of a KiCad board.
const MaxLength = math.MaxInt32

// Config holds everything the planner needs. Lengths are in nanometres and
// there are no implicit defaults.
type Config struct {
	Style       Style
	TraceLength float64
	TraceWidth  float64
	ViaDiameter float64
	ViaDrill    float64

	// AngleDegrees rotates Quadrant and SquareQuadrant directions and is the
	// direction of Angled.
	AngleDegrees float64

	// UsePadOrientation makes Angled follow each pad's own orientation
	// instead of AngleDegrees.
	UsePadOrientation bool

	ViaLayers LayerPair
}

// Validate checks every rule and reports all violations in one error.
// An unknown style yields ErrCodeInvalidStyle, anything else
// ErrCodeInvalidConfig.
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	finite := true
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"trace length", c.TraceLength},
		{"trace width", c.TraceWidth},
		{"via diameter", c.ViaDiameter},
		{"via drill", c.ViaDrill},
		{"angle", c.AngleDegrees},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			add("%s must be a finite number", f.name)
			finite = false
		}
	}

	if finite {
		positive := []struct {
			name string
			v    float64
		}{
			{"trace length", c.TraceLength},
			{"trace width", c.TraceWidth},
			{"via diameter", c.ViaDiameter},
			{"via drill", c.ViaDrill},
		}
		for _, f := range positive {
			switch {
			case f.v <= 0:
				add("%s must be positive, got %g", f.name, f.v)
			case f.v > MaxLength:
				add("%s must not exceed %d nm, got %g", f.name, MaxLength, f.v)
			}
		}
		if c.ViaDrill > 0 && c.ViaDrill >= c.ViaDiameter {
			add("via drill (%g) must be smaller than via diameter (%g)", c.ViaDrill, c.ViaDiameter)
		}
	}

	switch {
	case c.ViaLayers.From == "" || c.ViaLayers.To == "":
		add("via layers must both be set")
	case c.ViaLayers.From == c.ViaLayers.To:
		add("via layers must differ, both are %q", c.ViaLayers.From)
	}

	if !c.Style.Valid() {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown fan-out style %d", int(c.Style)).
			WithDetails(problems...)
	}
	if len(problems) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid fan-out configuration").
			WithDetails(problems...)
	}
	return nil
}
