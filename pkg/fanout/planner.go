package fanout

import (
	"iter"
	"math"

	"github.com/OpenTraceLab/kifan/pkg/errors"
)

// Pad is a read-only view of one pad on the host board.
type Pad interface {
	// Position is the pad centre in board coordinates.
	Position() Point
	// IsConnected reports whether the pad has a net.
	IsConnected() bool
	// Orientation is the pad's absolute rotation in degrees.
	Orientation() float64
	// Layer is the copper layer the fan-out track is placed on.
	Layer() string
	// Net is the host's net identifier, copied onto the track and via.
	Net() int
}

// Component is a read-only view of a placed footprint.
type Component interface {
	// Position is the placement origin.
	Position() Point
	// Pads returns the pads in a stable order.
	Pads() []Pad
}

// Track is a straight copper segment from the pad to the via.
type Track struct {
	Start Point
	End   Point
	Width float64
	Layer string
	Net   int
}

// Via is the plated hole at the end of a fan-out track.
type Via struct {
	Position Point
	Diameter float64
	Drill    float64
	From     string
	To       string
	Net      int
}

// Result is the track and via planned for one connected pad.
type Result struct {
	Pad       Pad
	Direction Vector
	Track     Track
	Via       Via
}

// Plan validates cfg and returns the fan-out of every connected pad of c.
// Nothing is computed when cfg is invalid. The sequence is lazy and can be
// ranged over repeatedly; each pass yields identical results. Unconnected
// pads are skipped. Iteration stops at the first error.
func Plan(c Component, cfg Config) (iter.Seq2[Result, error], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return plan(c, cfg), nil
}

func plan(c Component, cfg Config) iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		origin := c.Position()
		for _, pad := range c.Pads() {
			if !pad.IsConnected() {
				continue
			}
			r, err := planPad(pad, origin, cfg)
			if !yield(r, err) || err != nil {
				return
			}
		}
	}
}

func planPad(pad Pad, origin Point, cfg Config) (Result, error) {
	angle := cfg.AngleDegrees
	if cfg.Style == Angled && cfg.UsePadOrientation {
		angle = pad.Orientation()
	}

	pos := pad.Position()
	dir, err := SelectDirection(cfg.Style, pos, origin, angle)
	if err != nil {
		return Result{}, err
	}
	if cfg.Style.Rotatable() {
		dir = Rotate(dir, cfg.AngleDegrees)
	}
	if !finiteNonZero(dir) {
		return Result{}, errors.New(errors.ErrCodeDegenerateGeometry,
			"no usable fan-out direction for pad at (%d, %d): %v", pos.X, pos.Y, dir)
	}

	target := pos.Add(Vector{X: dir.X * cfg.TraceLength, Y: dir.Y * cfg.TraceLength})
	if target == pos {
		return Result{}, errors.New(errors.ErrCodeDegenerateGeometry,
			"fan-out track from pad at (%d, %d) rounds to zero length", pos.X, pos.Y)
	}
	net := pad.Net()

	return Result{
		Pad:       pad,
		Direction: dir,
		Track: Track{
			Start: pos,
			End:   target,
			Width: cfg.TraceWidth,
			Layer: pad.Layer(),
			Net:   net,
		},
		Via: Via{
			Position: target,
			Diameter: cfg.ViaDiameter,
			Drill:    cfg.ViaDrill,
			From:     cfg.ViaLayers.From,
			To:       cfg.ViaLayers.To,
			Net:      net,
		},
	}, nil
}

func finiteNonZero(v Vector) bool {
	for _, f := range []float64{v.X, v.Y} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return v.X != 0 || v.Y != 0
}

// PlanAll collects the fan-out of c into a slice.
func PlanAll(c Component, cfg Config) ([]Result, error) {
	return PlanComponents([]Component{c}, cfg)
}

// PlanComponents plans several components with one configuration, validating
// it once. Results keep component order, then pad order.
func PlanComponents(cs []Component, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var results []Result
	for _, c := range cs {
		for r, err := range plan(c, cfg) {
			if err != nil {
				return nil, err
			}
			results = append(results, r)
		}
	}
	return results, nil
}
