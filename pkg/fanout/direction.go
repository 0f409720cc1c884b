package fanout

import (
	"math"

	"github.com/OpenTraceLab/kifan/pkg/errors"
)

// SelectDirection chooses the raw fan-out direction for a pad at padPos on a
// component whose origin is origin. angleDegrees is only used by Angled.
//
// The returned vector is never zero for a valid style: zero offsets take the
// positive branch on each axis.
func SelectDirection(style Style, padPos, origin Point, angleDegrees float64) (Vector, error) {
	d := padPos.Sub(origin)

	switch style {
	case Quadrant:
		if math.Abs(d.X) > math.Abs(d.Y) {
			return Vector{X: sign(d.X), Y: 0}, nil
		}
		return Vector{X: 0, Y: sign(d.Y)}, nil

	case Diagonal:
		return Vector{X: sign(d.X), Y: sign(d.Y)}, nil

	case SquareQuadrant:
		switch {
		case d.X < 0 && d.Y < 0:
			return Vector{X: -1, Y: -1}, nil
		case d.X >= 0 && d.Y < 0:
			return Vector{X: 1, Y: -1}, nil
		case d.X >= 0 && d.Y >= 0:
			return Vector{X: 1, Y: 1}, nil
		default:
			return Vector{X: -1, Y: 1}, nil
		}

	case Angled:
		return Rotate(Vector{X: 1, Y: 0}, angleDegrees), nil
	}

	return Vector{}, errors.New(errors.ErrCodeInvalidStyle, "unknown fan-out style %d", int(style))
}

// sign maps zero to +1.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
