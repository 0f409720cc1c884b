package fanout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a board coordinate in nanometres.
type Point struct {
	X, Y int64
}

// Vector is a direction or displacement. Fan-out directions are not
// necessarily unit length.
type Vector = r2.Vec

// Sub returns the offset from q to p as a vector. Both coordinates are
// subtracted as integers before conversion, so no precision is lost.
func (p Point) Sub(q Point) Vector {
	return Vector{X: float64(p.X - q.X), Y: float64(p.Y - q.Y)}
}

// Add displaces p by v, rounding each axis to the nearest nanometre with
// halves away from zero.
func (p Point) Add(v Vector) Point {
	return Point{
		X: p.X + int64(math.Round(v.X)),
		Y: p.Y + int64(math.Round(v.Y)),
	}
}

// Rotate rotates v about the origin by the given angle in degrees.
func Rotate(v Vector, degrees float64) Vector {
	return r2.Rotate(v, degToRad(degrees), r2.Vec{})
}

// Norm returns the Euclidean length of v.
func Norm(v Vector) float64 {
	return r2.Norm(v)
}

func degToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}
