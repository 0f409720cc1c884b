package pcb

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Board files store millimetres; fan-out geometry works in integer
// nanometres.
const (
	NanometersToMM = 1e-6
	MMToNanometers = 1e6
)

// Position is a board coordinate in millimetres. Y grows downward as in
// pcbnew.
type Position = r2.Vec

// Angle is a rotation in degrees, counter-clockwise as displayed.
type Angle float64

// Radians converts the on-screen angle to a rotation in board coordinates.
// Board Y points down, so a counter-clockwise turn on screen is a negative
// turn in the file's frame.
func (a Angle) Radians() float64 {
	return -float64(a) * math.Pi / 180
}

// PositionAngle is an (at x y [angle]) placement.
type PositionAngle struct {
	Position
	Angle Angle
}

// Size is a width and height in millimetres.
type Size struct {
	Width  float64
	Height float64
}

// Stroke is the outline of a graphic item.
type Stroke struct {
	Width float64
	Type  string // solid, dash, default, ...
}

// BoundingBox is an axis-aligned box in board coordinates. A box with Min
// beyond Max holds nothing.
type BoundingBox struct {
	Min Position
	Max Position
}

// NewBoundingBox returns an empty box that any Expand call will replace.
func NewBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: Position{X: inf, Y: inf},
		Max: Position{X: -inf, Y: -inf},
	}
}

// Empty reports whether nothing has been added to the box.
func (b BoundingBox) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Expand grows the box to include p.
func (b *BoundingBox) Expand(p Position) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// ExpandDisc grows the box to include a disc of radius r around c.
func (b *BoundingBox) ExpandDisc(c Position, r float64) {
	b.Expand(r2.Sub(c, Position{X: r, Y: r}))
	b.Expand(r2.Add(c, Position{X: r, Y: r}))
}

// ExpandBox grows the box to include o. Empty boxes are ignored.
func (b *BoundingBox) ExpandBox(o BoundingBox) {
	if o.Empty() {
		return
	}
	b.Expand(o.Min)
	b.Expand(o.Max)
}

// Size returns the width and height of the box.
func (b BoundingBox) Size() Position {
	return r2.Sub(b.Max, b.Min)
}

// Center returns the middle of the box.
func (b BoundingBox) Center() Position {
	return r2.Scale(0.5, r2.Add(b.Min, b.Max))
}

// GrLine is a straight gr_line.
type GrLine struct {
	Start  Position
	End    Position
	Stroke Stroke
	Layer  string
}

// GrCircle is a gr_circle given by its centre and a point on the rim.
type GrCircle struct {
	Center Position
	End    Position
	Stroke Stroke
	Filled bool
	Layer  string
}

// Radius returns the distance from the centre to the rim point.
func (c GrCircle) Radius() float64 {
	return r2.Norm(r2.Sub(c.End, c.Center))
}

// GrArc is a three-point gr_arc.
type GrArc struct {
	Start  Position
	Mid    Position
	End    Position
	Stroke Stroke
	Layer  string
}

// GrRect is an axis-aligned gr_rect given by opposite corners.
type GrRect struct {
	Start  Position
	End    Position
	Stroke Stroke
	Filled bool
	Layer  string
}

// Corners returns the four corners in drawing order.
func (r GrRect) Corners() [4]Position {
	return [4]Position{
		r.Start,
		{X: r.End.X, Y: r.Start.Y},
		r.End,
		{X: r.Start.X, Y: r.End.Y},
	}
}

// GrPoly is a closed gr_poly.
type GrPoly struct {
	Points []Position
	Stroke Stroke
	Filled bool
	Layer  string
}

// Graphics holds the board-level drawings, grouped by kind.
type Graphics struct {
	Lines   []GrLine
	Circles []GrCircle
	Arcs    []GrArc
	Rects   []GrRect
	Polys   []GrPoly
}
