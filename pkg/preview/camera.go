package preview

import (
	"math"

	"github.com/OpenTraceLab/kifan/pkg/kicad/pcb"
)

// Camera maps board millimetres onto image pixels. Both have Y pointing
// down, so only scale, translation and the optional mirror apply.
type Camera struct {
	Center pcb.Position // board point shown at the image centre
	Zoom   float64      // pixels per millimetre
	Width  int
	Height int
	// FlipView mirrors X about the centre, as when looking at the back.
	FlipView bool
}

// NewCamera returns a camera for a w×h image at 10 px/mm.
func NewCamera(w, h int) *Camera {
	return &Camera{Zoom: 10, Width: w, Height: h}
}

func (c *Camera) half() (float64, float64) {
	return float64(c.Width) / 2, float64(c.Height) / 2
}

// WorldToScreen returns the pixel coordinates of p.
func (c *Camera) WorldToScreen(p pcb.Position) (float64, float64) {
	dx, dy := p.X-c.Center.X, p.Y-c.Center.Y
	if c.FlipView {
		dx = -dx
	}
	hw, hh := c.half()
	return hw + dx*c.Zoom, hh + dy*c.Zoom
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(x, y float64) pcb.Position {
	hw, hh := c.half()
	dx, dy := (x-hw)/c.Zoom, (y-hh)/c.Zoom
	if c.FlipView {
		dx = -dx
	}
	return pcb.Position{X: c.Center.X + dx, Y: c.Center.Y + dy}
}

// Scale converts a length in millimetres to pixels.
func (c *Camera) Scale(mm float64) float64 {
	return mm * c.Zoom
}

// minExtent keeps the zoom finite for a point or a straight line.
const minExtent = 1e-3

// Fit centres box and picks the largest zoom at which it spans at most
// fill of either image dimension.
func (c *Camera) Fit(box pcb.BoundingBox, fill float64) {
	c.Center = box.Center()
	size := box.Size()
	c.Zoom = math.Min(
		float64(c.Width)*fill/math.Max(size.X, minExtent),
		float64(c.Height)*fill/math.Max(size.Y, minExtent),
	)
}
