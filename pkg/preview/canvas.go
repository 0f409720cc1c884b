package preview

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle
const kappa = 0.5522847498

// Canvas is an RGBA image with anti-aliased path filling.
type Canvas struct {
	img *image.NRGBA
	z   *vector.Rasterizer
}

// NewCanvas creates a w x h canvas filled with bg.
func NewCanvas(w, h int, bg color.Color) *Canvas {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{img: img, z: vector.NewRasterizer(w, h)}
}

// Image returns the rendered image.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// fill paints the current path and starts a new one.
func (c *Canvas) fill(col color.Color) {
	c.z.DrawOp = draw.Over
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
}

func (c *Canvas) circlePath(x, y, r float64) {
	k := r * kappa
	c.z.MoveTo(f32(x+r), f32(y))
	c.z.CubeTo(f32(x+r), f32(y+k), f32(x+k), f32(y+r), f32(x), f32(y+r))
	c.z.CubeTo(f32(x-k), f32(y+r), f32(x-r), f32(y+k), f32(x-r), f32(y))
	c.z.CubeTo(f32(x-r), f32(y-k), f32(x-k), f32(y-r), f32(x), f32(y-r))
	c.z.CubeTo(f32(x+k), f32(y-r), f32(x+r), f32(y-k), f32(x+r), f32(y))
	c.z.ClosePath()
}

// FillCircle paints a disc of radius r centered on (x, y).
func (c *Canvas) FillCircle(x, y, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	c.circlePath(x, y, r)
	c.fill(col)
}

// FillPolygon paints the closed polygon through pts.
func (c *Canvas) FillPolygon(pts [][2]float64, col color.Color) {
	if len(pts) < 3 {
		return
	}
	c.z.MoveTo(f32(pts[0][0]), f32(pts[0][1]))
	for _, p := range pts[1:] {
		c.z.LineTo(f32(p[0]), f32(p[1]))
	}
	c.z.ClosePath()
	c.fill(col)
}

// FillRect paints a w x h rectangle centered on (x, y) and rotated by
// radians.
func (c *Canvas) FillRect(x, y, w, h, radians float64, col color.Color) {
	cos, sin := math.Cos(radians), math.Sin(radians)
	hw, hh := w/2, h/2
	corners := [][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	for i, p := range corners {
		corners[i] = [2]float64{x + p[0]*cos - p[1]*sin, y + p[0]*sin + p[1]*cos}
	}
	c.FillPolygon(corners, col)
}

// StrokeLine draws a segment of the given width with round caps.
func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, col color.Color) {
	r := width / 2
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length > 0 {
		nx, ny := -dy/length*r, dx/length*r
		c.z.MoveTo(f32(x1+nx), f32(y1+ny))
		c.z.LineTo(f32(x2+nx), f32(y2+ny))
		c.z.LineTo(f32(x2-nx), f32(y2-ny))
		c.z.LineTo(f32(x1-nx), f32(y1-ny))
		c.z.ClosePath()
		c.fill(col)
	}
	// Caps are filled separately; overlapping subpaths of opposite winding
	// would cancel out.
	c.FillCircle(x1, y1, r, col)
	c.FillCircle(x2, y2, r, col)
}

// StrokeRing draws a circle outline of the given line width.
func (c *Canvas) StrokeRing(x, y, r, width float64, col color.Color) {
	const segments = 48
	prevX, prevY := x+r, y
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		nextX, nextY := x+r*math.Cos(a), y+r*math.Sin(a)
		c.StrokeLine(prevX, prevY, nextX, nextY, width, col)
		prevX, prevY = nextX, nextY
	}
}

func f32(v float64) float32 { return float32(v) }
