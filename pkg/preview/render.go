// Package preview renders fan-out previews to PNG.
//
// RenderStyle draws the candidate directions of a style, the way the fan-out
// dialog previews it. RenderPlan draws selected footprints with the planned
// tracks and vias on top of the existing copper and the board outline.
package preview

import (
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/OpenTraceLab/kifan/pkg/errors"
	"github.com/OpenTraceLab/kifan/pkg/fanout"
	"github.com/OpenTraceLab/kifan/pkg/kicad/pcb"
)

// maxImageSize bounds either image dimension
const maxImageSize = 16384

// Options controls plan rendering.
type Options struct {
	Width  int
	Height int
	// Fill is the fraction of the image the content spans, 0.9 when zero.
	Fill float64
	// Flip mirrors the view, for looking at back-side footprints.
	Flip bool
}

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 || w > maxImageSize || h > maxImageSize {
		return errors.New(errors.ErrCodeInvalidConfig,
			"image size %dx%d out of range (1..%d)", w, h, maxImageSize)
	}
	return nil
}

// RenderStyle draws a pad with one ray per direction style can produce at
// the given angle.
func RenderStyle(style fanout.Style, angleDegrees float64, size int) (*image.NRGBA, error) {
	if !style.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown fan-out style %d", int(style))
	}
	if err := checkSize(size, size); err != nil {
		return nil, err
	}

	c := NewCanvas(size, size, ColorBackground)
	s := float64(size)
	cx, cy := s/2, s/2
	length := s * 0.35
	width := math.Max(2, s/80)

	for _, ray := range fanout.PreviewRays(style, angleDegrees) {
		// Diagonals are drawn the same length as axis rays
		n := fanout.Norm(ray)
		ex, ey := cx+ray.X/n*length, cy+ray.Y/n*length
		c.StrokeLine(cx, cy, ex, ey, width, ColorRay)
		c.FillCircle(ex, ey, width*2.5, ColorVia)
	}
	c.FillRect(cx, cy, s/8, s/8, 0, ColorPad)

	return c.Image(), nil
}

// RenderPlan draws the footprints and the planned fan-out. The view is fitted
// to the footprints and the planned vias.
func RenderPlan(board *pcb.Board, fps []*pcb.Footprint, results []fanout.Result, opts Options) (*image.NRGBA, error) {
	if err := checkSize(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	if len(fps) == 0 && len(results) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "nothing to preview: no footprints selected")
	}

	bbox := pcb.NewBoundingBox()
	for _, fp := range fps {
		bbox.ExpandBox(fp.GetBoundingBox())
	}
	for _, r := range results {
		bbox.ExpandDisc(pcb.PositionMM(r.Via.Position), r.Via.Diameter/pcb.MMToNanometers/2)
	}

	fill := opts.Fill
	if fill <= 0 || fill > 1 {
		fill = 0.9
	}
	cam := NewCamera(opts.Width, opts.Height)
	cam.FlipView = opts.Flip
	cam.Fit(bbox, fill)

	c := NewCanvas(opts.Width, opts.Height, ColorBackground)
	if board != nil {
		renderOutline(c, cam, board)
		renderTracks(c, cam, board.Tracks)
		renderVias(c, cam, board.Vias)
	}
	for _, fp := range fps {
		renderPads(c, cam, fp)
	}
	renderPlanned(c, cam, results)

	return c.Image(), nil
}

func renderOutline(c *Canvas, cam *Camera, board *pcb.Board) {
	col := LayerColor(pcb.EdgeCutsLayer)
	line := func(a, b pcb.Position, w float64) {
		x1, y1 := cam.WorldToScreen(a)
		x2, y2 := cam.WorldToScreen(b)
		c.StrokeLine(x1, y1, x2, y2, math.Max(1, cam.Scale(w)), col)
	}

	g := board.Graphics
	for _, l := range g.Lines {
		if l.Layer == pcb.EdgeCutsLayer {
			line(l.Start, l.End, l.Stroke.Width)
		}
	}
	for _, a := range g.Arcs {
		if a.Layer == pcb.EdgeCutsLayer {
			line(a.Start, a.Mid, a.Stroke.Width)
			line(a.Mid, a.End, a.Stroke.Width)
		}
	}
	for _, r := range g.Rects {
		if r.Layer == pcb.EdgeCutsLayer {
			cs := r.Corners()
			for i := range cs {
				line(cs[i], cs[(i+1)%len(cs)], r.Stroke.Width)
			}
		}
	}
	for _, p := range g.Polys {
		if p.Layer == pcb.EdgeCutsLayer {
			for i := range p.Points {
				line(p.Points[i], p.Points[(i+1)%len(p.Points)], p.Stroke.Width)
			}
		}
	}
	for _, circle := range g.Circles {
		if circle.Layer == pcb.EdgeCutsLayer {
			x, y := cam.WorldToScreen(circle.Center)
			c.StrokeRing(x, y, cam.Scale(circle.Radius()), math.Max(1, cam.Scale(circle.Stroke.Width)), col)
		}
	}
}

func renderTracks(c *Canvas, cam *Camera, tracks []pcb.Track) {
	for _, t := range tracks {
		x1, y1 := cam.WorldToScreen(t.Start)
		x2, y2 := cam.WorldToScreen(t.End)
		c.StrokeLine(x1, y1, x2, y2, math.Max(1, cam.Scale(t.Width)), LayerColor(t.Layer))
	}
}

func renderVias(c *Canvas, cam *Camera, vias []pcb.Via) {
	for _, v := range vias {
		drawVia(c, cam, v.Position, v.Size, v.Drill)
	}
}

func drawVia(c *Canvas, cam *Camera, pos pcb.Position, size, drill float64) {
	x, y := cam.WorldToScreen(pos)
	radius := math.Max(2, cam.Scale(size/2))
	c.FillCircle(x, y, radius, ColorVia)
	if drillRadius := math.Max(1, cam.Scale(drill/2)); drillRadius < radius {
		c.FillCircle(x, y, drillRadius, ColorDrill)
	}
}

func renderPads(c *Canvas, cam *Camera, fp *pcb.Footprint) {
	for _, pad := range fp.Pads {
		x, y := cam.WorldToScreen(fp.TransformPosition(pad.Position))

		// Pad angles are counter-clockwise while screen Y grows downward
		angle := -float64(pad.Position.Angle)
		if cam.FlipView {
			angle = -angle
		}
		radians := angle * math.Pi / 180.0

		w := math.Max(1, cam.Scale(pad.Size.Width))
		h := math.Max(1, cam.Scale(pad.Size.Height))

		col := ColorPad
		if pad.Net == nil || pad.Net.Number == 0 {
			col = ColorPadFree
		}

		switch pad.Shape {
		case "circle":
			c.FillCircle(x, y, math.Min(w, h)/2, col)
		default:
			c.FillRect(x, y, w, h, radians, col)
		}

		if pad.Drill > 0 {
			c.FillCircle(x, y, math.Max(1, cam.Scale(pad.Drill/2)), ColorDrill)
		}
	}
}

func renderPlanned(c *Canvas, cam *Camera, results []fanout.Result) {
	for _, r := range results {
		start := pcb.PositionMM(r.Track.Start)
		end := pcb.PositionMM(r.Track.End)
		x1, y1 := cam.WorldToScreen(start)
		x2, y2 := cam.WorldToScreen(end)
		width := math.Max(1, cam.Scale(r.Track.Width/pcb.MMToNanometers))
		c.StrokeLine(x1, y1, x2, y2, width, LayerColor(r.Track.Layer))
	}
	for _, r := range results {
		size := r.Via.Diameter / pcb.MMToNanometers
		pos := pcb.PositionMM(r.Via.Position)
		drawVia(c, cam, pos, size, r.Via.Drill/pcb.MMToNanometers)
		x, y := cam.WorldToScreen(pos)
		c.StrokeRing(x, y, math.Max(2, cam.Scale(size/2)), 1, ColorPlanned)
	}
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to encode PNG")
	}
	return nil
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to create %s", path)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", path)
	}
	return nil
}
