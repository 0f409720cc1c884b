package pcb

import (
	"fmt"

	"github.com/OpenTraceLab/kifan/pkg/kicad/sexp"
)

// EdgeCutsLayer holds the board outline.
const EdgeCutsLayer = "Edge.Cuts"

// drawing is what every gr_* item carries besides its geometry.
type drawing struct {
	stroke Stroke
	filled bool
	layer  string
}

// readDrawing reads the stroke, fill and layer of a gr_* item. KiCad 6
// files may carry a bare (width w) instead of (stroke ...), and KiCad 8
// shortens (fill (type solid)) to (fill yes).
func readDrawing(n sexp.Node) (drawing, error) {
	dr := drawing{stroke: Stroke{Width: defaultTrackWidth, Type: "solid"}}

	if s, ok := n.Child("stroke"); ok {
		w, err := optionalFloat(s, "width", dr.stroke.Width)
		if err != nil {
			return dr, fmt.Errorf("stroke: %w", err)
		}
		dr.stroke.Width = w
		if t, ok := s.ChildText("type"); ok {
			dr.stroke.Type = t
		}
	} else if w, err := optionalFloat(n, "width", dr.stroke.Width); err == nil {
		dr.stroke.Width = w
	}

	if f, ok := n.Child("fill"); ok {
		kind := f.TextOr(1, "")
		if t, ok := f.ChildText("type"); ok {
			kind = t
		}
		dr.filled = kind == "yes" || kind == "solid"
	}

	var err error
	dr.layer, err = requiredText(n, "layer")
	return dr, err
}

// graphics collects the board-level gr_* drawings.
func (d *decoder) graphics(root sexp.Node) Graphics {
	return Graphics{
		Lines:   lenient(d.logger, root.Children("gr_line"), grLine),
		Circles: lenient(d.logger, root.Children("gr_circle"), grCircle),
		Arcs:    lenient(d.logger, root.Children("gr_arc"), grArc),
		Rects:   lenient(d.logger, root.Children("gr_rect"), grRect),
		Polys:   lenient(d.logger, root.Children("gr_poly"), grPoly),
	}
}

// endpoints reads the required (name x y) children in order.
func endpoints(n sexp.Node, names ...string) ([]Position, error) {
	out := make([]Position, len(names))
	for i, name := range names {
		p, err := childPoint(n, name)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func grLine(n sexp.Node) (GrLine, error) {
	p, err := endpoints(n, "start", "end")
	if err != nil {
		return GrLine{}, err
	}
	dr, err := readDrawing(n)
	if err != nil {
		return GrLine{}, err
	}
	return GrLine{Start: p[0], End: p[1], Stroke: dr.stroke, Layer: dr.layer}, nil
}

func grCircle(n sexp.Node) (GrCircle, error) {
	p, err := endpoints(n, "center", "end")
	if err != nil {
		return GrCircle{}, err
	}
	dr, err := readDrawing(n)
	if err != nil {
		return GrCircle{}, err
	}
	return GrCircle{Center: p[0], End: p[1], Stroke: dr.stroke, Filled: dr.filled, Layer: dr.layer}, nil
}

func grArc(n sexp.Node) (GrArc, error) {
	p, err := endpoints(n, "start", "mid", "end")
	if err != nil {
		return GrArc{}, err
	}
	dr, err := readDrawing(n)
	if err != nil {
		return GrArc{}, err
	}
	return GrArc{Start: p[0], Mid: p[1], End: p[2], Stroke: dr.stroke, Layer: dr.layer}, nil
}

func grRect(n sexp.Node) (GrRect, error) {
	p, err := endpoints(n, "start", "end")
	if err != nil {
		return GrRect{}, err
	}
	dr, err := readDrawing(n)
	if err != nil {
		return GrRect{}, err
	}
	return GrRect{Start: p[0], End: p[1], Stroke: dr.stroke, Filled: dr.filled, Layer: dr.layer}, nil
}

func grPoly(n sexp.Node) (GrPoly, error) {
	pts, err := n.Require("pts")
	if err != nil {
		return GrPoly{}, err
	}
	ps := points(pts)
	if len(ps) < 2 {
		return GrPoly{}, fmt.Errorf("(gr_poly): %d points, need at least 2", len(ps))
	}
	dr, err := readDrawing(n)
	if err != nil {
		return GrPoly{}, err
	}
	return GrPoly{Points: ps, Stroke: dr.stroke, Filled: dr.filled, Layer: dr.layer}, nil
}
