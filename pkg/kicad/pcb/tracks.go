package pcb

import (
	"github.com/OpenTraceLab/kifan/pkg/kicad/sexp"
)

// defaultTrackWidth applies to segments written without (width ...).
const defaultTrackWidth = 0.15

// segment decodes (segment (start x y) (end x y) (width w) (layer "F.Cu")
// (net n) ...).
func (d *decoder) segment(n sexp.Node) (Track, error) {
	var (
		t   Track
		err error
	)
	if t.Start, err = childPoint(n, "start"); err != nil {
		return Track{}, err
	}
	if t.End, err = childPoint(n, "end"); err != nil {
		return Track{}, err
	}
	if t.Width, err = optionalFloat(n, "width", defaultTrackWidth); err != nil {
		return Track{}, err
	}
	if t.Layer, err = requiredText(n, "layer"); err != nil {
		return Track{}, err
	}
	t.Net = d.netOf(n)
	t.Locked = n.Flag("locked")
	t.UUID = itemID(n)
	return t, nil
}

// via decodes (via [blind|micro] (at x y) (size d) (drill d)
// (layers "F.Cu" "B.Cu") (net n) ...).
func (d *decoder) via(n sexp.Node) (Via, error) {
	var (
		v   Via
		err error
	)
	at, err := n.Require("at")
	if err != nil {
		return Via{}, err
	}
	if v.Position, err = point(at); err != nil {
		return Via{}, err
	}
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"size", &v.Size},
		{"drill", &v.Drill},
	} {
		c, err := n.Require(f.name)
		if err != nil {
			return Via{}, err
		}
		if *f.dst, err = c.Float(1); err != nil {
			return Via{}, err
		}
	}
	layers, err := n.Require("layers")
	if err != nil {
		return Via{}, err
	}
	v.Layers = LayerSet(layers.Atoms())
	v.Net = d.netOf(n)
	v.Locked = n.Flag("locked")
	v.UUID = itemID(n)
	return v, nil
}
