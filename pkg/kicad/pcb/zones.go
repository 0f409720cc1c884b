package pcb

import (
	"fmt"

	"github.com/OpenTraceLab/kifan/pkg/kicad/sexp"
)

// zone decodes a copper pour. A zone on (layers "F.Cu" "B.Cu") becomes one
// Zone per layer, each with the (filled_polygon ...) entries naming that
// layer.
func (d *decoder) zone(n sexp.Node) ([]Zone, error) {
	var layers []string
	if l, ok := n.Child("layers"); ok {
		layers = l.Atoms()
	} else if l, ok := n.ChildText("layer"); ok {
		layers = []string{l}
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("(zone): no layer")
	}

	var outline []Position
	if poly, ok := n.Child("polygon"); ok {
		if pts, ok := poly.Child("pts"); ok {
			outline = points(pts)
		}
	}

	fills := make(map[string][][]Position, len(layers))
	for _, fp := range n.Children("filled_polygon") {
		pts, ok := fp.Child("pts")
		if !ok {
			continue
		}
		layer, ok := fp.ChildText("layer")
		if !ok {
			layer = layers[0]
		}
		fills[layer] = append(fills[layer], points(pts))
	}

	net := d.netOf(n)
	zones := make([]Zone, len(layers))
	for i, layer := range layers {
		zones[i] = Zone{Net: net, Layer: layer, Outline: outline, Fills: fills[layer]}
	}
	return zones, nil
}
