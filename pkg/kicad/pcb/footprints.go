package pcb

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/kifan/pkg/kicad/sexp"
)

// footprint decodes (footprint "lib:name" (layer ..) (at ..) ...). Pads that
// fail to decode are logged and dropped.
func (d *decoder) footprint(n sexp.Node) (Footprint, error) {
	id, err := n.Text(1)
	if err != nil {
		return Footprint{}, err
	}
	fp := Footprint{Name: id, Properties: map[string]string{}, UUID: itemID(n)}
	if lib, name, ok := strings.Cut(id, ":"); ok && lib != "" {
		fp.Library, fp.Name = lib, name
	}

	if fp.Layer, err = requiredText(n, "layer"); err != nil {
		return Footprint{}, err
	}
	if fp.Position, err = placement(n); err != nil {
		return Footprint{}, err
	}
	fp.Description, _ = n.ChildText("descr")

	// KiCad 8 keeps every field in (property "Key" "Value" ...)
	for _, p := range n.Children("property") {
		key, kerr := p.Text(1)
		value, verr := p.Text(2)
		if kerr != nil || verr != nil {
			continue
		}
		fp.Properties[key] = value
	}
	fp.Reference = fp.Properties["Reference"]
	fp.Value = fp.Properties["Value"]

	// KiCad 6 and 7 write (fp_text reference "R1" ...) instead
	for _, t := range n.Children("fp_text") {
		text := t.TextOr(2, "")
		switch t.TextOr(1, "") {
		case "reference":
			if fp.Reference == "" {
				fp.Reference = text
			}
		case "value":
			if fp.Value == "" {
				fp.Value = text
			}
		}
	}

	for _, p := range n.Children("pad") {
		pad, err := d.pad(p)
		if err != nil {
			d.logger.Warn("skipping pad", "footprint", fp.Reference, "pad", p.TextOr(1, "?"), "err", err)
			continue
		}
		fp.Pads = append(fp.Pads, pad)
	}
	return fp, nil
}

// pad decodes (pad "1" smd rect (at x y [a]) (size w h) (layers ...) ...).
func (d *decoder) pad(n sexp.Node) (Pad, error) {
	var (
		pad Pad
		err error
	)
	if pad.Number, err = n.Text(1); err != nil {
		return Pad{}, err
	}
	if pad.Type, err = n.Text(2); err != nil {
		return Pad{}, err
	}
	if pad.Shape, err = n.Text(3); err != nil {
		return Pad{}, err
	}
	if pad.Position, err = placement(n); err != nil {
		return Pad{}, err
	}

	size, err := n.Require("size")
	if err != nil {
		return Pad{}, err
	}
	if pad.Size.Width, pad.Size.Height, err = size.XY(); err != nil {
		return Pad{}, fmt.Errorf("pad size: %w", err)
	}

	// (drill 1) or (drill oval 1.2 0.8); the first number is the drill
	// diameter or the slot width
	if drill, ok := n.Child("drill"); ok {
		for i := 1; i < drill.Len(); i++ {
			if v, err := drill.Float(i); err == nil {
				pad.Drill = v
				break
			}
		}
	}

	layers, err := n.Require("layers")
	if err != nil {
		return Pad{}, err
	}
	pad.Layers = LayerSet(layers.Atoms())
	pad.Net = d.netOf(n)
	return pad, nil
}
