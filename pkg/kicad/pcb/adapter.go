package pcb

import (
	"math"
	"strings"

	"github.com/OpenTraceLab/kifan/pkg/fanout"
)

// ToNM converts board millimetres to fan-out nanometres.
func ToNM(mm float64) int64 {
	return int64(math.Round(mm * MMToNanometers))
}

// PointNM converts a board position to a fan-out point.
func PointNM(p Position) fanout.Point {
	return fanout.Point{X: ToNM(p.X), Y: ToNM(p.Y)}
}

// PositionMM converts a fan-out point back to board millimetres.
func PositionMM(p fanout.Point) Position {
	return Position{X: float64(p.X) / MMToNanometers, Y: float64(p.Y) / MMToNanometers}
}

// FootprintView presents a footprint to the fan-out planner.
type FootprintView struct {
	fp   *Footprint
	pads []fanout.Pad
}

// Component wraps fp as a fanout.Component. The view reads fp lazily, so fp
// must not be modified while the view is in use.
func Component(fp *Footprint) *FootprintView {
	pads := make([]fanout.Pad, len(fp.Pads))
	for i := range fp.Pads {
		pads[i] = &PadView{footprint: fp, pad: &fp.Pads[i]}
	}
	return &FootprintView{fp: fp, pads: pads}
}

// Footprint returns the wrapped footprint.
func (v *FootprintView) Footprint() *Footprint { return v.fp }

// Position returns the footprint placement origin.
func (v *FootprintView) Position() fanout.Point { return PointNM(v.fp.Position.Position) }

// Pads returns the footprint pads in file order.
func (v *FootprintView) Pads() []fanout.Pad { return v.pads }

// PadView presents one footprint pad to the fan-out planner.
type PadView struct {
	footprint *Footprint
	pad       *Pad
}

// Footprint returns the owning footprint.
func (p *PadView) Footprint() *Footprint { return p.footprint }

// Pad returns the wrapped pad.
func (p *PadView) Pad() *Pad { return p.pad }

// Position returns the absolute pad centre.
func (p *PadView) Position() fanout.Point {
	return PointNM(p.footprint.TransformPosition(p.pad.Position))
}

// IsConnected reports whether the pad sits on a real net. Net 0 is KiCad's
// "no net".
func (p *PadView) IsConnected() bool {
	return p.pad.Net != nil && p.pad.Net.Number != 0
}

// Orientation returns the pad angle. Board files store pad angles already
// including the footprint rotation.
func (p *PadView) Orientation() float64 {
	return float64(p.pad.Position.Angle)
}

// Layer returns the copper layer a fan-out track should use.
func (p *PadView) Layer() string {
	return PadCopperLayer(p.footprint, p.pad)
}

// Net returns the pad's net number, 0 when unconnected.
func (p *PadView) Net() int {
	if p.pad.Net == nil {
		return 0
	}
	return p.pad.Net.Number
}

// PadCopperLayer picks the principal copper layer of a pad. Wildcards such as
// "*.Cu" resolve to the side the footprint is placed on.
func PadCopperLayer(fp *Footprint, pad *Pad) string {
	for _, layer := range pad.Layers {
		if !strings.HasSuffix(layer, ".Cu") {
			continue
		}
		if strings.HasPrefix(layer, "*") || strings.Contains(layer, "&") {
			break
		}
		return layer
	}
	if fp.IsBackSide() {
		return "B.Cu"
	}
	return "F.Cu"
}
