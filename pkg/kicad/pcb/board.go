package pcb

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Board is the part of a .kicad_pcb file that fan-out reads: the layer and
// net tables, footprints with their pads, and existing copper and outline.
type Board struct {
	Version    int    // format version, a date such as 20240108
	Generator  string // "pcbnew" for files saved by KiCad
	General    General
	Layers     []Layer
	Nets       []Net
	Footprints []Footprint
	Graphics   Graphics
	Tracks     []Track
	Vias       []Via
	Zones      []Zone

	layers *LayerMap
	nets   *NetMap
}

// General holds board thickness and the title block.
type General struct {
	Thickness float64
	Title     string
	Date      string
	Revision  string
	Company   string
}

// UUID identifies a board item. Older files carry a shorter tstamp.
type UUID string

// Footprint is a placed component.
type Footprint struct {
	Library     string
	Name        string
	Layer       string // F.Cu or B.Cu
	Position    PositionAngle
	Pads        []Pad
	Reference   string
	Value       string
	Description string
	Properties  map[string]string
	UUID        UUID
}

// ID returns "library:name", or just the name for board-local footprints.
func (fp *Footprint) ID() string {
	if fp.Library == "" {
		return fp.Name
	}
	return fp.Library + ":" + fp.Name
}

// IsBackSide reports whether the footprint sits on the bottom.
func (fp *Footprint) IsBackSide() bool {
	return fp.Layer == "B.Cu"
}

// TransformPosition maps a footprint-relative position to board
// coordinates.
func (fp *Footprint) TransformPosition(rel PositionAngle) Position {
	p := r2.Rotate(rel.Position, fp.Position.Angle.Radians(), Position{})
	return r2.Add(p, fp.Position.Position)
}

// Pad is a footprint pad. Position is relative to the footprint, while the
// angle is the pad's absolute orientation on the board.
type Pad struct {
	Number   string
	Type     string // smd, thru_hole, np_thru_hole, connect
	Shape    string // rect, circle, oval, roundrect, ...
	Position PositionAngle
	Size     Size
	Drill    float64 // 0 for SMD pads
	Layers   LayerSet
	Net      *Net
}

// Track is a copper segment.
type Track struct {
	Start  Position
	End    Position
	Width  float64
	Layer  string
	Net    *Net
	Locked bool
	UUID   UUID
}

// Via is a plated hole between two copper layers.
type Via struct {
	Position Position
	Size     float64
	Drill    float64
	Layers   LayerSet
	Net      *Net
	Locked   bool
	UUID     UUID
}

// Zone is one layer of a copper pour. Multi-layer zones in the file become
// one Zone per layer.
type Zone struct {
	Net     *Net
	Layer   string
	Outline []Position
	Fills   [][]Position
}

// LayerMap returns the board's layer table.
func (b *Board) LayerMap() *LayerMap {
	if b.layers == nil {
		b.layers = NewLayerMap(b.Layers)
	}
	return b.layers
}

// NetMap returns the board's net table.
func (b *Board) NetMap() *NetMap {
	if b.nets == nil {
		b.nets = NewNetMap(b.Nets)
	}
	return b.nets
}

// FootprintByRef returns the footprint with the given reference, or nil.
func (b *Board) FootprintByRef(ref string) *Footprint {
	i := slices.IndexFunc(b.Footprints, func(fp Footprint) bool { return fp.Reference == ref })
	if i < 0 {
		return nil
	}
	return &b.Footprints[i]
}

// NetNames returns the net names in table order, including the empty name
// of net 0.
func (b *Board) NetNames() []string {
	names := make([]string, len(b.Nets))
	for i, n := range b.Nets {
		names[i] = n.Name
	}
	return names
}

// NetInfo lists everything attached to one net.
type NetInfo struct {
	Net    *Net
	Pads   []PadRef
	Tracks []Track
	Vias   []Via
}

// PadRef is a pad together with the footprint that owns it.
type PadRef struct {
	Footprint *Footprint
	Pad       *Pad
}

// Name returns the pad's board-wide name, such as "U1.3".
func (r PadRef) Name() string {
	return r.Footprint.Reference + "." + r.Pad.Number
}

// Position returns the absolute pad centre.
func (r PadRef) Position() Position {
	return r.Footprint.TransformPosition(r.Pad.Position)
}

// Connections gathers the pads, tracks and vias on the named net, or
// returns nil when the board has no such net.
func (b *Board) Connections(name string) *NetInfo {
	net, ok := b.NetMap().ByName(name)
	if !ok {
		return nil
	}
	on := func(n *Net) bool { return n != nil && n.Number == net.Number }

	info := &NetInfo{Net: net}
	for i := range b.Footprints {
		fp := &b.Footprints[i]
		for j := range fp.Pads {
			if on(fp.Pads[j].Net) {
				info.Pads = append(info.Pads, PadRef{Footprint: fp, Pad: &fp.Pads[j]})
			}
		}
	}
	for _, t := range b.Tracks {
		if on(t.Net) {
			info.Tracks = append(info.Tracks, t)
		}
	}
	for _, v := range b.Vias {
		if on(v.Net) {
			info.Vias = append(info.Vias, v)
		}
	}
	return info
}
