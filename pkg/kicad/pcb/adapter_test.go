package pcb

import (
	"testing"

	"github.com/OpenTraceLab/kifan/pkg/fanout"
)

func TestToNM(t *testing.T) {
	tests := []struct {
		mm   float64
		want int64
	}{
		{0, 0},
		{1, 1_000_000},
		{0.25, 250_000},
		{-2.54, -2_540_000},
		{122.54, 122_540_000},
	}

	for _, tt := range tests {
		if got := ToNM(tt.mm); got != tt.want {
			t.Errorf("ToNM(%v) = %v, want %v", tt.mm, got, tt.want)
		}
	}
}

func TestPositionRoundTrip(t *testing.T) {
	p := fanout.Point{X: 98_750_000, Y: -50_000_000}
	if got := PointNM(PositionMM(p)); got != p {
		t.Errorf("PointNM(PositionMM(%v)) = %v", p, got)
	}
}

func TestFootprintView(t *testing.T) {
	board := parseFixture(t)
	view := Component(board.FootprintByRef("U1"))

	if got, want := view.Position(), (fanout.Point{X: 100_000_000, Y: 50_000_000}); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}

	tests := []struct {
		pos       fanout.Point
		connected bool
		net       int
	}{
		{fanout.Point{X: 99_000_000, Y: 50_000_000}, true, 1},
		{fanout.Point{X: 101_000_000, Y: 50_000_000}, true, 2},
		{fanout.Point{X: 100_000_000, Y: 49_000_000}, true, 3},
		{fanout.Point{X: 100_000_000, Y: 51_000_000}, false, 0},
	}

	pads := view.Pads()
	if len(pads) != len(tests) {
		t.Fatalf("len(Pads()) = %v, want %v", len(pads), len(tests))
	}
	for i, tt := range tests {
		pad := pads[i]
		if got := pad.Position(); got != tt.pos {
			t.Errorf("pad %d Position() = %v, want %v", i+1, got, tt.pos)
		}
		if got := pad.IsConnected(); got != tt.connected {
			t.Errorf("pad %d IsConnected() = %v, want %v", i+1, got, tt.connected)
		}
		if got := pad.Net(); got != tt.net {
			t.Errorf("pad %d Net() = %v, want %v", i+1, got, tt.net)
		}
		if got := pad.Layer(); got != "F.Cu" {
			t.Errorf("pad %d Layer() = %v, want F.Cu", i+1, got)
		}
	}
}

func TestRotatedBackSideFootprint(t *testing.T) {
	board := parseFixture(t)
	view := Component(board.FootprintByRef("J1"))
	pads := view.Pads()

	pad2 := pads[1].(*PadView)
	if got, want := pad2.Position(), (fanout.Point{X: 122_540_000, Y: 60_000_000}); got != want {
		t.Errorf("J1 pad 2 Position() = %v, want %v", got, want)
	}
	if pad2.IsConnected() {
		t.Error("J1 pad 2 is on net 0 and should not be connected")
	}
	if pad2.Pad().Number != "2" || pad2.Footprint().Reference != "J1" {
		t.Errorf("PadView wraps pad %q of %q", pad2.Pad().Number, pad2.Footprint().Reference)
	}
	if got := pads[0].Orientation(); got != 90 {
		t.Errorf("J1 pad 1 Orientation() = %v, want 90", got)
	}
	if got := pads[0].Layer(); got != "B.Cu" {
		t.Errorf("J1 pad 1 Layer() = %v, want B.Cu", got)
	}
}

func TestPadCopperLayer(t *testing.T) {
	tests := []struct {
		name   string
		fpSide string
		layers LayerSet
		want   string
	}{
		{"front smd", "F.Cu", LayerSet{"F.Cu", "F.Paste", "F.Mask"}, "F.Cu"},
		{"back smd", "B.Cu", LayerSet{"B.Cu", "B.Paste", "B.Mask"}, "B.Cu"},
		{"wildcard on front", "F.Cu", LayerSet{"*.Cu", "*.Mask"}, "F.Cu"},
		{"wildcard on back", "B.Cu", LayerSet{"*.Cu", "*.Mask"}, "B.Cu"},
		{"front and back", "B.Cu", LayerSet{"F&B.Cu", "*.Mask"}, "B.Cu"},
		{"mask first", "F.Cu", LayerSet{"F.Mask", "In2.Cu"}, "In2.Cu"},
		{"no copper", "F.Cu", LayerSet{"F.Mask"}, "F.Cu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &Footprint{Layer: tt.fpSide}
			pad := &Pad{Layers: tt.layers}
			if got := PadCopperLayer(fp, pad); got != tt.want {
				t.Errorf("PadCopperLayer() = %v, want %v", got, tt.want)
			}
		})
	}
}
