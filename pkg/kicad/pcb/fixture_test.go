package pcb

import (
	"strings"
	"testing"
)

// fixtureBoard is a small KiCad 8 board: a four-pad U1 on the front (pad 4
// unconnected) and a rotated two-pin J1 on the back.
const fixtureBoard = `(kicad_pcb
	(version 20240108)
	(generator "pcbnew")
	(generator_version "8.0")
	(general
		(thickness 1.6)
		(legacy_teardrops no)
	)
	(paper "A4")
	(title_block
		(title "Fanout test")
		(rev "B")
		(company "OpenTraceLab")
	)
	(layers
		(0 "F.Cu" signal)
		(1 "In1.Cu" signal)
		(2 "In2.Cu" power)
		(31 "B.Cu" signal)
		(36 "B.SilkS" user "B.Silkscreen")
		(44 "Edge.Cuts" user)
	)
	(setup
		(pad_to_mask_clearance 0)
	)
	(net 0 "")
	(net 1 "GND")
	(net 2 "VCC")
	(net 3 "SIG")
	(footprint "Package_Test:QUAD-4"
		(layer "F.Cu")
		(uuid "6b1f6a0e-2f5e-4c4e-9f55-0d9f2c1b0a01")
		(at 100 50)
		(descr "Four pad test package")
		(property "Reference" "U1"
			(at 0 -3 0)
			(layer "F.SilkS")
		)
		(property "Value" "MCU"
			(at 0 3 0)
			(layer "F.Fab")
		)
		(pad "1" smd rect (at -1 0) (size 0.5 0.5) (layers "F.Cu" "F.Paste" "F.Mask") (net 1 "GND"))
		(pad "2" smd rect (at 1 0) (size 0.5 0.5) (layers "F.Cu" "F.Paste" "F.Mask") (net 2 "VCC"))
		(pad "3" smd rect (at 0 -1) (size 0.5 0.5) (layers "F.Cu" "F.Paste" "F.Mask") (net 3 "SIG"))
		(pad "4" smd rect (at 0 1) (size 0.5 0.5) (layers "F.Cu" "F.Paste" "F.Mask"))
	)
	(footprint "Connector_PinHeader:PinHeader_1x02"
		(layer "B.Cu")
		(uuid "6b1f6a0e-2f5e-4c4e-9f55-0d9f2c1b0a02")
		(at 120 60 90)
		(property "Reference" "J1"
			(at 0 -2.33 90)
			(layer "B.SilkS")
		)
		(property "Value" "CONN"
			(at 0 4.87 90)
			(layer "B.Fab")
		)
		(property "connector-type" "header")
		(pad "1" thru_hole rect (at 0 0 90) (size 1.7 1.7) (drill 1) (layers "*.Cu" "*.Mask") (net 1 "GND"))
		(pad "2" thru_hole oval (at 0 2.54 90) (size 1.7 1.7) (drill 1) (layers "*.Cu" "*.Mask") (net 0 ""))
	)
	(gr_rect
		(start 90 40)
		(end 130 70)
		(stroke (width 0.1) (type default))
		(fill none)
		(layer "Edge.Cuts")
		(uuid "6b1f6a0e-2f5e-4c4e-9f55-0d9f2c1b0a03")
	)
	(segment (start 99 50) (end 98 50) (width 0.2) (layer "F.Cu") (net 1) (uuid "6b1f6a0e-2f5e-4c4e-9f55-0d9f2c1b0a04"))
	(via (at 98 50) (size 0.6) (drill 0.3) (layers "F.Cu" "B.Cu") (net 1) (uuid "6b1f6a0e-2f5e-4c4e-9f55-0d9f2c1b0a05"))
)
`

func parseFixture(t *testing.T) *Board {
	t.Helper()
	board, err := Parse(strings.NewReader(fixtureBoard))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return board
}
