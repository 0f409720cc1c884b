package fanout

// Test doubles shared by the package tests.

type testPad struct {
	pos       Point
	connected bool
	angle     float64
	layer     string
	net       int
}

func (p testPad) Position() Point      { return p.pos }
func (p testPad) IsConnected() bool    { return p.connected }
func (p testPad) Orientation() float64 { return p.angle }
func (p testPad) Layer() string        { return p.layer }
func (p testPad) Net() int             { return p.net }

type testComponent struct {
	origin Point
	pads   []Pad
	calls  int
}

func (c *testComponent) Position() Point { return c.origin }

func (c *testComponent) Pads() []Pad {
	c.calls++
	return c.pads
}

func connectedPad(x, y int64) testPad {
	return testPad{pos: Point{X: x, Y: y}, connected: true, layer: "F.Cu", net: 1}
}

func validConfig(style Style) Config {
	return Config{
		Style:       style,
		TraceLength: 250,
		TraceWidth:  150,
		ViaDiameter: 600,
		ViaDrill:    300,
		ViaLayers:   LayerPair{From: "F.Cu", To: "In1.Cu"},
	}
}
