package pcb

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// Layer is one entry of the (layers ...) table, as in (0 "F.Cu" signal).
type Layer struct {
	Number int
	Name   string
	Type   string // signal, power, mixed, jumper or user
}

// IsCopper reports whether the layer carries copper.
func (l Layer) IsCopper() bool {
	switch l.Type {
	case "signal", "power", "mixed", "jumper":
		return true
	}
	return strings.HasSuffix(l.Name, ".Cu")
}

// Net is an entry of the net table. Net 0 with an empty name is KiCad's
// "no net".
type Net struct {
	Number int
	Name   string
}

// LayerSet is the layer list of a pad or via. Pads may use wildcards such
// as "*.Cu" or "F&B.Cu".
type LayerSet []string

// Has reports whether name appears literally in the set.
func (s LayerSet) Has(name string) bool {
	return slices.Contains(s, name)
}

// LayerMap indexes a layer table by name and number.
type LayerMap struct {
	layers   []Layer
	byName   map[string]int
	byNumber map[int]int
}

// NewLayerMap indexes layers. Later duplicates win.
func NewLayerMap(layers []Layer) *LayerMap {
	m := &LayerMap{
		layers:   layers,
		byName:   make(map[string]int, len(layers)),
		byNumber: make(map[int]int, len(layers)),
	}
	for i, l := range layers {
		m.byName[l.Name] = i
		m.byNumber[l.Number] = i
	}
	return m
}

// ByName looks up a layer such as "F.Cu".
func (m *LayerMap) ByName(name string) (Layer, bool) {
	i, ok := m.byName[name]
	if !ok {
		return Layer{}, false
	}
	return m.layers[i], true
}

// ByNumber looks up a layer by its ordinal.
func (m *LayerMap) ByNumber(num int) (Layer, bool) {
	i, ok := m.byNumber[num]
	if !ok {
		return Layer{}, false
	}
	return m.layers[i], true
}

// IsCopper reports whether the board defines name as a copper layer.
func (m *LayerMap) IsCopper(name string) bool {
	l, ok := m.ByName(name)
	return ok && l.IsCopper()
}

// Copper returns the copper layer names from front to back. KiCad 9
// renumbered B.Cu to 2, so the outer layers are placed explicitly and inner
// layers follow their numbers.
func (m *LayerMap) Copper() []string {
	var copper []Layer
	for _, l := range m.layers {
		if l.IsCopper() {
			copper = append(copper, l)
		}
	}
	rank := func(l Layer) int {
		switch l.Name {
		case "F.Cu":
			return math.MinInt
		case "B.Cu":
			return math.MaxInt
		}
		return l.Number
	}
	slices.SortFunc(copper, func(a, b Layer) int { return cmp.Compare(rank(a), rank(b)) })

	names := make([]string, len(copper))
	for i, l := range copper {
		names[i] = l.Name
	}
	return names
}

// NetMap indexes a net table by number and name.
type NetMap struct {
	byNumber map[int]*Net
	byName   map[string]*Net
}

// NewNetMap indexes nets. The returned pointers alias the slice elements.
// The empty name of net 0 is not indexed.
func NewNetMap(nets []Net) *NetMap {
	m := &NetMap{
		byNumber: make(map[int]*Net, len(nets)),
		byName:   make(map[string]*Net, len(nets)),
	}
	for i := range nets {
		n := &nets[i]
		m.byNumber[n.Number] = n
		if n.Name != "" {
			m.byName[n.Name] = n
		}
	}
	return m
}

// ByNumber looks up a net by number.
func (m *NetMap) ByNumber(num int) (*Net, bool) {
	n, ok := m.byNumber[num]
	return n, ok
}

// ByName looks up a net such as "GND".
func (m *NetMap) ByName(name string) (*Net, bool) {
	n, ok := m.byName[name]
	return n, ok
}
