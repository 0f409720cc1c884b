// Package pins extracts per-component pin and net listings from a board.
//
// Components are described by their general properties (reference, value,
// footprint, description, placement, connector type) and the net of every
// pad. Filters narrow the component set; pin options drop unconnected or
// free pins from the listing.
package pins

import (
	"slices"
	"strings"

	"github.com/OpenTraceLab/kifan/pkg/kicad/pcb"
)

// ConnectorTypeProperty is the footprint field that classifies connectors.
const ConnectorTypeProperty = "connector-type"

// unconnectedPrefix starts the net names KiCad gives to single-pad nets,
// e.g. "unconnected-(U1-NC-Pad4)".
const unconnectedPrefix = "unconnected"

// Pin is one pad of a component.
type Pin struct {
	Number string `json:"number" yaml:"number"`
	Net    string `json:"net" yaml:"net"`
}

// Position is a placement in millimetres.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Component is the extracted view of one footprint.
type Component struct {
	Reference     string   `json:"reference" yaml:"reference"`
	Value         string   `json:"value" yaml:"value"`
	Footprint     string   `json:"footprint" yaml:"footprint"`
	Description   string   `json:"description" yaml:"description"`
	Layer         string   `json:"layer" yaml:"layer"`
	Position      Position `json:"position" yaml:"position"`
	Rotation      float64  `json:"rotation" yaml:"rotation"`
	ConnectorType string   `json:"connector_type,omitempty" yaml:"connector_type,omitempty"`
	Pins          []Pin    `json:"pins" yaml:"pins"`
}

// Filter selects components. Empty fields match everything.
type Filter struct {
	// Value matches a case-insensitive substring of the component value.
	Value string
	// Net keeps components with at least one pad whose net name contains
	// this case-insensitive substring.
	Net string
	// ConnectorTypes keeps components whose connector-type property equals
	// one of these, ignoring case and surrounding space.
	ConnectorTypes []string
	// RefPrefix keeps references starting with this prefix, e.g. "J".
	RefPrefix string
}

// Options controls extraction.
type Options struct {
	Filter

	// IgnoreUnconnected drops pins on KiCad's auto-named "unconnected" nets.
	IgnoreUnconnected bool
	// IgnoreFree drops pins without a net.
	IgnoreFree bool
}

// ParseList splits a comma separated list, dropping empty entries.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Match reports whether fp passes every filter.
func (f Filter) Match(fp *pcb.Footprint) bool {
	if f.RefPrefix != "" && !strings.HasPrefix(fp.Reference, f.RefPrefix) {
		return false
	}
	if f.Value != "" && !containsFold(fp.Value, f.Value) {
		return false
	}
	if len(f.ConnectorTypes) > 0 {
		ct, ok := fp.Properties[ConnectorTypeProperty]
		if !ok {
			return false
		}
		ct = strings.TrimSpace(ct)
		if !slices.ContainsFunc(f.ConnectorTypes, func(want string) bool {
			return strings.EqualFold(strings.TrimSpace(want), ct)
		}) {
			return false
		}
	}
	if f.Net != "" {
		return slices.ContainsFunc(fp.Pads, func(pad pcb.Pad) bool {
			return pad.Net != nil && containsFold(pad.Net.Name, f.Net)
		})
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

// Extract builds the component listing for the footprints that pass
// opts.Filter, keeping the input order.
func Extract(fps []*pcb.Footprint, opts Options) []Component {
	var out []Component
	for _, fp := range fps {
		if !opts.Match(fp) {
			continue
		}
		out = append(out, extract(fp, opts))
	}
	return out
}

func extract(fp *pcb.Footprint, opts Options) Component {
	c := Component{
		Reference:     fp.Reference,
		Value:         fp.Value,
		Footprint:     fp.ID(),
		Description:   description(fp.Description),
		Layer:         fp.Layer,
		Position:      Position{X: fp.Position.X, Y: fp.Position.Y},
		Rotation:      float64(fp.Position.Angle),
		ConnectorType: strings.TrimSpace(fp.Properties[ConnectorTypeProperty]),
		Pins:          []Pin{},
	}

	for _, pad := range fp.Pads {
		free := pad.Net == nil || pad.Net.Number == 0
		name := ""
		if pad.Net != nil {
			name = pad.Net.Name
		}
		if opts.IgnoreFree && free {
			continue
		}
		if opts.IgnoreUnconnected && IsUnconnectedNet(name) {
			continue
		}
		c.Pins = append(c.Pins, Pin{Number: pad.Number, Net: name})
	}
	return c
}

func description(d string) string {
	if d == "" || d == "No description" {
		return "N/A"
	}
	return d
}

// IsUnconnectedNet reports whether name is one of KiCad's generated
// "unconnected-..." net names.
func IsUnconnectedNet(name string) bool {
	return len(name) >= len(unconnectedPrefix) &&
		strings.EqualFold(name[:len(unconnectedPrefix)], unconnectedPrefix)
}

// SortByReference orders components naturally by reference (J1, J2, J10).
func SortByReference(cs []Component) {
	slices.SortStableFunc(cs, func(a, b Component) int {
		return NaturalCompare(a.Reference, b.Reference)
	})
}

// UniqueNets returns the distinct non-empty net names across all listed
// pins, naturally sorted.
func UniqueNets(cs []Component) []string {
	seen := make(map[string]struct{})
	var nets []string
	for _, c := range cs {
		for _, p := range c.Pins {
			if p.Net == "" {
				continue
			}
			if _, ok := seen[p.Net]; ok {
				continue
			}
			seen[p.Net] = struct{}{}
			nets = append(nets, p.Net)
		}
	}
	slices.SortFunc(nets, NaturalCompare)
	return nets
}
