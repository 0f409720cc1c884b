package pcb

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/kifan/pkg/kicad/sexp"
	"github.com/OpenTraceLab/kifan/pkg/kicad/sexp/kicadsexp"
)

// MinSupportedVersion is the KiCad 6.0 file format.
const MinSupportedVersion = 20211014

// UUIDTokenVersion is the first format version that writes (uuid ...) on
// board items; older files use (tstamp ...).
const UUIDTokenVersion = 20240108

// Option configures board parsing.
type Option func(*decoder)

// WithLogger routes debug output and warnings about skipped items to
// logger.
func WithLogger(logger *log.Logger) Option {
	return func(d *decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// decoder turns the root list into a Board. Footprints, pads, graphics and
// zones that fail to decode are logged and skipped; a bad header, layer
// table, net table, segment or via fails the whole board.
type decoder struct {
	logger *log.Logger
	nets   *NetMap
}

// ParseFile reads a .kicad_pcb file.
func ParseFile(path string, opts ...Option) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, opts...)
}

// Parse reads a board from r. Only the first top-level expression is read.
func Parse(r io.Reader, opts ...Option) (*Board, error) {
	d := &decoder{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(d)
	}

	x, err := kicadsexp.NewDecoder(r).Decode()
	if err == io.EOF {
		return nil, fmt.Errorf("empty board file")
	}
	if err != nil {
		return nil, fmt.Errorf("malformed board file: %w", err)
	}
	root, ok := sexp.Wrap(x)
	if !ok || root.Name() != "kicad_pcb" {
		return nil, fmt.Errorf("not a KiCad board: file starts with %.40s", x.String())
	}
	return d.board(root)
}

func (d *decoder) board(root sexp.Node) (*Board, error) {
	version, generator, err := header(root)
	if err != nil {
		return nil, err
	}
	b := &Board{Version: version, Generator: generator}

	if g, ok := root.Child("general"); ok {
		if b.General.Thickness, err = optionalFloat(g, "thickness", 0); err != nil {
			return nil, err
		}
		titleBlock(g, &b.General)
	}
	// KiCad 6 moved the title fields into their own block
	if tb, ok := root.Child("title_block"); ok {
		titleBlock(tb, &b.General)
	}

	if l, ok := root.Child("layers"); ok {
		if b.Layers, err = layerTable(l); err != nil {
			return nil, err
		}
	}
	if b.Nets, err = netTable(root); err != nil {
		return nil, err
	}
	d.nets = b.NetMap()

	b.Graphics = d.graphics(root)
	if b.Tracks, err = strict(root.Children("segment"), d.segment); err != nil {
		return nil, err
	}
	if b.Vias, err = strict(root.Children("via"), d.via); err != nil {
		return nil, err
	}
	b.Footprints = lenient(d.logger, root.Children("footprint"), d.footprint)
	for _, zs := range lenient(d.logger, root.Children("zone"), d.zone) {
		b.Zones = append(b.Zones, zs...)
	}

	d.logger.Debug("parsed board",
		"version", b.Version,
		"layers", len(b.Layers),
		"nets", len(b.Nets),
		"footprints", len(b.Footprints),
		"tracks", len(b.Tracks),
		"vias", len(b.Vias),
		"zones", len(b.Zones))
	return b, nil
}

// strict decodes every node and stops at the first failure.
func strict[T any](nodes []sexp.Node, decode func(sexp.Node) (T, error)) ([]T, error) {
	out := make([]T, 0, len(nodes))
	for i, n := range nodes {
		v, err := decode(n)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", n.Name(), i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// lenient decodes every node, logging and dropping the ones that fail.
func lenient[T any](logger *log.Logger, nodes []sexp.Node, decode func(sexp.Node) (T, error)) []T {
	out := make([]T, 0, len(nodes))
	for i, n := range nodes {
		v, err := decode(n)
		if err != nil {
			logger.Warn("skipping "+n.Name(), "index", i, "err", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// header reads (version N) and the generator, which KiCad 6 wrote as
// (host pcbnew "6.0.0") and later versions as (generator "pcbnew").
func header(root sexp.Node) (int, string, error) {
	v, err := root.Require("version")
	if err != nil {
		return 0, "", err
	}
	version, err := v.Int(1)
	if err != nil {
		return 0, "", err
	}
	if version < MinSupportedVersion {
		return 0, "", fmt.Errorf("board format %d predates KiCad 6 (%d)", version, MinSupportedVersion)
	}

	generator := "unknown"
	if g, ok := root.ChildText("host"); ok {
		generator = g
	} else if g, ok := root.ChildText("generator"); ok {
		generator = g
	}
	return version, generator, nil
}

func titleBlock(n sexp.Node, g *General) {
	for key, dst := range map[string]*string{
		"title":   &g.Title,
		"date":    &g.Date,
		"rev":     &g.Revision,
		"company": &g.Company,
	} {
		if v, ok := n.ChildText(key); ok {
			*dst = v
		}
	}
}

// layerTable reads (layers (0 "F.Cu" signal) (31 "B.Cu" signal) ...). The
// optional user name after the type is ignored.
func layerTable(n sexp.Node) ([]Layer, error) {
	entries := n.Lists()
	if len(entries) == 0 {
		return nil, fmt.Errorf("(layers): empty layer table")
	}
	layers := make([]Layer, 0, len(entries))
	for _, e := range entries {
		num, err := e.Int(0)
		if err != nil {
			return nil, fmt.Errorf("layer number: %w", err)
		}
		name, err := e.Text(1)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", num, err)
		}
		layers = append(layers, Layer{Number: num, Name: name, Type: e.TextOr(2, "user")})
	}
	return layers, nil
}

// netTable reads the top-level (net N "name") entries.
func netTable(root sexp.Node) ([]Net, error) {
	nodes := root.Children("net")
	nets := make([]Net, 0, len(nodes))
	for _, n := range nodes {
		num, err := n.Int(1)
		if err != nil {
			return nil, fmt.Errorf("net table: %w", err)
		}
		nets = append(nets, Net{Number: num, Name: n.TextOr(2, "")})
	}
	return nets, nil
}

// netOf resolves a (net N) child against the net table. A missing child or
// an unknown number yields nil.
func (d *decoder) netOf(n sexp.Node) *Net {
	c, ok := n.Child("net")
	if !ok || d.nets == nil {
		return nil
	}
	num, err := c.Int(1)
	if err != nil {
		return nil
	}
	net, _ := d.nets.ByNumber(num)
	return net
}

func point(n sexp.Node) (Position, error) {
	x, y, err := n.XY()
	return Position{X: x, Y: y}, err
}

// childPoint reads a required (name x y) child.
func childPoint(n sexp.Node, name string) (Position, error) {
	c, err := n.Require(name)
	if err != nil {
		return Position{}, err
	}
	return point(c)
}

// placement reads a required (at x y [angle]) child.
func placement(n sexp.Node) (PositionAngle, error) {
	at, err := n.Require("at")
	if err != nil {
		return PositionAngle{}, err
	}
	p, err := point(at)
	if err != nil {
		return PositionAngle{}, err
	}
	a, _ := at.Float(3)
	return PositionAngle{Position: p, Angle: Angle(a)}, nil
}

// optionalFloat reads (name v), returning def when the child is absent.
func optionalFloat(n sexp.Node, name string, def float64) (float64, error) {
	c, ok := n.Child(name)
	if !ok {
		return def, nil
	}
	return c.Float(1)
}

// requiredText reads the value of a required (name "value") child.
func requiredText(n sexp.Node, name string) (string, error) {
	c, err := n.Require(name)
	if err != nil {
		return "", err
	}
	return c.Text(1)
}

// points reads the (xy x y) entries of a (pts ...) list.
func points(pts sexp.Node) []Position {
	var out []Position
	for _, xy := range pts.Children("xy") {
		if p, err := point(xy); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// itemID reads (uuid ...) or the legacy (tstamp ...).
func itemID(n sexp.Node) UUID {
	for _, key := range []string{"uuid", "tstamp"} {
		if id, ok := n.ChildText(key); ok {
			return UUID(id)
		}
	}
	return ""
}
