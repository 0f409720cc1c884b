package pcb

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/kifan/pkg/errors"
	"github.com/OpenTraceLab/kifan/pkg/fanout"
	"github.com/OpenTraceLab/kifan/pkg/kicad/sexp/kicadsexp"
)

// newID generates identifiers for inserted items.
var newID = uuid.NewString

// ApplyFanout turns planned results into (segment ...) and (via ...) nodes
// ready to be inserted into this board's file. All results are checked
// before any node is built: layers must be copper layers of the board and
// nets must exist in its net table.
func (b *Board) ApplyFanout(results []fanout.Result) ([]kicadsexp.Sexp, error) {
	for i, r := range results {
		if err := b.checkResult(r); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "fan-out result %d cannot be applied", i)
		}
	}

	items := make([]kicadsexp.Sexp, 0, 2*len(results))
	for _, r := range results {
		items = append(items, b.segmentNode(r.Track), b.viaNode(r.Via))
	}
	return items, nil
}

func (b *Board) checkResult(r fanout.Result) error {
	layers := b.LayerMap()
	for _, name := range []string{r.Track.Layer, r.Via.From, r.Via.To} {
		if _, ok := layers.ByName(name); !ok {
			return fmt.Errorf("layer %q is not defined on the board", name)
		}
		if !layers.IsCopper(name) {
			return fmt.Errorf("layer %q is not a copper layer", name)
		}
	}
	for _, net := range []int{r.Track.Net, r.Via.Net} {
		if _, ok := b.NetMap().ByNumber(net); !ok && len(b.Nets) > 0 {
			return fmt.Errorf("net %d is not defined on the board", net)
		}
	}
	return nil
}

func mm(nm int64) float64 {
	return float64(nm) / MMToNanometers
}

func (b *Board) idNode() *kicadsexp.List {
	if b.Version >= UUIDTokenVersion {
		return kicadsexp.Node("uuid", kicadsexp.Quoted(newID()))
	}
	return kicadsexp.Node("tstamp", newID())
}

func (b *Board) segmentNode(t fanout.Track) *kicadsexp.List {
	return kicadsexp.Node("segment",
		kicadsexp.Node("start", mm(t.Start.X), mm(t.Start.Y)),
		kicadsexp.Node("end", mm(t.End.X), mm(t.End.Y)),
		kicadsexp.Node("width", t.Width/MMToNanometers),
		kicadsexp.Node("layer", kicadsexp.Quoted(t.Layer)),
		kicadsexp.Node("net", t.Net),
		b.idNode(),
	)
}

func (b *Board) viaNode(v fanout.Via) *kicadsexp.List {
	node := kicadsexp.Node("via")
	// Anything other than an outer-to-outer via is blind or buried
	if !isThroughPair(v.From, v.To) {
		node.Append(kicadsexp.Symbol("blind"))
	}
	return node.Append(
		kicadsexp.Node("at", mm(v.Position.X), mm(v.Position.Y)),
		kicadsexp.Node("size", v.Diameter/MMToNanometers),
		kicadsexp.Node("drill", v.Drill/MMToNanometers),
		kicadsexp.Node("layers", kicadsexp.Quoted(v.From), kicadsexp.Quoted(v.To)),
		kicadsexp.Node("net", v.Net),
		b.idNode(),
	)
}

func isThroughPair(from, to string) bool {
	return (from == "F.Cu" && to == "B.Cu") || (from == "B.Cu" && to == "F.Cu")
}

// InsertItems splices items into a board file just before the closing paren
// of the root list. Every existing byte is kept as is.
func InsertItems(src []byte, items []kicadsexp.Sexp) ([]byte, error) {
	end := bytes.LastIndexByte(bytes.TrimRight(src, " \t\r\n"), ')')
	if end < 0 {
		return nil, errors.New(errors.ErrCodeInvalidBoard, "board file has no closing parenthesis")
	}
	if len(items) == 0 {
		return src, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(src) + 128*len(items))
	buf.Write(src[:end])
	if end > 0 && src[end-1] != '\n' {
		buf.WriteByte('\n')
	}
	for _, item := range items {
		buf.WriteByte('\t')
		buf.WriteString(item.String())
		buf.WriteByte('\n')
	}
	buf.Write(src[end:])
	return buf.Bytes(), nil
}

// WriteFile writes data next to path and renames it into place, so readers
// never observe a partially written board.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to create temporary file in %s", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", tmpName)
	}
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to set mode of %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to replace %s", path)
	}
	return nil
}
