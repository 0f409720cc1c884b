package pcb

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/kifan/pkg/errors"
	"github.com/OpenTraceLab/kifan/pkg/fanout"
	"github.com/OpenTraceLab/kifan/pkg/kicad/sexp/kicadsexp"
)

const fixedID = "00000000-0000-4000-8000-000000000001"

func fixNewID(t *testing.T) {
	t.Helper()
	orig := newID
	newID = func() string { return fixedID }
	t.Cleanup(func() { newID = orig })
}

func quadrantConfig(to string) fanout.Config {
	return fanout.Config{
		Style:       fanout.Quadrant,
		TraceLength: 250_000,
		TraceWidth:  150_000,
		ViaDiameter: 600_000,
		ViaDrill:    300_000,
		ViaLayers:   fanout.LayerPair{From: "F.Cu", To: to},
	}
}

func planU1(t *testing.T, board *Board, to string) []fanout.Result {
	t.Helper()
	results, err := fanout.PlanAll(Component(board.FootprintByRef("U1")), quadrantConfig(to))
	require.NoError(t, err)
	require.Len(t, results, 3)
	return results
}

func TestApplyFanoutRoundTrip(t *testing.T) {
	board := parseFixture(t)
	results := planU1(t, board, "B.Cu")

	items, err := board.ApplyFanout(results)
	require.NoError(t, err)
	require.Len(t, items, 6)

	out, err := InsertItems([]byte(fixtureBoard), items)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), strings.TrimRight(fixtureBoard, ")\n")),
		"existing content must be kept byte for byte")

	updated, err := Parse(bytes.NewReader(out))
	require.NoError(t, err)
	require.Len(t, updated.Tracks, 4)
	require.Len(t, updated.Vias, 4)
	assert.Len(t, updated.Footprints, 2)

	wantVias := []Position{{X: 98.75, Y: 50}, {X: 101.25, Y: 50}, {X: 100, Y: 48.75}}
	wantNets := []string{"GND", "VCC", "SIG"}
	for i := range wantVias {
		track := updated.Tracks[i+1]
		via := updated.Vias[i+1]

		assert.Equal(t, wantVias[i], track.End, "track %d end", i)
		assert.Equal(t, wantVias[i], via.Position, "via %d position", i)
		assert.Equal(t, 0.15, track.Width)
		assert.Equal(t, "F.Cu", track.Layer)
		require.NotNil(t, track.Net)
		assert.Equal(t, wantNets[i], track.Net.Name)
		require.NotNil(t, via.Net)
		assert.Equal(t, wantNets[i], via.Net.Name)
		assert.Equal(t, 0.6, via.Size)
		assert.Equal(t, 0.3, via.Drill)
		assert.Equal(t, LayerSet{"F.Cu", "B.Cu"}, via.Layers)

		_, err := uuid.Parse(string(via.UUID))
		assert.NoError(t, err, "via %d uuid %q", i, via.UUID)
		_, err = uuid.Parse(string(track.UUID))
		assert.NoError(t, err, "track %d uuid %q", i, track.UUID)
	}
}

func TestApplyFanoutNodes(t *testing.T) {
	fixNewID(t)
	board := parseFixture(t)

	tests := []struct {
		name    string
		to      string
		version int
		wantVia string
		wantSeg string
	}{
		{
			name:    "through via with uuid",
			to:      "B.Cu",
			version: 20240108,
			wantSeg: `(segment (start 99 50) (end 98.75 50) (width 0.15) (layer "F.Cu") (net 1) (uuid "` + fixedID + `"))`,
			wantVia: `(via (at 98.75 50) (size 0.6) (drill 0.3) (layers "F.Cu" "B.Cu") (net 1) (uuid "` + fixedID + `"))`,
		},
		{
			name:    "blind via",
			to:      "In1.Cu",
			version: 20240108,
			wantSeg: `(segment (start 99 50) (end 98.75 50) (width 0.15) (layer "F.Cu") (net 1) (uuid "` + fixedID + `"))`,
			wantVia: `(via blind (at 98.75 50) (size 0.6) (drill 0.3) (layers "F.Cu" "In1.Cu") (net 1) (uuid "` + fixedID + `"))`,
		},
		{
			name:    "legacy tstamp",
			to:      "B.Cu",
			version: 20221018,
			wantSeg: `(segment (start 99 50) (end 98.75 50) (width 0.15) (layer "F.Cu") (net 1) (tstamp ` + fixedID + `))`,
			wantVia: `(via (at 98.75 50) (size 0.6) (drill 0.3) (layers "F.Cu" "B.Cu") (net 1) (tstamp ` + fixedID + `))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board.Version = tt.version
			items, err := board.ApplyFanout(planU1(t, board, tt.to))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSeg, items[0].String())
			assert.Equal(t, tt.wantVia, items[1].String())
		})
	}
}

func TestApplyFanoutRejects(t *testing.T) {
	board := parseFixture(t)

	result := func(layer, from, to string, net int) fanout.Result {
		return fanout.Result{
			Track: fanout.Track{Layer: layer, Net: net},
			Via:   fanout.Via{From: from, To: to, Net: net},
		}
	}

	tests := []struct {
		name    string
		result  fanout.Result
		wantMsg string
	}{
		{"unknown layer", result("F.Cu", "F.Cu", "In5.Cu", 1), `layer "In5.Cu" is not defined`},
		{"non-copper layer", result("B.SilkS", "F.Cu", "B.Cu", 1), `layer "B.SilkS" is not a copper layer`},
		{"unknown net", result("F.Cu", "F.Cu", "B.Cu", 9), "net 9 is not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := result("F.Cu", "F.Cu", "B.Cu", 1)
			items, err := board.ApplyFanout([]fanout.Result{ok, tt.result})
			require.Error(t, err)
			assert.Nil(t, items, "nothing is built when any result is rejected")
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidBoard))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), "result 1")
		})
	}
}

func TestInsertItems(t *testing.T) {
	item := kicadsexp.Node("gr_text", kicadsexp.Quoted("x"))

	tests := []struct {
		name    string
		src     string
		items   []kicadsexp.Sexp
		want    string
		wantErr bool
	}{
		{
			name:  "closing paren on own line",
			src:   "(kicad_pcb\n\t(version 1)\n)\n",
			items: []kicadsexp.Sexp{item},
			want:  "(kicad_pcb\n\t(version 1)\n\t(gr_text \"x\")\n)\n",
		},
		{
			name:  "single line",
			src:   "(kicad_pcb (version 1))",
			items: []kicadsexp.Sexp{item, item},
			want:  "(kicad_pcb (version 1)\n\t(gr_text \"x\")\n\t(gr_text \"x\")\n)",
		},
		{
			name:  "trailing blank lines kept",
			src:   "(kicad_pcb)\n\n",
			items: []kicadsexp.Sexp{item},
			want:  "(kicad_pcb\n\t(gr_text \"x\")\n)\n\n",
		},
		{
			name: "no items",
			src:  "(kicad_pcb)",
			want: "(kicad_pcb)",
		},
		{
			name:    "no closing paren",
			src:     "kicad_pcb",
			items:   []kicadsexp.Sexp{item},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InsertItems([]byte(tt.src), tt.items)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidBoard))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.kicad_pcb")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, WriteFile(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileMissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "board.kicad_pcb"), []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInternal))
}

func TestWriteFileNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.kicad_pcb")
	require.NoError(t, WriteFile(path, []byte("new")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
