package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/kifan/pkg/errors"
	"github.com/OpenTraceLab/kifan/pkg/fanout"
)

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Default().FanoutConfig()
	require.NoError(t, err)

	assert.Equal(t, fanout.Angled, cfg.Style)
	assert.Equal(t, 250_000.0, cfg.TraceLength)
	assert.Equal(t, 150_000.0, cfg.TraceWidth)
	assert.Equal(t, 600_000.0, cfg.ViaDiameter)
	assert.Equal(t, 300_000.0, cfg.ViaDrill)
	assert.Equal(t, fanout.LayerPair{From: "F.Cu", To: "In1.Cu"}, cfg.ViaLayers)
}

func TestLoadYAML(t *testing.T) {
	p, err := LoadYAML(strings.NewReader(`
style: Square Quadrant
angle: 45
trace_length_mm: 0.5
via_layers:
  from: F.Cu
  to: B.Cu
`))
	require.NoError(t, err)

	assert.Equal(t, "Square Quadrant", p.Style)
	assert.Equal(t, 45.0, p.Angle)
	assert.Equal(t, 0.5, p.TraceLengthMM)
	assert.Equal(t, 0.15, p.TraceWidthMM, "missing keys keep defaults")
	assert.Equal(t, "B.Cu", p.ViaLayers.To)

	cfg, err := p.FanoutConfig()
	require.NoError(t, err)
	assert.Equal(t, fanout.SquareQuadrant, cfg.Style)
	assert.Equal(t, 500_000.0, cfg.TraceLength)
}

func TestLoadYAMLEmpty(t *testing.T) {
	p, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), *p)
}

func TestLoadYAMLUnknownKey(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("trace_lenght_mm: 1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestLoadTOML(t *testing.T) {
	p, err := LoadTOML(strings.NewReader(`
style = "diagonal"
via_drill_mm = 0.2
use_pad_orientation = true

[via_layers]
from = "F.Cu"
to = "In2.Cu"
`))
	require.NoError(t, err)

	assert.Equal(t, "diagonal", p.Style)
	assert.Equal(t, 0.2, p.ViaDrillMM)
	assert.True(t, p.UsePadOrientation)
	assert.Equal(t, LayerPair{From: "F.Cu", To: "In2.Cu"}, p.ViaLayers)
}

func TestLoadTOMLUnknownKey(t *testing.T) {
	_, err := LoadTOML(strings.NewReader("colour = \"red\"\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	assert.Contains(t, err.Error(), "colour")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name      string
		path      string
		wantStyle string
		wantCode  errors.Code
	}{
		{name: "yaml", path: write("a.yaml", "style: quadrant\n"), wantStyle: "quadrant"},
		{name: "yml", path: write("b.YML", "style: diagonal\n"), wantStyle: "diagonal"},
		{name: "toml", path: write("c.toml", "style = \"angled\"\n"), wantStyle: "angled"},
		{name: "json rejected", path: write("d.json", "{}"), wantCode: errors.ErrCodeInvalidFormat},
		{name: "missing", path: filepath.Join(dir, "nope.yaml"), wantCode: errors.ErrCodeFileNotFound},
		{name: "broken yaml", path: write("e.yaml", "style: [\n"), wantCode: errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Load(tt.path)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStyle, p.Style)
		})
	}
}

func TestFanoutConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Profile)
		wantCode errors.Code
	}{
		{"unknown style", func(p *Profile) { p.Style = "spiral" }, errors.ErrCodeInvalidStyle},
		{"zero length", func(p *Profile) { p.TraceLengthMM = 0 }, errors.ErrCodeInvalidConfig},
		{"drill too big", func(p *Profile) { p.ViaDrillMM = 0.6 }, errors.ErrCodeInvalidConfig},
		{"same layers", func(p *Profile) { p.ViaLayers.To = "F.Cu" }, errors.ErrCodeInvalidConfig},
		{"nan angle", func(p *Profile) { p.Angle = math.NaN() }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			_, err := p.FanoutConfig()
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
		})
	}
}

func TestNanometreRounding(t *testing.T) {
	assert.Equal(t, 100_000.0, nm(0.1))
	assert.Equal(t, -250_000.0, nm(-0.25))
}

func TestProfileString(t *testing.T) {
	assert.Equal(t, "angled angle=0 length=0.25mm width=0.15mm via=0.6/0.3mm F.Cu->In1.Cu", Default().String())
}
