// Package config loads fan-out profiles.
//
// A profile holds the same values as the fan-out dialog, in millimetres and
// degrees, and can be stored as YAML or TOML:
//
//	style: square-quadrant
//	angle: 45
//	trace_width_mm: 0.15
//	trace_length_mm: 0.25
//	via_diameter_mm: 0.6
//	via_drill_mm: 0.3
//	via_layers:
//	  from: F.Cu
//	  to: In1.Cu
//
// Keys missing from the file keep their Default values. Unknown keys are
// rejected so typos do not silently fall back to defaults.
package config

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/kifan/pkg/errors"
	"github.com/OpenTraceLab/kifan/pkg/fanout"
)

// LayerPair names the copper layers a via spans.
type LayerPair struct {
	From string `yaml:"from" toml:"from"`
	To   string `yaml:"to" toml:"to"`
}

// Profile is a user-facing fan-out configuration.
type Profile struct {
	Style             string    `yaml:"style" toml:"style"`
	Angle             float64   `yaml:"angle" toml:"angle"`
	TraceWidthMM      float64   `yaml:"trace_width_mm" toml:"trace_width_mm"`
	TraceLengthMM     float64   `yaml:"trace_length_mm" toml:"trace_length_mm"`
	ViaDiameterMM     float64   `yaml:"via_diameter_mm" toml:"via_diameter_mm"`
	ViaDrillMM        float64   `yaml:"via_drill_mm" toml:"via_drill_mm"`
	UsePadOrientation bool      `yaml:"use_pad_orientation" toml:"use_pad_orientation"`
	ViaLayers         LayerPair `yaml:"via_layers" toml:"via_layers"`
}

// Default returns the dialog defaults: an angled fan-out at 0 degrees with
// 0.15 mm tracks 0.25 mm long and 0.6/0.3 mm vias from F.Cu to In1.Cu.
func Default() Profile {
	return Profile{
		Style:         fanout.Angled.String(),
		Angle:         0,
		TraceWidthMM:  0.15,
		TraceLengthMM: 0.25,
		ViaDiameterMM: 0.6,
		ViaDrillMM:    0.3,
		ViaLayers:     LayerPair{From: "F.Cu", To: "In1.Cu"},
	}
}

// Load reads a profile, picking the decoder from the file extension
// (.yaml, .yml or .toml).
func Load(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "profile %s does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to open profile %s", path)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".toml":
		return LoadTOML(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported profile format %q (want .yaml, .yml or .toml)", ext)
	}
}

// LoadYAML decodes a YAML profile on top of Default.
func LoadYAML(r io.Reader) (*Profile, error) {
	p := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to decode YAML profile")
	}
	return &p, nil
}

// LoadTOML decodes a TOML profile on top of Default.
func LoadTOML(r io.Reader) (*Profile, error) {
	p := Default()
	md, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to decode TOML profile")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown profile keys").WithDetails(keys...)
	}
	return &p, nil
}

// FanoutConfig converts the profile to nanometres and validates it.
func (p Profile) FanoutConfig() (fanout.Config, error) {
	style, err := fanout.ParseStyle(p.Style)
	if err != nil {
		return fanout.Config{}, err
	}

	cfg := fanout.Config{
		Style:             style,
		TraceLength:       nm(p.TraceLengthMM),
		TraceWidth:        nm(p.TraceWidthMM),
		ViaDiameter:       nm(p.ViaDiameterMM),
		ViaDrill:          nm(p.ViaDrillMM),
		AngleDegrees:      p.Angle,
		UsePadOrientation: p.UsePadOrientation,
		ViaLayers:         fanout.LayerPair{From: p.ViaLayers.From, To: p.ViaLayers.To},
	}
	if err := cfg.Validate(); err != nil {
		return fanout.Config{}, err
	}
	return cfg, nil
}

// nm converts millimetres to whole nanometres. Non-finite values pass
// through so validation can report them.
func nm(mm float64) float64 {
	return math.Round(mm * 1e6)
}

// String renders the profile on one line for log output.
func (p Profile) String() string {
	return fmt.Sprintf("%s angle=%g length=%gmm width=%gmm via=%g/%gmm %s->%s",
		p.Style, p.Angle, p.TraceLengthMM, p.TraceWidthMM,
		p.ViaDiameterMM, p.ViaDrillMM, p.ViaLayers.From, p.ViaLayers.To)
}
