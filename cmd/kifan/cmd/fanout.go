package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/OpenTraceLab/kifan/pkg/config"
	"github.com/OpenTraceLab/kifan/pkg/errors"
	"github.com/OpenTraceLab/kifan/pkg/fanout"
	"github.com/OpenTraceLab/kifan/pkg/kicad/pcb"
)

// profileFlags are the fan-out parameters every planning command accepts.
// They override the loaded profile only when given on the command line.
type profileFlags struct {
	configPath     string
	style          string
	angle          float64
	length         float64
	width          float64
	viaDiameter    float64
	viaDrill       float64
	fromLayer      string
	toLayer        string
	padOrientation bool
}

func (f *profileFlags) register(flags *pflag.FlagSet) {
	def := config.Default()
	flags.StringVarP(&f.configPath, "config", "c", "", "fan-out profile (.yaml, .yml or .toml)")
	flags.StringVarP(&f.style, "style", "s", def.Style, "fan-out style (see 'kifan styles')")
	flags.Float64VarP(&f.angle, "angle", "a", def.Angle, "rotation in degrees")
	flags.Float64Var(&f.length, "length", def.TraceLengthMM, "track length in mm")
	flags.Float64Var(&f.width, "width", def.TraceWidthMM, "track width in mm")
	flags.Float64Var(&f.viaDiameter, "via-diameter", def.ViaDiameterMM, "via pad diameter in mm")
	flags.Float64Var(&f.viaDrill, "via-drill", def.ViaDrillMM, "via drill diameter in mm")
	flags.StringVar(&f.fromLayer, "from-layer", def.ViaLayers.From, "via start layer")
	flags.StringVar(&f.toLayer, "to-layer", def.ViaLayers.To, "via end layer")
	flags.BoolVar(&f.padOrientation, "pad-orientation", def.UsePadOrientation, "angled style follows each pad's orientation")
}

// profile loads the configured profile and applies the flags the user set.
func (f *profileFlags) profile(flags *pflag.FlagSet) (config.Profile, error) {
	p := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return p, err
		}
		p = *loaded
	}

	if flags.Changed("style") {
		p.Style = f.style
	}
	if flags.Changed("angle") {
		p.Angle = f.angle
	}
	if flags.Changed("length") {
		p.TraceLengthMM = f.length
	}
	if flags.Changed("width") {
		p.TraceWidthMM = f.width
	}
	if flags.Changed("via-diameter") {
		p.ViaDiameterMM = f.viaDiameter
	}
	if flags.Changed("via-drill") {
		p.ViaDrillMM = f.viaDrill
	}
	if flags.Changed("from-layer") {
		p.ViaLayers.From = f.fromLayer
	}
	if flags.Changed("to-layer") {
		p.ViaLayers.To = f.toLayer
	}
	if flags.Changed("pad-orientation") {
		p.UsePadOrientation = f.padOrientation
	}
	return p, nil
}

type fanoutOpts struct {
	profileFlags
	refs    []string
	output  string
	inPlace bool
	dryRun  bool
}

func newFanoutCmd() *cobra.Command {
	var opts fanoutOpts

	cmd := &cobra.Command{
		Use:   "fanout <board_file>",
		Short: "Fan out footprint pads to vias",
		Long: `Adds a short track and a via to every connected pad of the selected
footprints and writes the board.

Footprints are selected by reference with --ref, which accepts glob patterns
('U*', 'J[12]') and can be repeated. Parameters come from the built-in
defaults, then --config, then any flag given on the command line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFanout(cmd, args[0], &opts)
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringArrayVarP(&opts.refs, "ref", "r", nil, "footprint reference or glob (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the updated board here")
	cmd.Flags().BoolVar(&opts.inPlace, "in-place", false, "overwrite the input board")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "plan and print without writing")
	_ = cmd.MarkFlagRequired("ref")
	cmd.MarkFlagsMutuallyExclusive("output", "in-place")

	return cmd
}

func runFanout(cmd *cobra.Command, boardPath string, opts *fanoutOpts) error {
	logger := loggerFromContext(cmd.Context())
	out := cmd.OutOrStdout()

	target := opts.output
	if opts.inPlace {
		target = boardPath
	}
	if target == "" && !opts.dryRun {
		return errors.New(errors.ErrCodeInvalidConfig, "no output: pass -o <file>, --in-place or --dry-run")
	}

	profile, err := opts.profile(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := profile.FanoutConfig()
	if err != nil {
		return err
	}
	logger.Debug("fan-out profile", "profile", profile.String())

	board, src, err := readBoard(logger, boardPath)
	if err != nil {
		return err
	}
	fps, err := selectFootprints(logger, board, opts.refs)
	if err != nil {
		return err
	}

	results, err := planFootprints(fps, cfg)
	if err != nil {
		return err
	}
	logger.Debug("planned fan-out", "footprints", len(fps), "pads", len(results))

	printTitle(out, "Fan-out: %s", profile)
	if len(results) == 0 {
		printWarning(out, "no connected pads on %s", strings.Join(references(fps), ", "))
		return nil
	}
	fmt.Fprintln(out, renderResults(results))

	if opts.dryRun {
		printInfo(out, "dry run, board not written")
		return nil
	}

	items, err := board.ApplyFanout(results)
	if err != nil {
		return err
	}
	updated, err := pcb.InsertItems(src, items)
	if err != nil {
		return err
	}
	if err := pcb.WriteFile(target, updated); err != nil {
		return err
	}

	printSuccess(out, "Added %d tracks and %d vias %s %s", len(results), len(results), iconArrow, target)
	return nil
}

// readBoard reads and parses a board file, keeping the raw bytes for
// InsertItems.
func readBoard(logger *log.Logger, path string) (*pcb.Board, []byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "board %s not found", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to read %s", path)
	}
	board, err := pcb.Parse(bytes.NewReader(src), pcb.WithLogger(logger))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "failed to parse %s", path)
	}
	logger.Debug("loaded board", "file", path, "version", board.Version, "footprints", len(board.Footprints))
	return board, src, nil
}

// selectFootprints selects footprints by reference pattern and fails when
// nothing is selected.
func selectFootprints(logger *log.Logger, board *pcb.Board, refs []string) ([]*pcb.Footprint, error) {
	fps, err := board.SelectFootprints(refs)
	if err != nil {
		return nil, err
	}
	if len(fps) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no footprint selected")
	}
	logger.Debug("selected footprints", "refs", strings.Join(references(fps), ","))
	return fps, nil
}

func planFootprints(fps []*pcb.Footprint, cfg fanout.Config) ([]fanout.Result, error) {
	cs := make([]fanout.Component, len(fps))
	for i, fp := range fps {
		cs[i] = pcb.Component(fp)
	}
	return fanout.PlanComponents(cs, cfg)
}

func references(fps []*pcb.Footprint) []string {
	refs := make([]string, len(fps))
	for i, fp := range fps {
		refs[i] = fp.Reference
	}
	return refs
}

func renderResults(results []fanout.Result) string {
	t := newTable("Ref", "Pad", "Net", "Pad (mm)", "Via (mm)", "Layers")
	for _, r := range results {
		ref, number, net := "", "", ""
		if pv, ok := r.Pad.(*pcb.PadView); ok {
			ref = pv.Footprint().Reference
			number = pv.Pad().Number
			if pv.Pad().Net != nil {
				net = pv.Pad().Net.Name
			}
		}
		t.Row(ref, number, net,
			formatPoint(r.Track.Start),
			formatPoint(r.Via.Position),
			r.Via.From+" "+iconArrow+" "+r.Via.To)
	}
	return t.Render()
}

func formatPoint(p fanout.Point) string {
	return formatMM(pcb.PositionMM(p))
}

func formatMM(p pcb.Position) string {
	return fmt.Sprintf("%g, %g", p.X, p.Y)
}

// writeOrStdout writes with fn to path, or to w when path is "-".
func writeOrStdout(w io.Writer, path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(w)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to create %s", path)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", path)
	}
	return nil
}
