package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kifan/pkg/errors"
	"github.com/OpenTraceLab/kifan/pkg/fanout"
	"github.com/OpenTraceLab/kifan/pkg/preview"
)

type previewOpts struct {
	profileFlags
	refs        []string
	output      string
	imageWidth  int
	imageHeight int
	size        int
	flip        bool
}

func newPreviewCmd() *cobra.Command {
	opts := previewOpts{imageWidth: 1024, imageHeight: 768, size: 256}

	cmd := &cobra.Command{
		Use:   "preview [board_file]",
		Short: "Render a fan-out preview to PNG",
		Long: `Without a board, draws the directions a style produces at the given
angle. With a board, plans the fan-out of the --ref footprints and draws it
over their pads, the existing copper and the board outline. Nothing is
written to the board.

Use -o - to write the PNG to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runPreviewStyle(cmd, &opts)
			}
			return runPreviewPlan(cmd, args[0], &opts)
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringArrayVarP(&opts.refs, "ref", "r", nil, "footprint reference or glob (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "PNG file to write")
	cmd.Flags().IntVar(&opts.imageWidth, "image-width", opts.imageWidth, "image width in pixels")
	cmd.Flags().IntVar(&opts.imageHeight, "image-height", opts.imageHeight, "image height in pixels")
	cmd.Flags().IntVar(&opts.size, "size", opts.size, "style preview size in pixels")
	cmd.Flags().BoolVar(&opts.flip, "flip", false, "view from the back side")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runPreviewStyle(cmd *cobra.Command, opts *previewOpts) error {
	profile, err := opts.profile(cmd.Flags())
	if err != nil {
		return err
	}
	style, err := fanout.ParseStyle(profile.Style)
	if err != nil {
		return err
	}

	img, err := preview.RenderStyle(style, profile.Angle, opts.size)
	if err != nil {
		return err
	}
	if err := writeOrStdout(cmd.OutOrStdout(), opts.output, func(w io.Writer) error {
		return preview.WritePNG(w, img)
	}); err != nil {
		return err
	}

	if opts.output != "-" {
		printSuccess(cmd.OutOrStdout(), "%s at %g° %s %s", style, profile.Angle, iconArrow, opts.output)
	}
	return nil
}

func runPreviewPlan(cmd *cobra.Command, boardPath string, opts *previewOpts) error {
	logger := loggerFromContext(cmd.Context())

	if len(opts.refs) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "previewing a board needs at least one --ref")
	}
	profile, err := opts.profile(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := profile.FanoutConfig()
	if err != nil {
		return err
	}

	board, _, err := readBoard(logger, boardPath)
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
	logger.Debug("rendering preview", "footprints", len(fps), "pads", len(results))

	img, err := preview.RenderPlan(board, fps, results, preview.Options{
		Width:  opts.imageWidth,
		Height: opts.imageHeight,
		Flip:   opts.flip,
	})
	if err != nil {
		return err
	}
	if err := writeOrStdout(cmd.OutOrStdout(), opts.output, func(w io.Writer) error {
		return preview.WritePNG(w, img)
	}); err != nil {
		return err
	}

	if opts.output != "-" {
		printSuccess(cmd.OutOrStdout(), "Preview of %d planned vias %s %s", len(results), iconArrow, opts.output)
	}
	return nil
}
