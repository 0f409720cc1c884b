// Package cmd implements the kifan command-line interface.
package cmd

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kifan/pkg/errors"
)

// version is overridden at build time with -ldflags "-X ...cmd.version=...".
var version = "0.1.0"

// Execute runs the kifan CLI and reports a failure on stderr.
func Execute() error {
	err := newRootCmd().ExecuteContext(context.Background())
	if err != nil {
		printError(os.Stderr, "%s", errors.UserMessage(err))
		if errors.Is(err, errors.ErrCodeInvalidStyle) {
			printDetail(os.Stderr, "run 'kifan styles' to list the fan-out styles")
		}
	}
	return err
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "kifan",
		Short: "kifan - KiCad pad fan-out tools",
		Long: `kifan fans the pads of KiCad footprints out to vias: every connected pad
gets a short track and a via placed according to a fan-out style.

Examples:
  kifan styles                                      # List fan-out styles
  kifan fanout board.kicad_pcb --ref U1 --in-place  # Fan out U1
  kifan preview --style quadrant --angle 45 -o q.png
  kifan pins board.kicad_pcb --ref-prefix J --format json
  kifan nets board.kicad_pcb GND`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newFanoutCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newPinsCmd())
	root.AddCommand(newNetsCmd())
	root.AddCommand(newStylesCmd())

	return root
}
