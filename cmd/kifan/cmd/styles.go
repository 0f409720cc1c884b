package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kifan/pkg/fanout"
)

var styleDescriptions = map[fanout.Style]string{
	fanout.Angled:         "one direction at the configured angle, or each pad's own",
	fanout.Diagonal:       "away from the footprint center along 45° diagonals",
	fanout.Quadrant:       "straight out of the side of the footprint the pad sits on",
	fanout.SquareQuadrant: "out of the footprint's corners along diagonals",
}

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List fan-out styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := newTable("Style", "Rotatable", "Description")
			for _, s := range fanout.Styles() {
				rotatable := "no"
				if s.Rotatable() {
					rotatable = "yes"
				}
				t.Row(s.String(), rotatable, styleDescriptions[s])
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
