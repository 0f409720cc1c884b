package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kifan/pkg/errors"
	"github.com/OpenTraceLab/kifan/pkg/kicad/pcb"
	"github.com/OpenTraceLab/kifan/pkg/pins"
)

func newNetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nets <board_file> [net_name]",
		Short: "List nets or show what is attached to one",
		Long: `Without a net name, lists every named net with its pad, track and via
counts, in natural order. With a net name, lists the pads, tracks and vias
on that net, which is handy for checking a fan-out before and after.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, _, err := readBoard(loggerFromContext(cmd.Context()), args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				return showNet(cmd.OutOrStdout(), board, args[1])
			}
			listNets(cmd.OutOrStdout(), board)
			return nil
		},
	}
}

func listNets(w io.Writer, board *pcb.Board) {
	names := slices.DeleteFunc(board.NetNames(), func(n string) bool { return n == "" })
	slices.SortFunc(names, pins.NaturalCompare)

	printTitle(w, "Board: %d nets", len(names))
	t := newTable("Net", "Pads", "Tracks", "Vias")
	for _, name := range names {
		info := board.Connections(name)
		if info == nil {
			continue
		}
		t.Row(name, strconv.Itoa(len(info.Pads)), strconv.Itoa(len(info.Tracks)), strconv.Itoa(len(info.Vias)))
	}
	fmt.Fprintln(w, t.Render())
}

func showNet(w io.Writer, board *pcb.Board, name string) error {
	info := board.Connections(name)
	if info == nil {
		return errors.New(errors.ErrCodeNotFound, "net %q not found", name)
	}
	printTitle(w, "Net: %s (number %d)", info.Net.Name, info.Net.Number)

	if len(info.Pads) > 0 {
		fmt.Fprintf(w, "Pads (%d)\n", len(info.Pads))
		t := newTable("Pad", "Shape", "Size (mm)", "At (mm)", "Layer")
		for _, p := range info.Pads {
			t.Row(p.Name(), p.Pad.Shape,
				fmt.Sprintf("%g × %g", p.Pad.Size.Width, p.Pad.Size.Height),
				formatMM(p.Position()),
				pcb.PadCopperLayer(p.Footprint, p.Pad))
		}
		fmt.Fprintln(w, t.Render())
	}

	if len(info.Tracks) > 0 {
		fmt.Fprintf(w, "Tracks (%d)\n", len(info.Tracks))
		t := newTable("From (mm)", "To (mm)", "Width", "Layer")
		for _, tr := range info.Tracks {
			t.Row(formatMM(tr.Start), formatMM(tr.End), fmt.Sprintf("%g", tr.Width), tr.Layer)
		}
		fmt.Fprintln(w, t.Render())
	}

	if len(info.Vias) > 0 {
		fmt.Fprintf(w, "Vias (%d)\n", len(info.Vias))
		t := newTable("At (mm)", "Size / Drill", "Layers")
		for _, v := range info.Vias {
			layers := ""
			if len(v.Layers) == 2 {
				layers = v.Layers[0] + " " + iconArrow + " " + v.Layers[1]
			}
			t.Row(formatMM(v.Position), fmt.Sprintf("%g / %g", v.Size, v.Drill), layers)
		}
		fmt.Fprintln(w, t.Render())
	}

	if len(info.Pads)+len(info.Tracks)+len(info.Vias) == 0 {
		printInfo(w, "nothing is connected to %s", name)
	}
	return nil
}
