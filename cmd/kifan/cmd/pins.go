package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kifan/pkg/kicad/pcb"
	"github.com/OpenTraceLab/kifan/pkg/pins"
)

type pinsOpts struct {
	refs              []string
	value             string
	net               string
	connectorTypes    string
	refPrefix         string
	ignoreUnconnected bool
	ignoreFree        bool
	sort              bool
	uniqueNets        bool
	format            string
	output            string
}

func newPinsCmd() *cobra.Command {
	opts := pinsOpts{format: string(pins.FormatTable), output: "-"}

	cmd := &cobra.Command{
		Use:   "pins <board_file>",
		Short: "List component pins and their nets",
		Long: `Lists the pins of the board's footprints with the net each one is on.

Without --ref every footprint is considered. Filters narrow the components:
--value and --net match substrings, --connector-type matches the
"connector-type" footprint property against a comma-separated list.

With --unique-nets only the sorted set of net names is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPins(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.refs, "ref", "r", nil, "footprint reference or glob (repeatable)")
	cmd.Flags().StringVar(&opts.value, "value", "", "keep components whose value contains this")
	cmd.Flags().StringVar(&opts.net, "net", "", "keep components with a pin on a net containing this")
	cmd.Flags().StringVar(&opts.connectorTypes, "connector-type", "", "comma-separated connector types to keep")
	cmd.Flags().StringVar(&opts.refPrefix, "ref-prefix", "", "keep references starting with this")
	cmd.Flags().BoolVar(&opts.ignoreUnconnected, "ignore-unconnected", false, "drop pins on unconnected-* nets")
	cmd.Flags().BoolVar(&opts.ignoreFree, "ignore-free", false, "drop pins without a net")
	cmd.Flags().BoolVar(&opts.sort, "sort", false, "sort components by reference (J1, J2, J10)")
	cmd.Flags().BoolVar(&opts.uniqueNets, "unique-nets", false, "print only the unique net names")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table, json or yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file, - for stdout")

	return cmd
}

func runPins(cmd *cobra.Command, boardPath string, opts *pinsOpts) error {
	logger := loggerFromContext(cmd.Context())

	format, err := pins.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	board, _, err := readBoard(logger, boardPath)
	if err != nil {
		return err
	}

	var fps []*pcb.Footprint
	if len(opts.refs) > 0 {
		if fps, err = selectFootprints(logger, board, opts.refs); err != nil {
			return err
		}
	} else {
		fps = make([]*pcb.Footprint, len(board.Footprints))
		for i := range board.Footprints {
			fps[i] = &board.Footprints[i]
		}
	}

	components := pins.Extract(fps, pins.Options{
		Filter: pins.Filter{
			Value:          opts.value,
			Net:            opts.net,
			ConnectorTypes: pins.ParseList(opts.connectorTypes),
			RefPrefix:      opts.refPrefix,
		},
		IgnoreUnconnected: opts.ignoreUnconnected,
		IgnoreFree:        opts.ignoreFree,
	})
	logger.Debug("extracted pins", "footprints", len(fps), "components", len(components))

	if opts.sort {
		pins.SortByReference(components)
	}

	var v any = components
	if opts.uniqueNets {
		v = pins.UniqueNets(components)
	}
	return writeOrStdout(cmd.OutOrStdout(), opts.output, func(w io.Writer) error {
		return pins.Write(w, format, v)
	})
}
