package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phanxgames/adboard"
	"github.com/phanxgames/adboard/internal/catalog"
	"github.com/phanxgames/adboard/internal/ui"
)

// settledEnergy is the kinetic energy below which a run counts as settled.
const settledEnergy = 1.0

// overlapTolerance is how deep circles may interpenetrate before the run is
// reported as overlapping.
const overlapTolerance = 1.0

type simulateOptions struct {
	frames  int
	every   int
	model   string
	catalog string
}

func simulateCmd(flags *globalFlags) *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the physics headless and report how the board settles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportErr(cmd, simulate(cmd.OutOrStdout(), flags, opts))
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.frames, "frames", "n", 600, "Frames to simulate")
	f.IntVar(&opts.every, "every", 60, "Report interval in frames")
	f.StringVar(&opts.model, "model", "", "Force model override: center, none, radial, drift")
	f.StringVar(&opts.catalog, "catalog", "", "Ad catalog YAML (overrides layout.catalog)")
	return cmd
}

// sample is one reported frame of a headless run.
type sample struct {
	frame    uint64
	energy   float64
	minGap   float64
	centroid adboard.Vec2
}

func simulate(w io.Writer, flags *globalFlags, opts *simulateOptions) error {
	if opts.frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", opts.frames)
	}
	if opts.every < 1 {
		opts.every = opts.frames
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if opts.model != "" {
		cfg.Physics.Model = opts.model
	}
	if opts.catalog != "" {
		cfg.Layout.Catalog = opts.catalog
	}
	cat, err := catalog.Load(cfg.Layout.Catalog)
	if err != nil {
		return err
	}
	bc, err := cfg.Board()
	if err != nil {
		return err
	}

	b := adboard.NewBoard(cat.Defs(), bc)
	b.SetLogger(slog.Default())
	samples := runSamples(b, opts.frames, opts.every)

	fmt.Fprintf(w, "%s %s model, %d ads, %d frames\n\n",
		ui.Brand.Sprint("simulate"), bc.Physics.Model, b.Store().Len(), opts.frames)
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, []string{
			strconv.FormatUint(s.frame, 10),
			strconv.FormatFloat(s.energy, 'f', 4, 64),
			formatGap(s.minGap),
			fmt.Sprintf("(%.1f, %.1f)", s.centroid.X, s.centroid.Y),
		})
	}
	ui.Table(w, []string{"frame", "energy", "min gap", "centroid"}, rows)
	fmt.Fprintln(w)

	last := samples[len(samples)-1]
	writeVerdict(w, last)
	return nil
}

// runSamples advances b frame by frame and records every nth frame plus the
// last one.
func runSamples(b *adboard.Board, frames, every int) []sample {
	var out []sample
	store := b.Store()
	for i := 1; i <= frames; i++ {
		b.Advance(1)
		if i%every != 0 && i != frames {
			continue
		}
		out = append(out, sample{
			frame:    b.Clock().Frame(),
			energy:   store.KineticEnergy(),
			minGap:   store.MinGap(),
			centroid: store.Centroid(),
		})
	}
	return out
}

func formatGap(g float64) string {
	if math.IsInf(g, 1) {
		return "-"
	}
	return strconv.FormatFloat(g, 'f', 2, 64)
}

func writeVerdict(w io.Writer, s sample) {
	if s.minGap < -overlapTolerance {
		ui.Bad.Fprintf(w, "  overlapping: deepest contact %.2f\n", s.minGap)
	} else {
		ui.Good.Fprintln(w, "  no overlap")
	}
	if s.energy < settledEnergy {
		ui.Good.Fprintf(w, "  settled: energy %.4f\n", s.energy)
	} else {
		ui.Warn.Fprintf(w, "  still moving: energy %.4f\n", s.energy)
	}
}
