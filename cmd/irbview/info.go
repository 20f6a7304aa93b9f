package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/irbview/intensity"
	"github.com/lixenwraith/irbview/sequence"
)

func newInfoCmd(f *rootFlags) *cobra.Command {
	var scan bool

	cmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Print frame count, dimensions and mapping ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			closer, err := setupLog(cfg, false)
			if err != nil {
				return err
			}
			defer closer.Close()

			seq, err := sequence.Open(args[0])
			if err != nil {
				return err
			}
			defer seq.Close()

			out := cmd.OutOrStdout()
			mapper := cfg.Mapper()
			rng := cfg.Range()

			fmt.Fprintf(out, "%s: %d frame(s), range %s, %d steps\n", args[0], seq.FrameCount(), rng, mapper.Resolution())
			for i := 0; i < seq.FrameCount(); i++ {
				frame, err := seq.ReadFrame(i)
				if err != nil {
					return err
				}
				b, err := mapper.Bounds(frame, rng)
				if err != nil {
					fmt.Fprintf(out, "  %4d  %v\n", i, err)
					continue
				}
				fmt.Fprintf(out, "  %4d  %dx%d  %s\n", i, frame.Width, frame.Height, formatBounds(b))
			}

			if scan {
				ext, err := sequence.ScanRange(cmd.Context(), seq, runtime.NumCPU())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "sequence: %.3f..%.3f over %d frame(s)\n", ext.Min, ext.Max, ext.Frames)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&scan, "scan", false, "also compute the sequence-wide range")
	return cmd
}

func formatBounds(b intensity.Bounds) string {
	s := fmt.Sprintf("%.3f..%.3f", b.Min, b.Max)
	if b.Widened {
		s += " (widened)"
	}
	return s
}
