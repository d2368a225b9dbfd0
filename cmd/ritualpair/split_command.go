package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ritualpair/internal/videosplit"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var (
		segments     int
		baseName     string
		compressFlag bool
		crf          int
	)

	cmd := &cobra.Command{
		Use:   "split <video> <output-dir>",
		Short: "Cut a video into equal segments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if segments < videosplit.MinSegments || segments > videosplit.MaxSegments {
				return fmt.Errorf("segments must be between %d and %d, got %d",
					videosplit.MinSegments, videosplit.MaxSegments, segments)
			}

			input := args[0]
			base := strings.TrimSpace(baseName)
			if base == "" {
				name := filepath.Base(input)
				base = strings.TrimSuffix(name, filepath.Ext(name))
			}

			splitter := videosplit.NewSplitter(videosplit.Options{
				FFmpegBinary:   cfg.Tools.FFmpeg,
				FFprobeBinary:  cfg.Tools.FFprobe,
				SegmentTimeout: secondsOrDefault(cfg.Tools.SplitTimeoutSeconds, 0),
				ProbeTimeout:   secondsOrDefault(cfg.Tools.ProbeTimeoutSeconds, 0),
			}, ctx.ensureLogger())

			written := splitter.Split(cmd.Context(), videosplit.Request{
				Input:    input,
				OutDir:   args[1],
				Segments: segments,
				BaseName: base,
				Ext:      ".mp4",
				Compress: compressFlag,
				CRF:      crf,
			})
			if len(written) == 0 {
				return fmt.Errorf("no segments produced from %s", input)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d segments:\n", len(written))
			for _, path := range written {
				fmt.Fprintf(out, "  %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&segments, "segments", "s", 2, "Number of equal segments (2-10)")
	cmd.Flags().StringVar(&baseName, "base", "", "Output name stem (defaults to the input name)")
	cmd.Flags().BoolVar(&compressFlag, "compress", false, "Re-encode segments at reduced size")
	cmd.Flags().IntVar(&crf, "crf", 28, "H.264 CRF when --compress is set")
	return cmd
}
