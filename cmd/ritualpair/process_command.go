package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ritualpair/internal/compress"
	"ritualpair/internal/config"
	"ritualpair/internal/ocr"
	"ritualpair/internal/organizer"
	"ritualpair/internal/videosplit"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var flags pairingFlags
	var (
		dryRun       bool
		noOCR        bool
		compressFlag bool
		quality      int
		crf          int
		preset       string
		segments     int
		overwrite    bool
	)

	cmd := &cobra.Command{
		Use:   "process <input-dir> <output-dir>",
		Short: "Pair, name, and copy media into the output directory",
		Long: `Process runs the full pipeline: scan the input directory, pair photos
with videos, read the printed name off each photo, and copy every file into
the output directory as NAME_SEQ[sub].ext. Sources are never modified.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			flags.applyConfig(cmd, cfg)
			applyOutputConfig(cmd, cfg, &compressFlag, &quality, &crf, &preset, &segments, &overwrite)

			engine, err := ctx.newEngine(cfg, &flags)
			if err != nil {
				return err
			}
			result, err := engine.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printResult(cmd, result)
			if len(result.Pairs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to organize.")
				return nil
			}

			logger := ctx.ensureLogger()
			var extractor organizer.NameExtractor
			if cfg.OCR.Enabled && !noOCR {
				extractor = ocr.NewExtractor(ocr.Options{
					TesseractBinary: cfg.Tools.Tesseract,
					Timeout:         secondsOrDefault(cfg.Tools.OCRTimeoutSeconds, 0),
					Language:        cfg.OCR.Language,
				}, logger)
			}
			compressor := compress.NewCompressor(compress.Options{
				FFmpegBinary: cfg.Tools.FFmpeg,
				VideoTimeout: secondsOrDefault(cfg.Tools.CompressTimeoutSeconds, 0),
			}, logger)
			splitter := videosplit.NewSplitter(videosplit.Options{
				FFmpegBinary:   cfg.Tools.FFmpeg,
				FFprobeBinary:  cfg.Tools.FFprobe,
				SegmentTimeout: secondsOrDefault(cfg.Tools.SplitTimeoutSeconds, 0),
				ProbeTimeout:   secondsOrDefault(cfg.Tools.ProbeTimeoutSeconds, 0),
			}, logger)

			org := organizer.NewOrganizer(organizer.Options{
				OutputDir:         args[1],
				DryRun:            dryRun,
				Compress:          compressFlag,
				ImageQuality:      quality,
				VideoCRF:          crf,
				VideoPreset:       preset,
				SplitSegments:     segments,
				OverwriteExisting: overwrite,
			}, extractor, compressor, splitter, logger)

			stats, err := org.Organize(cmd.Context(), result)
			if err != nil {
				return err
			}
			printStats(cmd, stats, dryRun)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview target names without writing")
	cmd.Flags().BoolVar(&noOCR, "no-ocr", false, "Skip name extraction; outputs use sequence-only names")
	cmd.Flags().BoolVar(&compressFlag, "compress", config.Default().Output.Compress, "Re-encode outputs at reduced size")
	cmd.Flags().IntVar(&quality, "quality", config.Default().Output.ImageQuality, "JPEG quality for compressed photos (1-100)")
	cmd.Flags().IntVar(&crf, "crf", config.Default().Output.VideoCRF, "H.264 CRF for compressed videos (0-51)")
	cmd.Flags().StringVar(&preset, "preset", config.Default().Output.VideoPreset, "x264 preset for compressed videos")
	cmd.Flags().IntVar(&segments, "split", config.Default().Output.SplitSegments, "Split each paired video into N equal segments (2-10, 0 = off)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", config.Default().Output.OverwriteExisting, "Overwrite existing outputs instead of skipping")
	return cmd
}

func applyOutputConfig(cmd *cobra.Command, cfg *config.Config, compressFlag *bool, quality, crf *int, preset *string, segments *int, overwrite *bool) {
	if cfg == nil {
		return
	}
	flags := cmd.Flags()
	if !flags.Changed("compress") {
		*compressFlag = cfg.Output.Compress
	}
	if !flags.Changed("quality") {
		*quality = cfg.Output.ImageQuality
	}
	if !flags.Changed("crf") {
		*crf = cfg.Output.VideoCRF
	}
	if !flags.Changed("preset") {
		*preset = cfg.Output.VideoPreset
	}
	if !flags.Changed("split") {
		*segments = cfg.Output.SplitSegments
	}
	if !flags.Changed("overwrite") {
		*overwrite = cfg.Output.OverwriteExisting
	}
}

func printStats(cmd *cobra.Command, stats *organizer.Stats, dryRun bool) {
	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintf(out, "\nDry run: %d groups previewed, nothing written.\n", stats.Groups)
		return
	}
	fmt.Fprintf(out, "\n%d groups organized, %d files written (%s)\n",
		stats.Groups, stats.FilesWritten, stats.HumanBytesWritten())
	if stats.SegmentsWritten > 0 {
		fmt.Fprintf(out, "%d video segments written\n", stats.SegmentsWritten)
	}
	if stats.OCRFailed > 0 {
		fmt.Fprintf(out, "%d groups without a readable name (named %s)\n", stats.OCRFailed, "UNKNOWN_<seq>")
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(out, "%d existing outputs skipped\n", stats.Skipped)
	}
	for _, itemErr := range stats.Errors {
		fmt.Fprintf(out, "error: %s: %v\n", itemErr.Path, itemErr.Err)
	}
}
