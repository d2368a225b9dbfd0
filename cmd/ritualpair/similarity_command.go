package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ritualpair/internal/media"
	"ritualpair/internal/vision"
)

func newSimilarityCommand(ctx *commandContext) *cobra.Command {
	var position float64

	cmd := &cobra.Command{
		Use:   "similarity <photo> <photo-or-video>",
		Short: "Score the visual similarity between a photo and another photo or a video frame",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			photo := vision.LoadImage(args[0])
			if photo == nil {
				return fmt.Errorf("cannot decode image %s", args[0])
			}

			other := args[1]
			kind, ok := media.KindForPath(other)
			var counterpart = vision.LoadImage(other)
			if ok && kind == media.KindVideo {
				sampler := vision.NewSampler(vision.SamplerOptions{
					FFmpegBinary:  cfg.Tools.FFmpeg,
					FFprobeBinary: cfg.Tools.FFprobe,
					Timeout:       secondsOrDefault(cfg.Tools.SampleTimeoutSeconds, 0),
					Position:      position,
				}, ctx.ensureLogger())
				counterpart = sampler.SampleFrame(cmd.Context(), other)
				if counterpart == nil {
					return fmt.Errorf("cannot sample a frame from %s", other)
				}
			} else if counterpart == nil {
				return fmt.Errorf("cannot decode image %s", other)
			}

			score := vision.Similarity(photo, counterpart)
			fmt.Fprintf(cmd.OutOrStdout(), "similarity: %.4f\n", score)
			return nil
		},
	}

	cmd.Flags().Float64Var(&position, "frame-position", 0.5, "Relative frame position sampled from a video (0-1)")
	return cmd
}
