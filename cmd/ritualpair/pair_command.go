package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ritualpair/internal/pairing"
)

func newPairCommand(ctx *commandContext) *cobra.Command {
	var flags pairingFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "pair <directory>",
		Short: "Pair photos with videos and show the result without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			flags.applyConfig(cmd, cfg)

			engine, err := ctx.newEngine(cfg, &flags)
			if err != nil {
				return err
			}
			result, err := engine.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, pairPayload(result))
			}
			printResult(cmd, result)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of tables")
	return cmd
}

func printResult(cmd *cobra.Command, result *pairing.Result) {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(result.Pairs))
	for _, pair := range result.Pairs {
		score := "-"
		if pair.Scored {
			score = fmt.Sprintf("%.2f", pair.Score)
		}
		rows = append(rows, []string{
			pair.Label(),
			pair.Photo.Name(),
			pair.Photo.CreatedAt.Format(time.DateTime),
			pair.Video.Name(),
			pair.Video.CreatedAt.Format(time.DateTime),
			score,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Seq", "Photo", "Photo time", "Video", "Video time", "Score"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	))

	fmt.Fprintf(out, "\n%d photos, %d videos scanned; %d pairs (%s mode)\n",
		result.PhotosScanned, result.VideosScanned, len(result.Pairs), result.Strategy)

	if len(result.Warnings) > 0 {
		fmt.Fprintf(out, "\nWarnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  [%s] %s: %s\n", w.Kind, w.Path, w.Message)
		}
	}
}

type pairEntry struct {
	Sequence    int       `json:"sequence"`
	SubSequence string    `json:"sub_sequence,omitempty"`
	Label       string    `json:"label"`
	Photo       string    `json:"photo"`
	PhotoTime   time.Time `json:"photo_time"`
	PhotoSource string    `json:"photo_time_source"`
	Video       string    `json:"video"`
	VideoTime   time.Time `json:"video_time"`
	VideoSource string    `json:"video_time_source"`
	Score       *float64  `json:"score,omitempty"`
}

type warningEntry struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

type resultPayload struct {
	RunID         string         `json:"run_id"`
	Strategy      string         `json:"strategy"`
	PhotosScanned int            `json:"photos_scanned"`
	VideosScanned int            `json:"videos_scanned"`
	Pairs         []pairEntry    `json:"pairs"`
	Warnings      []warningEntry `json:"warnings,omitempty"`
}

func pairPayload(result *pairing.Result) resultPayload {
	payload := resultPayload{
		RunID:         result.RunID,
		Strategy:      result.Strategy.String(),
		PhotosScanned: result.PhotosScanned,
		VideosScanned: result.VideosScanned,
		Pairs:         make([]pairEntry, 0, len(result.Pairs)),
	}
	for _, pair := range result.Pairs {
		entry := pairEntry{
			Sequence:    pair.Sequence,
			SubSequence: pair.SubSequence,
			Label:       pair.Label(),
			Photo:       pair.Photo.Path,
			PhotoTime:   pair.Photo.CreatedAt,
			PhotoSource: string(pair.Photo.TimeSource),
			Video:       pair.Video.Path,
			VideoTime:   pair.Video.CreatedAt,
			VideoSource: string(pair.Video.TimeSource),
		}
		if pair.Scored {
			score := pair.Score
			entry.Score = &score
		}
		payload.Pairs = append(payload.Pairs, entry)
	}
	for _, w := range result.Warnings {
		payload.Warnings = append(payload.Warnings, warningEntry{
			Kind:    string(w.Kind),
			Path:    w.Path,
			Message: w.Message,
		})
	}
	return payload
}
