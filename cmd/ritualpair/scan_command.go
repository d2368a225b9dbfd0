package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ritualpair/internal/media"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "List the media files in a directory with resolved timestamps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			scanner := ctx.newScanner(cfg)
			files, err := scanner.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, scanPayload(files))
			}

			rows := make([][]string, 0, len(files))
			for _, f := range files {
				rows = append(rows, []string{
					f.Name(),
					f.Kind.String(),
					f.CreatedAt.Format(time.DateTime),
					string(f.TimeSource),
					fileSize(f.Path),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Kind", "Created", "Time source", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			photos, videos := media.Split(files)
			fmt.Fprintf(out, "%d photos, %d videos\n", len(photos), len(videos))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

type scanEntry struct {
	Path       string    `json:"path"`
	Kind       string    `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
	TimeSource string    `json:"time_source"`
}

func scanPayload(files []media.File) []scanEntry {
	entries := make([]scanEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, scanEntry{
			Path:       f.Path,
			Kind:       f.Kind.String(),
			CreatedAt:  f.CreatedAt,
			TimeSource: string(f.TimeSource),
		})
	}
	return entries
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "-"
	}
	return humanize.Bytes(uint64(info.Size()))
}
