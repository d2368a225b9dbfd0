package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ritualpair/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check availability of the external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries(deps.Requirements(cfg))

			if jsonOutput {
				return writeJSON(cmd, statuses)
			}

			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				mark := "ok"
				if !status.Available {
					mark = "missing"
					missing++
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					mark,
					status.Description,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Status", "Used for"},
				rows,
				nil,
			))
			if missing > 0 {
				fmt.Fprintf(out, "\n%d tools missing; the features that need them degrade gracefully.\n", missing)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}
