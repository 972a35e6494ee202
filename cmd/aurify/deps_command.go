package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aurify/internal/deps"
	"aurify/internal/services"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of required external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Required(cfg.Tools.FFmpeg, cfg.Tools.FFprobe, cfg.Tools.Enhancer))

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(status.Available),
					yesNo(status.Optional),
					detail,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Dependency", "Command", "Available", "Optional", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))

			missing := deps.Missing(statuses)
			if len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, status := range missing {
					names = append(names, status.Name)
				}
				return services.Wrap(services.ErrUnavailable, "", "check dependencies",
					fmt.Sprintf("missing required tools: %s", strings.Join(names, ", ")), nil)
			}

			fmt.Fprintln(out, "All required tools available")
			return nil
		},
	}
}
