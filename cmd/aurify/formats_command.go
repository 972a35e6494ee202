package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aurify/internal/format"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "formats",
		Short:       "List supported output formats",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(format.Names()))
			for _, name := range format.Names() {
				spec, err := format.Resolve(name)
				if err != nil {
					return err
				}
				qualities := "-"
				defaultQuality := "-"
				if spec.QualityApplies {
					qualities = strings.Join(spec.Qualities, ", ")
					defaultQuality = spec.DefaultQuality
				}
				rows = append(rows, []string{spec.Name, spec.Codec, qualities, defaultQuality})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Format", "Codec", "Qualities", "Default"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "Default format: %s\n", format.DefaultName)
			return nil
		},
	}
}
