package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/fraudwatch/internal/cli"
	"github.com/Veraticus/fraudwatch/internal/export"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		outputDir string
		chart     bool
		offline   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the prediction history as CSV",
		Long: fmt.Sprintf(`Export the prediction history to %s.

Columns are Date, Amount, Merchant, Location, Status and Risk Score. Fields are
joined with commas and are not quoted, so a value containing a comma shifts the
columns of its row.

With --chart a bar chart of risk scores is also written to %s.`, export.FileName, export.ChartFileName),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := loadSettings()
			if outputDir == "" {
				outputDir = settings.ExportDir
			}

			entries, _, err := loadHistory(cmd.Context(), settings, offline)
			if err != nil {
				return err
			}

			reporter := cli.NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())

			path, err := export.WriteFile(outputDir, entries)
			if err != nil {
				return err
			}
			reporter.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d entries to %s", len(entries), path)))

			if !chart {
				return nil
			}

			chartPath, err := export.WriteChartFile(outputDir, entries)
			if errors.Is(err, export.ErrNoEntries) {
				reporter.Println(cli.FormatWarning("No history to chart"))
				return nil
			}
			if err != nil {
				return err
			}
			reporter.Println(cli.FormatSuccess("Wrote risk chart to " + chartPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default: export.dir)")
	cmd.Flags().BoolVar(&chart, "chart", false, "also write a risk score chart PNG")
	cmd.Flags().BoolVar(&offline, "offline", false, "export the cached snapshot instead of fetching")

	return cmd
}
