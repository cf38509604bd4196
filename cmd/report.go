package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filestruct/filestruct/pkg/manager"
	"github.com/filestruct/filestruct/pkg/report"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a markdown report of the tracked files",
	Long: `Walk the persisted structure and render a markdown document listing
every file path grouped by directory, including file contents where
present.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			formatter := report.Markdown()
			if reportOutput != "" {
				if err := report.NewWriter(formatter).Write(reportOutput, m.Structure()); err != nil {
					return err
				}
				GetLogger().Infof("Report written to %s", reportOutput)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.Format(m.Structure()))
			return nil
		})
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Write the report to a file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
