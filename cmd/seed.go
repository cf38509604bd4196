package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/filestruct/filestruct/pkg/manager"
)

// seedCmd populates a small sample structure, useful for trying out the
// show/report commands on a fresh store.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the store with a sample structure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			if len(m.ListDirectories()) > 0 {
				GetLogger().Info("Structure already populated, skipping seed")
				return nil
			}

			type entry struct {
				path    string
				name    string
				content string
			}

			dirs := []entry{
				{path: "", name: "project"},
				{path: "project", name: "src"},
				{path: "project", name: "tests"},
				{path: "project/src", name: "internal"},
			}
			files := []entry{
				{path: "project", name: "README.md", content: "# Sample project\n"},
				{path: "project/src", name: "main.go", content: "package main\n"},
				{path: "project/src/internal", name: "util.go"},
				{path: "project/tests", name: "main_test.go"},
			}

			for _, d := range dirs {
				if err := m.AddDirectory(ctx, d.path, d.name); err != nil {
					return err
				}
			}
			for _, f := range files {
				var content *string
				if f.content != "" {
					content = &f.content
				}
				if err := m.AddFile(ctx, f.path, f.name, content); err != nil {
					return err
				}
			}

			GetLogger().Info("Seeded sample structure")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
