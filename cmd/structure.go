package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filestruct/filestruct/pkg/config"
	"github.com/filestruct/filestruct/pkg/manager"
)

var (
	entryPath   string
	fileContent string
)

var addDirCmd = &cobra.Command{
	Use:   "add-dir <name>",
	Short: "Add a directory to the structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.AddDirectory(ctx, entryPath, args[0])
		})
	},
}

var addFileCmd = &cobra.Command{
	Use:   "add-file <name>",
	Short: "Add a file to a directory in the structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			var content *string
			if cmd.Flags().Changed("content") {
				content = &fileContent
			}
			return m.AddFile(ctx, entryPath, args[0], content)
		})
	},
}

var removeDirCmd = &cobra.Command{
	Use:   "remove-dir <name>",
	Short: "Remove a directory and everything under it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.RemoveDirectory(ctx, entryPath, args[0])
		})
	},
}

var removeFileCmd = &cobra.Command{
	Use:   "remove-file <name>",
	Short: "Remove a file from a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.RemoveFile(ctx, entryPath, args[0])
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Pretty-print the current structure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			out, err := m.Display()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the top-level directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			for _, name := range m.ListDirectories() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{addDirCmd, addFileCmd, removeDirCmd, removeFileCmd} {
		c.Flags().StringVar(&entryPath, "path", "", "Slash-separated parent directory path (empty = top level)")
	}
	addFileCmd.Flags().StringVar(&fileContent, "content", "", "File content")

	rootCmd.AddCommand(addDirCmd, addFileCmd, removeDirCmd, removeFileCmd, showCmd, listCmd)
}

// withManager loads configuration, builds a manager over the configured
// store, and runs one operation against it.
func withManager(fn func(ctx context.Context, m *manager.Manager) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	m, err := manager.New(cfg, GetLogger())
	if err != nil {
		return err
	}
	return fn(context.Background(), m)
}
