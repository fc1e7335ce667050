// Root command for the todolist CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolist/internal/memory"
	"github.com/mesh-intelligence/todolist/pkg/todolist"
)

// Global flag values.
var flagConfigDir string

var rootCmd = &cobra.Command{
	Use:   "todolist",
	Short: "todolist is an in-memory project and task tracker",
	Long: `todolist tracks projects and their tasks for the duration of one
interactive session. Projects and tasks live in process memory only;
limits on how many of each may exist come from configuration.`,
	Version: todolist.Version,
	Args:    cobra.NoArgs,
	// main prints the error once with an exit code per its kind.
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flagConfigDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		store, err := memory.NewStore(cfg.Limits)
		if err != nil {
			return fmt.Errorf("configure store: %w", err)
		}

		session, err := newSession(store, cfg, os.Stdin, cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}
		return session.run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "",
		"configuration directory (default: platform config dir)")

	rootCmd.AddCommand(versionCmd)
}
