// Version command for the todolist CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolist/pkg/todolist"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the todolist version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "todolist", todolist.Version)
	},
}
