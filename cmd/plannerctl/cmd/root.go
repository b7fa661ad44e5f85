package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plannerctl",
	Short: "Command-line client for the orgtarefas planner",
	Long: `plannerctl talks directly to the planner's credential store and keeps
its session in a local cache under the user config directory.

Set MONGO_URI and MONGO_DB_NAME (or an .env file) before use.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
