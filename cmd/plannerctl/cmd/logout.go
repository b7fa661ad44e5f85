package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orgtarefas/planner/pkg/auth"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closer, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closer()

		cache, err := openCache()
		if err != nil {
			return err
		}
		defer cache.Close()

		service := auth.NewService(store, cache, cliLogger())

		if err := service.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
