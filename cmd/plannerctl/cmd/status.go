package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orgtarefas/planner/pkg/auth"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the cached session is still authoritative",
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

		validator := auth.NewValidator(store, cache, cliLogger())

		verdict := validator.Validate(cmd.Context())
		if !verdict.Valid {
			return fmt.Errorf("session invalid: %s", verdict.Message)
		}

		fmt.Printf("Logged in as %s (%s), session valid until %s.\n",
			verdict.Session.DisplayName, verdict.Session.Identifier,
			verdict.Session.Expiry.Local().Format("02/01/2006 15:04"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
