package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// whoami reads only the local cache; it never asks the store whether
// the session is still authoritative. Use status for that.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the locally cached session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCache()
		if err != nil {
			return err
		}
		defer cache.Close()

		sess, err := cache.Read()
		if err != nil {
			return err
		}
		if sess == nil {
			fmt.Println("Not logged in.")
			return nil
		}

		fmt.Printf("%s (%s), role %s, session expires %s\n",
			sess.DisplayName, sess.Identifier, sess.Role,
			sess.Expiry.Local().Format("02/01/2006 15:04"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
