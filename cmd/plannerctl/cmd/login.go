package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/orgtarefas/planner/pkg/auth"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and establish a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		username := loginUsername
		if username == "" {
			fmt.Print("Username: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			username = strings.TrimSpace(line)
		}

		fmt.Print("Password: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return err
		}

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

		sess, err := service.Authenticate(cmd.Context(), username, string(secret))
		if err != nil {
			return err
		}

		fmt.Printf("Welcome, %s! Session valid until %s.\n",
			sess.DisplayName, sess.Expiry.Local().Format("02/01/2006 15:04"))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "user", "u", "", "login name")
	rootCmd.AddCommand(loginCmd)
}
