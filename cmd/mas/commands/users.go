package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List MAS users and their privileges",
	}

	cmd.AddCommand(newUsersListCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [USERNAME...]",
		Short: "List users",
		Long:  "List all users, or the users with the given names",
		RunE: func(cmd *cobra.Command, args []string) error {
			usernames := make([]mas.Username, len(args))
			for i, arg := range args {
				usernames[i] = mas.Username(arg)
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			users, err := client.Users().List(cmd.Context(), usernames...)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return renderList(cmd, users, []string{"Username", "Authorized", "Admin", "Select"},
				func(u mas.User) []string {
					return []string{string(u.Username), yesNo(u.IsAuthorized), yesNo(u.IsAdmin), yesNo(u.CanSelect)}
				})
		},
	}
}
