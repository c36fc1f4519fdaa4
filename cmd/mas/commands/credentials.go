package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/mas-client/internal/constants"
	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// NewCredentialsCommand creates the credentials command group.
func NewCredentialsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "credentials",
		Aliases: []string{"credential", "creds"},
		Short:   "Manage credentials",
		Long:    "List, create and delete stored host credentials",
	}

	cmd.AddCommand(newCredentialsListCommand())
	cmd.AddCommand(newCredentialsCreateCommand())
	cmd.AddCommand(newCredentialsDeleteCommand())

	return cmd
}

var credentialHeader = []string{"UUID", "Protocol", "User", "Address", "Port"}

func credentialRow(c mas.Credential) []string {
	return []string{c.UUID.String(), c.Protocol, c.User, c.Address, strconv.Itoa(c.Port)}
}

func newCredentialsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [CREDENTIAL_UUID...]",
		Short: "List credentials",
		Long:  "List all credentials, or the credentials with the given UUIDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseUUIDs(args)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			credentials, err := client.Credentials().List(cmd.Context(), ids...)
			if err != nil {
				return fmt.Errorf("failed to list credentials: %w", err)
			}

			return renderList(cmd, credentials, credentialHeader, credentialRow)
		},
	}
}

func newCredentialsCreateCommand() *cobra.Command {
	var (
		protocol string
		port     int
		password string
	)

	cmd := &cobra.Command{
		Use:   "create USER ADDRESS",
		Short: "Create a credential",
		Long:  "Store a login for a host. The password is prompted for when not given.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error

				password, err = readPassword(cmd, "Password for "+args[0]+"@"+args[1]+": ")
				if err != nil {
					return err
				}
			}

			body := mas.NewPostCredential(args[0], password, args[1])
			body.Protocol = protocol
			body.Port = port

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			credential, err := client.Credentials().Create(cmd.Context(), &body)
			if err != nil {
				return fmt.Errorf("failed to create credential: %w", err)
			}

			return render(cmd.OutOrStdout(), credential, credentialHeader, [][]string{credentialRow(*credential)})
		},
	}

	cmd.Flags().StringVar(&protocol, "protocol", constants.DefaultCredentialProtocol, "connection protocol")
	cmd.Flags().IntVar(&port, "port", constants.DefaultCredentialPort, "connection port")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

func newCredentialsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete CREDENTIAL_UUID...",
		Short: "Delete credentials",
		Long:  "Delete one or more credentials",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseUUIDs(args)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			if err := client.Credentials().Delete(cmd.Context(), ids...); err != nil {
				return fmt.Errorf("failed to delete credentials: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d credential(s)\n", len(ids))

			return nil
		},
	}
}
