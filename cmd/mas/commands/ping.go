package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server answers",
		Long:  "Fetch the first page of namespaces to check connectivity and credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			if err := client.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is reachable\n", client.Server())

			return nil
		},
	}
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Recompile the process catalogue",
		Long:  "Ask the server to recompile its process catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			if err := client.Compile(cmd.Context()); err != nil {
				return fmt.Errorf("failed to compile: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Compilation requested")

			return nil
		},
	}
}
