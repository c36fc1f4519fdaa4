package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// NewNamespacesCommand creates the namespaces command group.
func NewNamespacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "namespaces",
		Aliases: []string{"namespace", "ns"},
		Short:   "Manage namespaces",
		Long:    "List and create MAS namespaces",
	}

	cmd.AddCommand(newNamespacesListCommand())
	cmd.AddCommand(newNamespacesCreateCommand())

	return cmd
}

func newNamespacesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [NAMESPACE...]",
		Short: "List namespaces",
		Long:  "List all namespaces, or the namespaces with the given names",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			namespaces, err := client.Namespaces().List(cmd.Context(), fullyQualifiedNames(args)...)
			if err != nil {
				return fmt.Errorf("failed to list namespaces: %w", err)
			}

			return renderList(cmd, namespaces, []string{"Name", "Aliased", "Description", "System"},
				func(ns mas.Namespace) []string {
					return []string{string(ns.Name), optional(ns.Aliased), ns.Description, yesNo(ns.IsSystem)}
				})
		},
	}
}

func newNamespacesCreateCommand() *cobra.Command {
	var (
		description string
		aliased     string
		replace     bool
	)

	cmd := &cobra.Command{
		Use:   "create NAMESPACE",
		Short: "Create a namespace",
		Long:  "Create a namespace, or replace an existing one with --replace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			body := &mas.NamespaceBody{
				Name:        mas.FullyQualifiedName(args[0]),
				Description: description,
			}

			if aliased != "" {
				alias := mas.FullyQualifiedName(aliased)
				body.Aliased = &alias
			}

			var namespace *mas.Namespace
			if replace {
				namespace, err = client.Namespaces().Replace(cmd.Context(), body)
			} else {
				namespace, err = client.Namespaces().Create(cmd.Context(), body)
			}

			if err != nil {
				return fmt.Errorf("failed to write namespace: %w", err)
			}

			return renderDetails(cmd, namespace, [][]string{
				{"Name", string(namespace.Name)},
				{"Aliased", optional(namespace.Aliased)},
				{"Description", namespace.Description},
				{"System", yesNo(namespace.IsSystem)},
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "namespace description")
	cmd.Flags().StringVar(&aliased, "aliased", "", "namespace this one aliases")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace an existing namespace")

	return cmd
}
