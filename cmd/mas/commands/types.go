package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// NewTypesCommand creates the types command group.
func NewTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "types",
		Aliases: []string{"type"},
		Short:   "Manage data types",
		Long:    "List the data types usable by form fields and process parameters",
	}

	cmd.AddCommand(newTypesListCommand())

	return cmd
}

func newTypesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List data types",
		Long:  "List all data types with their ranges and enumerations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			types, err := client.Types().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list types: %w", err)
			}

			return renderList(cmd, types, []string{"Name", "Abbreviation", "Minimum", "Maximum", "System", "Enumerations"},
				func(t mas.DataType) []string {
					labels := make([]string, len(t.Enumerations))
					for i, e := range t.Enumerations {
						labels[i] = e.Label
					}

					return []string{
						t.Name,
						optional(t.Abbreviation),
						optional(t.Minimum),
						optional(t.Maximum),
						yesNo(t.IsSystem),
						strings.Join(labels, ", "),
					}
				})
		},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}
