package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// NewPrototypesCommand creates the prototypes command group.
func NewPrototypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prototypes",
		Aliases: []string{"prototype", "templates"},
		Short:   "Manage form prototypes",
		Long:    "List the prototypes forms are created from",
	}

	cmd.AddCommand(newPrototypesListCommand())

	return cmd
}

func newPrototypesListCommand() *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "list [PROTOTYPE_UUID...]",
		Short: "List prototypes",
		Long:  "List all prototypes, or the prototypes with the given UUIDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseUUIDs(args)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			var versionFilter *int
			if cmd.Flags().Changed("version") {
				versionFilter = &version
			}

			prototypes, err := client.Prototypes().List(cmd.Context(), versionFilter, ids...)
			if err != nil {
				return fmt.Errorf("failed to list prototypes: %w", err)
			}

			return renderList(cmd, prototypes, []string{"UUID", "Name", "Version"},
				func(p mas.ListedPrototype) []string {
					return []string{p.UUID.String(), p.Name, strconv.Itoa(p.Version)}
				})
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "only prototypes of this version")

	return cmd
}
