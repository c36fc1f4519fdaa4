package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// NewFormsCommand creates the forms command group.
func NewFormsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "forms",
		Aliases: []string{"form"},
		Short:   "Manage forms",
		Long:    "List, inspect and delete MAS forms",
	}

	cmd.AddCommand(newFormsListCommand())
	cmd.AddCommand(newFormsGetCommand())
	cmd.AddCommand(newFormsDeleteCommand())

	return cmd
}

func newFormsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [FORM_UUID...]",
		Short: "List forms",
		Long:  "List all forms, or the forms with the given UUIDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseUUIDs(args)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			forms, err := client.Forms().List(cmd.Context(), ids...)
			if err != nil {
				return fmt.Errorf("failed to list forms: %w", err)
			}

			return renderList(cmd, forms, []string{"UUID", "Name", "Prototype", "Version", "Completed"},
				func(form mas.ListedForm) []string {
					return []string{
						form.UUID.String(),
						form.Name,
						form.Prototype.String(),
						strconv.Itoa(form.Version),
						yesNo(form.IsCompleted),
					}
				})
		},
	}
}

func newFormsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get FORM_UUID",
		Short: "Get form details",
		Long:  "Display a form and its field values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseUUIDs(args)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			form, err := client.Forms().Get(cmd.Context(), ids[0])
			if err != nil {
				return fmt.Errorf("failed to get form: %w", err)
			}

			rows := make([][]string, 0, len(form.Values))
			for _, field := range form.Values {
				rows = append(rows, []string{
					field.Name,
					field.DataType,
					fmt.Sprint(field.Value),
					yesNo(field.IsRequired),
					yesNo(field.IsRepeatable),
				})
			}

			return render(cmd.OutOrStdout(), form, []string{"Field", "Type", "Value", "Required", "Repeatable"}, rows)
		},
	}
}

func newFormsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete FORM_UUID...",
		Short: "Delete forms",
		Long:  "Delete one or more forms",
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

			if err := client.Forms().Delete(cmd.Context(), ids...); err != nil {
				return fmt.Errorf("failed to delete forms: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d form(s)\n", len(ids))

			return nil
		},
	}
}
