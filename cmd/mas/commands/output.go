package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/mas-client/internal/constants"
	"github.com/fivetwenty-io/mas-client/internal/filter"
)

var outputFormats = []string{constants.FormatTable, constants.FormatJSON, constants.FormatYAML}

func validateOutputFormat(format string) error {
	if format == "" || slices.Contains(outputFormats, format) {
		return nil
	}

	return fmt.Errorf("%w: %s (use table, json or yaml)", constants.ErrInvalidOutputFormat, format)
}

// render writes data as JSON or YAML, or as a table built from header and rows.
func render(w io.Writer, data interface{}, header []string, rows [][]string) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	default:
		headerCells := make([]any, len(header))
		for i, cell := range header {
			headerCells[i] = cell
		}

		table := tablewriter.NewWriter(w)
		table.Header(headerCells...)

		for _, row := range rows {
			_ = table.Append(row)
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// renderList applies --filter to records and renders the rest.
func renderList[T any](cmd *cobra.Command, records []T, header []string, row func(T) []string) error {
	if expression := viper.GetString("filter"); expression != "" {
		f, err := filter.Compile(expression)
		if err != nil {
			return err
		}

		records, err = filter.Apply(f, records)
		if err != nil {
			return err
		}
	}

	if len(records) == 0 && viper.GetString("output") == constants.FormatTable {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No results")

		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, row(record))
	}

	return render(cmd.OutOrStdout(), records, header, rows)
}

// renderDetails renders one record as a property/value table.
func renderDetails(cmd *cobra.Command, record interface{}, properties [][]string) error {
	return render(cmd.OutOrStdout(), record, []string{"Property", "Value"}, properties)
}
