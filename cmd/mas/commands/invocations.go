package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/mas-client/internal/constants"
	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

const defaultInvocationPeriod = 1

// NewInvocationsCommand creates the invocations command group.
func NewInvocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invocations",
		Aliases: []string{"invocation", "inv"},
		Short:   "Manage process invocations",
		Long:    "List, inspect and schedule process invocations",
	}

	cmd.AddCommand(newInvocationsListCommand())
	cmd.AddCommand(newInvocationsGetCommand())
	cmd.AddCommand(newInvocationsOutputsCommand())
	cmd.AddCommand(newInvocationsScheduleCommand())

	return cmd
}

func invocationRow(inv mas.Invocation) []string {
	return []string{
		inv.UUID.String(),
		string(inv.Process),
		string(inv.Status),
		inv.DateInvoked.String(),
		yesNo(inv.Started),
		yesNo(inv.Aborted),
	}
}

var invocationHeader = []string{"UUID", "Process", "Status", "Invoked", "Started", "Aborted"}

func newInvocationsListCommand() *cobra.Command {
	var (
		date   string
		period int
	)

	cmd := &cobra.Command{
		Use:   "list [INVOCATION_UUID...]",
		Short: "List invocations",
		Long: `List invocations over a period of days.

Without --date the period ends today. --date takes a UTC calendar day
(YYYY-MM-DD).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseUUIDs(args)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			var invocations []mas.Invocation

			if date == "" {
				invocations, err = client.Invocations().ListRecent(cmd.Context(), period, ids...)
			} else {
				day, perr := time.ParseInLocation(constants.InvokeDateLayout, date, time.UTC)
				if perr != nil {
					return fmt.Errorf("%w: %s", constants.ErrInvalidDate, date)
				}

				invocations, err = client.Invocations().List(cmd.Context(), day, period, ids...)
			}

			if err != nil {
				return fmt.Errorf("failed to list invocations: %w", err)
			}

			return renderList(cmd, invocations, invocationHeader, invocationRow)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "invocation day (YYYY-MM-DD, UTC)")
	cmd.Flags().IntVar(&period, "period", defaultInvocationPeriod, "number of days")

	return cmd
}

func newInvocationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get INVOCATION_UUID",
		Short: "Get invocation details",
		Long:  "Display one invocation and its parameters",
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

			inv, err := client.Invocations().Get(cmd.Context(), ids[0])
			if err != nil {
				return fmt.Errorf("failed to get invocation: %w", err)
			}

			properties := [][]string{
				{"UUID", inv.UUID.String()},
				{"Process", string(inv.Process)},
				{"Status", string(inv.Status)},
				{"Invoked", inv.DateInvoked.String()},
				{"Started", yesNo(inv.Started)},
				{"Aborted", yesNo(inv.Aborted)},
			}

			for _, name := range sortedKeys(inv.Parameters) {
				properties = append(properties, []string{"Parameter " + name, fmt.Sprint(inv.Parameters[name])})
			}

			return renderDetails(cmd, inv, properties)
		},
	}
}

func newInvocationsOutputsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "outputs INVOCATION_UUID",
		Short: "Show invocation output",
		Long:  "Display the progress and text output of an invocation",
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

			outputs, err := client.Invocations().Outputs(cmd.Context(), ids[0])
			if err != nil {
				return fmt.Errorf("failed to get invocation output: %w", err)
			}

			return renderList(cmd, outputs, []string{"Status", "Progress", "Text"},
				func(o mas.InvocationOutput) []string {
					progress := ""
					if o.Progress != nil {
						progress = strconv.FormatFloat(*o.Progress*100, 'f', 0, 64) + "%"
					}

					text := ""
					if o.Text != nil {
						text = *o.Text
					}

					return []string{string(o.Status), progress, text}
				})
		},
	}
}

func newInvocationsScheduleCommand() *cobra.Command {
	var (
		params []string
		at     string
	)

	cmd := &cobra.Command{
		Use:   "schedule PROCESS_NAME",
		Short: "Schedule a process",
		Long: `Schedule a process run, now or at --at (YYYY-MM-DDTHH:MM:SS, UTC).

Parameters are given as --param name=value. Values that parse as JSON
(numbers, booleans, arrays) are sent as such; anything else is a string.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parameters, err := parseParameters(params)
			if err != nil {
				return err
			}

			body := &mas.ScheduledInvocation{
				Process:    mas.FullyQualifiedName(args[0]),
				Parameters: parameters,
			}

			if at != "" {
				when, err := mas.ParseTimestamp(at)
				if err != nil {
					return fmt.Errorf("invalid --at time %q: %w", at, err)
				}

				body.Date = &when
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			inv, err := client.Invocations().Schedule(cmd.Context(), body)
			if err != nil {
				return fmt.Errorf("failed to schedule process: %w", err)
			}

			return render(cmd.OutOrStdout(), inv, invocationHeader, [][]string{invocationRow(*inv)})
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "process parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&at, "at", "", "run time (YYYY-MM-DDTHH:MM:SS, UTC)")

	return cmd
}

func parseParameters(params []string) (map[string]interface{}, error) {
	parameters := make(map[string]interface{}, len(params))

	for _, param := range params {
		name, raw, ok := strings.Cut(param, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q (use name=value)", constants.ErrInvalidParameter, param)
		}

		var value interface{}
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}

		parameters[name] = value
	}

	return parameters, nil
}
