package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// NewProcessesCommand creates the processes command group.
func NewProcessesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "processes",
		Aliases: []string{"process", "proc"},
		Short:   "Manage processes",
		Long:    "List and inspect MAS processes",
	}

	cmd.AddCommand(newProcessesListCommand())
	cmd.AddCommand(newProcessesGetCommand())

	return cmd
}

func newProcessesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [PROCESS_NAME...]",
		Short: "List processes",
		Long:  "List all processes, or the processes with the given fully qualified names",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			processes, err := client.Processes().List(cmd.Context(), fullyQualifiedNames(args)...)
			if err != nil {
				return fmt.Errorf("failed to list processes: %w", err)
			}

			return renderList(cmd, processes, []string{"Name", "Description", "Executable"},
				func(p mas.ListedProcess) []string {
					return []string{string(p.Name), p.Description, yesNo(p.IsExecutable)}
				})
		},
	}
}

func newProcessesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROCESS_NAME",
		Short: "Get process details",
		Long:  "Display a process and its parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			process, err := client.Processes().Get(cmd.Context(), mas.FullyQualifiedName(args[0]))
			if err != nil {
				return fmt.Errorf("failed to get process: %w", err)
			}

			rows := make([][]string, 0, len(process.Parameters))
			for _, param := range process.Parameters {
				rows = append(rows, []string{param.Name, param.DataType, optional(param.Default), param.Description})
			}

			return render(cmd.OutOrStdout(), process, []string{"Parameter", "Type", "Default", "Description"}, rows)
		},
	}
}
