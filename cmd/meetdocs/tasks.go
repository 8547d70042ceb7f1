package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/phrazzld/meetdocs/internal/task"
	"github.com/spf13/cobra"
)

func newTasksCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "Show which provider generates each document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, global)
			if err != nil {
				return err
			}

			tasks, err := task.BindTasks(task.DefaultTasks(), cfg.TaskBindings())
			if err != nil {
				return fmt.Errorf("failed to bind tasks: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tPROVIDER\tMODEL\tDOCUMENT")
			for _, t := range tasks {
				model := ""
				if pc, ok := cfg.Provider(t.Provider); ok {
					model = pc.Model
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.OutputKey, t.Provider, model, t.Name)
			}
			return tw.Flush()
		},
	}
}
