package cli

import (
	"fmt"

	"github.com/alexanderramin/daygoal/internal/cli/formatter"
	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the catalog of reusable tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var name, color string
	var goal int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a catalog task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.CatalogTask{
				Name:               name,
				Color:              color,
				DefaultGoalMinutes: goal,
			}
			if err := app.Catalog.Create(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s, goal %s)\n",
				formatter.Bold(t.Name), t.ID, formatter.FormatMinutes(t.DefaultGoalMinutes))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().IntVar(&goal, "goal", 0, "Default goal in minutes")
	cmd.Flags().StringVar(&color, "color", "", "Display color as #rrggbb")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Tasks", formatter.FormatCatalog(tasks)))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a catalog task",
		Long:  "Delete a catalog task. Entries already added to days keep their copied name and goal.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Catalog.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
}
