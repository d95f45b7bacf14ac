package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	daygoalapp "github.com/alexanderramin/daygoal/internal/app"
	"github.com/alexanderramin/daygoal/internal/cli/formatter"
	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newDayCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show and edit the task entries of a day",
	}
	cmd.PersistentFlags().StringVar(&dateFlag, "date", "", "Day to operate on (YYYY-MM-DD, today, yesterday)")

	cmd.AddCommand(
		newDayShowCmd(app, &dateFlag),
		newDayReplaceCmd(app, &dateFlag),
		newDayAddTaskCmd(app, &dateFlag),
		newDaySetCmd(app, &dateFlag),
		newDayRemoveCmd(app, &dateFlag),
	)

	return cmd
}

func newDayShowCmd(app *App, dateFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show a day's tasks and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showDay(cmd, app, *dateFlag)
		},
	}
}

func newDayReplaceCmd(app *App, dateFlag *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Replace a day's whole task list from a JSON file",
		Long: `Replace a day's whole task list from a JSON array of entries:

  [{"name": "Reading", "goalMinutes": 30, "loggedMinutes": 10,
    "timeEntries": [{"startTime": "2024-01-01T09:00:00Z", "endTime": "2024-01-01T09:20:00Z"}]}]

Use --file - to read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(app, *dateFlag)
			if err != nil {
				return err
			}
			tasks, err := readTaskInputs(cmd, file)
			if err != nil {
				return err
			}
			day, err := app.Days.ReplaceDay(cmd.Context(), date, tasks)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Replaced %s with %d task(s), %s logged\n",
				day.Date, len(day.Tasks), formatter.FormatMinutes(day.TotalLoggedMinutes))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "JSON file with the task entries (- for stdin)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readTaskInputs(cmd *cobra.Command, file string) ([]daygoalapp.TaskInput, error) {
	var r io.Reader
	if file == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", file, err)
		}
		defer f.Close()
		r = f
	}

	var tasks []daygoalapp.TaskInput
	if err := json.NewDecoder(r).Decode(&tasks); err != nil {
		return nil, domain.NewValidationError("file", "not a JSON array of task entries: %v", err)
	}
	return tasks, nil
}

func newDayAddTaskCmd(app *App, dateFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add-task [CATALOG_TASK_ID]",
		Short: "Add a catalog task to a day",
		Long:  "Add a catalog task to a day. Without an id an interactive picker is shown.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(app, *dateFlag)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var catalogID string
			if len(args) == 1 {
				catalogID = args[0]
			} else {
				if !app.interactive() {
					return domain.NewValidationError("catalogTaskId", "is required when not running in a terminal")
				}
				form := wizardSelectCatalogTask(ctx, app.Catalog, &catalogID)
				if form == nil {
					return fmt.Errorf("catalog is empty: create a task with `daygoal task add` first")
				}
				if err := form.Run(); err != nil {
					return err
				}
			}

			day, err := app.Days.AddTask(ctx, date, catalogID)
			if err != nil {
				return err
			}
			added := day.Tasks[len(day.Tasks)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (#%d, goal %s) to %s\n",
				added.Name, len(day.Tasks), formatter.FormatMinutes(added.GoalMinutes), day.Date)
			return nil
		},
	}
}

func newDaySetCmd(app *App, dateFlag *string) *cobra.Command {
	var name string
	var goal, logged int

	cmd := &cobra.Command{
		Use:   "set TASK",
		Short: "Edit the name, goal or manual minutes of a task entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(app, *dateFlag)
			if err != nil {
				return err
			}
			ref, err := resolveEntryRef(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			req := daygoalapp.UpdateTaskRequest{
				Date:          date,
				Task:          ref,
				Name:          changed(flags, "name", name),
				GoalMinutes:   changed(flags, "goal", goal),
				LoggedMinutes: changed(flags, "logged", logged),
			}
			if req.Name == nil && req.GoalMinutes == nil && req.LoggedMinutes == nil {
				return domain.NewValidationError("flags", "set at least one of --name, --goal, --logged")
			}

			day, err := app.Days.UpdateTask(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(day, 0, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().IntVar(&goal, "goal", 0, "New goal in minutes")
	cmd.Flags().IntVar(&logged, "logged", 0, "Manually logged minutes (ignored while the entry has timer intervals)")

	return cmd
}

// changed returns &v when the flag was given on the command line, so an
// explicit zero is distinguishable from an absent flag.
func changed[T any](flags *pflag.FlagSet, name string, v T) *T {
	if !flags.Changed(name) {
		return nil
	}
	return &v
}

func newDayRemoveCmd(app *App, dateFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TASK",
		Short: "Remove a task entry from a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(app, *dateFlag)
			if err != nil {
				return err
			}
			ref, err := resolveEntryRef(args[0])
			if err != nil {
				return err
			}
			day, err := app.Days.RemoveTask(cmd.Context(), date, ref)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s from %s (%d left)\n", args[0], day.Date, len(day.Tasks))
			return nil
		},
	}
}
