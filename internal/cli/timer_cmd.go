package cli

import (
	"fmt"
	"time"

	daygoalapp "github.com/alexanderramin/daygoal/internal/app"
	"github.com/alexanderramin/daygoal/internal/cli/formatter"
	"github.com/alexanderramin/daygoal/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Start, stop and edit timer intervals of a task entry",
		Long: `Start, stop and edit timer intervals of a task entry.

TASK is the 1-based position shown by 'daygoal day show' or an entry id.
Once an entry has intervals its logged minutes are the sum of their durations.`,
	}
	cmd.PersistentFlags().StringVar(&dateFlag, "date", "", "Day to operate on (YYYY-MM-DD, today, yesterday)")

	cmd.AddCommand(
		newTimerStartCmd(app, &dateFlag),
		newTimerStopCmd(app, &dateFlag),
		newTimerAddCmd(app, &dateFlag),
		newTimerDeleteCmd(app, &dateFlag),
		newTimerListCmd(app, &dateFlag),
		newTimerWatchCmd(app, &dateFlag),
	)

	return cmd
}

// timerTarget resolves the date flag and the TASK argument shared by every
// timer subcommand.
func timerTarget(app *App, dateFlag, task string) (string, daygoalapp.EntryRef, error) {
	date, err := resolveDate(app, dateFlag)
	if err != nil {
		return "", daygoalapp.EntryRef{}, err
	}
	ref, err := resolveEntryRef(task)
	if err != nil {
		return "", daygoalapp.EntryRef{}, err
	}
	return date, ref, nil
}

// entryFor finds the entry ref points at in day, or nil.
func entryFor(day *domain.Day, ref daygoalapp.EntryRef) *domain.TaskEntry {
	idx := -1
	switch {
	case ref.ID != "":
		idx = day.TaskIndex(ref.ID)
	case ref.Position != nil:
		idx = *ref.Position
	}
	if idx < 0 || idx >= len(day.Tasks) {
		return nil
	}
	return &day.Tasks[idx]
}

// stoppedAt reports whether e's last interval was closed at end. Ending an
// idle entry leaves an earlier end time in place.
func stoppedAt(e *domain.TaskEntry, end time.Time) bool {
	if e == nil || len(e.Intervals) == 0 {
		return false
	}
	last := e.Intervals[len(e.Intervals)-1]
	return last.EndTime != nil && last.EndTime.Equal(end)
}

func newTimerStartCmd(app *App, dateFlag *string) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "start TASK",
		Short: "Start the timer of a task entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, ref, err := timerTarget(app, *dateFlag, args[0])
			if err != nil {
				return err
			}
			start, err := resolveInstant(app, date, at)
			if err != nil {
				return err
			}
			day, err := app.Days.MutateInterval(cmd.Context(), daygoalapp.MutateIntervalRequest{
				Date: date, Task: ref, Action: domain.ActionStart, StartTime: start,
			})
			if err != nil {
				return err
			}
			name := args[0]
			if e := entryFor(day, ref); e != nil {
				name = e.Name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started %s at %s\n", formatter.Bold(name), formatter.ClockTime(start))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Start time (HH:MM or RFC 3339, default now)")
	return cmd
}

func newTimerStopCmd(app *App, dateFlag *string) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "stop TASK",
		Short: "Stop the running timer of a task entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, ref, err := timerTarget(app, *dateFlag, args[0])
			if err != nil {
				return err
			}
			end, err := resolveInstant(app, date, at)
			if err != nil {
				return err
			}
			day, err := app.Days.MutateInterval(cmd.Context(), daygoalapp.MutateIntervalRequest{
				Date: date, Task: ref, Action: domain.ActionEnd, EndTime: end,
			})
			if err != nil {
				return err
			}
			e := entryFor(day, ref)
			if !stoppedAt(e, end) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No timer was running."))
				return nil
			}
			last := e.Intervals[len(e.Intervals)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped %s after %s (%s of %s logged)\n",
				formatter.Bold(e.Name),
				formatter.FormatMinutes(last.DurationMinutes),
				formatter.FormatMinutes(e.LoggedMinutes),
				formatter.FormatMinutes(e.GoalMinutes))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Stop time (HH:MM or RFC 3339, default now)")
	return cmd
}

func newTimerAddCmd(app *App, dateFlag *string) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "add TASK",
		Short: "Add a finished interval by clock times",
		Long:  "Add a finished interval by clock times. A --to earlier than --from ends on the next day.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, ref, err := timerTarget(app, *dateFlag, args[0])
			if err != nil {
				return err
			}
			start, end, err := domain.ManualRange(date, from, to, app.now().Location())
			if err != nil {
				return err
			}
			day, err := app.Days.MutateInterval(cmd.Context(), daygoalapp.MutateIntervalRequest{
				Date: date, Task: ref, Action: domain.ActionAddManual, StartTime: start, EndTime: end,
			})
			if err != nil {
				return err
			}
			if e := entryFor(day, ref); e != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (%s logged)\n",
					formatter.FormatMinutes(domain.IntervalMinutes(start, end)),
					formatter.Bold(e.Name),
					formatter.FormatMinutes(e.LoggedMinutes))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start clock time (HH:MM)")
	cmd.Flags().StringVar(&to, "to", "", "End clock time (HH:MM)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newTimerDeleteCmd(app *App, dateFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TASK INTERVAL",
		Short: "Delete one timer interval of a task entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, ref, err := timerTarget(app, *dateFlag, args[0])
			if err != nil {
				return err
			}
			ivRef, err := resolveEntryRef(args[1])
			if err != nil {
				return err
			}
			day, err := app.Days.MutateInterval(cmd.Context(), daygoalapp.MutateIntervalRequest{
				Date: date, Task: ref, Action: domain.ActionDelete, Interval: ivRef,
			})
			if err != nil {
				return err
			}
			if e := entryFor(day, ref); e != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted interval %s of %s (%s logged)\n",
					args[1], formatter.Bold(e.Name), formatter.FormatMinutes(e.LoggedMinutes))
			}
			return nil
		},
	}
}

func newTimerListCmd(app *App, dateFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list TASK",
		Short: "List the timer intervals of a task entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, ref, err := timerTarget(app, *dateFlag, args[0])
			if err != nil {
				return err
			}
			day, err := app.Days.GetOrCreate(cmd.Context(), date)
			if err != nil {
				return err
			}
			e := entryFor(day, ref)
			if e == nil {
				return &domain.NotFoundError{Entity: "task entry", Key: args[0]}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox(e.Name, formatter.FormatIntervals(e, app.now())))
			return nil
		},
	}
}

func newTimerWatchCmd(app *App, dateFlag *string) *cobra.Command {
	var start bool

	cmd := &cobra.Command{
		Use:   "watch TASK",
		Short: "Show a live timer for a running task entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("timer watch needs an interactive terminal")
			}
			date, ref, err := timerTarget(app, *dateFlag, args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if start {
				_, err := app.Days.MutateInterval(ctx, daygoalapp.MutateIntervalRequest{
					Date: date, Task: ref, Action: domain.ActionStart, StartTime: app.now(),
				})
				if err != nil {
					return err
				}
			}
			model, err := newTimerModel(ctx, app.Days, app.now, date, ref)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&start, "start", false, "Start the timer before watching")
	return cmd
}
