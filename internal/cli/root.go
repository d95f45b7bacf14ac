package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/daygoal/internal/cli/formatter"
	"github.com/alexanderramin/daygoal/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Days    service.DayService
	Catalog service.CatalogService
	Goals   service.GoalService
	Stats   service.StatsService

	// IsInteractive reports whether prompts and the live timer view may be
	// used. Nil means never.
	IsInteractive func() bool
	// Now is the clock for "today" and default timer instants. Nil means
	// time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "daygoal" command and registers all
// subcommands against the provided App. Without a subcommand it shows today.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "daygoal",
		Short:         "Daily task goals with start/stop timers",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showDay(cmd, app, "")
		},
	}

	root.AddCommand(
		newDayCmd(app),
		newTimerCmd(app),
		newTaskCmd(app),
		newGoalCmd(app),
		newStatsCmd(app),
	)

	return root
}

func showDay(cmd *cobra.Command, app *App, dateFlag string) error {
	date, err := resolveDate(app, dateFlag)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	day, err := app.Days.GetOrCreate(ctx, date)
	if err != nil {
		return err
	}
	goal, err := app.Goals.DailyGoal(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(day, goal, app.now()))
	return nil
}
