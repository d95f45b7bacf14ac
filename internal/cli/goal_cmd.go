package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/daygoal/internal/cli/formatter"
	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Show or set the overall daily goal",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the daily goal",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				minutes, err := app.Goals.DailyGoal(cmd.Context())
				if err != nil {
					return err
				}
				if minutes == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No daily goal set."))
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %s\n", formatter.Bold(formatter.FormatMinutes(minutes)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set MINUTES",
			Short: "Set the daily goal in minutes (0 clears it)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				minutes, err := strconv.Atoi(args[0])
				if err != nil {
					return domain.NewValidationError("minutes", "%q is not a number", args[0])
				}
				if err := app.Goals.SetDailyGoal(cmd.Context(), minutes); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Daily goal set to %s\n", formatter.FormatMinutes(minutes))
				return nil
			},
		},
	)

	return cmd
}
