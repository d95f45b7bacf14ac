package cli

import (
	"fmt"

	daygoalapp "github.com/alexanderramin/daygoal/internal/app"
	"github.com/alexanderramin/daygoal/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const (
	statsChartWidth  = 60
	statsChartHeight = 12
)

func newStatsCmd(app *App) *cobra.Command {
	var days int
	var chart bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize recent days, streak and averages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Stats.Summary(cmd.Context(), daygoalapp.StatsRequest{Days: days})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatStats(resp, app.now()))
			if chart && len(resp.Days) > 0 {
				fmt.Fprintln(out, formatter.RenderStatsChart(resp, statsChartWidth, statsChartHeight))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 14, "Number of most recent days to include (0 for all)")
	cmd.Flags().BoolVar(&chart, "chart", false, "Draw a bar chart of logged minutes")

	return cmd
}
