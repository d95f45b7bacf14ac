package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/alexanderramin/daygoal/internal/app"
	"github.com/charmbracelet/lipgloss"
)

const statsProgressBarWidth = 10

// FormatStats renders the history summary as a table followed by the
// streak and averages.
func FormatStats(resp *app.StatsResponse, now time.Time) string {
	var b strings.Builder

	if len(resp.Days) == 0 {
		b.WriteString(Dim("No days recorded yet."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(resp.Days))
		for _, d := range resp.Days {
			rows = append(rows, []string{
				Bold(d.Date),
				Dim(DayLabel(d.Date, now)),
				fmt.Sprintf("%d", d.TaskCount),
				FormatMinutes(d.TotalLoggedMinutes),
				RenderGoalProgress(d.TotalLoggedMinutes, d.TotalGoalMinutes, statsProgressBarWidth),
				GoalIndicator(d.GoalReached && d.TaskCount > 0),
			})
		}
		b.WriteString(RenderTable([]string{"DATE", "", "TASKS", "LOGGED", "PROGRESS", "GOALS"}, rows))
	}

	b.WriteString("\n")
	streak := StyleFg.Render(fmt.Sprintf("%d days", resp.Streak))
	if resp.Streak > 0 {
		streak = StyleGreen.Render(fmt.Sprintf("%d days", resp.Streak))
	}
	fmt.Fprintf(&b, "Streak %s%sReached %d/%d%sTotal %s%sAverage %s",
		streak, Dim(" · "),
		resp.DaysReached, len(resp.Days), Dim(" · "),
		FormatMinutes(resp.TotalLogged), Dim(" · "),
		FormatMinutes(resp.AverageLogged))
	if resp.DailyGoalMinutes > 0 {
		fmt.Fprintf(&b, "%sDaily goal %s", Dim(" · "), FormatMinutes(resp.DailyGoalMinutes))
	}

	return RenderBox("History", b.String())
}

// RenderStatsChart draws logged minutes per day as a bar chart, oldest day
// on the left. Days that reached their goals are green.
func RenderStatsChart(resp *app.StatsResponse, width, height int) string {
	if len(resp.Days) == 0 {
		return ""
	}
	chart := barchart.New(width, height)

	bars := make([]barchart.BarData, 0, len(resp.Days))
	for i := len(resp.Days) - 1; i >= 0; i-- {
		d := resp.Days[i]
		style := lipgloss.NewStyle().Foreground(ColorYellow)
		if d.GoalReached && d.TaskCount > 0 {
			style = lipgloss.NewStyle().Foreground(ColorGreen)
		}
		label := d.Date
		if len(label) == len("2006-01-02") {
			label = label[5:]
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  d.Date,
				Value: float64(d.TotalLoggedMinutes),
				Style: style,
			}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}
