package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/daygoal/internal/domain"
)

const dayProgressBarWidth = 12

// FormatDay renders a day's task entries with their progress and the day's
// aggregate line. dailyGoal is the user's overall target in minutes; zero
// hides it.
func FormatDay(d *domain.Day, dailyGoal int, now time.Time) string {
	var b strings.Builder

	if len(d.Tasks) == 0 {
		b.WriteString(Dim("No tasks yet. Add one with `daygoal day add-task`."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(d.Tasks))
		for i := range d.Tasks {
			e := &d.Tasks[i]
			rows = append(rows, []string{
				Dim(strconv.Itoa(i + 1)),
				Bold(e.Name),
				FormatMinutes(e.LoggedMinutes),
				FormatMinutes(e.GoalMinutes),
				RenderGoalProgress(e.LoggedMinutes, e.GoalMinutes, dayProgressBarWidth),
				GoalIndicator(e.GoalMet()) + " " + RunningIndicator(e.IsRunning()),
			})
		}
		b.WriteString(RenderTable([]string{"#", "TASK", "LOGGED", "GOAL", "PROGRESS", "STATUS"}, rows))
	}

	b.WriteString("\n")
	b.WriteString(formatDayTotals(d, dailyGoal))

	return RenderBox(DayLabel(d.Date, now)+" · "+d.Date, b.String())
}

func formatDayTotals(d *domain.Day, dailyGoal int) string {
	parts := []string{
		fmt.Sprintf("Logged %s of %s", Bold(FormatMinutes(d.TotalLoggedMinutes)), FormatMinutes(d.TotalGoalMinutes())),
		fmt.Sprintf("%d%%", d.CompletionPct()),
	}
	if d.GoalReached {
		parts = append(parts, StyleGreen.Render("all goals reached"))
	} else {
		parts = append(parts, StyleYellow.Render("goals pending"))
	}
	line := strings.Join(parts, Dim(" · "))
	if dailyGoal > 0 {
		line += "\n" + Dim("Daily goal ") + RenderGoalProgress(d.TotalLoggedMinutes, dailyGoal, dayProgressBarWidth*2)
	}
	return line
}

// FormatIntervals lists the timing records of one entry. Open intervals
// show the elapsed time up to now.
func FormatIntervals(e *domain.TaskEntry, now time.Time) string {
	if len(e.Intervals) == 0 {
		return Dim("No timer intervals recorded.")
	}
	rows := make([][]string, 0, len(e.Intervals))
	for i, iv := range e.Intervals {
		end := StyleRed.Render("running")
		dur := Dim(FormatElapsed(now.Sub(iv.StartTime)))
		if !iv.IsOpen() {
			end = ClockTime(*iv.EndTime)
			dur = FormatMinutes(iv.DurationMinutes)
		}
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			ClockTime(iv.StartTime),
			end,
			dur,
			TruncID(iv.ID),
		})
	}
	return RenderTable([]string{"#", "START", "END", "DURATION", "ID"}, rows)
}

// FormatCatalog renders the reusable task definitions.
func FormatCatalog(tasks []*domain.CatalogTask) string {
	if len(tasks) == 0 {
		return Dim("Catalog is empty. Create a task with `daygoal task add`.")
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			TaskColor(t.Color).Render("■") + " " + Bold(t.Name),
			FormatMinutes(t.DefaultGoalMinutes),
			Dim(t.Color),
		})
	}
	return RenderTable([]string{"ID", "NAME", "DEFAULT GOAL", "COLOR"}, rows)
}
