package cli

import (
	"context"
	"fmt"

	daygoalapp "github.com/alexanderramin/daygoal/internal/app"
	"github.com/alexanderramin/daygoal/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// daygoalHuhTheme returns a huh theme using the Gruvbox palette.
func daygoalHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// catalogOptions labels each catalog task with its default goal.
func catalogOptions(ctx context.Context, lister daygoalapp.CatalogLister) []huh.Option[string] {
	tasks, err := lister.List(ctx)
	if err != nil || len(tasks) == 0 {
		return nil
	}
	options := make([]huh.Option[string], 0, len(tasks))
	for _, t := range tasks {
		label := fmt.Sprintf("%s (%s)", t.Name, formatter.FormatMinutes(t.DefaultGoalMinutes))
		options = append(options, huh.NewOption(label, t.ID))
	}
	return options
}

// wizardSelectCatalogTask builds a picker over the catalog. It returns nil
// when there is nothing to pick.
func wizardSelectCatalogTask(ctx context.Context, lister daygoalapp.CatalogLister, result *string) *huh.Form {
	options := catalogOptions(ctx, lister)
	if options == nil {
		return nil
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which task?").
				Options(options...).
				Value(result),
		),
	).WithTheme(daygoalHuhTheme()).WithShowHelp(false)
}
