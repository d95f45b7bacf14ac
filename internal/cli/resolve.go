package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	daygoalapp "github.com/alexanderramin/daygoal/internal/app"
	"github.com/alexanderramin/daygoal/internal/domain"
)

// resolveDate returns flag as a validated YYYY-MM-DD date, or today's date
// on the app clock when flag is empty. "today" and "yesterday" are accepted.
func resolveDate(a *App, flag string) (string, error) {
	now := a.now()
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "", "today":
		return now.Format(domain.DateLayout), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(domain.DateLayout), nil
	}
	if err := domain.ValidateDate(flag); err != nil {
		return "", err
	}
	return flag, nil
}

// resolveEntryRef parses a task or interval reference. A positive integer
// is a 1-based position as shown by `day show`; anything else is an id.
func resolveEntryRef(input string) (daygoalapp.EntryRef, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return daygoalapp.EntryRef{}, domain.NewValidationError("ref", "is required")
	}
	n, err := strconv.Atoi(strings.TrimPrefix(input, "#"))
	if err != nil {
		return daygoalapp.RefByID(input), nil
	}
	if n <= 0 {
		return daygoalapp.EntryRef{}, domain.NewValidationError("ref", "position %d must be 1 or greater", n)
	}
	return daygoalapp.RefByPosition(n - 1), nil
}

// resolveInstant parses a timer instant. Empty means now; HH:MM is a
// wall-clock time on date in the app clock's zone; anything else must be
// RFC 3339.
func resolveInstant(a *App, date, value string) (time.Time, error) {
	now := a.now()
	if value == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := domain.ClockOnDate(date, value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q (want HH:MM or RFC 3339): %w", value, err)
	}
	return t, nil
}
