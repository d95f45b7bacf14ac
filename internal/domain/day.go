package domain

import (
	"math"
	"time"
)

// DateLayout is the storage key format of a Day.
const DateLayout = "2006-01-02"

// Day is the aggregate record for one calendar date.
type Day struct {
	Date               string
	Tasks              []TaskEntry
	TotalLoggedMinutes int
	GoalReached        bool

	// Version counts successful writes; zero means never persisted.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDay returns an empty, unpersisted day. GoalReached starts true because
// an empty task list meets every goal.
func NewDay(date string) *Day {
	return &Day{Date: date, Tasks: []TaskEntry{}, GoalReached: true}
}

// ValidateDate checks that date is a real calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if date == "" {
		return NewValidationError("date", "is required")
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil || t.Format(DateLayout) != date {
		return NewValidationError("date", "%q is not a YYYY-MM-DD date", date)
	}
	return nil
}

// Recompute rederives every entry's logged minutes, then the day total and
// goal flag. Order of Tasks is preserved.
func (d *Day) Recompute() {
	total := 0
	reached := true
	for i := range d.Tasks {
		d.Tasks[i].ensureIDs()
		d.Tasks[i].Recompute()
		total += d.Tasks[i].LoggedMinutes
		if !d.Tasks[i].GoalMet() {
			reached = false
		}
	}
	d.TotalLoggedMinutes = total
	d.GoalReached = reached
}

// TotalGoalMinutes sums the goals of all entries.
func (d *Day) TotalGoalMinutes() int {
	total := 0
	for _, t := range d.Tasks {
		total += t.GoalMinutes
	}
	return total
}

// CompletionPct is logged time over goal time as a whole percentage capped
// at 100. A day without goal minutes reports 0.
func (d *Day) CompletionPct() int {
	goal := d.TotalGoalMinutes()
	if goal == 0 {
		return 0
	}
	pct := int(math.Round(float64(d.TotalLoggedMinutes) / float64(goal) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// TaskIndex returns the position of the entry with the given id, or -1.
func (d *Day) TaskIndex(id string) int {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// HasCatalogTask reports whether a catalog task is already tracked on this day.
func (d *Day) HasCatalogTask(taskID string) bool {
	for _, t := range d.Tasks {
		if t.TaskID != nil && *t.TaskID == taskID {
			return true
		}
	}
	return false
}

// RemoveTask drops the entry at idx and recomputes the aggregates.
func (d *Day) RemoveTask(idx int) error {
	if idx < 0 || idx >= len(d.Tasks) {
		return &NotFoundError{Entity: "task entry", Key: positionKey(idx)}
	}
	d.Tasks = append(d.Tasks[:idx:idx], d.Tasks[idx+1:]...)
	d.Recompute()
	return nil
}

// MissingIDs reports whether any entry or interval lacks an id, as in
// documents written before ids were assigned.
func (d *Day) MissingIDs() bool {
	for _, t := range d.Tasks {
		if t.ID == "" {
			return true
		}
		for _, iv := range t.Intervals {
			if iv.ID == "" {
				return true
			}
		}
	}
	return false
}
