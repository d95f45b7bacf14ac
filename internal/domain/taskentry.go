package domain

import "github.com/google/uuid"

// TaskEntry is a task as tracked within one Day. Name and GoalMinutes are
// copied from the catalog when the entry is added and never re-synced.
type TaskEntry struct {
	ID            string
	TaskID        *string // weak reference into the catalog
	Name          string
	GoalMinutes   int
	LoggedMinutes int
	Intervals     []Interval
}

// NewTaskEntryFromCatalog snapshots a catalog task into a fresh day entry.
func NewTaskEntryFromCatalog(t *CatalogTask) TaskEntry {
	id := t.ID
	return TaskEntry{
		ID:          uuid.New().String(),
		TaskID:      &id,
		Name:        t.Name,
		GoalMinutes: clampNonNegative(t.DefaultGoalMinutes),
	}
}

// Recompute derives LoggedMinutes. With at least one interval the sum of
// interval durations always wins over a stored manual value. Without
// intervals the manual value is kept.
func (e *TaskEntry) Recompute() {
	e.GoalMinutes = clampNonNegative(e.GoalMinutes)
	if len(e.Intervals) == 0 {
		e.LoggedMinutes = clampNonNegative(e.LoggedMinutes)
		return
	}
	total := 0
	for _, iv := range e.Intervals {
		total += iv.DurationMinutes
	}
	e.LoggedMinutes = total
}

// SetGoalMinutes applies a direct edit, clamping negatives to zero.
func (e *TaskEntry) SetGoalMinutes(n int) {
	e.GoalMinutes = clampNonNegative(n)
}

// SetLoggedMinutes applies a direct edit, clamping negatives to zero. The
// value only survives Recompute when the entry has no intervals.
func (e *TaskEntry) SetLoggedMinutes(n int) {
	e.LoggedMinutes = clampNonNegative(n)
}

// GoalMet reports whether logged time covers the goal.
func (e *TaskEntry) GoalMet() bool {
	return e.LoggedMinutes >= e.GoalMinutes
}

// IsRunning reports whether any interval is open.
func (e *TaskEntry) IsRunning() bool {
	return e.OpenIntervalIndex() >= 0
}

// OpenIntervalIndex returns the position of the last open interval, or -1.
func (e *TaskEntry) OpenIntervalIndex() int {
	for i := len(e.Intervals) - 1; i >= 0; i-- {
		if e.Intervals[i].IsOpen() {
			return i
		}
	}
	return -1
}

// IntervalIndex returns the position of the interval with the given id, or -1.
func (e *TaskEntry) IntervalIndex(id string) int {
	for i := range e.Intervals {
		if e.Intervals[i].ID == id {
			return i
		}
	}
	return -1
}

// ensureIDs assigns ids to the entry and its intervals where missing, so
// documents written by older clients become addressable by id.
func (e *TaskEntry) ensureIDs() {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	for i := range e.Intervals {
		if e.Intervals[i].ID == "" {
			e.Intervals[i].ID = uuid.New().String()
		}
	}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
