package testutil

import (
	"time"

	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/google/uuid"
)

// BaseTime is a fixed instant fixtures hang intervals off.
var BaseTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// Catalog task options
type CatalogOption func(*domain.CatalogTask)

func WithColor(c string) CatalogOption {
	return func(t *domain.CatalogTask) {
		t.Color = c
	}
}

func WithDefaultGoal(minutes int) CatalogOption {
	return func(t *domain.CatalogTask) {
		t.DefaultGoalMinutes = minutes
	}
}

func NewTestCatalogTask(name string, opts ...CatalogOption) *domain.CatalogTask {
	t := &domain.CatalogTask{
		ID:                 uuid.New().String(),
		Name:               name,
		Color:              domain.DefaultCatalogColor,
		DefaultGoalMinutes: 30,
		CreatedAt:          time.Now().UTC(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Task entry options
type EntryOption func(*domain.TaskEntry)

func WithGoal(minutes int) EntryOption {
	return func(e *domain.TaskEntry) {
		e.GoalMinutes = minutes
	}
}

func WithLogged(minutes int) EntryOption {
	return func(e *domain.TaskEntry) {
		e.LoggedMinutes = minutes
	}
}

func WithCatalogID(id string) EntryOption {
	return func(e *domain.TaskEntry) {
		e.TaskID = &id
	}
}

// WithClosedInterval appends a finished interval of the given length.
func WithClosedInterval(start time.Time, minutes int) EntryOption {
	return func(e *domain.TaskEntry) {
		end := start.Add(time.Duration(minutes) * time.Minute)
		e.Intervals = append(e.Intervals, domain.Interval{
			ID:              uuid.New().String(),
			StartTime:       start,
			EndTime:         &end,
			DurationMinutes: minutes,
		})
	}
}

func WithOpenInterval(start time.Time) EntryOption {
	return func(e *domain.TaskEntry) {
		e.Intervals = append(e.Intervals, domain.Interval{
			ID:        uuid.New().String(),
			StartTime: start,
		})
	}
}

func NewTestTaskEntry(name string, opts ...EntryOption) domain.TaskEntry {
	e := domain.TaskEntry{
		ID:          uuid.New().String(),
		Name:        name,
		GoalMinutes: 30,
		Intervals:   []domain.Interval{},
	}
	for _, o := range opts {
		o(&e)
	}
	return e
}

// NewTestDay returns a recomputed, unpersisted day holding entries.
func NewTestDay(date string, entries ...domain.TaskEntry) *domain.Day {
	d := domain.NewDay(date)
	d.Tasks = append(d.Tasks, entries...)
	d.Recompute()
	return d
}
