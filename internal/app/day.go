package app

import (
	"strconv"
	"time"

	"github.com/alexanderramin/daygoal/internal/domain"
)

// EntryRef addresses a task entry or interval within a day. ID wins when
// set; Position is the zero-based display order.
type EntryRef struct {
	ID       string
	Position *int
}

func RefByID(id string) EntryRef { return EntryRef{ID: id} }

func RefByPosition(pos int) EntryRef { return EntryRef{Position: &pos} }

// IsZero reports whether neither an id nor a position is set.
func (r EntryRef) IsZero() bool {
	return r.ID == "" && r.Position == nil
}

func (r EntryRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	if r.Position != nil {
		return "#" + strconv.Itoa(*r.Position)
	}
	return "<none>"
}

// MutateIntervalRequest drives one timer action against a task entry.
// StartTime is read by start and add_manual, EndTime by end and add_manual,
// Interval by delete.
type MutateIntervalRequest struct {
	Date      string
	Task      EntryRef
	Action    domain.IntervalAction
	StartTime time.Time
	EndTime   time.Time
	Interval  EntryRef
}

// UpdateTaskRequest edits fields of one task entry. Nil fields are left as
// they are.
type UpdateTaskRequest struct {
	Date          string
	Task          EntryRef
	Name          *string
	GoalMinutes   *int
	LoggedMinutes *int
}

// TaskInput is one entry of a whole-day replace. Missing ids are generated
// and interval durations are derived from their start and end times.
type TaskInput struct {
	ID            string          `json:"id,omitempty"`
	TaskID        *string         `json:"taskId,omitempty"`
	Name          string          `json:"name"`
	GoalMinutes   int             `json:"goalMinutes"`
	LoggedMinutes int             `json:"loggedMinutes"`
	TimeEntries   []IntervalInput `json:"timeEntries,omitempty"`
}

type IntervalInput struct {
	ID        string     `json:"id,omitempty"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
}
