package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/daygoal/internal/domain"
)

// dayDocument is the stored JSON shape of a day. Field names are part of the
// storage format and must not change.
type dayDocument struct {
	Tasks []taskDocument `json:"tasks"`
}

type taskDocument struct {
	ID            string             `json:"id"`
	TaskID        *string            `json:"taskId"`
	Name          string             `json:"name"`
	GoalMinutes   int                `json:"goalMinutes"`
	LoggedMinutes int                `json:"loggedMinutes"`
	TimeEntries   []intervalDocument `json:"timeEntries"`
}

type intervalDocument struct {
	ID        string     `json:"id"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Duration  int        `json:"duration"`
}

func encodeDay(d *domain.Day) (string, error) {
	doc := dayDocument{Tasks: make([]taskDocument, 0, len(d.Tasks))}
	for _, e := range d.Tasks {
		td := taskDocument{
			ID:            e.ID,
			TaskID:        e.TaskID,
			Name:          e.Name,
			GoalMinutes:   e.GoalMinutes,
			LoggedMinutes: e.LoggedMinutes,
			TimeEntries:   make([]intervalDocument, 0, len(e.Intervals)),
		}
		for _, iv := range e.Intervals {
			td.TimeEntries = append(td.TimeEntries, intervalDocument{
				ID:        iv.ID,
				StartTime: iv.StartTime,
				EndTime:   iv.EndTime,
				Duration:  iv.DurationMinutes,
			})
		}
		doc.Tasks = append(doc.Tasks, td)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding day %s: %w", d.Date, err)
	}
	return string(b), nil
}

func decodeDay(date, raw string) ([]domain.TaskEntry, error) {
	var doc dayDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decoding day %s: %w", date, err)
	}
	tasks := make([]domain.TaskEntry, 0, len(doc.Tasks))
	for _, td := range doc.Tasks {
		e := domain.TaskEntry{
			ID:            td.ID,
			TaskID:        td.TaskID,
			Name:          td.Name,
			GoalMinutes:   td.GoalMinutes,
			LoggedMinutes: td.LoggedMinutes,
			Intervals:     make([]domain.Interval, 0, len(td.TimeEntries)),
		}
		for _, id := range td.TimeEntries {
			e.Intervals = append(e.Intervals, domain.Interval{
				ID:              id.ID,
				StartTime:       id.StartTime,
				EndTime:         id.EndTime,
				DurationMinutes: id.Duration,
			})
		}
		tasks = append(tasks, e)
	}
	return tasks, nil
}
