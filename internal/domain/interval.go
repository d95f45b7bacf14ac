package domain

import (
	"time"

	"github.com/google/uuid"
)

// Interval is one contiguous start/stop timing record within a TaskEntry.
// A nil EndTime means the interval is still running.
type Interval struct {
	ID              string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes int
}

// OpenInterval starts a new running interval at start.
func OpenInterval(start time.Time) (Interval, error) {
	if start.IsZero() {
		return Interval{}, NewValidationError("startTime", "must be a valid instant")
	}
	return Interval{ID: uuid.New().String(), StartTime: start}, nil
}

// IsOpen reports whether the interval has no end time yet.
func (iv Interval) IsOpen() bool {
	return iv.EndTime == nil
}

// Close records end and computes the duration. Only the first close counts:
// closing an already closed interval returns false and changes nothing.
func (iv *Interval) Close(end time.Time) bool {
	if !iv.IsOpen() {
		return false
	}
	iv.EndTime = &end
	iv.DurationMinutes = IntervalMinutes(iv.StartTime, end)
	return true
}

// IntervalMinutes converts the elapsed time between start and end into whole
// minutes. Elapsed time is truncated to seconds and halves round up; a
// negative span clamps to zero.
func IntervalMinutes(start, end time.Time) int {
	secs := int64(end.Sub(start) / time.Second)
	if secs <= 0 {
		return 0
	}
	return int((secs + 30) / 60)
}

// DeleteInterval removes the interval at idx, returning the shortened slice.
func DeleteInterval(intervals []Interval, idx int) ([]Interval, error) {
	if idx < 0 || idx >= len(intervals) {
		return intervals, &NotFoundError{Entity: "interval", Key: positionKey(idx)}
	}
	out := make([]Interval, 0, len(intervals)-1)
	out = append(out, intervals[:idx]...)
	return append(out, intervals[idx+1:]...), nil
}
