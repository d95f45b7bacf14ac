package domain

import (
	"fmt"
	"time"
)

// Timer applies start/end/delete/manual actions to a task entry's intervals.
// An entry is Idle when no interval is open and Running otherwise.
type Timer struct {
	Policy StartPolicy
}

// NewTimer returns a Timer, falling back to StartReject for unknown policies.
func NewTimer(policy StartPolicy) Timer {
	if !ValidStartPolicies[string(policy)] {
		policy = StartReject
	}
	return Timer{Policy: policy}
}

// Start appends a new open interval. Under StartReject a running entry is
// refused; under StartAllow another open interval accumulates.
func (t Timer) Start(e *TaskEntry, start time.Time) error {
	if t.Policy != StartAllow && e.IsRunning() {
		return NewValidationError("action", "timer for %q is already running", e.Name)
	}
	iv, err := OpenInterval(start)
	if err != nil {
		return err
	}
	e.Intervals = append(e.Intervals, iv)
	return nil
}

// End closes the last interval when it is open. Ending an idle entry, or one
// whose last interval is already closed, is a silent no-op.
func (t Timer) End(e *TaskEntry, end time.Time) (bool, error) {
	if end.IsZero() {
		return false, NewValidationError("endTime", "must be a valid instant")
	}
	if len(e.Intervals) == 0 {
		return false, nil
	}
	return e.Intervals[len(e.Intervals)-1].Close(end), nil
}

// DeleteInterval removes the interval at idx regardless of timer state.
// Removing the last interval resets LoggedMinutes to zero, since the
// logged time was derived from the intervals that are now gone.
func (t Timer) DeleteInterval(e *TaskEntry, idx int) error {
	out, err := DeleteInterval(e.Intervals, idx)
	if err != nil {
		return err
	}
	e.Intervals = out
	if len(out) == 0 {
		e.LoggedMinutes = 0
	}
	return nil
}

// AddManual records a finished interval. An end earlier than start is read
// as the same clock time on the following day. The interval is opened and
// then closed through the same last-interval path as Start and End.
func (t Timer) AddManual(e *TaskEntry, start, end time.Time) error {
	if start.IsZero() {
		return NewValidationError("startTime", "must be a valid instant")
	}
	if end.IsZero() {
		return NewValidationError("endTime", "must be a valid instant")
	}
	end = RollOverEnd(start, end)
	if !end.After(start) {
		return NewValidationError("endTime", "must be after start time")
	}
	if err := t.Start(e, start); err != nil {
		return err
	}
	if _, err := t.End(e, end); err != nil {
		return err
	}
	return nil
}

// RollOverEnd shifts end forward one day when it falls before start.
func RollOverEnd(start, end time.Time) time.Time {
	if end.Before(start) {
		return end.AddDate(0, 0, 1)
	}
	return end
}

// ClockOnDate combines a YYYY-MM-DD date and an HH:MM clock time in loc.
func ClockOnDate(date, clock string, loc *time.Location) (time.Time, error) {
	if err := ValidateDate(date); err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout+" 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, NewValidationError("time", "%q is not an HH:MM clock time", clock)
	}
	return t, nil
}

// ManualRange converts a pair of HH:MM clock times on date into instants,
// applying the next-day rollover to the end.
func ManualRange(date, from, to string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := ClockOnDate(date, from, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ClockOnDate(date, to, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, RollOverEnd(start, end), nil
}

func positionKey(idx int) string {
	return fmt.Sprintf("#%d", idx)
}
