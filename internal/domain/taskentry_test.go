package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedInterval(t *testing.T, start time.Time, minutes int) Interval {
	t.Helper()
	iv, err := OpenInterval(start)
	require.NoError(t, err)
	iv.Close(start.Add(time.Duration(minutes) * time.Minute))
	return iv
}

func TestRecompute_IntervalsOverrideManualValue(t *testing.T) {
	e := TaskEntry{
		Name:          "Reading",
		GoalMinutes:   30,
		LoggedMinutes: 90,
		Intervals: []Interval{
			closedInterval(t, testNow, 10),
			closedInterval(t, testNow.Add(time.Hour), 15),
		},
	}
	e.Recompute()
	assert.Equal(t, 25, e.LoggedMinutes)
	assert.False(t, e.GoalMet())
}

func TestRecompute_NoIntervalsPreservesManualValue(t *testing.T) {
	e := TaskEntry{Name: "Writing", GoalMinutes: 30, LoggedMinutes: 30}
	e.Recompute()
	assert.Equal(t, 30, e.LoggedMinutes)
	assert.True(t, e.GoalMet())
}

func TestRecompute_NoIntervalsDefaultsToZero(t *testing.T) {
	e := TaskEntry{Name: "Writing", GoalMinutes: 30}
	e.Recompute()
	assert.Equal(t, 0, e.LoggedMinutes)
}

func TestRecompute_OpenIntervalCountsZero(t *testing.T) {
	open, err := OpenInterval(testNow.Add(time.Hour))
	require.NoError(t, err)
	e := TaskEntry{
		LoggedMinutes: 45,
		Intervals:     []Interval{closedInterval(t, testNow, 20), open},
	}
	e.Recompute()
	assert.Equal(t, 20, e.LoggedMinutes)
}

func TestRecompute_ClampsNegatives(t *testing.T) {
	e := TaskEntry{GoalMinutes: -10, LoggedMinutes: -5}
	e.Recompute()
	assert.Equal(t, 0, e.GoalMinutes)
	assert.Equal(t, 0, e.LoggedMinutes)
}

func TestSetters_Clamp(t *testing.T) {
	e := TaskEntry{}
	e.SetGoalMinutes(-1)
	e.SetLoggedMinutes(-30)
	assert.Equal(t, 0, e.GoalMinutes)
	assert.Equal(t, 0, e.LoggedMinutes)

	e.SetGoalMinutes(45)
	e.SetLoggedMinutes(12)
	assert.Equal(t, 45, e.GoalMinutes)
	assert.Equal(t, 12, e.LoggedMinutes)
}

func TestSetLoggedMinutes_WithIntervalsRestoredOnRecompute(t *testing.T) {
	e := TaskEntry{Intervals: []Interval{closedInterval(t, testNow, 15)}}
	e.SetLoggedMinutes(200)
	e.Recompute()
	assert.Equal(t, 15, e.LoggedMinutes)
}

func TestNewTaskEntryFromCatalog(t *testing.T) {
	cat := &CatalogTask{ID: "cat-1", Name: "Piano", Color: "#ff0000", DefaultGoalMinutes: 40}
	e := NewTaskEntryFromCatalog(cat)

	assert.NotEmpty(t, e.ID)
	require.NotNil(t, e.TaskID)
	assert.Equal(t, "cat-1", *e.TaskID)
	assert.Equal(t, "Piano", e.Name)
	assert.Equal(t, 40, e.GoalMinutes)
	assert.Equal(t, 0, e.LoggedMinutes)
	assert.Empty(t, e.Intervals)

	cat.Name = "Renamed"
	assert.Equal(t, "Piano", e.Name, "snapshot should not follow catalog edits")
}

func TestOpenIntervalIndex(t *testing.T) {
	e := TaskEntry{}
	assert.Equal(t, -1, e.OpenIntervalIndex())
	assert.False(t, e.IsRunning())

	open, _ := OpenInterval(testNow.Add(time.Hour))
	e.Intervals = []Interval{closedInterval(t, testNow, 5), open}
	assert.Equal(t, 1, e.OpenIntervalIndex())
	assert.True(t, e.IsRunning())
	assert.Equal(t, 1, e.IntervalIndex(open.ID))
	assert.Equal(t, -1, e.IntervalIndex("missing"))
}
