package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/daygoal/internal/db"
	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/alexanderramin/daygoal/internal/repository"
	"github.com/alexanderramin/daygoal/internal/service"
	"github.com/alexanderramin/daygoal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cliNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

const cliDate = "2024-01-01"

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	repos := testutil.NewTestRepos(database)
	goals := service.NewGoalService(repos.Settings)

	return &App{
		Days: service.NewDayService(
			testutil.NewTestUoW(database),
			repository.NewFactory(db.DialectSQLite),
			service.DayServiceConfig{StartPolicy: domain.StartReject, MaxRetries: 3},
		),
		Catalog: service.NewCatalogService(repos.Catalog),
		Goals:   goals,
		Stats:   service.NewStatsService(repos.Days, goals),
		Now:     func() time.Time { return cliNow },
	}
}

// seedCatalogTask creates a catalog task and adds it to today.
func seedCatalogTask(t *testing.T, app *App, name string, goal int) *domain.CatalogTask {
	t.Helper()
	ctx := context.Background()
	task := testutil.NewTestCatalogTask(name, testutil.WithDefaultGoal(goal))
	require.NoError(t, app.Catalog.Create(ctx, task))
	_, err := app.Days.AddTask(ctx, cliDate, task.ID)
	require.NoError(t, err)
	return task
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, "", args...)
}

func executeCmdWithInput(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func storedCLIDay(t *testing.T, app *App) *domain.Day {
	t.Helper()
	day, err := app.Days.GetOrCreate(context.Background(), cliDate)
	require.NoError(t, err)
	return day
}

// --- Root command ---

func TestRootCmd_ShowsToday(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "TODAY")
	assert.Contains(t, out, cliDate)
	assert.Contains(t, out, "No tasks yet")
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "45")
	assert.Error(t, err)
}

// --- Catalog ---

func TestTaskCmd_AddListRemove(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "task", "add", "--name", "Reading", "--goal", "30", "--color", "#ff0000")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task")

	tasks, err := app.Catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "#ff0000", tasks[0].Color)

	out, err = executeCmd(t, app, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Reading")
	assert.Contains(t, out, "30m")

	_, err = executeCmd(t, app, "task", "remove", tasks[0].ID)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "task", "remove", tasks[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskCmd_AddRequiresPositiveGoal(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "task", "add", "--name", "Reading", "--goal", "0")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// --- Day ---

func TestDayCmd_AddTaskByID(t *testing.T) {
	app := testApp(t)
	task := testutil.NewTestCatalogTask("Piano", testutil.WithDefaultGoal(45))
	require.NoError(t, app.Catalog.Create(context.Background(), task))

	out, err := executeCmd(t, app, "day", "add-task", task.ID, "--date", cliDate)
	require.NoError(t, err)
	assert.Contains(t, out, "Added Piano (#1, goal 45m)")

	day := storedCLIDay(t, app)
	require.Len(t, day.Tasks, 1)
	assert.Equal(t, 45, day.Tasks[0].GoalMinutes)
	assert.False(t, day.GoalReached)
}

func TestDayCmd_AddTaskWithoutIDNeedsTerminal(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "day", "add-task")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDayCmd_InvalidDate(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "day", "show", "--date", "2024-02-30")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDayCmd_ShowListsEntries(t *testing.T) {
	app := testApp(t)
	seedCatalogTask(t, app, "Reading", 30)

	out, err := executeCmd(t, app, "day", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Reading")
	assert.Contains(t, out, "goals pending")
}

func TestDayCmd_Set(t *testing.T) {
	app := testApp(t)
	seedCatalogTask(t, app, "Reading", 30)

	_, err := executeCmd(t, app, "day", "set", "1", "--name", "Novel", "--logged", "35")
	require.NoError(t, err)

	day := storedCLIDay(t, app)
	assert.Equal(t, "Novel", day.Tasks[0].Name)
	assert.Equal(t, 35, day.Tasks[0].LoggedMinutes)
	assert.True(t, day.GoalReached)

	_, err = executeCmd(t, app, "day", "set", "1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = executeCmd(t, app, "day", "set", "0", "--goal", "5")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = executeCmd(t, app, "day", "set", "4", "--goal", "5")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDayCmd_Remove(t *testing.T) {
	app := testApp(t)
	seedCatalogTask(t, app, "Reading", 30)
	seedCatalogTask(t, app, "Piano", 20)

	out, err := executeCmd(t, app, "day", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 left")

	day := storedCLIDay(t, app)
	require.Len(t, day.Tasks, 1)
	assert.Equal(t, "Piano", day.Tasks[0].Name)
}

func TestDayCmd_ReplaceFromStdin(t *testing.T) {
	app := testApp(t)
	input := `[
	  {"name": "Reading", "goalMinutes": 30, "loggedMinutes": 90,
	   "timeEntries": [{"startTime": "2024-01-01T09:00:00Z", "endTime": "2024-01-01T09:20:00Z"}]},
	  {"name": "Stretching", "goalMinutes": 10, "loggedMinutes": 10}
	]`

	out, err := executeCmdWithInput(t, app, input, "day", "replace", "--file", "-", "--date", cliDate)
	require.NoError(t, err)
	assert.Contains(t, out, "2 task(s), 30m logged")

	day := storedCLIDay(t, app)
	require.Len(t, day.Tasks, 2)
	assert.Equal(t, 20, day.Tasks[0].LoggedMinutes)
	assert.False(t, day.GoalReached)
}

func TestDayCmd_ReplaceRejectsBadJSON(t *testing.T) {
	_, err := executeCmdWithInput(t, testApp(t), `{"name": 1}`, "day", "replace", "--file", "-")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// --- Timer ---

func TestTimerCmd_StartStop(t *testing.T) {
	app := testApp(t)
	seedCatalogTask(t, app, "Reading", 30)

	out, err := executeCmd(t, app, "timer", "start", "1", "--at", "09:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Started Reading")

	_, err = executeCmd(t, app, "timer", "start", "1")
	assert.ErrorIs(t, err, domain.ErrValidation, "second start is rejected while running")

	out, err = executeCmd(t, app, "timer", "stop", "1", "--at", "09:25")
	require.NoError(t, err)
	assert.Contains(t, out, "after 25m")

	out, err = executeCmd(t, app, "timer", "stop", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No timer was running")
	assert.NotContains(t, out, "Stopped")

	day := storedCLIDay(t, app)
	require.Len(t, day.Tasks[0].Intervals, 1)
	assert.Equal(t, 25, day.TotalLoggedMinutes)
}

func TestTimerCmd_StopWithoutStart(t *testing.T) {
	app := testApp(t)
	seedCatalogTask(t, app, "Reading", 30)

	out, err := executeCmd(t, app, "timer", "stop", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No timer was running")
}

func TestTimerCmd_AddManualRollsOver(t *testing.T) {
	app := testApp(t)
	seedCatalogTask(t, app, "Reading", 30)

	out, err := executeCmd(t, app, "timer", "add", "1", "--from", "23:00", "--to", "01:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2h")

	_, err = executeCmd(t, app, "timer", "add", "1", "--from", "9am", "--to", "10:00")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTimerCmd_ListAndDelete(t *testing.T) {
	app := testApp(t)
	seedCatalogTask(t, app, "Reading", 30)
	_, err := executeCmd(t, app, "timer", "add", "1", "--from", "08:00", "--to", "08:40")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "timer", "list", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "40m")

	out, err = executeCmd(t, app, "timer", "delete", "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "0m logged", "no intervals left means nothing logged")

	_, err = executeCmd(t, app, "timer", "delete", "1", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = executeCmd(t, app, "timer", "list", "9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTimerCmd_WatchNeedsTerminal(t *testing.T) {
	app := testApp(t)
	seedCatalogTask(t, app, "Reading", 30)

	_, err := executeCmd(t, app, "timer", "watch", "1")
	assert.ErrorContains(t, err, "interactive terminal")
}

// --- Goal and stats ---

func TestGoalCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "goal", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No daily goal")

	_, err = executeCmd(t, app, "goal", "set", "90")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "goal", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "1h 30m")

	_, err = executeCmd(t, app, "goal", "set", "-5")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = executeCmd(t, app, "goal", "set", "lots")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatsCmd(t *testing.T) {
	app := testApp(t)
	seedCatalogTask(t, app, "Reading", 30)
	_, err := executeCmd(t, app, "day", "set", "1", "--logged", "30")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "stats", "--chart")
	require.NoError(t, err)
	assert.Contains(t, out, "HISTORY")
	assert.Contains(t, out, cliDate)
	assert.Contains(t, out, "Streak")
}
