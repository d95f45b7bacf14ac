package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/daygoal/internal/app"
	"github.com/alexanderramin/daygoal/internal/db"
	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/alexanderramin/daygoal/internal/repository"
	"github.com/alexanderramin/daygoal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func TestDayService_ObservesUseCases(t *testing.T) {
	database := testutil.NewTestDB(t)
	rec := &recordingObserver{}
	svc := NewDayService(testutil.NewTestUoW(database), repository.NewFactory(db.DialectSQLite), DayServiceConfig{}, rec)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, testDate)
	require.NoError(t, err)
	_, err = svc.RemoveTask(ctx, testDate, app.RefByPosition(0))
	require.Error(t, err)

	require.Len(t, rec.events, 2)
	assert.Equal(t, "get-or-create-day", rec.events[0].Name)
	assert.True(t, rec.events[0].Success)
	assert.Equal(t, testDate, rec.events[0].Fields["date"])
	assert.Equal(t, 1, rec.events[0].Fields["attempts"])

	assert.Equal(t, "remove-task", rec.events[1].Name)
	assert.False(t, rec.events[1].Success)
	assert.ErrorIs(t, rec.events[1].Err, domain.ErrNotFound)
}

func TestLogUseCaseObserver_WritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "mutate-interval",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"date": testDate, "action": "start"},
	})
	out := buf.String()
	assert.Contains(t, out, "msg=service_use_case")
	assert.Contains(t, out, "use_case=mutate-interval")
	assert.Contains(t, out, "duration_ms=12")
	assert.Contains(t, out, "action=start date=2024-01-01")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "remove-task", Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
