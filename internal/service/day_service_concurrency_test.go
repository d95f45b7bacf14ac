package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
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

func TestMutateInterval_RollbackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	seeded := seedDay(t, database, testutil.NewTestTaskEntry("Reading", testutil.WithClosedInterval(testutil.BaseTime, 10)))

	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 1,
		Err:    fmt.Errorf("injected write failure"),
	}
	svc := NewDayService(failUoW, repository.NewFactory(db.DialectSQLite), DayServiceConfig{StartPolicy: domain.StartReject})

	req := mutate(domain.ActionStart, 0)
	req.StartTime = testutil.BaseTime.Add(time.Hour)
	_, err := svc.MutateInterval(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected write failure")
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, int32(1), failUoW.Calls.Load(), "storage failures are not retried")

	stored := storedDay(t, database)
	assert.Equal(t, seeded.Version, stored.Version)
	require.Len(t, stored.Tasks[0].Intervals, 1)
	assert.False(t, stored.Tasks[0].IsRunning())
}

func TestGetOrCreate_RollbackOnInsertFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: errors.New("disk full")}
	svc := NewDayService(failUoW, repository.NewFactory(db.DialectSQLite), DayServiceConfig{})

	_, err := svc.GetOrCreate(context.Background(), testDate)
	require.Error(t, err)

	_, err = testutil.NewTestRepos(database).Days.Get(context.Background(), testDate)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// interferingUoW bumps the stored version inside the first `times`
// transactions before the service writes, as a writer in another process
// would.
type interferingUoW struct {
	inner db.UnitOfWork
	date  string
	times int32
	calls atomic.Int32
}

func (u *interferingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	n := u.calls.Add(1)
	return u.inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if n <= u.times {
			tx = &bumpBeforeExec{DBTX: tx, date: u.date}
		}
		return fn(ctx, tx)
	})
}

type bumpBeforeExec struct {
	db.DBTX
	date   string
	bumped bool
}

func (b *bumpBeforeExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !b.bumped {
		b.bumped = true
		if _, err := b.DBTX.ExecContext(ctx, `UPDATE days SET version = version + 1 WHERE date = ?`, b.date); err != nil {
			return nil, err
		}
	}
	return b.DBTX.ExecContext(ctx, query, args...)
}

func TestMutateInterval_RetriesVersionConflict(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedDay(t, database, testutil.NewTestTaskEntry("Reading"))

	uow := &interferingUoW{inner: testutil.NewTestUoW(database), date: testDate, times: 1}
	svc := NewDayService(uow, repository.NewFactory(db.DialectSQLite), DayServiceConfig{MaxRetries: 3})

	req := mutate(domain.ActionStart, 0)
	req.StartTime = testutil.BaseTime
	day, err := svc.MutateInterval(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int32(2), uow.calls.Load())
	assert.Len(t, day.Tasks[0].Intervals, 1)
	assert.Equal(t, int64(2), day.Version, "first attempt rolled back, second wrote on top of version 1")
}

func TestMutateInterval_ConflictSurfacesAfterRetries(t *testing.T) {
	database := testutil.NewTestDB(t)
	seeded := seedDay(t, database, testutil.NewTestTaskEntry("Reading"))

	uow := &interferingUoW{inner: testutil.NewTestUoW(database), date: testDate, times: 100}
	svc := NewDayService(uow, repository.NewFactory(db.DialectSQLite), DayServiceConfig{MaxRetries: 2})

	req := mutate(domain.ActionStart, 0)
	req.StartTime = testutil.BaseTime
	_, err := svc.MutateInterval(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int32(3), uow.calls.Load())

	stored := storedDay(t, database)
	assert.Equal(t, seeded.Version, stored.Version)
	assert.Empty(t, stored.Tasks[0].Intervals)
}

func TestMutateInterval_ConcurrentWritesOnOneDate(t *testing.T) {
	svc, database := newTestDayService(t, domain.StartReject)
	seedDay(t, database, testutil.NewTestTaskEntry("Reading"), testutil.NewTestTaskEntry("Writing"))
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := testutil.BaseTime.Add(time.Duration(i) * time.Hour)
			_, err := svc.MutateInterval(ctx, app.MutateIntervalRequest{
				Date:      testDate,
				Task:      app.RefByPosition(i % 2),
				Action:    domain.ActionAddManual,
				StartTime: start,
				EndTime:   start.Add(5 * time.Minute),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored := storedDay(t, database)
	assert.Len(t, stored.Tasks[0].Intervals, workers/2)
	assert.Len(t, stored.Tasks[1].Intervals, workers/2)
	assert.Equal(t, workers*5, stored.TotalLoggedMinutes)
	assert.Equal(t, int64(1+workers), stored.Version)
}
