package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/daygoal/internal/app"
	"github.com/alexanderramin/daygoal/internal/db"
	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/alexanderramin/daygoal/internal/repository"
	"github.com/google/uuid"
)

type DayServiceConfig struct {
	StartPolicy domain.StartPolicy
	// MaxRetries bounds how often a read-modify-write is repeated after
	// losing an optimistic version check. Zero surfaces the first conflict.
	MaxRetries int
}

type dayService struct {
	uow        db.UnitOfWork
	repos      repository.Factory
	timer      domain.Timer
	maxRetries int
	locks      *dateLocker
	observer   UseCaseObserver
}

func NewDayService(
	uow db.UnitOfWork,
	repos repository.Factory,
	cfg DayServiceConfig,
	observers ...UseCaseObserver,
) DayService {
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &dayService{
		uow:        uow,
		repos:      repos,
		timer:      domain.NewTimer(cfg.StartPolicy),
		maxRetries: retries,
		locks:      newDateLocker(),
		observer:   useCaseObserverOrNoop(observers),
	}
}

// dayMutation edits d in place and reports whether anything changed.
type dayMutation func(ctx context.Context, repos repository.Repos, d *domain.Day) (bool, error)

// mutate performs one read-modify-write of the day for date under the
// per-date lock. A missing day is created when createMissing is set and is
// otherwise a NotFoundError. Version conflicts rerun the whole cycle.
func (s *dayService) mutate(ctx context.Context, date string, createMissing bool, fn dayMutation) (*domain.Day, int, error) {
	unlock := s.locks.Lock(date)
	defer unlock()

	var (
		out     *domain.Day
		attempt int
	)
	for {
		attempt++
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			repos := s.repos(tx)
			d, err := repos.Days.Get(ctx, date)
			isNew := false
			if err != nil {
				if !createMissing || !errors.Is(err, domain.ErrNotFound) {
					return err
				}
				d = domain.NewDay(date)
				isNew = true
			}

			legacy := d.MissingIDs()
			changed := false
			if fn != nil {
				if changed, err = fn(ctx, repos, d); err != nil {
					return err
				}
			}
			d.Recompute()

			switch {
			case isNew:
				err = repos.Days.Insert(ctx, d)
			case changed || legacy:
				err = repos.Days.Update(ctx, d)
			}
			if err != nil {
				return err
			}
			out = d
			return nil
		})
		if err == nil {
			return out, attempt, nil
		}
		if errors.Is(err, domain.ErrConflict) && attempt <= s.maxRetries {
			continue
		}
		return nil, attempt, err
	}
}

func (s *dayService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *dayService) GetOrCreate(ctx context.Context, date string) (day *domain.Day, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": date}
	defer func() { s.observe(ctx, "get-or-create-day", startedAt, fields, err) }()

	if err = domain.ValidateDate(date); err != nil {
		return nil, err
	}
	var attempts int
	day, attempts, err = s.mutate(ctx, date, true, nil)
	fields["attempts"] = attempts
	return day, err
}

func (s *dayService) ReplaceDay(ctx context.Context, date string, tasks []app.TaskInput) (day *domain.Day, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": date, "tasks": len(tasks)}
	defer func() { s.observe(ctx, "replace-day", startedAt, fields, err) }()

	if err = domain.ValidateDate(date); err != nil {
		return nil, err
	}
	var entries []domain.TaskEntry
	if entries, err = buildEntries(tasks, s.timer.Policy); err != nil {
		return nil, err
	}

	var attempts int
	day, attempts, err = s.mutate(ctx, date, true, func(_ context.Context, _ repository.Repos, d *domain.Day) (bool, error) {
		d.Tasks = append([]domain.TaskEntry(nil), entries...)
		return true, nil
	})
	fields["attempts"] = attempts
	return day, err
}

func (s *dayService) AddTask(ctx context.Context, date, catalogTaskID string) (day *domain.Day, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": date, "catalog_task": catalogTaskID}
	defer func() { s.observe(ctx, "add-task", startedAt, fields, err) }()

	if err = domain.ValidateDate(date); err != nil {
		return nil, err
	}
	if strings.TrimSpace(catalogTaskID) == "" {
		err = domain.NewValidationError("taskId", "is required")
		return nil, err
	}

	var attempts int
	day, attempts, err = s.mutate(ctx, date, true, func(ctx context.Context, repos repository.Repos, d *domain.Day) (bool, error) {
		cat, err := repos.Catalog.GetByID(ctx, catalogTaskID)
		if err != nil {
			return false, err
		}
		if d.HasCatalogTask(cat.ID) {
			return false, domain.NewValidationError("taskId", "%q is already tracked on %s", cat.Name, d.Date)
		}
		d.Tasks = append(d.Tasks, domain.NewTaskEntryFromCatalog(cat))
		return true, nil
	})
	fields["attempts"] = attempts
	return day, err
}

func (s *dayService) UpdateTask(ctx context.Context, req app.UpdateTaskRequest) (day *domain.Day, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": req.Date, "task": req.Task.String()}
	defer func() { s.observe(ctx, "update-task", startedAt, fields, err) }()

	if err = domain.ValidateDate(req.Date); err != nil {
		return nil, err
	}
	if err = checkRef("task", req.Task); err != nil {
		return nil, err
	}
	var name string
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			err = domain.NewValidationError("name", "must not be empty")
			return nil, err
		}
	}

	var attempts int
	day, attempts, err = s.mutate(ctx, req.Date, false, func(_ context.Context, _ repository.Repos, d *domain.Day) (bool, error) {
		idx, err := resolveTask(d, req.Task)
		if err != nil {
			return false, err
		}
		e := &d.Tasks[idx]
		if req.Name != nil {
			e.Name = name
		}
		if req.GoalMinutes != nil {
			e.SetGoalMinutes(*req.GoalMinutes)
		}
		if req.LoggedMinutes != nil {
			e.SetLoggedMinutes(*req.LoggedMinutes)
		}
		return true, nil
	})
	fields["attempts"] = attempts
	return day, err
}

func (s *dayService) RemoveTask(ctx context.Context, date string, task app.EntryRef) (day *domain.Day, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": date, "task": task.String()}
	defer func() { s.observe(ctx, "remove-task", startedAt, fields, err) }()

	if err = domain.ValidateDate(date); err != nil {
		return nil, err
	}
	if err = checkRef("task", task); err != nil {
		return nil, err
	}

	var attempts int
	day, attempts, err = s.mutate(ctx, date, false, func(_ context.Context, _ repository.Repos, d *domain.Day) (bool, error) {
		idx, err := resolveTask(d, task)
		if err != nil {
			return false, err
		}
		return true, d.RemoveTask(idx)
	})
	fields["attempts"] = attempts
	return day, err
}

func (s *dayService) MutateInterval(ctx context.Context, req app.MutateIntervalRequest) (day *domain.Day, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": req.Date, "task": req.Task.String(), "action": string(req.Action)}
	defer func() { s.observe(ctx, "mutate-interval", startedAt, fields, err) }()

	if err = domain.ValidateDate(req.Date); err != nil {
		return nil, err
	}
	if !domain.ValidIntervalActions[string(req.Action)] {
		err = domain.NewValidationError("action", "unknown action %q", req.Action)
		return nil, err
	}
	if err = checkRef("task", req.Task); err != nil {
		return nil, err
	}
	if req.Action == domain.ActionDelete {
		if err = checkRef("interval", req.Interval); err != nil {
			return nil, err
		}
	}

	var attempts int
	day, attempts, err = s.mutate(ctx, req.Date, false, func(_ context.Context, _ repository.Repos, d *domain.Day) (bool, error) {
		idx, err := resolveTask(d, req.Task)
		if err != nil {
			return false, err
		}
		e := &d.Tasks[idx]

		switch req.Action {
		case domain.ActionStart:
			return true, s.timer.Start(e, req.StartTime)
		case domain.ActionEnd:
			return s.timer.End(e, req.EndTime)
		case domain.ActionDelete:
			ivIdx, err := resolveInterval(e, req.Interval)
			if err != nil {
				return false, err
			}
			return true, s.timer.DeleteInterval(e, ivIdx)
		default:
			return true, s.timer.AddManual(e, req.StartTime, req.EndTime)
		}
	})
	fields["attempts"] = attempts
	return day, err
}

// checkRef rejects a reference that names neither an id nor a usable
// position. Range checks happen once the day is loaded.
func checkRef(field string, ref app.EntryRef) error {
	if ref.ID != "" {
		return nil
	}
	if ref.Position == nil {
		return domain.NewValidationError(field, "a position or id is required")
	}
	if *ref.Position < 0 {
		return domain.NewValidationError(field, "position %d must not be negative", *ref.Position)
	}
	return nil
}

func resolveTask(d *domain.Day, ref app.EntryRef) (int, error) {
	if ref.ID != "" {
		if idx := d.TaskIndex(ref.ID); idx >= 0 {
			return idx, nil
		}
		return -1, &domain.NotFoundError{Entity: "task entry", Key: ref.ID}
	}
	if err := checkRef("task", ref); err != nil {
		return -1, err
	}
	if *ref.Position >= len(d.Tasks) {
		return -1, &domain.NotFoundError{Entity: "task entry", Key: ref.String()}
	}
	return *ref.Position, nil
}

func resolveInterval(e *domain.TaskEntry, ref app.EntryRef) (int, error) {
	if ref.ID != "" {
		if idx := e.IntervalIndex(ref.ID); idx >= 0 {
			return idx, nil
		}
		return -1, &domain.NotFoundError{Entity: "interval", Key: ref.ID}
	}
	if err := checkRef("interval", ref); err != nil {
		return -1, err
	}
	if *ref.Position >= len(e.Intervals) {
		return -1, &domain.NotFoundError{Entity: "interval", Key: ref.String()}
	}
	return *ref.Position, nil
}

// buildEntries turns replace input into entries, generating missing ids and
// deriving interval durations from their instants. Under StartReject an
// entry may carry at most one open interval and it must be the last one.
func buildEntries(tasks []app.TaskInput, policy domain.StartPolicy) ([]domain.TaskEntry, error) {
	seen := make(map[string]bool)
	claim := func(id string) (string, error) {
		if id == "" {
			id = uuid.New().String()
		}
		if seen[id] {
			return "", domain.NewValidationError("id", "duplicate id %q", id)
		}
		seen[id] = true
		return id, nil
	}

	entries := make([]domain.TaskEntry, 0, len(tasks))
	for i, t := range tasks {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "task %d has no name", i+1)
		}
		id, err := claim(t.ID)
		if err != nil {
			return nil, err
		}
		e := domain.TaskEntry{
			ID:            id,
			TaskID:        t.TaskID,
			Name:          name,
			GoalMinutes:   t.GoalMinutes,
			LoggedMinutes: t.LoggedMinutes,
			Intervals:     make([]domain.Interval, 0, len(t.TimeEntries)),
		}
		for j, in := range t.TimeEntries {
			if in.EndTime == nil && policy != domain.StartAllow && j < len(t.TimeEntries)-1 {
				return nil, domain.NewValidationError("endTime", "task %q has an open interval that is not its last", name)
			}
			if in.StartTime.IsZero() {
				return nil, domain.NewValidationError("startTime", "task %q has an interval without a start", name)
			}
			ivID, err := claim(in.ID)
			if err != nil {
				return nil, err
			}
			iv := domain.Interval{ID: ivID, StartTime: in.StartTime}
			if in.EndTime != nil {
				if in.EndTime.Before(in.StartTime) {
					return nil, domain.NewValidationError("endTime", "task %q has an interval ending before it starts", name)
				}
				iv.Close(*in.EndTime)
			}
			e.Intervals = append(e.Intervals, iv)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
