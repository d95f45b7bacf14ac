package service

import (
	"context"

	"github.com/alexanderramin/daygoal/internal/app"
	"github.com/alexanderramin/daygoal/internal/domain"
)

// DayService is the only way mutations reach a stored day. Every call
// recomputes the day's aggregates before it is persisted.
type DayService interface {
	GetOrCreate(ctx context.Context, date string) (*domain.Day, error)
	ReplaceDay(ctx context.Context, date string, tasks []app.TaskInput) (*domain.Day, error)
	AddTask(ctx context.Context, date, catalogTaskID string) (*domain.Day, error)
	UpdateTask(ctx context.Context, req app.UpdateTaskRequest) (*domain.Day, error)
	RemoveTask(ctx context.Context, date string, task app.EntryRef) (*domain.Day, error)
	MutateInterval(ctx context.Context, req app.MutateIntervalRequest) (*domain.Day, error)
}

type CatalogService interface {
	Create(ctx context.Context, t *domain.CatalogTask) error
	GetByID(ctx context.Context, id string) (*domain.CatalogTask, error)
	List(ctx context.Context) ([]*domain.CatalogTask, error)
	Delete(ctx context.Context, id string) error
}

type GoalService interface {
	DailyGoal(ctx context.Context) (int, error)
	SetDailyGoal(ctx context.Context, minutes int) error
}

type StatsService interface {
	Summary(ctx context.Context, req app.StatsRequest) (*app.StatsResponse, error)
}

var (
	_ app.TimerUseCase  = DayService(nil)
	_ app.CatalogLister = CatalogService(nil)
)
