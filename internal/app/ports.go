package app

import (
	"context"

	"github.com/alexanderramin/daygoal/internal/domain"
)

// TimerUseCase is the slice of the day service the live timer view needs.
type TimerUseCase interface {
	GetOrCreate(ctx context.Context, date string) (*domain.Day, error)
	MutateInterval(ctx context.Context, req MutateIntervalRequest) (*domain.Day, error)
}

// CatalogLister feeds the interactive catalog picker.
type CatalogLister interface {
	List(ctx context.Context) ([]*domain.CatalogTask, error)
}
