package service

import (
	"context"
	"time"

	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/alexanderramin/daygoal/internal/repository"
	"github.com/google/uuid"
)

type catalogService struct {
	catalog  repository.CatalogRepo
	observer UseCaseObserver
}

func NewCatalogService(catalog repository.CatalogRepo, observers ...UseCaseObserver) CatalogService {
	return &catalogService{catalog: catalog, observer: useCaseObserverOrNoop(observers)}
}

func (s *catalogService) Create(ctx context.Context, t *domain.CatalogTask) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-catalog-task",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"name": t.Name},
		})
	}()

	t.Normalize()
	if err = t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return s.catalog.Create(ctx, t)
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*domain.CatalogTask, error) {
	return s.catalog.GetByID(ctx, id)
}

func (s *catalogService) List(ctx context.Context) ([]*domain.CatalogTask, error) {
	return s.catalog.List(ctx)
}

// Delete removes the definition. Days that already track it keep their
// entry and its snapshot.
func (s *catalogService) Delete(ctx context.Context, id string) error {
	return s.catalog.Delete(ctx, id)
}
