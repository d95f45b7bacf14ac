package repository

import (
	"context"

	"github.com/alexanderramin/daygoal/internal/db"
	"github.com/alexanderramin/daygoal/internal/domain"
)

// DayRepo stores one JSON document per date. Writes are guarded by the
// document version: Insert fails when the date already exists and Update
// fails when the stored version moved on, both with domain.ErrConflict.
type DayRepo interface {
	Get(ctx context.Context, date string) (*domain.Day, error)
	Insert(ctx context.Context, d *domain.Day) error
	Update(ctx context.Context, d *domain.Day) error
	// List returns days newest first. limit <= 0 returns every day.
	List(ctx context.Context, limit int) ([]*domain.Day, error)
}

type CatalogRepo interface {
	Create(ctx context.Context, t *domain.CatalogTask) error
	GetByID(ctx context.Context, id string) (*domain.CatalogTask, error)
	List(ctx context.Context) ([]*domain.CatalogTask, error)
	Delete(ctx context.Context, id string) error
}

type SettingsRepo interface {
	GetInt(ctx context.Context, key string, fallback int) (int, error)
	SetInt(ctx context.Context, key string, value int) error
}

// Repos bundles the repositories bound to one connection or transaction.
type Repos struct {
	Days     DayRepo
	Catalog  CatalogRepo
	Settings SettingsRepo
}

// Factory builds Repos for a DBTX. Services call it inside WithinTx so every
// repository shares the transaction.
type Factory func(conn db.DBTX) Repos

// NewFactory returns a Factory that speaks the given dialect.
func NewFactory(dialect db.Dialect) Factory {
	return func(conn db.DBTX) Repos {
		return Repos{
			Days:     NewSQLDayRepo(conn, dialect),
			Catalog:  NewSQLCatalogRepo(conn),
			Settings: NewSQLSettingsRepo(conn, dialect),
		}
	}
}
