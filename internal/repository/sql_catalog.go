package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexanderramin/daygoal/internal/db"
	"github.com/alexanderramin/daygoal/internal/domain"
)

// SQLCatalogRepo stores reusable task definitions.
type SQLCatalogRepo struct {
	db db.DBTX
}

func NewSQLCatalogRepo(conn db.DBTX) *SQLCatalogRepo {
	return &SQLCatalogRepo{db: conn}
}

func (r *SQLCatalogRepo) Create(ctx context.Context, t *domain.CatalogTask) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO catalog_tasks (id, name, color, default_goal_minutes, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Color, t.DefaultGoalMinutes, formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return &domain.StorageError{Op: "create catalog task", Err: err}
	}
	return nil
}

func (r *SQLCatalogRepo) GetByID(ctx context.Context, id string) (*domain.CatalogTask, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, color, default_goal_minutes, created_at FROM catalog_tasks WHERE id = ?`, id)
	t, err := scanCatalogTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "catalog task", Key: id}
		}
		return nil, &domain.StorageError{Op: "get catalog task", Err: err}
	}
	return t, nil
}

// List returns catalog tasks oldest first.
func (r *SQLCatalogRepo) List(ctx context.Context) ([]*domain.CatalogTask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, default_goal_minutes, created_at FROM catalog_tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list catalog tasks", Err: err}
	}
	defer rows.Close()

	var tasks []*domain.CatalogTask
	for rows.Next() {
		t, err := scanCatalogTask(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "list catalog tasks", Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list catalog tasks", Err: err}
	}
	return tasks, nil
}

// Delete removes the definition only. Day entries keep their snapshot.
func (r *SQLCatalogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM catalog_tasks WHERE id = ?`, id)
	if err != nil {
		return &domain.StorageError{Op: "delete catalog task", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "delete catalog task", Err: err}
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "catalog task", Key: id}
	}
	return nil
}

func scanCatalogTask(s scanner) (*domain.CatalogTask, error) {
	var (
		t         domain.CatalogTask
		createdAt string
	)
	if err := s.Scan(&t.ID, &t.Name, &t.Color, &t.DefaultGoalMinutes, &createdAt); err != nil {
		return nil, err
	}
	t.CreatedAt = parseTimestamp(createdAt)
	return &t, nil
}
