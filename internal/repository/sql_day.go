package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/daygoal/internal/db"
	"github.com/alexanderramin/daygoal/internal/domain"
)

// SQLDayRepo implements DayRepo on SQLite or MySQL.
type SQLDayRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

func NewSQLDayRepo(conn db.DBTX, dialect db.Dialect) *SQLDayRepo {
	return &SQLDayRepo{db: conn, dialect: dialect}
}

const dayColumns = `date, doc, total_logged_minutes, goal_reached, version, created_at, updated_at`

func (r *SQLDayRepo) Get(ctx context.Context, date string) (*domain.Day, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+dayColumns+` FROM days WHERE date = ?`, date)
	d, err := scanDay(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "day", Key: date}
		}
		return nil, &domain.StorageError{Op: "get day " + date, Err: err}
	}
	return d, nil
}

// Insert writes a day that has never been stored and sets its version to 1.
func (r *SQLDayRepo) Insert(ctx context.Context, d *domain.Day) error {
	doc, err := encodeDay(d)
	if err != nil {
		return &domain.StorageError{Op: "insert day " + d.Date, Err: err}
	}
	now := nowUTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO days (`+dayColumns+`) VALUES (?, ?, ?, ?, 1, ?, ?)`,
		d.Date, doc, d.TotalLoggedMinutes, boolToInt(d.GoalReached),
		formatTimestamp(now), formatTimestamp(now),
	)
	if err != nil {
		if r.dialect.IsDuplicateKey(err) {
			return fmt.Errorf("day %s already stored: %w", d.Date, domain.ErrConflict)
		}
		return &domain.StorageError{Op: "insert day " + d.Date, Err: err}
	}
	d.Version = 1
	d.CreatedAt = now
	d.UpdatedAt = now
	return nil
}

// Update overwrites the stored document when its version still equals
// d.Version, then bumps d.Version.
func (r *SQLDayRepo) Update(ctx context.Context, d *domain.Day) error {
	doc, err := encodeDay(d)
	if err != nil {
		return &domain.StorageError{Op: "update day " + d.Date, Err: err}
	}
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE days SET doc = ?, total_logged_minutes = ?, goal_reached = ?,
			version = version + 1, updated_at = ?
		WHERE date = ? AND version = ?`,
		doc, d.TotalLoggedMinutes, boolToInt(d.GoalReached), formatTimestamp(now),
		d.Date, d.Version,
	)
	if err != nil {
		return &domain.StorageError{Op: "update day " + d.Date, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "update day " + d.Date, Err: err}
	}
	if n == 0 {
		return fmt.Errorf("day %s changed since version %d: %w", d.Date, d.Version, domain.ErrConflict)
	}
	d.Version++
	d.UpdatedAt = now
	return nil
}

func (r *SQLDayRepo) List(ctx context.Context, limit int) ([]*domain.Day, error) {
	query := `SELECT ` + dayColumns + ` FROM days ORDER BY date DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "list days", Err: err}
	}
	defer rows.Close()

	var days []*domain.Day
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "list days", Err: err}
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list days", Err: err}
	}
	return days, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDay(s scanner) (*domain.Day, error) {
	var (
		d                  domain.Day
		doc                string
		goalReached        int
		createdAt, updated string
	)
	if err := s.Scan(&d.Date, &doc, &d.TotalLoggedMinutes, &goalReached, &d.Version, &createdAt, &updated); err != nil {
		return nil, err
	}
	tasks, err := decodeDay(d.Date, doc)
	if err != nil {
		return nil, err
	}
	d.Tasks = tasks
	d.GoalReached = intToBool(goalReached)
	d.CreatedAt = parseTimestamp(createdAt)
	d.UpdatedAt = parseTimestamp(updated)
	return &d, nil
}
