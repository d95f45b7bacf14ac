package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/alexanderramin/daygoal/internal/db"
	"github.com/alexanderramin/daygoal/internal/domain"
)

// SQLSettingsRepo is a key/value table for global settings.
type SQLSettingsRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

func NewSQLSettingsRepo(conn db.DBTX, dialect db.Dialect) *SQLSettingsRepo {
	return &SQLSettingsRepo{db: conn, dialect: dialect}
}

// GetInt returns fallback when key has never been set.
func (r *SQLSettingsRepo) GetInt(ctx context.Context, key string, fallback int) (int, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT setting_value FROM settings WHERE setting_key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fallback, nil
		}
		return 0, &domain.StorageError{Op: "get setting " + key, Err: err}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.StorageError{Op: "parse setting " + key, Err: err}
	}
	return v, nil
}

func (r *SQLSettingsRepo) SetInt(ctx context.Context, key string, value int) error {
	query := `INSERT INTO settings (setting_key, setting_value) VALUES (?, ?)
		ON CONFLICT(setting_key) DO UPDATE SET setting_value = excluded.setting_value`
	if r.dialect == db.DialectMySQL {
		query = `INSERT INTO settings (setting_key, setting_value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value)`
	}
	if _, err := r.db.ExecContext(ctx, query, key, strconv.Itoa(value)); err != nil {
		return &domain.StorageError{Op: "set setting " + key, Err: err}
	}
	return nil
}
