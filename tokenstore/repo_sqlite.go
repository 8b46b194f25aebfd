package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var _ Repo = (*SQLiteRepo)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS store_entries (
	scope      TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (scope, key)
);`

// SQLiteRepo persists tokens on local disk so a single portal instance keeps
// browser sessions across restarts.
type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(ctx context.Context, path string) (*SQLiteRepo, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("[tokenstore NewSQLiteRepo] create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("[tokenstore NewSQLiteRepo] open %s: %w", path, err)
	}
	// A single connection serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("[tokenstore NewSQLiteRepo] migrate: %w", err)
	}
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepo) Upsert(ctx context.Context, scope, key, value string) error {
	if scope == "" {
		return fmt.Errorf("scope is required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO store_entries (scope, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		scope, key, value, time.Now().Unix())
	return err
}

func (r *SQLiteRepo) Get(ctx context.Context, scope, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM store_entries WHERE scope = ? AND key = ?`, scope, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", vocerrors.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, scope, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM store_entries WHERE scope = ? AND key = ?`, scope, key)
	return err
}
