package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"channel-insights/domain/repository"
	"channel-insights/infrastructure/logger"
)

// EnsureKVSchema creates the key-value table favorites are stored in if not exists
func EnsureKVSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS app_kv (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create app_kv table: %w", err)
	}
	return nil
}

// PostgresKV implements repository.IKeyValue on a single PostgreSQL table
type PostgresKV struct{ db *sql.DB }

func NewPostgresKV(db *sql.DB) repository.IKeyValue {
	return &PostgresKV{db: db}
}

func (r *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_kv WHERE key=$1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrKeyNotFound
		}
		logger.GetLogger().WithField("error", err).WithField("key", key).Error("Error while reading key")
		return "", err
	}
	return value, nil
}

func (r *PostgresKV) Set(ctx context.Context, key, value string) error {
	q := `INSERT INTO app_kv(key, value, updated_at) VALUES ($1, $2, NOW())
          ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, q, key, value); err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Error("Error while writing key")
		return err
	}
	return nil
}

func (r *PostgresKV) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_kv WHERE key=$1`, key); err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Error("Error while deleting key")
		return err
	}
	return nil
}
