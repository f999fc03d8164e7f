package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

const upsertSettingQuery = `INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type sqliteStore struct {
	conn *sql.DB
}

// NewSQLiteStore expects the settings table created by sqlite.Storage.Init.
func NewSQLiteStore(conn *sql.DB) KeyValueStore {
	return &sqliteStore{
		conn: conn,
	}
}

func (that *sqliteStore) GetString(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM settings WHERE key = ?`

	var value string

	err := that.conn.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("can't get %s: %w", key, err)
	}

	return value, true, nil
}

func (that *sqliteStore) GetInt(ctx context.Context, key string) (int, bool, error) {
	return getInt(ctx, that, key)
}

func (that *sqliteStore) SetString(ctx context.Context, key, value string) error {
	return upsert(ctx, that.conn, key, value)
}

func (that *sqliteStore) SetInt(ctx context.Context, key string, value int) error {
	return upsert(ctx, that.conn, key, strconv.Itoa(value))
}

func (that *sqliteStore) SetStrings(ctx context.Context, values map[string]string) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	for key, value := range values {
		if err = upsert(ctx, tx, key, value); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return errors.Join(err, fmt.Errorf("can't rollback: %w", rbErr))
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit batch: %w", err)
	}

	return nil
}

func upsert(ctx context.Context, conn execer, key, value string) error {
	if _, err := conn.ExecContext(ctx, upsertSettingQuery, key, value); err != nil {
		return fmt.Errorf("can't save %s: %w", key, err)
	}

	return nil
}
