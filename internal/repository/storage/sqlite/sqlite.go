package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adrg/xdg"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/mattn/go-sqlite3"
)

const defaultDataFile = "dooz/settings.db"

type Storage struct {
	Connection *sql.DB
}

// DefaultPath - settings database location under the user's XDG data directory, created if missing.
func DefaultPath() (string, error) {
	path, err := xdg.DataFile(defaultDataFile)
	if err != nil {
		return "", fmt.Errorf("can't resolve data file: %w", err)
	}

	return path, nil
}

func New(path string) (*Storage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

func (that *Storage) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS settings (key TEXT PRIMARY KEY, value TEXT NOT NULL)`

	_, err := that.Connection.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *Storage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
