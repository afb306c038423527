package sqlite

import (
	"context"
	"database/sql"

	"tasks-cli/internal/errors"
	"tasks-cli/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for the durable client-side settings store.
// The only value that survives restarts is kept here, keyed by a fixed name.
type Repository interface {
	GetSetting(ctx context.Context, name string) (string, error)
	PutSetting(ctx context.Context, name string, value string) error
	DeleteSetting(ctx context.Context, name string) error
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// GetSetting retrieves a stored value by name
func (r *SQLiteRepository) GetSetting(ctx context.Context, name string) (string, error) {
	query := `SELECT value FROM settings WHERE name = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", errors.NewNotFoundError("setting", name)
	}
	if err != nil {
		return "", errors.NewStorageError("get setting", err)
	}
	return value, nil
}

// PutSetting stores a value under the given name, replacing any previous value
func (r *SQLiteRepository) PutSetting(ctx context.Context, name string, value string) error {
	query := `
	INSERT INTO settings (name, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, name, value); err != nil {
		return errors.NewStorageError("put setting", err)
	}
	return nil
}

// DeleteSetting removes a stored value. Deleting a name that was never stored
// is not an error.
func (r *SQLiteRepository) DeleteSetting(ctx context.Context, name string) error {
	query := `DELETE FROM settings WHERE name = ?`

	if _, err := r.db.ExecContext(ctx, query, name); err != nil {
		return errors.NewStorageError("delete setting", err)
	}
	return nil
}
