// ABOUTME: SQLite implementation of the store interfaces using modernc.org/sqlite
// ABOUTME: Provides user/role/starship/favorite persistence with automatic schema creation

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

		-- Role vocabulary, seeded once
		CREATE TABLE IF NOT EXISTS roles (
			name       TEXT PRIMARY KEY,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS user_roles (
			user_id    TEXT NOT NULL REFERENCES users(id),
			role       TEXT NOT NULL REFERENCES roles(name),
			created_at TEXT NOT NULL,

			PRIMARY KEY (user_id, role)
		);

		CREATE INDEX IF NOT EXISTS idx_user_roles_user ON user_roles(user_id);

		CREATE TABLE IF NOT EXISTS starships (
			id                     INTEGER PRIMARY KEY AUTOINCREMENT,
			name                   TEXT NOT NULL,
			model                  TEXT NOT NULL DEFAULT '',
			manufacturer           TEXT NOT NULL DEFAULT '',
			cost_in_credits        TEXT NOT NULL DEFAULT '',
			length                 TEXT NOT NULL DEFAULT '',
			max_atmosphering_speed TEXT NOT NULL DEFAULT '',
			crew                   TEXT NOT NULL DEFAULT '',
			passengers             TEXT NOT NULL DEFAULT '',
			cargo_capacity         TEXT NOT NULL DEFAULT '',
			consumables            TEXT NOT NULL DEFAULT '',
			hyperdrive_rating      TEXT NOT NULL DEFAULT '',
			mglt                   TEXT NOT NULL DEFAULT '',
			starship_class         TEXT NOT NULL DEFAULT '',
			created_at             TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS favorites (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     TEXT NOT NULL REFERENCES users(id),
			starship_id INTEGER NOT NULL REFERENCES starships(id),
			nickname    TEXT NOT NULL DEFAULT '',
			notes       TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites(user_id);
		CREATE INDEX IF NOT EXISTS idx_favorites_starship ON favorites(starship_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// isConstraintViolation checks if the error is a SQLite UNIQUE constraint violation
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "constraint failed")
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// Ensure SQLiteStore implements the combined Store interface
var _ Store = (*SQLiteStore)(nil)
