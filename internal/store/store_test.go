// ABOUTME: Shared test fixture for SQLite store tests
// ABOUTME: Creates a temp-dir database per test with automatic cleanup

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// mustCreateUser inserts a user with defaults for tests that just need one
func mustCreateUser(t *testing.T, s *SQLiteStore, id, email string) *User {
	t.Helper()
	user := &User{
		ID:           id,
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

// mustCreateStarship inserts a minimal catalog entry
func mustCreateStarship(t *testing.T, s *SQLiteStore, name string) *Starship {
	t.Helper()
	ship := &Starship{Name: name, Model: "test model", StarshipClass: "test class"}
	require.NoError(t, s.CreateStarship(context.Background(), ship))
	return ship
}
