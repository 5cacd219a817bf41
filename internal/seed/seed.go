// ABOUTME: Idempotent bootstrap seeding for baseline roles, the default admin,
// ABOUTME: and the first-run starship catalog import

package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hangarbay/starship-api/internal/auth"
	"github.com/hangarbay/starship-api/internal/store"
)

// Default administrator credentials. A fixed default password is a known
// weakness carried over from the reference deployment; rotate it after the
// first login in anything public-facing.
const (
	AdminEmail    = "admin@test.com"
	adminPassword = "Password123!"
)

// StarshipSource fetches the initial catalog from an external service
type StarshipSource interface {
	GetStarships(ctx context.Context) ([]*store.Starship, error)
}

// EnsureBaseline makes sure the Admin and User roles and the default
// administrator account exist. Safe to invoke on every process start and
// under concurrent invocations: every write is an idempotent upsert or is
// guarded by a unique constraint at the store level.
func EnsureBaseline(ctx context.Context, s store.Store) error {
	logger := slog.Default().With("component", "seed")

	for _, role := range store.ValidRoleNames {
		if err := s.CreateRole(ctx, role); err != nil {
			return fmt.Errorf("ensuring role %s: %w", role, err)
		}
	}

	admin, err := s.GetUserByEmail(ctx, AdminEmail)
	if errors.Is(err, store.ErrNotFound) {
		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}

		admin = &store.User{
			ID:           uuid.New().String(),
			Email:        AdminEmail,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}

		err = s.CreateUser(ctx, admin)
		if errors.Is(err, store.ErrDuplicateEmail) {
			// Lost a race with a concurrent seeder; reuse the winner's row.
			admin, err = s.GetUserByEmail(ctx, AdminEmail)
		}
		if err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}

		logger.Info("created default admin", "email", AdminEmail)
	} else if err != nil {
		return fmt.Errorf("looking up admin user: %w", err)
	}

	if err := s.AddUserRole(ctx, admin.ID, store.RoleAdmin); err != nil {
		return fmt.Errorf("granting admin role: %w", err)
	}

	return nil
}

// ImportStarships seeds the catalog from the external source when it is
// empty. A populated catalog or an empty fetch result is a no-op.
func ImportStarships(ctx context.Context, s store.Store, source StarshipSource) error {
	logger := slog.Default().With("component", "seed")

	count, err := s.CountStarships(ctx)
	if err != nil {
		return fmt.Errorf("counting starships: %w", err)
	}
	if count > 0 {
		logger.Debug("catalog already populated", "count", count)
		return nil
	}

	ships, err := source.GetStarships(ctx)
	if err != nil {
		return fmt.Errorf("fetching starships: %w", err)
	}
	if len(ships) == 0 {
		logger.Warn("starship source returned no ships, skipping import")
		return nil
	}

	if err := s.CreateStarships(ctx, ships); err != nil {
		return fmt.Errorf("importing starships: %w", err)
	}

	logger.Info("seeded starship catalog", "count", len(ships))
	return nil
}
