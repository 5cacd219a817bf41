// ABOUTME: Role vocabulary and user role membership store methods
// ABOUTME: All writes use INSERT OR IGNORE so seeding stays idempotent

package store

import (
	"context"
	"fmt"
	"time"
)

// CreateRole creates a role in the vocabulary. This operation is idempotent -
// creating an existing role succeeds silently.
func (s *SQLiteStore) CreateRole(ctx context.Context, role RoleName) error {
	query := `
		INSERT OR IGNORE INTO roles (name, created_at)
		VALUES (?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, role, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("creating role: %w", err)
	}

	s.logger.Debug("ensured role", "role", role)
	return nil
}

// RoleExists checks if a role is present in the vocabulary.
func (s *SQLiteStore) RoleExists(ctx context.Context, role RoleName) (bool, error) {
	query := `SELECT COUNT(*) FROM roles WHERE name = ?`

	var count int
	err := s.db.QueryRowContext(ctx, query, role).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking role: %w", err)
	}

	return count > 0, nil
}

// AddUserRole assigns a role to a user. This operation is idempotent - adding
// an existing assignment succeeds silently.
func (s *SQLiteStore) AddUserRole(ctx context.Context, userID string, role RoleName) error {
	query := `
		INSERT OR IGNORE INTO user_roles (user_id, role, created_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, userID, role, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("adding user role: %w", err)
	}

	s.logger.Debug("added role", "user_id", userID, "role", role)
	return nil
}

// HasUserRole checks if a user holds a specific role. Returns false for
// non-existent users (not an error).
func (s *SQLiteStore) HasUserRole(ctx context.Context, userID string, role RoleName) (bool, error) {
	query := `
		SELECT COUNT(*) FROM user_roles
		WHERE user_id = ? AND role = ?
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, role).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking user role: %w", err)
	}

	return count > 0, nil
}

// ListUserRoles returns all roles held by a user. Returns an empty slice if
// the user has no roles.
func (s *SQLiteStore) ListUserRoles(ctx context.Context, userID string) ([]RoleName, error) {
	query := `
		SELECT role FROM user_roles
		WHERE user_id = ?
		ORDER BY role
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user roles: %w", err)
	}
	defer rows.Close()

	var roles []RoleName
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		roles = append(roles, RoleName(role))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roles: %w", err)
	}

	// Return empty slice (not nil) if no roles
	if roles == nil {
		roles = []RoleName{}
	}

	return roles, nil
}
