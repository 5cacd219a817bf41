// ABOUTME: Tests for role vocabulary and membership store operations
// ABOUTME: Covers idempotent creation, assignment, and listing

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleStore_Create_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.CreateRole(ctx, RoleAdmin)
	require.NoError(t, err)

	err = store.CreateRole(ctx, RoleAdmin)
	require.NoError(t, err, "creating existing role should be idempotent")

	exists, err := store.RoleExists(ctx, RoleAdmin)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRoleStore_Exists_False(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	exists, err := store.RoleExists(ctx, RoleAdmin)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRoleStore_AddUserRole(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "user-1", "alice@example.com")
	require.NoError(t, store.CreateRole(ctx, RoleUser))

	err := store.AddUserRole(ctx, user.ID, RoleUser)
	require.NoError(t, err)

	has, err := store.HasUserRole(ctx, user.ID, RoleUser)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRoleStore_AddUserRole_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "user-1", "alice@example.com")
	require.NoError(t, store.CreateRole(ctx, RoleUser))

	err := store.AddUserRole(ctx, user.ID, RoleUser)
	require.NoError(t, err)

	err = store.AddUserRole(ctx, user.ID, RoleUser)
	require.NoError(t, err, "adding existing role should be idempotent")

	roles, err := store.ListUserRoles(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestRoleStore_ListUserRoles_Empty(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	roles, err := store.ListUserRoles(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, roles)
	assert.Empty(t, roles)
}

func TestRoleStore_ListUserRoles_Multiple(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "user-1", "alice@example.com")
	require.NoError(t, store.CreateRole(ctx, RoleAdmin))
	require.NoError(t, store.CreateRole(ctx, RoleUser))
	require.NoError(t, store.AddUserRole(ctx, user.ID, RoleAdmin))
	require.NoError(t, store.AddUserRole(ctx, user.ID, RoleUser))

	roles, err := store.ListUserRoles(ctx, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []RoleName{RoleAdmin, RoleUser}, roles)
}

func TestRoleStore_HasUserRole_False(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	has, err := store.HasUserRole(ctx, "nobody", RoleAdmin)
	require.NoError(t, err)
	assert.False(t, has, "should return false for non-existent user")
}
