// ABOUTME: Store interfaces and data types for starship-api persistence
// ABOUTME: Defines User, Starship, Favorite structs and the store interfaces

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist.
// For favorites this also covers records owned by a different user, so a
// caller can never tell the two cases apart.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when registering an email that already exists
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidReference is returned when a favorite references a starship that
// does not exist in the catalog
var ErrInvalidReference = errors.New("invalid starship reference")

// User represents a registered identity
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never the plaintext
	CreatedAt    time.Time
}

// RoleName represents a role that can be assigned to a user
type RoleName string

const (
	RoleAdmin RoleName = "Admin"
	RoleUser  RoleName = "User"
)

// ValidRoleNames lists all valid role names
var ValidRoleNames = []RoleName{RoleAdmin, RoleUser}

// Starship represents a catalog entry. Numeric-looking fields stay strings
// because the upstream SWAPI payload uses free-form values ("n/a", "unknown",
// "1,000").
type Starship struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Model                string    `json:"model"`
	Manufacturer         string    `json:"manufacturer"`
	CostInCredits        string    `json:"cost_in_credits"`
	Length               string    `json:"length"`
	MaxAtmospheringSpeed string    `json:"max_atmosphering_speed"`
	Crew                 string    `json:"crew"`
	Passengers           string    `json:"passengers"`
	CargoCapacity        string    `json:"cargo_capacity"`
	Consumables          string    `json:"consumables"`
	HyperdriveRating     string    `json:"hyperdrive_rating"`
	MGLT                 string    `json:"MGLT"`
	StarshipClass        string    `json:"starship_class"`
	CreatedAt            time.Time `json:"created_at"`
}

// Favorite represents a user's saved reference to a catalog starship.
// UserID is set from the authenticated caller on creation and is immutable.
type Favorite struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	StarshipID int64     `json:"starship_id"`
	Nickname   string    `json:"nickname,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Starship   *Starship `json:"starship,omitempty"`
}

// FavoritePatch carries the mutable favorite fields for partial updates.
// Nil pointers mean "leave untouched".
type FavoritePatch struct {
	Nickname *string
	Notes    *string
}

// UserStore defines credential persistence operations
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// RoleStore defines role vocabulary and membership operations.
// All writes are idempotent so concurrent seeding is safe.
type RoleStore interface {
	CreateRole(ctx context.Context, role RoleName) error
	RoleExists(ctx context.Context, role RoleName) (bool, error)
	AddUserRole(ctx context.Context, userID string, role RoleName) error
	HasUserRole(ctx context.Context, userID string, role RoleName) (bool, error)
	ListUserRoles(ctx context.Context, userID string) ([]RoleName, error)
}

// StarshipStore defines catalog operations
type StarshipStore interface {
	CreateStarship(ctx context.Context, ship *Starship) error
	CreateStarships(ctx context.Context, ships []*Starship) error
	GetStarship(ctx context.Context, id int64) (*Starship, error)
	ListStarships(ctx context.Context) ([]*Starship, error)
	UpdateStarship(ctx context.Context, ship *Starship) error
	DeleteStarship(ctx context.Context, id int64) error
	CountStarships(ctx context.Context) (int, error)
}

// FavoriteStore defines ownership-scoped favorite operations. Every read and
// write takes the owning user id and filters on it inside the query, so a
// row belonging to another user is never materialized.
type FavoriteStore interface {
	CreateFavorite(ctx context.Context, fav *Favorite) error
	ListFavorites(ctx context.Context, userID string) ([]*Favorite, error)
	UpdateFavorite(ctx context.Context, userID string, id int64, patch FavoritePatch) error
	DeleteFavorite(ctx context.Context, userID string, id int64) error
}

// Store combines all persistence interfaces
type Store interface {
	UserStore
	RoleStore
	StarshipStore
	FavoriteStore

	// Close releases any resources held by the store
	Close() error
}
