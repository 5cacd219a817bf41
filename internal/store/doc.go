// Package store provides persistent storage for starship-api using SQLite.
//
// # Architecture
//
// The package uses an interface-driven architecture with specialized
// interfaces per concern:
//
//   - UserStore: Account rows keyed by id, unique on lowercased email
//   - RoleStore: Role vocabulary and user-role membership
//   - StarshipStore: The shared starship catalog
//   - FavoriteStore: Per-user favorite records, always owner-scoped
//
// SQLiteStore implements all interfaces in a single struct. Consumers
// depend on the narrow interface they need; the combined Store interface
// is for wiring.
//
// # Ownership Scoping
//
// Every favorite read and write takes the owner's user id and filters on
// it inside the query (WHERE id = ? AND user_id = ?). A row belonging to
// another user is indistinguishable from a missing row: both surface as
// ErrNotFound. There is no unscoped favorite accessor to misuse.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// Timestamps are stored as RFC3339 text in UTC.
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: Requested entity does not exist (or is not yours)
//   - ErrDuplicateEmail: Email already registered
//   - ErrInvalidReference: Favorite points at a starship that does not exist
//
// All methods accept context.Context for cancellation support.
package store
