// ABOUTME: Ownership-scoped favorite store methods
// ABOUTME: Every query filters on user_id so foreign rows are never loaded

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateFavorite inserts a favorite for the user set on fav.UserID.
// Returns ErrInvalidReference if the referenced starship does not exist.
// The id and creation timestamp are assigned here; callers must have already
// forced UserID from the authenticated identity.
func (s *SQLiteStore) CreateFavorite(ctx context.Context, fav *Favorite) error {
	// Reference check first so a bad starship id surfaces as a client error
	// rather than a foreign key failure.
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM starships WHERE id = ?`, fav.StarshipID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking starship reference: %w", err)
	}
	if exists == 0 {
		return ErrInvalidReference
	}

	fav.CreatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, starship_id, nickname, notes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		fav.UserID,
		fav.StarshipID,
		fav.Nickname,
		fav.Notes,
		fav.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting favorite: %w", err)
	}

	fav.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting favorite id: %w", err)
	}

	s.logger.Debug("created favorite", "id", fav.ID, "user_id", fav.UserID, "starship_id", fav.StarshipID)
	return nil
}

// ListFavorites returns all favorites owned by the user, each joined with its
// starship. Returns an empty slice when the user has none.
func (s *SQLiteStore) ListFavorites(ctx context.Context, userID string) ([]*Favorite, error) {
	query := `
		SELECT f.id, f.user_id, f.starship_id, f.nickname, f.notes, f.created_at,
			s.id, s.name, s.model, s.manufacturer, s.cost_in_credits, s.length,
			s.max_atmosphering_speed, s.crew, s.passengers, s.cargo_capacity,
			s.consumables, s.hyperdrive_rating, s.mglt, s.starship_class, s.created_at
		FROM favorites f
		JOIN starships s ON s.id = f.starship_id
		WHERE f.user_id = ?
		ORDER BY f.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying favorites: %w", err)
	}
	defer rows.Close()

	favorites := []*Favorite{}
	for rows.Next() {
		var fav Favorite
		var ship Starship
		var favCreatedStr, shipCreatedStr string

		if err := rows.Scan(
			&fav.ID, &fav.UserID, &fav.StarshipID, &fav.Nickname, &fav.Notes, &favCreatedStr,
			&ship.ID, &ship.Name, &ship.Model, &ship.Manufacturer, &ship.CostInCredits,
			&ship.Length, &ship.MaxAtmospheringSpeed, &ship.Crew, &ship.Passengers,
			&ship.CargoCapacity, &ship.Consumables, &ship.HyperdriveRating, &ship.MGLT,
			&ship.StarshipClass, &shipCreatedStr,
		); err != nil {
			return nil, fmt.Errorf("scanning favorite row: %w", err)
		}

		fav.CreatedAt, err = time.Parse(time.RFC3339, favCreatedStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		ship.CreatedAt, _ = time.Parse(time.RFC3339, shipCreatedStr)

		fav.Starship = &ship
		favorites = append(favorites, &fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating favorite rows: %w", err)
	}

	return favorites, nil
}

// UpdateFavorite applies a partial update to the mutable fields of a favorite
// owned by the user. Fields with nil pointers are left untouched.
// Returns ErrNotFound when the favorite is absent or owned by someone else -
// the two cases are deliberately indistinguishable.
func (s *SQLiteStore) UpdateFavorite(ctx context.Context, userID string, id int64, patch FavoritePatch) error {
	// Load current values under the ownership filter so the merge never sees
	// another user's row.
	var nickname, notes string
	err := s.db.QueryRowContext(ctx,
		`SELECT nickname, notes FROM favorites WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&nickname, &notes)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("querying favorite: %w", err)
	}

	if patch.Nickname != nil {
		nickname = *patch.Nickname
	}
	if patch.Notes != nil {
		notes = *patch.Notes
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE favorites
		SET nickname = ?, notes = ?
		WHERE id = ? AND user_id = ?
	`, nickname, notes, id, userID)
	if err != nil {
		return fmt.Errorf("updating favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated favorite", "id", id, "user_id", userID)
	return nil
}

// DeleteFavorite removes a favorite owned by the user.
// Returns ErrNotFound when the favorite is absent or owned by someone else.
func (s *SQLiteStore) DeleteFavorite(ctx context.Context, userID string, id int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted favorite", "id", id, "user_id", userID)
	return nil
}
