// ABOUTME: Starship catalog store methods
// ABOUTME: Catalog ids are assigned by the database on insert

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const starshipColumns = `id, name, model, manufacturer, cost_in_credits, length,
	max_atmosphering_speed, crew, passengers, cargo_capacity, consumables,
	hyperdrive_rating, mglt, starship_class, created_at`

// CreateStarship inserts a catalog entry and assigns its id.
// Any client-supplied id is ignored.
func (s *SQLiteStore) CreateStarship(ctx context.Context, ship *Starship) error {
	query := `
		INSERT INTO starships (name, model, manufacturer, cost_in_credits, length,
			max_atmosphering_speed, crew, passengers, cargo_capacity, consumables,
			hyperdrive_rating, mglt, starship_class, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if ship.CreatedAt.IsZero() {
		ship.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, query,
		ship.Name,
		ship.Model,
		ship.Manufacturer,
		ship.CostInCredits,
		ship.Length,
		ship.MaxAtmospheringSpeed,
		ship.Crew,
		ship.Passengers,
		ship.CargoCapacity,
		ship.Consumables,
		ship.HyperdriveRating,
		ship.MGLT,
		ship.StarshipClass,
		ship.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting starship: %w", err)
	}

	ship.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting starship id: %w", err)
	}

	s.logger.Debug("created starship", "id", ship.ID, "name", ship.Name)
	return nil
}

// CreateStarships bulk-inserts catalog entries in a single transaction.
// Used by the first-run import.
func (s *SQLiteStore) CreateStarships(ctx context.Context, ships []*Starship) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO starships (name, model, manufacturer, cost_in_credits, length,
			max_atmosphering_speed, crew, passengers, cargo_capacity, consumables,
			hyperdrive_rating, mglt, starship_class, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, ship := range ships {
		result, err := stmt.ExecContext(ctx,
			ship.Name,
			ship.Model,
			ship.Manufacturer,
			ship.CostInCredits,
			ship.Length,
			ship.MaxAtmospheringSpeed,
			ship.Crew,
			ship.Passengers,
			ship.CargoCapacity,
			ship.Consumables,
			ship.HyperdriveRating,
			ship.MGLT,
			ship.StarshipClass,
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting starship %q: %w", ship.Name, err)
		}
		ship.ID, _ = result.LastInsertId()
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing starships: %w", err)
	}

	s.logger.Info("imported starships", "count", len(ships))
	return nil
}

// GetStarship retrieves a catalog entry by id.
// Returns ErrNotFound if it doesn't exist.
func (s *SQLiteStore) GetStarship(ctx context.Context, id int64) (*Starship, error) {
	query := `SELECT ` + starshipColumns + ` FROM starships WHERE id = ?`

	row := s.db.QueryRowContext(ctx, query, id)

	ship, err := scanStarship(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying starship: %w", err)
	}

	return ship, nil
}

// ListStarships returns all catalog entries ordered by id.
func (s *SQLiteStore) ListStarships(ctx context.Context) ([]*Starship, error) {
	query := `SELECT ` + starshipColumns + ` FROM starships ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying starships: %w", err)
	}
	defer rows.Close()

	var ships []*Starship
	for rows.Next() {
		ship, err := scanStarship(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning starship row: %w", err)
		}
		ships = append(ships, ship)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating starship rows: %w", err)
	}

	return ships, nil
}

// UpdateStarship replaces all mutable fields of a catalog entry.
// Returns ErrNotFound if the entry doesn't exist.
func (s *SQLiteStore) UpdateStarship(ctx context.Context, ship *Starship) error {
	query := `
		UPDATE starships
		SET name = ?, model = ?, manufacturer = ?, cost_in_credits = ?, length = ?,
			max_atmosphering_speed = ?, crew = ?, passengers = ?, cargo_capacity = ?,
			consumables = ?, hyperdrive_rating = ?, mglt = ?, starship_class = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		ship.Name,
		ship.Model,
		ship.Manufacturer,
		ship.CostInCredits,
		ship.Length,
		ship.MaxAtmospheringSpeed,
		ship.Crew,
		ship.Passengers,
		ship.CargoCapacity,
		ship.Consumables,
		ship.HyperdriveRating,
		ship.MGLT,
		ship.StarshipClass,
		ship.ID,
	)
	if err != nil {
		return fmt.Errorf("updating starship: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated starship", "id", ship.ID)
	return nil
}

// DeleteStarship removes a catalog entry.
// Returns ErrNotFound if the entry doesn't exist.
func (s *SQLiteStore) DeleteStarship(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM starships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting starship: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted starship", "id", id)
	return nil
}

// CountStarships returns the number of catalog entries.
func (s *SQLiteStore) CountStarships(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM starships`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting starships: %w", err)
	}
	return count, nil
}

// scanStarship scans a starship row using the given scan function so the
// same code serves both QueryRow and Rows.
func scanStarship(scan func(dest ...any) error) (*Starship, error) {
	var ship Starship
	var createdAtStr string

	err := scan(
		&ship.ID,
		&ship.Name,
		&ship.Model,
		&ship.Manufacturer,
		&ship.CostInCredits,
		&ship.Length,
		&ship.MaxAtmospheringSpeed,
		&ship.Crew,
		&ship.Passengers,
		&ship.CargoCapacity,
		&ship.Consumables,
		&ship.HyperdriveRating,
		&ship.MGLT,
		&ship.StarshipClass,
		&createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	ship.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &ship, nil
}
