package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-scheduler-service/internal/domain"
)

// Postgres-backed implementation of the LocationRepository port.
type PGLocationRepository struct{ DB *sql.DB }

func NewPGLocationRepository(db *sql.DB) *PGLocationRepository {
	return &PGLocationRepository{DB: db}
}

func (r *PGLocationRepository) CreateLocation(ctx context.Context, loc *domain.Location) error {
	if r.DB == nil {
		return errors.New("location repository: DB is nil")
	}

	if strings.TrimSpace(loc.Name) == "" {
		return errors.New("create location: name must be non-empty")
	}

	query := `
	INSERT INTO locations (name, address, latitude, longitude)
	VALUES ($1, $2, $3, $4)
	RETURNING location_id;
	`
	err := r.DB.QueryRowContext(ctx, query, loc.Name, loc.Address, loc.Latitude, loc.Longitude).
		Scan(&loc.LocationID)
	if err != nil {
		return fmt.Errorf("create location %q: %w", loc.Name, err)
	}

	return nil
}

func (r *PGLocationRepository) CreateLocations(ctx context.Context, locs []*domain.Location) error {
	if r.DB == nil {
		return errors.New("location repository: DB is nil")
	}

	if len(locs) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO locations (name, address, latitude, longitude)
	VALUES ($1, $2, $3, $4)
	RETURNING location_id;
	`)
	if err != nil {
		return fmt.Errorf("create locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, loc := range locs {
		if strings.TrimSpace(loc.Name) == "" {
			return fmt.Errorf("create locations: item %d: name must be non-empty", i+1)
		}
		err := stmt.QueryRowContext(ctx, loc.Name, loc.Address, loc.Latitude, loc.Longitude).
			Scan(&loc.LocationID)
		if err != nil {
			return fmt.Errorf("create locations: insert %q: %w", loc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create locations: commit tx: %w", err)
	}

	return nil
}

// Return the location with the given name, creating it from the
// supplied fields when absent.
func (r *PGLocationRepository) GetOrCreateLocation(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if r.DB == nil {
		return domain.Location{}, errors.New("location repository: DB is nil")
	}

	name := strings.TrimSpace(loc.Name)
	if name == "" {
		return domain.Location{}, errors.New("get or create location: name must be non-empty")
	}

	query := `
	SELECT location_id, name, address, latitude, longitude
	FROM locations
	WHERE name = $1;
	`
	var existing domain.Location
	err := r.DB.QueryRowContext(ctx, query, name).Scan(
		&existing.LocationID,
		&existing.Name,
		&existing.Address,
		&existing.Latitude,
		&existing.Longitude,
	)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Location{}, fmt.Errorf("get or create location %q: %w", name, err)
	}

	created := loc
	created.Name = name
	if strings.TrimSpace(created.Address) == "" {
		created.Address = name
	}

	if err := r.CreateLocation(ctx, &created); err != nil {
		return domain.Location{}, fmt.Errorf("get or create location: %w", err)
	}

	return created, nil
}

// Return all locations stored in the database.
func (r *PGLocationRepository) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	if r.DB == nil {
		return nil, errors.New("location repository: DB is nil")
	}

	query := `
	SELECT location_id, name, address, latitude, longitude
	FROM locations
	ORDER BY location_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0, 64)
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.LocationID, &l.Name, &l.Address, &l.Latitude, &l.Longitude); err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		locations = append(locations, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}
