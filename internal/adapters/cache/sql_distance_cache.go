package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/platform/obs"
	"trip-scheduler-service/internal/ports"
)

// SQLDistanceCache is a SQL-backed cache for pickup->dropoff distance
// results, keyed by rounded coordinate pairs.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// coordKey renders coordinates at 5 decimal places (~1 m) so lookups
// for the same endpoints hit the same row.
func coordKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon)
}

// Fetch a cached distance result for one coordinate pair.
func (s *SQLDistanceCache) Get(
	ctx context.Context,
	pickup, dropoff domain.Coordinates,
) (_ ports.DistanceResult, _ bool, err error) {
	defer obs.Time(ctx, "distance.cache.Get")(&err)

	if s.DB == nil {
		return ports.DistanceResult{}, false, errors.New("distance cache: db is nil")
	}

	q := `
	SELECT distance_miles, duration_label
	FROM distance_cache
	WHERE origin = $1
		AND destination = $2;
	`

	var miles float64
	var label string
	err = s.DB.QueryRowContext(ctx, q, coordKey(pickup), coordKey(dropoff)).Scan(&miles, &label)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.DistanceResult{}, false, nil
	}
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}

	return ports.DistanceResult{Miles: miles, DurationLabel: label}, true, nil
}

// Store a distance result for one coordinate pair.
func (s *SQLDistanceCache) Put(
	ctx context.Context,
	pickup, dropoff domain.Coordinates,
	result ports.DistanceResult,
) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}

	q := `
	INSERT INTO distance_cache (origin, destination, distance_miles, duration_label)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_miles = EXCLUDED.distance_miles,
		duration_label = EXCLUDED.duration_label;
	`

	if _, err := s.DB.ExecContext(ctx, q, coordKey(pickup), coordKey(dropoff), result.Miles, result.DurationLabel); err != nil {
		return fmt.Errorf("insert distance cache: %w", err)
	}

	return nil
}
