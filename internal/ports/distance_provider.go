package ports

import (
	"context"
	"errors"
	"trip-scheduler-service/internal/domain"
)

// ErrDistanceUnavailable reports that the trip distance is unknown and
// could not be resolved. It is the only provider failure the scheduler
// does not absorb: the whole simulation aborts.
var ErrDistanceUnavailable = errors.New("distance unavailable")

// Road distance and a human-readable travel duration between two points.
type DistanceResult struct {
	Miles         float64
	DurationLabel string
}

// Contract for retrieving road distance between pickup and dropoff.
type DistanceProvider interface {
	// Return road distance and estimated duration between two coordinate
	// pairs. Failures wrap ErrDistanceUnavailable.
	Resolve(ctx context.Context, pickup, dropoff domain.Coordinates) (DistanceResult, error)
}
