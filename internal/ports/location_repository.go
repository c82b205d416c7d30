package ports

import (
	"context"
	"trip-scheduler-service/internal/domain"
)

// Port: a boundary for storing and retrieving named locations.
type LocationRepository interface {
	// Insert a location and populate its LocationID.
	CreateLocation(ctx context.Context, loc *domain.Location) error
	// Insert many locations in one transaction.
	CreateLocations(ctx context.Context, locs []*domain.Location) error
	// Return the location with the given name, creating it if absent.
	GetOrCreateLocation(ctx context.Context, loc domain.Location) (domain.Location, error)
	// Retrieve all locations ordered by id.
	ListLocations(ctx context.Context) ([]*domain.Location, error)
}
