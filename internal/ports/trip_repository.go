package ports

import (
	"context"
	"errors"
	"trip-scheduler-service/internal/domain"
)

// ErrTripNotFound reports a lookup for a trip id that does not exist.
var ErrTripNotFound = errors.New("trip not found")

// Port: a boundary for persisting Trip aggregates and their schedules.
type TripRepository interface {
	// Insert a new trip and populate its TripID.
	CreateTrip(ctx context.Context, trip *domain.Trip) error
	// Retrieve a trip with its locations and ordered segments.
	GetTrip(ctx context.Context, tripID int) (*domain.Trip, error)
	// Retrieve all trips with their segments, ordered by id.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
	// Persist mutable trip fields (cycle_used, distance, number_of_days).
	UpdateTrip(ctx context.Context, trip *domain.Trip) error
	// Delete a trip and its segments.
	DeleteTrip(ctx context.Context, tripID int) error
	// Persist a freshly built schedule: all existing segments for the
	// trip are replaced by the given ones in a single transaction, along
	// with the realized distance and day count.
	SaveSchedule(ctx context.Context, trip *domain.Trip) error
}
