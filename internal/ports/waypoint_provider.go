package ports

import (
	"context"
	"trip-scheduler-service/internal/domain"
)

// Contract for naming a representative point along the route for a halt.
type WaypointProvider interface {
	// Return a named location along the pickup->dropoff route for the
	// given halt type. Never fails outward: implementations fall back to
	// a synthesized midpoint location on any lookup error, so the
	// scheduler always receives a usable Location.
	Resolve(ctx context.Context, pickup, dropoff domain.Location, halt domain.HaltType) domain.Location
}
