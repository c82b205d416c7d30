package waypoint

import (
	"context"

	"trip-scheduler-service/internal/domain"
)

// MockWaypointProvider resolves every waypoint to the deterministic
// midpoint fallback. Useful in tests and as a no-network provider.
type MockWaypointProvider struct {
	Calls int
}

func NewMockWaypointProvider() *MockWaypointProvider {
	return &MockWaypointProvider{}
}

func (p *MockWaypointProvider) Resolve(
	ctx context.Context,
	pickup, dropoff domain.Location,
	halt domain.HaltType,
) domain.Location {
	p.Calls++
	return FallbackLocation(pickup, dropoff, halt)
}
