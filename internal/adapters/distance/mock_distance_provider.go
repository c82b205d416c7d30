package distance

import (
	"context"
	"fmt"

	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/ports"
)

// MockDistanceProvider serves a fixed distance result, or a simulated
// lookup failure when Fail is set.
type MockDistanceProvider struct {
	Miles float64
	Label string
	Fail  bool

	Calls int
}

func NewMockDistanceProvider(miles float64, label string) *MockDistanceProvider {
	return &MockDistanceProvider{Miles: miles, Label: label}
}

func (p *MockDistanceProvider) Resolve(
	ctx context.Context,
	pickup, dropoff domain.Coordinates,
) (ports.DistanceResult, error) {
	p.Calls++

	if p.Fail {
		return ports.DistanceResult{}, fmt.Errorf("%w: mock lookup failed", ports.ErrDistanceUnavailable)
	}

	return ports.DistanceResult{Miles: p.Miles, DurationLabel: p.Label}, nil
}
