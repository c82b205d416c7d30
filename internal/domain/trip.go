package domain

import "fmt"

// Trip aggregate: a pickup-to-dropoff haul plus its generated schedule.
//
// CycleUsedHours is the driver's already-used hours in the 60/70-hour
// cycle. It is accepted and persisted but not consulted by scheduling;
// see the cycle limit constants in the services package.
type Trip struct {
	TripID          int
	PickupLocation  Location
	DropoffLocation Location
	CycleUsedHours  float64
	DistanceMiles   float64
	NumberOfDays    int
	Segments        []DutySegment
}

func NewTrip(pickup, dropoff Location, cycleUsed float64) (*Trip, error) {
	if cycleUsed < 0 {
		return nil, fmt.Errorf("new trip: cycle_used must be >= 0, got %v", cycleUsed)
	}

	return &Trip{
		PickupLocation:  pickup,
		DropoffLocation: dropoff,
		CycleUsedHours:  cycleUsed,
		NumberOfDays:    1,
	}, nil
}

// ReplaceSchedule swaps in a freshly built schedule, discarding any
// previous one. The segment slice is replaced wholesale, never appended
// to, so a re-simulation can not leave a partially written schedule.
func (t *Trip) ReplaceSchedule(segments []DutySegment, days int) error {
	if days < 1 {
		return fmt.Errorf("replace schedule: trip %d: days must be >= 1, got %d", t.TripID, days)
	}

	for i, s := range segments {
		if s.DurationMinutes < 0 {
			return fmt.Errorf("replace schedule: trip %d: segment %d has negative duration", t.TripID, i)
		}
		if s.Day < 1 {
			return fmt.Errorf("replace schedule: trip %d: segment %d has day < 1", t.TripID, i)
		}
	}

	t.Segments = segments
	t.NumberOfDays = days
	return nil
}

// ClearSchedule drops the generated schedule without touching trip fields.
func (t *Trip) ClearSchedule() {
	t.Segments = nil
	t.NumberOfDays = 1
}
