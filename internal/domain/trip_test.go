package domain

import "testing"

func TestNewTripRejectsNegativeCycle(t *testing.T) {
	pickup := Location{Name: "A"}
	dropoff := Location{Name: "B"}

	if _, err := NewTrip(pickup, dropoff, -1); err == nil {
		t.Fatal("expected error for negative cycle_used")
	}

	trip, err := NewTrip(pickup, dropoff, 12.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.CycleUsedHours != 12.5 {
		t.Errorf("cycle_used = %v, want 12.5", trip.CycleUsedHours)
	}
	if trip.NumberOfDays != 1 {
		t.Errorf("new trip should default to 1 day, got %d", trip.NumberOfDays)
	}
}

func TestTripReplaceSchedule(t *testing.T) {
	trip := &Trip{TripID: 1}
	trip.Segments = []DutySegment{
		{HaltType: HaltDrive, DurationMinutes: 60, Day: 1},
	}

	fresh := []DutySegment{
		{HaltType: HaltOnDutyNotDriving, DurationMinutes: 120, Day: 1},
		{HaltType: HaltStop, DurationMinutes: 60, Day: 1},
		{HaltType: HaltStop, DurationMinutes: 60, Day: 1},
	}

	if err := trip.ReplaceSchedule(fresh, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(trip.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(trip.Segments))
	}
	if trip.Segments[0].HaltType != HaltOnDutyNotDriving {
		t.Errorf("old schedule not replaced")
	}
	if trip.NumberOfDays != 1 {
		t.Errorf("days = %d, want 1", trip.NumberOfDays)
	}
}

func TestTripReplaceScheduleValidation(t *testing.T) {
	trip := &Trip{TripID: 1}

	err := trip.ReplaceSchedule([]DutySegment{{HaltType: HaltDrive, DurationMinutes: -1, Day: 1}}, 1)
	if err == nil {
		t.Fatal("expected error for negative duration")
	}

	err = trip.ReplaceSchedule([]DutySegment{{HaltType: HaltDrive, DurationMinutes: 60, Day: 0}}, 1)
	if err == nil {
		t.Fatal("expected error for day < 1")
	}

	err = trip.ReplaceSchedule(nil, 0)
	if err == nil {
		t.Fatal("expected error for days < 1")
	}
}

func TestTripClearSchedule(t *testing.T) {
	trip := &Trip{
		TripID:       1,
		NumberOfDays: 3,
		Segments: []DutySegment{
			{HaltType: HaltDrive, DurationMinutes: 60, Day: 1},
		},
	}

	trip.ClearSchedule()

	if trip.Segments != nil {
		t.Errorf("segments not cleared: %v", trip.Segments)
	}
	if trip.NumberOfDays != 1 {
		t.Errorf("days = %d, want 1", trip.NumberOfDays)
	}
}

func TestMidpoint(t *testing.T) {
	mid := Midpoint(Coordinates{Lat: 40, Lon: -80}, Coordinates{Lat: 30, Lon: -100})
	if mid.Lat != 35 || mid.Lon != -90 {
		t.Fatalf("midpoint = %+v, want {35 -90}", mid)
	}
}
