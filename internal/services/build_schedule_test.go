package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"trip-scheduler-service/internal/adapters/distance"
	"trip-scheduler-service/internal/adapters/waypoint"
	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/ports"
)

func testTrip(t *testing.T, distanceMiles float64) *domain.Trip {
	t.Helper()

	pickup := domain.Location{Name: "Chicago, IL", Address: "Chicago, IL", Latitude: 41.8781, Longitude: -87.6298}
	dropoff := domain.Location{Name: "Denver, CO", Address: "Denver, CO", Latitude: 39.7392, Longitude: -104.9903}

	trip, err := domain.NewTrip(pickup, dropoff, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	trip.DistanceMiles = distanceMiles
	return trip
}

type step struct {
	halt    domain.HaltType
	minutes int
	day     int
}

func assertSequence(t *testing.T, segments []domain.DutySegment, want []step) {
	t.Helper()

	if len(segments) != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), len(segments))
	}
	for i, w := range want {
		got := segments[i]
		if got.HaltType != w.halt || got.DurationMinutes != w.minutes || got.Day != w.day {
			t.Errorf("segment %d = %s/%dm/day%d, want %s/%dm/day%d",
				i, got.HaltType, got.DurationMinutes, got.Day, w.halt, w.minutes, w.day)
		}
	}
}

func TestBuildScheduleZeroDistance(t *testing.T) {
	trip := testTrip(t, 0)
	dp := distance.NewMockDistanceProvider(0, "0h 0m")
	wp := waypoint.NewMockWaypointProvider()

	segments, days, err := BuildSchedule(context.Background(), trip, dp, wp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertSequence(t, segments, []step{
		{domain.HaltOnDutyNotDriving, 120, 1},
		{domain.HaltStop, 60, 1},
		{domain.HaltStop, 60, 1},
	})

	if days != 1 {
		t.Fatalf("days = %d, want 1", days)
	}
	if segments[0].Location != trip.PickupLocation {
		t.Errorf("pre-trip segment should be at the pickup location")
	}
	if segments[1].Location != trip.PickupLocation {
		t.Errorf("pickup stop should be at the pickup location")
	}
	if segments[2].Location != trip.DropoffLocation {
		t.Errorf("dropoff stop should be at the dropoff location")
	}
	if wp.Calls != 0 {
		t.Errorf("no waypoint lookups expected for an empty drive, got %d", wp.Calls)
	}
}

func TestBuildScheduleSingleDayTrip(t *testing.T) {
	trip := testTrip(t, 550)
	dp := distance.NewMockDistanceProvider(550, "10h 0m")
	wp := waypoint.NewMockWaypointProvider()

	segments, days, err := BuildSchedule(context.Background(), trip, dp, wp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10 driving hours fit in one duty window: a full 8-hour stretch,
	// the mandatory break, then the remaining 2 hours.
	assertSequence(t, segments, []step{
		{domain.HaltOnDutyNotDriving, 120, 1},
		{domain.HaltStop, 60, 1},
		{domain.HaltDrive, 480, 1},
		{domain.HaltBreak, 30, 1},
		{domain.HaltDrive, 120, 1},
		{domain.HaltStop, 60, 1},
	})

	if days != 1 {
		t.Fatalf("days = %d, want 1", days)
	}
	if dp.Calls != 0 {
		t.Errorf("distance already known; provider should not be called, got %d calls", dp.Calls)
	}
}

func TestBuildScheduleMultiDayTrip(t *testing.T) {
	trip := testTrip(t, 2100)
	dp := distance.NewMockDistanceProvider(2100, "38h 10m")
	wp := waypoint.NewMockWaypointProvider()

	segments, days, err := BuildSchedule(context.Background(), trip, dp, wp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertSequence(t, segments, []step{
		{domain.HaltOnDutyNotDriving, 120, 1},
		{domain.HaltStop, 60, 1},
		{domain.HaltDrive, 480, 1},
		{domain.HaltBreak, 30, 1},
		{domain.HaltDrive, 150, 1},
		{domain.HaltSleeper, 420, 1},
		{domain.HaltOffDuty, 180, 1},
		{domain.HaltDrive, 480, 2},
		{domain.HaltFuel, 30, 2},
		{domain.HaltBreak, 30, 2},
		{domain.HaltDrive, 180, 2},
		{domain.HaltSleeper, 420, 2},
		{domain.HaltOffDuty, 180, 2},
		{domain.HaltDrive, 480, 3},
		{domain.HaltBreak, 30, 3},
		{domain.HaltDrive, 180, 3},
		{domain.HaltSleeper, 420, 3},
		{domain.HaltOffDuty, 180, 3},
		{domain.HaltDrive, 340, 3},
		{domain.HaltFuel, 30, 3},
		{domain.HaltStop, 60, 3},
	})

	if days != 4 {
		t.Fatalf("days = %d, want 4", days)
	}
}

func TestBuildScheduleDriveMinutesMatchDistance(t *testing.T) {
	for _, miles := range []float64{55, 550, 1287.5, 2100, 3400} {
		trip := testTrip(t, miles)
		dp := distance.NewMockDistanceProvider(miles, "")
		wp := waypoint.NewMockWaypointProvider()

		segments, _, err := BuildSchedule(context.Background(), trip, dp, wp)
		if err != nil {
			t.Fatalf("miles=%v: unexpected error: %v", miles, err)
		}

		driveMinutes := 0
		for _, s := range segments {
			if s.HaltType == domain.HaltDrive {
				driveMinutes += s.DurationMinutes
			}
		}

		wantMinutes := miles / AvgSpeedMPH * 60
		// Per-chunk truncation to whole minutes loses at most a minute
		// per drive segment.
		if math.Abs(float64(driveMinutes)-wantMinutes) > float64(len(segments)) {
			t.Errorf("miles=%v: drive minutes = %d, want ~%.1f", miles, driveMinutes, wantMinutes)
		}
	}
}

func TestBuildScheduleDayNeverDecreases(t *testing.T) {
	trip := testTrip(t, 3400)
	dp := distance.NewMockDistanceProvider(3400, "")
	wp := waypoint.NewMockWaypointProvider()

	segments, days, err := BuildSchedule(context.Background(), trip, dp, wp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := 1
	for i, s := range segments {
		if s.Day < prev {
			t.Fatalf("segment %d: day decreased from %d to %d", i, prev, s.Day)
		}
		prev = s.Day
	}

	if days < segments[len(segments)-1].Day {
		t.Errorf("final day count %d below last segment day %d", days, prev)
	}
}

func TestBuildScheduleOneBreakPerWindow(t *testing.T) {
	trip := testTrip(t, 3400)
	dp := distance.NewMockDistanceProvider(3400, "")
	wp := waypoint.NewMockWaypointProvider()

	segments, _, err := BuildSchedule(context.Background(), trip, dp, wp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Windows are delimited by the sleeper/off-duty rest pairs.
	breaks := 0
	for i, s := range segments {
		switch s.HaltType {
		case domain.HaltBreak:
			breaks++
			if breaks > 1 {
				t.Fatalf("segment %d: more than one break in an on-duty window", i)
			}
		case domain.HaltSleeper:
			breaks = 0
		}
	}
}

func TestBuildScheduleIsDeterministic(t *testing.T) {
	build := func() ([]domain.DutySegment, int) {
		trip := testTrip(t, 2100)
		dp := distance.NewMockDistanceProvider(2100, "")
		wp := waypoint.NewMockWaypointProvider()

		segments, days, err := BuildSchedule(context.Background(), trip, dp, wp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return segments, days
	}

	first, firstDays := build()
	second, secondDays := build()

	if firstDays != secondDays {
		t.Fatalf("day counts differ: %d vs %d", firstDays, secondDays)
	}
	if len(first) != len(second) {
		t.Fatalf("segment counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.HaltType != b.HaltType || a.DurationMinutes != b.DurationMinutes || a.Day != b.Day {
			t.Errorf("segment %d differs between runs: %+v vs %+v", i, a, b)
		}
	}
}

func TestBuildScheduleResolvesUnknownDistance(t *testing.T) {
	trip := testTrip(t, 0)
	dp := distance.NewMockDistanceProvider(550, "10h 0m")
	wp := waypoint.NewMockWaypointProvider()

	_, days, err := BuildSchedule(context.Background(), trip, dp, wp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dp.Calls != 1 {
		t.Errorf("expected 1 provider call, got %d", dp.Calls)
	}
	if trip.DistanceMiles != 550 {
		t.Errorf("resolved distance not recorded on trip: %v", trip.DistanceMiles)
	}
	if days != 1 {
		t.Errorf("days = %d, want 1", days)
	}
}

func TestBuildScheduleDistanceUnavailable(t *testing.T) {
	trip := testTrip(t, 0)
	dp := &distance.MockDistanceProvider{Fail: true}
	wp := waypoint.NewMockWaypointProvider()

	_, _, err := BuildSchedule(context.Background(), trip, dp, wp)
	if !errors.Is(err, ports.ErrDistanceUnavailable) {
		t.Fatalf("expected ErrDistanceUnavailable, got %v", err)
	}
}

func TestScheduleTripReplacesPreviousSchedule(t *testing.T) {
	trip := testTrip(t, 550)
	trip.Segments = []domain.DutySegment{
		{HaltType: domain.HaltDrive, DurationMinutes: 1, Day: 1},
	}

	dp := distance.NewMockDistanceProvider(550, "")
	wp := waypoint.NewMockWaypointProvider()

	if err := ScheduleTrip(context.Background(), trip, dp, wp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(trip.Segments) != 6 {
		t.Fatalf("expected 6 segments after rescheduling, got %d", len(trip.Segments))
	}
	if trip.NumberOfDays != 1 {
		t.Fatalf("days = %d, want 1", trip.NumberOfDays)
	}
}
