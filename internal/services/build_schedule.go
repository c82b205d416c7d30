package services

import (
	"context"
	"fmt"
	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/ports"
)

// BuildSchedule runs the hours-of-service simulation for a trip and
// returns the complete ordered duty-segment sequence plus the realized
// day count.
//
// The simulation interleaves four constraints, each with its own reset
// rule: the 11-hour daily driving cap and 14-hour on-duty window (both
// reset by the 10-hour rest), the 8-hour driving threshold that
// triggers a single 30-minute break per on-duty window, and the
// 1,000-mile fuel interval (decremented, not zeroed, so the remainder
// carries into the next interval).
//
// Waypoint lookups never fail the schedule; the provider falls back to
// a midpoint location. An unresolvable distance is the only fatal error.
func BuildSchedule(
	ctx context.Context,
	trip *domain.Trip,
	distanceProvider ports.DistanceProvider,
	waypointProvider ports.WaypointProvider,
) ([]domain.DutySegment, int, error) {
	if err := resolveDistance(ctx, trip, distanceProvider); err != nil {
		return nil, 0, fmt.Errorf("build schedule: %w", err)
	}

	distance := trip.DistanceMiles

	currentTime := WakeUpHour
	currentDay := 1
	remainingDistance := distance
	totalDrivingToday := 0.0
	onDutyWindow := 0.0
	distanceCovered := 0.0
	hasTakenBreak := false

	segments := make([]domain.DutySegment, 0, 8)

	// Pre-trip on-duty block at the pickup point (wake-up to start).
	preTripHours := StartHour - WakeUpHour
	segments = append(segments, domain.DutySegment{
		HaltType:        domain.HaltOnDutyNotDriving,
		DurationMinutes: int(preTripHours * 60),
		Description:     "Pre-trip preparation and travel to pickup location",
		Day:             currentDay,
		Location:        trip.PickupLocation,
	})
	currentTime += preTripHours
	onDutyWindow += preTripHours

	segments = append(segments, domain.DutySegment{
		HaltType:        domain.HaltStop,
		DurationMinutes: PickupDropoffMinutes,
		Description:     "Pickup at location",
		Day:             currentDay,
		Location:        trip.PickupLocation,
	})
	currentTime += float64(PickupDropoffMinutes) / 60
	onDutyWindow += float64(PickupDropoffMinutes) / 60

	for remainingDistance > distanceEpsilonMiles {
		// Drivable chunk before the next forced halt. Until the window's
		// break is taken the 8-hour threshold bounds the chunk; after it,
		// only the daily caps do.
		breakBound := BreakThresholdHours
		if hasTakenBreak {
			breakBound = MaxDriveHoursPerDay
		}
		chunkHours := min(
			breakBound,
			MaxDriveHoursPerDay-totalDrivingToday,
			MaxOnDutyHoursPerDay-onDutyWindow,
			remainingDistance/AvgSpeedMPH,
		)

		if chunkHours > 0 {
			distanceCovered += chunkHours * AvgSpeedMPH
			remainingDistance -= chunkHours * AvgSpeedMPH

			segments = append(segments, domain.DutySegment{
				HaltType:        domain.HaltDrive,
				DurationMinutes: int(chunkHours * 60),
				Description:     "Driving",
				Day:             currentDay,
				Location:        waypointProvider.Resolve(ctx, trip.PickupLocation, trip.DropoffLocation, domain.HaltDrive),
			})

			currentTime += chunkHours
			onDutyWindow += chunkHours
			totalDrivingToday += chunkHours
		}

		// Fuel stop every 1,000 miles; short trips never fuel.
		if distance >= FuelStopIntervalMiles && distanceCovered >= FuelStopIntervalMiles {
			segments = append(segments, domain.DutySegment{
				HaltType:        domain.HaltFuel,
				DurationMinutes: FuelStopMinutes,
				Description:     "Fuel stop",
				Day:             currentDay,
				Location:        waypointProvider.Resolve(ctx, trip.PickupLocation, trip.DropoffLocation, domain.HaltFuel),
			})
			currentTime += float64(FuelStopMinutes) / 60
			onDutyWindow += float64(FuelStopMinutes) / 60
			distanceCovered -= FuelStopIntervalMiles
		}

		// One mandatory break per on-duty window, at the 8-hour mark.
		if !hasTakenBreak && totalDrivingToday >= BreakThresholdHours {
			segments = append(segments, domain.DutySegment{
				HaltType:        domain.HaltBreak,
				DurationMinutes: BreakMinutes,
				Description:     "Mandatory 30-minute rest break",
				Day:             currentDay,
				Location:        waypointProvider.Resolve(ctx, trip.PickupLocation, trip.DropoffLocation, domain.HaltBreak),
			})
			currentTime += float64(BreakMinutes) / 60
			onDutyWindow += float64(BreakMinutes) / 60
			hasTakenBreak = true
		}

		// Daily cap exhausted with distance left: 10-hour rest, then a
		// fresh on-duty window.
		if (totalDrivingToday >= MaxDriveHoursPerDay || onDutyWindow >= MaxOnDutyHoursPerDay) &&
			remainingDistance > distanceEpsilonMiles {
			restLocation := waypointProvider.Resolve(ctx, trip.PickupLocation, trip.DropoffLocation, domain.HaltSleeper)

			segments = append(segments, domain.DutySegment{
				HaltType:        domain.HaltSleeper,
				DurationMinutes: int(SleeperBerthHours * 60),
				Description:     "Sleeper Berth Rest",
				Day:             currentDay,
				Location:        restLocation,
			})
			currentTime += SleeperBerthHours

			segments = append(segments, domain.DutySegment{
				HaltType:        domain.HaltOffDuty,
				DurationMinutes: int(OffDutyHours * 60),
				Description:     "Off Duty Rest",
				Day:             currentDay,
				Location:        restLocation,
			})
			currentTime += OffDutyHours

			totalDrivingToday = 0
			onDutyWindow = 0
			hasTakenBreak = false

			if currentTime >= 24 {
				currentDay++
				currentTime -= 24
			}
		}
	}

	segments = append(segments, domain.DutySegment{
		HaltType:        domain.HaltStop,
		DurationMinutes: PickupDropoffMinutes,
		Description:     "Dropoff at location",
		Day:             currentDay,
		Location:        trip.DropoffLocation,
	})
	currentTime += float64(PickupDropoffMinutes) / 60

	numberOfDays := currentDay
	if currentTime >= 24 {
		numberOfDays++
	}

	return segments, numberOfDays, nil
}

// ScheduleTrip builds a schedule and applies it to the trip, replacing
// any previously generated one in a single swap.
func ScheduleTrip(
	ctx context.Context,
	trip *domain.Trip,
	distanceProvider ports.DistanceProvider,
	waypointProvider ports.WaypointProvider,
) error {
	segments, days, err := BuildSchedule(ctx, trip, distanceProvider, waypointProvider)
	if err != nil {
		return fmt.Errorf("schedule trip: %w", err)
	}

	if err := trip.ReplaceSchedule(segments, days); err != nil {
		return fmt.Errorf("schedule trip: %w", err)
	}

	return nil
}
