package services

import (
	"context"
	"fmt"
	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/ports"
)

// EstimateDays calculates how many calendar days a trip requires,
// without producing segments. It runs the same clock simulation as
// BuildSchedule in aggregate form: chunked driving bounded by the break
// threshold and the daily drive/on-duty caps, a 30-minute break per
// window that reaches the threshold, and a 10-hour rest whenever a
// daily cap exhausts with driving left.
//
// If the trip distance is unknown (zero) it is resolved through the
// provider and recorded on the trip.
func EstimateDays(ctx context.Context, trip *domain.Trip, provider ports.DistanceProvider) (int, error) {
	if err := resolveDistance(ctx, trip, provider); err != nil {
		return 0, fmt.Errorf("estimate days: %w", err)
	}

	remainingDrivingHours := trip.DistanceMiles / AvgSpeedMPH

	currentTime := WakeUpHour
	totalDrivingToday := 0.0
	onDutyWindow := 0.0
	numDays := 1

	// Pre-trip on-duty block (wake-up to start).
	currentTime += StartHour - WakeUpHour
	onDutyWindow += StartHour - WakeUpHour

	for remainingDrivingHours > 0 {
		chunk := min(
			BreakThresholdHours,
			MaxDriveHoursPerDay-totalDrivingToday,
			MaxOnDutyHoursPerDay-onDutyWindow,
			remainingDrivingHours,
		)

		if chunk > 0 {
			currentTime += chunk
			onDutyWindow += chunk
			totalDrivingToday += chunk
			remainingDrivingHours -= chunk
		}

		if totalDrivingToday >= BreakThresholdHours && onDutyWindow < MaxOnDutyHoursPerDay {
			currentTime += float64(BreakMinutes) / 60
			onDutyWindow += float64(BreakMinutes) / 60
		}

		if (totalDrivingToday >= MaxDriveHoursPerDay || onDutyWindow >= MaxOnDutyHoursPerDay) &&
			remainingDrivingHours > 0 {
			currentTime += SleeperBerthHours + OffDutyHours

			totalDrivingToday = 0
			onDutyWindow = 0

			if currentTime >= 24 {
				numDays++
				currentTime -= 24
			}
		}
	}

	// Pickup and dropoff land on the final day.
	currentTime += float64(PickupDropoffMinutes) * 2 / 60

	if currentTime >= 24 {
		numDays++
	}

	return max(1, numDays), nil
}

// resolveDistance fills in trip.DistanceMiles via the provider when the
// caller did not supply one.
func resolveDistance(ctx context.Context, trip *domain.Trip, provider ports.DistanceProvider) error {
	if trip.DistanceMiles != 0 {
		return nil
	}

	result, err := provider.Resolve(ctx, trip.PickupLocation.Coords(), trip.DropoffLocation.Coords())
	if err != nil {
		return fmt.Errorf("resolve trip distance: %w", err)
	}

	trip.DistanceMiles = result.Miles
	return nil
}
