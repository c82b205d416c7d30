package services

// Federal hours-of-service planning constants. Speeds and stop
// durations align with the front-end assumptions; drive/duty limits
// follow the FMCSA property-carrying driver rules.
const (
	AvgSpeedMPH           = 55.0
	FuelStopIntervalMiles = 1000.0 // fuel every 1,000 miles
	FuelStopMinutes       = 30
	PickupDropoffMinutes  = 60

	MaxDriveHoursPerDay  = 11.0 // 11-hour driving limit
	MaxOnDutyHoursPerDay = 14.0 // 14-hour on-duty window
	BreakThresholdHours  = 8.0  // break required after 8 hours of driving
	BreakMinutes         = 30

	SleeperBerthHours = 7.0 // 7 hours sleeper berth
	OffDutyHours      = 3.0 // 3 hours off duty (10-hour rest total)

	// Weekly cycle limits. Defined alongside the daily limits but not
	// applied when scheduling: Trip.CycleUsedHours is accepted and
	// persisted without affecting rest placement or day counts.
	MaxHoursPerWeek  = 70.0 // 70-hour/8-day limit
	MaxHoursPerCycle = 60.0 // 60-hour/7-day limit

	WakeUpHour = 4.0 // driver wakes at 4:00 AM
	StartHour  = 6.0 // driver starts at the pickup location at 6:00 AM
)

// Threshold for "remaining distance is zero" comparisons, absorbing
// floating-point residue so the drive loop always terminates.
const distanceEpsilonMiles = 0.01
