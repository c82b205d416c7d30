package domain

// HaltType classifies a duty segment in the driver's daily log.
type HaltType string

const (
	HaltOnDutyNotDriving HaltType = "ON_DUTY_NOT_DRIVING"
	HaltStop             HaltType = "STOP"
	HaltDrive            HaltType = "DRIVE"
	HaltFuel             HaltType = "FUEL"
	HaltBreak            HaltType = "BREAK"
	HaltSleeper          HaltType = "SLEEPER"
	HaltOffDuty          HaltType = "OFF_DUTY"
)

// Represents a single entry in a trip's generated schedule.
// A DutySegment covers one contiguous duty status (driving, resting,
// fueling, ...) with a minute-level duration and the 1-based trip day
// it falls on. Segments are created exclusively by the scheduler, in
// emission order.
type DutySegment struct {
	HaltType        HaltType
	DurationMinutes int
	Description     string
	Day             int
	Location        Location
}
