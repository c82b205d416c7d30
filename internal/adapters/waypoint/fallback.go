package waypoint

import (
	"strings"

	"trip-scheduler-service/internal/domain"
)

// FallbackLocation synthesizes a deterministic location at the midpoint
// of pickup and dropoff, labeled by halt type. Used whenever a
// route-aware lookup fails, so a schedule is always produced.
func FallbackLocation(pickup, dropoff domain.Location, halt domain.HaltType) domain.Location {
	mid := domain.Midpoint(pickup.Coords(), dropoff.Coords())

	name := "Fallback Location"
	if halt != domain.HaltStop {
		name = haltTitle(halt) + " Stop: Fallback Location"
	}

	return domain.Location{
		Name:      name,
		Address:   "Unknown",
		Latitude:  mid.Lat,
		Longitude: mid.Lon,
	}
}

// labelForHalt prefixes a waypoint name by halt type. Drive segments
// and stops carry the bare place name.
func labelForHalt(halt domain.HaltType, name string) string {
	if halt == domain.HaltDrive || halt == domain.HaltStop {
		return name
	}
	return haltTitle(halt) + " Stop: " + name
}

// haltTitle renders a halt type as a one-word title ("FUEL" -> "Fuel").
func haltTitle(halt domain.HaltType) string {
	s := strings.ToLower(string(halt))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
