package domain

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Midpoint returns the point halfway between two coordinate pairs.
// Good enough for fallback waypoint labeling; not geodesically exact.
func Midpoint(a, b Coordinates) Coordinates {
	return Coordinates{
		Lat: (a.Lat + b.Lat) / 2,
		Lon: (a.Lon + b.Lon) / 2,
	}
}

// Represents a named geographic point: pickup/dropoff endpoints and the
// waypoints attached to generated duty segments. Value-like; waypoints
// are synthesized per segment rather than geocoded precisely.
type Location struct {
	LocationID int
	Name       string
	Address    string
	Latitude   float64
	Longitude  float64
}

func (l Location) Coords() Coordinates {
	return Coordinates{Lat: l.Latitude, Lon: l.Longitude}
}
