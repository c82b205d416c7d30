package domain

import "time"

// Driver's paper-log header data attached to a trip.
type LogEntry struct {
	LogEntryID    int
	TripID        int
	DriverName    string
	LoadNumber    string
	CarrierName   string
	TruckNumber   string
	TrailerNumber string
	CoDriverName  string
	Remarks       string
	CreatedAt     time.Time
}
