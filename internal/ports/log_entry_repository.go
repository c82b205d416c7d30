package ports

import (
	"context"
	"trip-scheduler-service/internal/domain"
)

// Port: a boundary for driver log entry bookkeeping.
type LogEntryRepository interface {
	// Insert a log entry and populate its LogEntryID and CreatedAt.
	CreateLogEntry(ctx context.Context, entry *domain.LogEntry) error
	// Retrieve all log entries for a trip, newest first.
	ListLogEntries(ctx context.Context, tripID int) ([]*domain.LogEntry, error)
}
