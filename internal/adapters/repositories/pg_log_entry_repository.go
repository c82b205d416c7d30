package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-scheduler-service/internal/domain"
)

// Postgres-backed implementation of the LogEntryRepository port.
type PGLogEntryRepository struct{ DB *sql.DB }

func NewPGLogEntryRepository(db *sql.DB) *PGLogEntryRepository {
	return &PGLogEntryRepository{DB: db}
}

func (r *PGLogEntryRepository) CreateLogEntry(ctx context.Context, entry *domain.LogEntry) error {
	if r.DB == nil {
		return errors.New("log entry repository: DB is nil")
	}

	if strings.TrimSpace(entry.DriverName) == "" {
		return errors.New("create log entry: driver_name must be non-empty")
	}

	query := `
	INSERT INTO log_entries (
		trip_id, driver_name, load_number, carrier_name,
		truck_number, trailer_number, co_driver_name, remarks
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING log_entry_id, created_at;
	`
	err := r.DB.QueryRowContext(
		ctx, query,
		entry.TripID, entry.DriverName, entry.LoadNumber, entry.CarrierName,
		entry.TruckNumber, entry.TrailerNumber, entry.CoDriverName, entry.Remarks,
	).Scan(&entry.LogEntryID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("create log entry for trip %d: %w", entry.TripID, err)
	}

	return nil
}

// Return all log entries for a trip, newest first.
func (r *PGLogEntryRepository) ListLogEntries(ctx context.Context, tripID int) ([]*domain.LogEntry, error) {
	if r.DB == nil {
		return nil, errors.New("log entry repository: DB is nil")
	}

	query := `
	SELECT log_entry_id, trip_id, driver_name, load_number, carrier_name,
		truck_number, trailer_number, co_driver_name, remarks, created_at
	FROM log_entries
	WHERE trip_id = $1
	ORDER BY created_at DESC, log_entry_id DESC;
	`
	rows, err := r.DB.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("list log entries: query log_entries table: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.LogEntry, 0, 8)
	for rows.Next() {
		var e domain.LogEntry
		err := rows.Scan(
			&e.LogEntryID, &e.TripID, &e.DriverName, &e.LoadNumber, &e.CarrierName,
			&e.TruckNumber, &e.TrailerNumber, &e.CoDriverName, &e.Remarks, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list log entries: scan row: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list log entries: row iteration: %w", err)
	}

	return entries, nil
}
