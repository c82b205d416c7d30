package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		location_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		address TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	);
	`

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id SERIAL PRIMARY KEY,
		pickup_location_id INTEGER NOT NULL REFERENCES locations(location_id),
		dropoff_location_id INTEGER NOT NULL REFERENCES locations(location_id),
		cycle_used DOUBLE PRECISION NOT NULL CHECK (cycle_used >= 0),
		distance_miles DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (distance_miles >= 0),
		number_of_days INTEGER NOT NULL DEFAULT 1 CHECK (number_of_days >= 1)
	);
	`

	// Waypoint locations are denormalized into the segment row: they are
	// synthesized per segment and replaced wholesale with the schedule.
	createSegmentsQuery := `
	CREATE TABLE IF NOT EXISTS duty_segments (
		segment_id SERIAL PRIMARY KEY,
		trip_id INTEGER NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		halt_type TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes >= 0),
		description TEXT NOT NULL,
		day INTEGER NOT NULL CHECK (day >= 1),
		location_name TEXT NOT NULL,
		location_address TEXT NOT NULL,
		location_lat DOUBLE PRECISION NOT NULL,
		location_lon DOUBLE PRECISION NOT NULL,
		UNIQUE (trip_id, position)
	);
	`

	createLogEntriesQuery := `
	CREATE TABLE IF NOT EXISTS log_entries (
		log_entry_id SERIAL PRIMARY KEY,
		trip_id INTEGER NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
		driver_name TEXT NOT NULL,
		load_number TEXT NOT NULL DEFAULT '',
		carrier_name TEXT NOT NULL DEFAULT '',
		truck_number TEXT NOT NULL DEFAULT '',
		trailer_number TEXT NOT NULL DEFAULT '',
		co_driver_name TEXT NOT NULL DEFAULT '',
		remarks TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		duration_label TEXT NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_duty_segments_trip
	ON duty_segments(trip_id, position);
	`

	statements := []string{
		createLocationsQuery,
		createTripsQuery,
		createSegmentsQuery,
		createLogEntriesQuery,
		createDistanceCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type LocationSeed struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Populate the database with location data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed locations: read %q: %w", jsonPath, err)
	}

	var data []LocationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed locations: parse json: %w", err)
	}

	rows := make([]LocationSeed, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed locations: item at index %d: name cannot be empty", i+1)
		}

		address := strings.TrimSpace(item.Address)
		if address == "" {
			address = name
		}
		rows = append(rows, LocationSeed{
			Name:      name,
			Address:   address,
			Latitude:  item.Latitude,
			Longitude: item.Longitude,
		})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO locations (name, address, latitude, longitude)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name) DO UPDATE
	SET address = EXCLUDED.address,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range rows {
		if _, err := stmt.Exec(l.Name, l.Address, l.Latitude, l.Longitude); err != nil {
			return fmt.Errorf("seed locations: insert %q: %w", l.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return nil
}
