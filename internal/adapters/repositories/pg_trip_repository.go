package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/platform/obs"
	"trip-scheduler-service/internal/ports"
)

// Postgres-backed implementation of the TripRepository port.
type PGTripRepository struct{ DB *sql.DB }

func NewPGTripRepository(db *sql.DB) *PGTripRepository {
	return &PGTripRepository{DB: db}
}

func (r *PGTripRepository) CreateTrip(ctx context.Context, trip *domain.Trip) error {
	if r.DB == nil {
		return errors.New("trip repository: DB is nil")
	}

	if trip.PickupLocation.LocationID == 0 || trip.DropoffLocation.LocationID == 0 {
		return errors.New("create trip: pickup and dropoff locations must be persisted first")
	}

	query := `
	INSERT INTO trips (pickup_location_id, dropoff_location_id, cycle_used, distance_miles, number_of_days)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING trip_id;
	`
	err := r.DB.QueryRowContext(
		ctx, query,
		trip.PickupLocation.LocationID,
		trip.DropoffLocation.LocationID,
		trip.CycleUsedHours,
		trip.DistanceMiles,
		trip.NumberOfDays,
	).Scan(&trip.TripID)
	if err != nil {
		return fmt.Errorf("create trip: %w", err)
	}

	return nil
}

const tripSelectQuery = `
	SELECT
		t.trip_id, t.cycle_used, t.distance_miles, t.number_of_days,
		p.location_id, p.name, p.address, p.latitude, p.longitude,
		d.location_id, d.name, d.address, d.latitude, d.longitude
	FROM trips t
	JOIN locations p ON p.location_id = t.pickup_location_id
	JOIN locations d ON d.location_id = t.dropoff_location_id
`

func scanTrip(row interface{ Scan(dest ...any) error }) (*domain.Trip, error) {
	var t domain.Trip
	err := row.Scan(
		&t.TripID, &t.CycleUsedHours, &t.DistanceMiles, &t.NumberOfDays,
		&t.PickupLocation.LocationID, &t.PickupLocation.Name, &t.PickupLocation.Address,
		&t.PickupLocation.Latitude, &t.PickupLocation.Longitude,
		&t.DropoffLocation.LocationID, &t.DropoffLocation.Name, &t.DropoffLocation.Address,
		&t.DropoffLocation.Latitude, &t.DropoffLocation.Longitude,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Retrieve a trip with its locations and ordered segments.
func (r *PGTripRepository) GetTrip(ctx context.Context, tripID int) (*domain.Trip, error) {
	if r.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx, tripSelectQuery+` WHERE t.trip_id = $1;`, tripID)
	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %d: %w", tripID, ports.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", tripID, err)
	}

	segments, err := r.loadSegments(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", tripID, err)
	}
	trip.Segments = segments

	return trip, nil
}

// Retrieve all trips with their segments, ordered by id.
func (r *PGTripRepository) ListTrips(ctx context.Context) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "trips.List")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, tripSelectQuery+` ORDER BY t.trip_id;`)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, 16)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	for _, trip := range trips {
		segments, err := r.loadSegments(ctx, trip.TripID)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trip.Segments = segments
	}

	return trips, nil
}

// Persist mutable trip fields.
func (r *PGTripRepository) UpdateTrip(ctx context.Context, trip *domain.Trip) error {
	if r.DB == nil {
		return errors.New("trip repository: DB is nil")
	}

	query := `
	UPDATE trips
	SET cycle_used = $1, distance_miles = $2, number_of_days = $3
	WHERE trip_id = $4;
	`
	res, err := r.DB.ExecContext(ctx, query, trip.CycleUsedHours, trip.DistanceMiles, trip.NumberOfDays, trip.TripID)
	if err != nil {
		return fmt.Errorf("update trip %d: %w", trip.TripID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update trip %d: rows affected: %w", trip.TripID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update trip %d: %w", trip.TripID, ports.ErrTripNotFound)
	}

	return nil
}

// Delete a trip; its segments and log entries cascade.
func (r *PGTripRepository) DeleteTrip(ctx context.Context, tripID int) error {
	if r.DB == nil {
		return errors.New("trip repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM trips WHERE trip_id = $1;`, tripID)
	if err != nil {
		return fmt.Errorf("delete trip %d: %w", tripID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trip %d: rows affected: %w", tripID, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete trip %d: %w", tripID, ports.ErrTripNotFound)
	}

	return nil
}

// SaveSchedule replaces the trip's stored segments with the in-memory
// ones and records the realized distance and day count, all in a single
// transaction so a retried run never leaves a partial schedule behind.
func (r *PGTripRepository) SaveSchedule(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "trips.SaveSchedule")(&err)

	if r.DB == nil {
		return errors.New("trip repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save schedule: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM duty_segments WHERE trip_id = $1;`, trip.TripID); err != nil {
		return fmt.Errorf("save schedule: clear segments for trip %d: %w", trip.TripID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO duty_segments (
		trip_id, position, halt_type, duration_minutes, description, day,
		location_name, location_address, location_lat, location_lon
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`)
	if err != nil {
		return fmt.Errorf("save schedule: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range trip.Segments {
		_, err := stmt.ExecContext(
			ctx,
			trip.TripID, i, string(s.HaltType), s.DurationMinutes, s.Description, s.Day,
			s.Location.Name, s.Location.Address, s.Location.Latitude, s.Location.Longitude,
		)
		if err != nil {
			return fmt.Errorf("save schedule: insert segment %d for trip %d: %w", i, trip.TripID, err)
		}
	}

	update := `
	UPDATE trips
	SET distance_miles = $1, number_of_days = $2
	WHERE trip_id = $3;
	`
	res, err := tx.ExecContext(ctx, update, trip.DistanceMiles, trip.NumberOfDays, trip.TripID)
	if err != nil {
		return fmt.Errorf("save schedule: update trip %d: %w", trip.TripID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save schedule: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("save schedule: trip %d: %w", trip.TripID, ports.ErrTripNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save schedule: commit tx: %w", err)
	}

	return nil
}

func (r *PGTripRepository) loadSegments(ctx context.Context, tripID int) ([]domain.DutySegment, error) {
	query := `
	SELECT halt_type, duration_minutes, description, day,
		location_name, location_address, location_lat, location_lon
	FROM duty_segments
	WHERE trip_id = $1
	ORDER BY position;
	`
	rows, err := r.DB.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("load segments: query duty_segments table: %w", err)
	}
	defer rows.Close()

	segments := make([]domain.DutySegment, 0, 8)
	for rows.Next() {
		var s domain.DutySegment
		var halt string
		err := rows.Scan(
			&halt, &s.DurationMinutes, &s.Description, &s.Day,
			&s.Location.Name, &s.Location.Address, &s.Location.Latitude, &s.Location.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("load segments: scan row: %w", err)
		}
		s.HaltType = domain.HaltType(halt)
		segments = append(segments, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load segments: row iteration: %w", err)
	}

	return segments, nil
}
