package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open connects to Postgres via the pgx stdlib driver and verifies the
// connection before returning the pool.
func Open(databaseURL string) (*sql.DB, error) {
	pool, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(10)
	pool.SetConnMaxLifetime(30 * time.Minute)

	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("open database: verify connection: %w", err)
	}

	return pool, nil
}
