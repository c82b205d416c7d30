package api

import (
	"net/http"

	"trip-scheduler-service/internal/api/handlers"
	"trip-scheduler-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	trips ports.TripRepository,
	locations ports.LocationRepository,
	logEntries ports.LogEntryRepository,
	distance ports.DistanceProvider,
	waypoints ports.WaypointProvider,
) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Trips:      trips,
		Locations:  locations,
		LogEntries: logEntries,
		Distance:   distance,
		Waypoints:  waypoints,
	}
	locationHandler := &handlers.LocationHandler{Repo: locations}
	logEntryHandler := &handlers.LogEntryHandler{Repo: logEntries, Trips: trips}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/trips", tripHandler.Collection)
	mux.HandleFunc("/trips/", tripHandler.Item)
	mux.HandleFunc("/locations", locationHandler.Collection)
	mux.HandleFunc("/log-entries", logEntryHandler.Create)

	return loggingMiddleware(mux)
}
