package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"trip-scheduler-service/internal/api/dto"
	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/ports"
	"trip-scheduler-service/internal/services"
)

// TripHandler exposes trip creation, retrieval, and schedule endpoints.
// Creating a trip runs the full hours-of-service simulation and persists
// the resulting schedule atomically.
type TripHandler struct {
	Trips      ports.TripRepository
	Locations  ports.LocationRepository
	LogEntries ports.LogEntryRepository
	Distance   ports.DistanceProvider
	Waypoints  ports.WaypointProvider
}

// Collection handles /trips: POST creates and schedules a trip, GET
// lists all trips.
func (h *TripHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *TripHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.PickupLocation == nil || req.DropoffLocation == nil || req.CycleUsed == nil {
		writeError(w, r, http.StatusBadRequest, "pickup_location, dropoff_location and cycle_used are required")
		return
	}
	if *req.CycleUsed < 0 {
		writeError(w, r, http.StatusBadRequest, "cycle_used must be >= 0")
		return
	}
	for _, loc := range []*dto.LocationPayload{req.PickupLocation, req.DropoffLocation} {
		if strings.TrimSpace(loc.Name) == "" {
			writeError(w, r, http.StatusBadRequest, "location name is required")
			return
		}
		if !validCoordinates(loc.Latitude, loc.Longitude) {
			writeError(w, r, http.StatusBadRequest, "location coordinates are out of range")
			return
		}
	}

	ctx := r.Context()

	pickup, err := h.Locations.GetOrCreateLocation(ctx, domain.Location{
		Name:      req.PickupLocation.Name,
		Address:   req.PickupLocation.Address,
		Latitude:  req.PickupLocation.Latitude,
		Longitude: req.PickupLocation.Longitude,
	})
	if err != nil {
		log.Printf("resolve pickup location failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	dropoff, err := h.Locations.GetOrCreateLocation(ctx, domain.Location{
		Name:      req.DropoffLocation.Name,
		Address:   req.DropoffLocation.Address,
		Latitude:  req.DropoffLocation.Latitude,
		Longitude: req.DropoffLocation.Longitude,
	})
	if err != nil {
		log.Printf("resolve dropoff location failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	trip, err := domain.NewTrip(pickup, dropoff, *req.CycleUsed)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// Build the schedule before persisting anything, so a failed
	// simulation leaves no partially written trip behind.
	if err := services.ScheduleTrip(ctx, trip, h.Distance, h.Waypoints); err != nil {
		if errors.Is(err, ports.ErrDistanceUnavailable) {
			log.Printf("schedule trip failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "unable to calculate distance for the trip")
			return
		}
		log.Printf("schedule trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Trips.CreateTrip(ctx, trip); err != nil {
		log.Printf("create trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Trips.SaveSchedule(ctx, trip); err != nil {
		log.Printf("save schedule failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, tripToResponse(trip))
}

func (h *TripHandler) list(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Trips.ListTrips(r.Context())
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, tripToResponse(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Item handles /trips/{id} and /trips/{id}/log-entries.
func (h *TripHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/trips/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	tripID, err := strconv.Atoi(parts[0])
	if err != nil || tripID < 1 {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}

	switch {
	case len(parts) == 1:
		h.item(w, r, tripID)
	case len(parts) == 2 && parts[1] == "log-entries":
		h.listLogEntries(w, r, tripID)
	default:
		writeError(w, r, http.StatusNotFound, "not found")
	}
}

func (h *TripHandler) item(w http.ResponseWriter, r *http.Request, tripID int) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, tripID)
	case http.MethodPut:
		h.update(w, r, tripID)
	case http.MethodDelete:
		h.delete(w, r, tripID)
	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *TripHandler) get(w http.ResponseWriter, r *http.Request, tripID int) {
	trip, err := h.Trips.GetTrip(r.Context(), tripID)
	if errors.Is(err, ports.ErrTripNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, tripToResponse(trip))
}

func (h *TripHandler) update(w http.ResponseWriter, r *http.Request, tripID int) {
	var req dto.UpdateTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	trip, err := h.Trips.GetTrip(r.Context(), tripID)
	if errors.Is(err, ports.ErrTripNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if req.CycleUsed != nil {
		if *req.CycleUsed < 0 {
			writeError(w, r, http.StatusBadRequest, "cycle_used must be >= 0")
			return
		}
		trip.CycleUsedHours = *req.CycleUsed
	}

	if err := h.Trips.UpdateTrip(r.Context(), trip); err != nil {
		log.Printf("update trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, tripToResponse(trip))
}

func (h *TripHandler) delete(w http.ResponseWriter, r *http.Request, tripID int) {
	err := h.Trips.DeleteTrip(r.Context(), tripID)
	if errors.Is(err, ports.ErrTripNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		log.Printf("delete trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TripHandler) listLogEntries(w http.ResponseWriter, r *http.Request, tripID int) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if _, err := h.Trips.GetTrip(r.Context(), tripID); err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(w, r, http.StatusNotFound, "trip not found")
			return
		}
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	entries, err := h.LogEntries.ListLogEntries(r.Context(), tripID)
	if err != nil {
		log.Printf("list log entries failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListLogEntriesResponse{LogEntries: make([]dto.LogEntryResponse, 0, len(entries))}
	for _, e := range entries {
		res.LogEntries = append(res.LogEntries, logEntryToResponse(e))
	}

	writeJSON(w, r, http.StatusOK, res)
}
