package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"trip-scheduler-service/internal/api/dto"
	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/ports"
)

// LogEntryHandler exposes driver log entry creation.
type LogEntryHandler struct {
	Repo  ports.LogEntryRepository
	Trips ports.TripRepository
}

func (h *LogEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CreateLogEntryRequest

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

	if req.TripID < 1 {
		writeError(w, r, http.StatusBadRequest, "trip_id is required")
		return
	}
	if strings.TrimSpace(req.DriverName) == "" {
		writeError(w, r, http.StatusBadRequest, "driver_name is required")
		return
	}

	if _, err := h.Trips.GetTrip(r.Context(), req.TripID); err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(w, r, http.StatusNotFound, "trip not found")
			return
		}
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	entry := &domain.LogEntry{
		TripID:        req.TripID,
		DriverName:    req.DriverName,
		LoadNumber:    req.LoadNumber,
		CarrierName:   req.CarrierName,
		TruckNumber:   req.TruckNumber,
		TrailerNumber: req.TrailerNumber,
		CoDriverName:  req.CoDriverName,
		Remarks:       req.Remarks,
	}

	if err := h.Repo.CreateLogEntry(r.Context(), entry); err != nil {
		log.Printf("create log entry failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, logEntryToResponse(entry))
}

func logEntryToResponse(e *domain.LogEntry) dto.LogEntryResponse {
	return dto.LogEntryResponse{
		LogEntryID:    e.LogEntryID,
		TripID:        e.TripID,
		DriverName:    e.DriverName,
		LoadNumber:    e.LoadNumber,
		CarrierName:   e.CarrierName,
		TruckNumber:   e.TruckNumber,
		TrailerNumber: e.TrailerNumber,
		CoDriverName:  e.CoDriverName,
		Remarks:       e.Remarks,
		CreatedAt:     e.CreatedAt,
	}
}
