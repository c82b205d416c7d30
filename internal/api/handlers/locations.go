package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"trip-scheduler-service/internal/api/dto"
	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/ports"
)

// LocationHandler exposes location listing and creation. POST accepts
// either a single location object or an array for bulk creation.
type LocationHandler struct {
	Repo ports.LocationRepository
}

func (h *LocationHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *LocationHandler) list(w http.ResponseWriter, r *http.Request) {
	locs, err := h.Repo.ListLocations(r.Context())
	if err != nil {
		log.Printf("list locations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListLocationsResponse{Locations: make([]dto.LocationResponse, 0, len(locs))}
	for _, l := range locs {
		res.Locations = append(res.Locations, locationToResponse(*l))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *LocationHandler) create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unable to read body")
		return
	}

	var payloads []dto.LocationPayload
	if isJSONArray(body) {
		if err := json.Unmarshal(body, &payloads); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
			return
		}
	} else {
		var single dto.LocationPayload
		if err := json.Unmarshal(body, &single); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
			return
		}
		payloads = []dto.LocationPayload{single}
	}

	if len(payloads) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one location is required")
		return
	}

	locs := make([]*domain.Location, 0, len(payloads))
	for _, p := range payloads {
		if strings.TrimSpace(p.Name) == "" {
			writeError(w, r, http.StatusBadRequest, "location name is required")
			return
		}
		if !validCoordinates(p.Latitude, p.Longitude) {
			writeError(w, r, http.StatusBadRequest, "location coordinates are out of range")
			return
		}

		address := p.Address
		if strings.TrimSpace(address) == "" {
			address = p.Name
		}
		locs = append(locs, &domain.Location{
			Name:      p.Name,
			Address:   address,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		})
	}

	if err := h.Repo.CreateLocations(r.Context(), locs); err != nil {
		log.Printf("create locations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := make([]dto.LocationResponse, 0, len(locs))
	for _, l := range locs {
		res = append(res, locationToResponse(*l))
	}

	if len(res) == 1 {
		writeJSON(w, r, http.StatusCreated, res[0])
		return
	}
	writeJSON(w, r, http.StatusCreated, res)
}

// isJSONArray reports whether the body's first token opens an array.
func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
