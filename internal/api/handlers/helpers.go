package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"trip-scheduler-service/internal/api/dto"
	"trip-scheduler-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func locationToResponse(l domain.Location) dto.LocationResponse {
	return dto.LocationResponse{
		LocationID: l.LocationID,
		Name:       l.Name,
		Address:    l.Address,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
	}
}

func tripToResponse(t *domain.Trip) dto.TripResponse {
	segments := make([]dto.SegmentResponse, 0, len(t.Segments))
	for _, s := range t.Segments {
		segments = append(segments, dto.SegmentResponse{
			HaltType:        string(s.HaltType),
			DurationMinutes: s.DurationMinutes,
			Description:     s.Description,
			Day:             s.Day,
			Location:        locationToResponse(s.Location),
		})
	}

	return dto.TripResponse{
		TripID:          t.TripID,
		PickupLocation:  locationToResponse(t.PickupLocation),
		DropoffLocation: locationToResponse(t.DropoffLocation),
		CycleUsed:       t.CycleUsedHours,
		DistanceMiles:   t.DistanceMiles,
		NumberOfDays:    t.NumberOfDays,
		Segments:        segments,
	}
}
