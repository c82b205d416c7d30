package waypoint

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"trip-scheduler-service/internal/domain"
)

var (
	testPickup  = domain.Location{Name: "Chicago, IL", Latitude: 41.8781, Longitude: -87.6298}
	testDropoff = domain.Location{Name: "Denver, CO", Latitude: 39.7392, Longitude: -104.9903}
)

const routeBody = `{
	"features": [{
		"geometry": {"coordinates": [[-87.6, 41.8], [-95.0, 41.0], [-100.0, 40.2], [-104.9, 39.7]]},
		"properties": {"segments": [{"steps": [{"name": ""}, {"name": "Cleveland St"}]}]}
	}]
}`

const reverseBody = `{
	"features": [{
		"properties": {"name": "Kearney", "label": "Kearney, NE, USA", "locality": "Kearney"}
	}]
}`

func TestFallbackLocation(t *testing.T) {
	cases := []struct {
		halt domain.HaltType
		want string
	}{
		{domain.HaltStop, "Fallback Location"},
		{domain.HaltFuel, "Fuel Stop: Fallback Location"},
		{domain.HaltBreak, "Break Stop: Fallback Location"},
		{domain.HaltSleeper, "Sleeper Stop: Fallback Location"},
		{domain.HaltDrive, "Drive Stop: Fallback Location"},
	}

	for _, tc := range cases {
		loc := FallbackLocation(testPickup, testDropoff, tc.halt)
		if loc.Name != tc.want {
			t.Errorf("halt %s: name = %q, want %q", tc.halt, loc.Name, tc.want)
		}
		if loc.Address != "Unknown" {
			t.Errorf("halt %s: address = %q, want Unknown", tc.halt, loc.Address)
		}

		wantMid := domain.Midpoint(testPickup.Coords(), testDropoff.Coords())
		if loc.Latitude != wantMid.Lat || loc.Longitude != wantMid.Lon {
			t.Errorf("halt %s: coordinates %v,%v are not the midpoint", tc.halt, loc.Latitude, loc.Longitude)
		}
	}
}

func TestResolveUsesRouteGeometry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v2/directions/driving-car":
			w.Write([]byte(routeBody))
		case "/geocode/reverse":
			w.Write([]byte(reverseBody))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	provider, err := NewORSWaypointProvider("test-key", nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider.baseURL = srv.URL

	loc := provider.Resolve(context.Background(), testPickup, testDropoff, domain.HaltFuel)

	if loc.Name != "Fuel Stop: Kearney" {
		t.Errorf("name = %q, want %q", loc.Name, "Fuel Stop: Kearney")
	}
	if loc.Address != "Kearney, NE, USA" {
		t.Errorf("address = %q", loc.Address)
	}

	// Interior points only: never the route endpoints.
	if loc.Longitude == -87.6 || loc.Longitude == -104.9 {
		t.Errorf("waypoint %v,%v is a route endpoint", loc.Latitude, loc.Longitude)
	}
}

func TestResolveDriveSegmentsGetBareName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v2/directions/driving-car" {
			w.Write([]byte(routeBody))
			return
		}
		// Reverse geocoding down: the step name carries the label.
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	provider, err := NewORSWaypointProvider("test-key", nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider.baseURL = srv.URL

	loc := provider.Resolve(context.Background(), testPickup, testDropoff, domain.HaltDrive)
	if loc.Name != "Cleveland St" {
		t.Errorf("name = %q, want %q", loc.Name, "Cleveland St")
	}
}

func TestResolveFallsBackOnRouteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	provider, err := NewORSWaypointProvider("test-key", nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider.baseURL = srv.URL

	loc := provider.Resolve(context.Background(), testPickup, testDropoff, domain.HaltBreak)
	if loc.Name != "Break Stop: Fallback Location" {
		t.Errorf("name = %q, want fallback label", loc.Name)
	}
}

func TestResolveIsReproducibleUnderFixedSeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v2/directions/driving-car":
			w.Write([]byte(routeBody))
		case "/geocode/reverse":
			w.Write([]byte(reverseBody))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	resolve := func() domain.Location {
		provider, err := NewORSWaypointProvider("test-key", nil, rand.New(rand.NewSource(42)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		provider.baseURL = srv.URL
		return provider.Resolve(context.Background(), testPickup, testDropoff, domain.HaltSleeper)
	}

	first := resolve()
	second := resolve()

	if first != second {
		t.Errorf("same seed produced different waypoints: %+v vs %+v", first, second)
	}
}
