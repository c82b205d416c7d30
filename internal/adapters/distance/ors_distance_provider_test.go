package distance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/ports"
)

var (
	testPickup  = domain.Coordinates{Lat: 41.8781, Lon: -87.6298}
	testDropoff = domain.Coordinates{Lat: 39.7392, Lon: -104.9903}
)

func TestResolveParsesDirectionsSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// 1,609,344 m is exactly 1,000 miles; 36,600 s is 10h 10m.
		w.Write([]byte(`{"features": [{"properties": {"summary": {"distance": 1609344, "duration": 36600}}}]}`))
	}))
	defer srv.Close()

	provider, err := NewORSDistanceProvider("test-key", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider.baseURL = srv.URL

	result, err := provider.Resolve(context.Background(), testPickup, testDropoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Miles != 1000 {
		t.Errorf("miles = %v, want 1000", result.Miles)
	}
	if result.DurationLabel != "10h 10m" {
		t.Errorf("label = %q, want %q", result.DurationLabel, "10h 10m")
	}
}

func TestResolveWrapsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no route", http.StatusNotFound)
	}))
	defer srv.Close()

	provider, err := NewORSDistanceProvider("test-key", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider.baseURL = srv.URL

	_, err = provider.Resolve(context.Background(), testPickup, testDropoff)
	if !errors.Is(err, ports.ErrDistanceUnavailable) {
		t.Fatalf("expected ErrDistanceUnavailable, got %v", err)
	}
}

func TestFormatDurationLabel(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0h 0m"},
		{59, "0h 0m"},
		{3600, "1h 0m"},
		{36600, "10h 10m"},
		{137454, "38h 10m"},
	}

	for _, tc := range cases {
		if got := FormatDurationLabel(tc.seconds); got != tc.want {
			t.Errorf("FormatDurationLabel(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestRoundMiles(t *testing.T) {
	if got := RoundMiles(1287.4567); got != 1287.46 {
		t.Errorf("RoundMiles = %v, want 1287.46", got)
	}
}
