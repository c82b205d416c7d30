package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"time"

	"trip-scheduler-service/internal/adapters/cache"
	"trip-scheduler-service/internal/domain"
	"trip-scheduler-service/internal/platform/obs"
	"trip-scheduler-service/internal/ports"
)

const metersPerMile = 1609.344 // 1000 / 0.621371, within rounding

// ORSDistanceProvider implements DistanceProvider using the
// OpenRouteService directions API.
//
// It coordinates:
//   - Persistent distance caching keyed by coordinate pair
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use. Every failure it returns
// wraps ports.ErrDistanceUnavailable, which is fatal to scheduling.
type ORSDistanceProvider struct {
	session       *http.Client
	apiKey        string
	baseURL       string
	profile       string
	distanceCache *cache.SQLDistanceCache
}

func NewORSDistanceProvider(apiKey string, distanceCache *cache.SQLDistanceCache) (*ORSDistanceProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSDistanceProvider{
		session:       &http.Client{Timeout: 10 * time.Second},
		apiKey:        apiKey,
		baseURL:       "https://api.openrouteservice.org",
		profile:       "driving-car",
		distanceCache: distanceCache,
	}

	return provider, nil
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// Resolve returns the road distance in miles and a "Xh Ym" duration
// label for pickup -> dropoff.
func (o *ORSDistanceProvider) Resolve(
	ctx context.Context,
	pickup, dropoff domain.Coordinates,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.Resolve")(&err)

	// Check persistent cache before issuing the external API call.
	if o.distanceCache != nil {
		result, ok, err := o.distanceCache.Get(ctx, pickup, dropoff)
		if err != nil {
			log.Printf("distance cache read failed: %v", err)
		} else if ok {
			return result, nil
		}
	}

	summary, err := o.fetchDirectionsSummary(ctx, pickup, dropoff)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("%w: %v", ports.ErrDistanceUnavailable, err)
	}

	result := ports.DistanceResult{
		Miles:         RoundMiles(summary.Distance / metersPerMile),
		DurationLabel: FormatDurationLabel(summary.Duration),
	}

	if o.distanceCache != nil {
		if err := o.distanceCache.Put(ctx, pickup, dropoff, result); err != nil {
			log.Printf("distance cache write failed: %v", err)
		}
	}

	return result, nil
}

type directionsSummary struct {
	Distance float64 // meters
	Duration float64 // seconds
}

func (o *ORSDistanceProvider) fetchDirectionsSummary(
	ctx context.Context,
	pickup, dropoff domain.Coordinates,
) (directionsSummary, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		// ORS expects lon,lat ordering.
		q.Set("start", fmt.Sprintf("%f,%f", pickup.Lon, pickup.Lat))
		q.Set("end", fmt.Sprintf("%f,%f", dropoff.Lon, dropoff.Lat))
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return directionsSummary{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return directionsSummary{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return directionsSummary{}, errors.New("no route features in directions response")
	}

	summary := decoded.Features[0].Properties.Summary
	if summary.Distance <= 0 {
		return directionsSummary{}, errors.New("directions response has no distance summary")
	}

	return directionsSummary{Distance: summary.Distance, Duration: summary.Duration}, nil
}

// RoundMiles rounds a mileage figure to two decimals for storage and
// display consistency.
func RoundMiles(miles float64) float64 {
	return math.Round(miles*100) / 100
}

// FormatDurationLabel renders a duration in seconds as "Xh Ym".
func FormatDurationLabel(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
