package waypoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"trip-scheduler-service/internal/adapters/cache"
	"trip-scheduler-service/internal/domain"
)

// ORSWaypointProvider names duty segments with a point along the actual
// driving route: it fetches the route geometry from the OpenRouteService
// directions API, picks a random interior coordinate, and reverse
// geocodes it.
//
// Waypoint selection uses an injected rand source so schedules are
// reproducible under a fixed seed. Lookups never fail outward: any
// error degrades to the deterministic midpoint fallback.
//
// Route geometries are cached (optionally, via Redis) so the many
// waypoint lookups of one simulation fetch the polyline once.
type ORSWaypointProvider struct {
	session    *http.Client
	apiKey     string
	baseURL    string
	profile    string
	routeCache *cache.RedisRouteCache

	mu  sync.Mutex
	rng *rand.Rand
}

func NewORSWaypointProvider(apiKey string, routeCache *cache.RedisRouteCache, rng *rand.Rand) (*ORSWaypointProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	provider := &ORSWaypointProvider{
		session:    &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://api.openrouteservice.org",
		profile:    "driving-car",
		routeCache: routeCache,
		rng:        rng,
	}

	return provider, nil
}

// Resolve returns a named location along the pickup->dropoff route,
// labeled by halt type. On any lookup failure it returns the midpoint
// fallback instead of an error.
func (o *ORSWaypointProvider) Resolve(
	ctx context.Context,
	pickup, dropoff domain.Location,
	halt domain.HaltType,
) domain.Location {
	route, stepName, err := o.routeGeometry(ctx, pickup.Coords(), dropoff.Coords())
	if err != nil {
		log.Printf("waypoint route lookup failed: %v", err)
		return FallbackLocation(pickup, dropoff, halt)
	}

	// Interior point only: endpoints would overlap pickup/dropoff.
	if len(route) < 3 {
		return FallbackLocation(pickup, dropoff, halt)
	}
	point := route[o.interiorIndex(len(route))]

	name := stepName
	if name == "" {
		name = "Unknown Location"
	}
	address := "Unknown"

	if geoName, geoAddress, err := o.reverseGeocode(ctx, point); err != nil {
		log.Printf("waypoint reverse geocode failed: %v", err)
	} else {
		if geoName != "" {
			name = geoName
		}
		if geoAddress != "" {
			address = geoAddress
		}
	}

	return domain.Location{
		Name:      labelForHalt(halt, name),
		Address:   address,
		Latitude:  point.Lat,
		Longitude: point.Lon,
	}
}

func (o *ORSWaypointProvider) interiorIndex(routeLen int) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return 1 + o.rng.Intn(routeLen-2)
}

type routeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Segments []struct {
				Steps []struct {
					Name string `json:"name"`
				} `json:"steps"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

// routeGeometry returns the route polyline and a representative street
// name taken from the first named step.
func (o *ORSWaypointProvider) routeGeometry(
	ctx context.Context,
	pickup, dropoff domain.Coordinates,
) ([]domain.Coordinates, string, error) {
	if o.routeCache != nil {
		cached, ok, err := o.routeCache.Get(ctx, pickup, dropoff)
		if err != nil {
			log.Printf("route cache read failed: %v", err)
		} else if ok {
			return cached.Points, cached.StepName, nil
		}
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create directions request: %w", err)
	}
	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")

	q := url.Values{}
	// ORS expects lon,lat ordering.
	q.Set("start", fmt.Sprintf("%f,%f", pickup.Lon, pickup.Lat))
	q.Set("end", fmt.Sprintf("%f,%f", dropoff.Lon, dropoff.Lat))
	req.URL.RawQuery = q.Encode()

	resp, err := o.session.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("directions request: unexpected status %d", resp.StatusCode)
	}

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, "", fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return nil, "", errors.New("no route features in directions response")
	}

	feature := decoded.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return nil, "", errors.New("insufficient route coordinates")
	}

	points := make([]domain.Coordinates, 0, len(feature.Geometry.Coordinates))
	for _, c := range feature.Geometry.Coordinates {
		if len(c) != 2 {
			return nil, "", errors.New("invalid coordinate pair in route geometry")
		}
		points = append(points, domain.Coordinates{Lon: c[0], Lat: c[1]})
	}

	stepName := ""
	for _, seg := range feature.Properties.Segments {
		for _, step := range seg.Steps {
			if step.Name != "" {
				stepName = step.Name
				break
			}
		}
		if stepName != "" {
			break
		}
	}

	if o.routeCache != nil {
		entry := cache.RouteEntry{Points: points, StepName: stepName}
		if err := o.routeCache.Put(ctx, pickup, dropoff, entry); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return points, stepName, nil
}

type reverseGeocodeResponse struct {
	Features []struct {
		Properties struct {
			Name     string `json:"name"`
			Label    string `json:"label"`
			Street   string `json:"street"`
			Locality string `json:"locality"`
		} `json:"properties"`
	} `json:"features"`
}

func (o *ORSWaypointProvider) reverseGeocode(
	ctx context.Context,
	point domain.Coordinates,
) (name, address string, err error) {
	endpoint := o.baseURL + "/geocode/reverse"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", "", fmt.Errorf("create reverse geocode request: %w", err)
	}
	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")

	q := url.Values{}
	q.Set("point.lat", fmt.Sprintf("%f", point.Lat))
	q.Set("point.lon", fmt.Sprintf("%f", point.Lon))
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := o.session.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("reverse geocode: unexpected status %d", resp.StatusCode)
	}

	var decoded reverseGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", "", fmt.Errorf("decode reverse geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return "", "", nil
	}

	props := decoded.Features[0].Properties

	name = props.Name
	// Prefer a street or locality name when the point name is generic.
	if props.Street != "" {
		name = props.Street
	} else if props.Locality != "" {
		name = props.Locality
	}

	address = props.Label
	if address == "" {
		address = name
	}

	return name, address, nil
}
