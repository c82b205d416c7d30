package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-scheduler-service/internal/domain"
)

// RouteEntry is the cached directions payload for one coordinate pair:
// the route polyline plus a representative street name.
type RouteEntry struct {
	Points   []domain.Coordinates `json:"points"`
	StepName string               `json:"step_name"`
}

// RedisRouteCache caches route geometries in Redis so the repeated
// waypoint lookups within a single simulation fetch the polyline once.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

func routeKey(pickup, dropoff domain.Coordinates) string {
	return fmt.Sprintf("route:%s|%s", coordKey(pickup), coordKey(dropoff))
}

// Fetch a cached route geometry for one coordinate pair.
func (c *RedisRouteCache) Get(
	ctx context.Context,
	pickup, dropoff domain.Coordinates,
) (RouteEntry, bool, error) {
	if c.client == nil {
		return RouteEntry{}, false, errors.New("route cache: client is nil")
	}

	raw, err := c.client.Get(ctx, routeKey(pickup, dropoff)).Bytes()
	if errors.Is(err, redis.Nil) {
		return RouteEntry{}, false, nil
	}
	if err != nil {
		return RouteEntry{}, false, fmt.Errorf("get route cache: %w", err)
	}

	var entry RouteEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return RouteEntry{}, false, fmt.Errorf("get route cache: decode entry: %w", err)
	}

	return entry, true, nil
}

// Store a route geometry for one coordinate pair.
func (c *RedisRouteCache) Put(
	ctx context.Context,
	pickup, dropoff domain.Coordinates,
	entry RouteEntry,
) error {
	if c.client == nil {
		return errors.New("route cache: client is nil")
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("insert route cache: encode entry: %w", err)
	}

	if err := c.client.Set(ctx, routeKey(pickup, dropoff), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	return nil
}
