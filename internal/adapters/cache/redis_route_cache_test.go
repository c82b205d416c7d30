package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trip-scheduler-service/internal/domain"
)

func testRouteCache(t *testing.T) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisRouteCache(client, time.Hour), mr
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	c, _ := testRouteCache(t)

	pickup := domain.Coordinates{Lat: 41.8781, Lon: -87.6298}
	dropoff := domain.Coordinates{Lat: 39.7392, Lon: -104.9903}

	entry := RouteEntry{
		Points: []domain.Coordinates{
			{Lat: 41.8, Lon: -87.6},
			{Lat: 40.2, Lon: -100.0},
			{Lat: 39.7, Lon: -104.9},
		},
		StepName: "Cleveland St",
	}

	if err := c.Put(context.Background(), pickup, dropoff, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(context.Background(), pickup, dropoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}

	if got.StepName != "Cleveland St" {
		t.Errorf("step name = %q", got.StepName)
	}
	if len(got.Points) != 3 || got.Points[1] != entry.Points[1] {
		t.Errorf("points do not round-trip: %+v", got.Points)
	}
}

func TestRedisRouteCacheMiss(t *testing.T) {
	c, _ := testRouteCache(t)

	_, ok, err := c.Get(
		context.Background(),
		domain.Coordinates{Lat: 1, Lon: 2},
		domain.Coordinates{Lat: 3, Lon: 4},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestRedisRouteCacheExpiry(t *testing.T) {
	c, mr := testRouteCache(t)

	pickup := domain.Coordinates{Lat: 1, Lon: 2}
	dropoff := domain.Coordinates{Lat: 3, Lon: 4}

	entry := RouteEntry{Points: []domain.Coordinates{{Lat: 1, Lon: 2}, {Lat: 2, Lon: 3}, {Lat: 3, Lon: 4}}}
	if err := c.Put(context.Background(), pickup, dropoff, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	_, ok, err := c.Get(context.Background(), pickup, dropoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected entry to expire")
	}
}
