package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"trip-scheduler-service/internal/adapters/cache"
	"trip-scheduler-service/internal/adapters/distance"
	"trip-scheduler-service/internal/adapters/repositories"
	"trip-scheduler-service/internal/adapters/waypoint"
	"trip-scheduler-service/internal/api"
	"trip-scheduler-service/internal/config"
	"trip-scheduler-service/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	port := config.Get("PORT", "8080")

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// Initialize schema on startup for local runs.
	if err := repositories.InitSchema(pool); err != nil {
		log.Fatal(err)
	}

	// Route-geometry caching is optional: without REDIS_ADDR every
	// waypoint lookup refetches the polyline.
	var routeCache *cache.RedisRouteCache
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       config.GetInt("REDIS_DB", 0),
		})
		routeCache = cache.NewRedisRouteCache(client, 24*time.Hour)
	}

	distanceCache := cache.NewSQLDistanceCache(pool)
	distanceProvider, err := distance.NewORSDistanceProvider(orsKey, distanceCache)
	if err != nil {
		log.Fatal(err)
	}

	waypointProvider, err := waypoint.NewORSWaypointProvider(orsKey, routeCache, nil)
	if err != nil {
		log.Fatal(err)
	}

	tripRepo := repositories.NewPGTripRepository(pool)
	locationRepo := repositories.NewPGLocationRepository(pool)
	logEntryRepo := repositories.NewPGLogEntryRepository(pool)

	router := api.NewRouter(tripRepo, locationRepo, logEntryRepo, distanceProvider, waypointProvider)

	// Timeouts are tuned for cold-cache scheduling (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
