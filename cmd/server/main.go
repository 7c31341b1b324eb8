package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"multidrop-routing-service/internal/adapters/cache"
	"multidrop-routing-service/internal/adapters/metrics"
	"multidrop-routing-service/internal/adapters/pricing"
	"multidrop-routing-service/internal/adapters/repositories"
	"multidrop-routing-service/internal/api"
	"multidrop-routing-service/internal/config"
	"multidrop-routing-service/internal/logger"
	"multidrop-routing-service/internal/platform/db"
	"multidrop-routing-service/internal/ports"
	"multidrop-routing-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Prometheus) behind ports and
// starts the HTTP server.
func main() {
	log := logger.New("server")

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	cfg, err := config.Load(os.Getenv("MDR_CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	// Schema setup on startup keeps local runs at zero ceremony; production
	// migrations run the same statements out of band.
	if err := repositories.InitSchema(database); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}

	routeRepo := repositories.NewPostgresRouteRepository(database)
	fleet := repositories.NewPostgresFleetDirectory(database)
	bookings := repositories.NewPostgresBookingRepository(database)

	var routes ports.RouteCandidateRepository = routeRepo
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		routes = cache.NewRedisCandidateCache(routeRepo, rdb, ttl, logger.New("cache"))
	}

	recorder, err := metrics.NewPromSink()
	if err != nil {
		log.Fatal().Err(err).Msg("register metrics")
	}

	analyzer := services.NewLoadAnalyzer(cfg.Load)
	feasibility := services.NewFeasibilityEngine(cfg, analyzer, fleet, routes, recorder, logger.New("availability"))
	eligibility := services.NewEligibilityEngine(cfg, analyzer, pricing.NewStaticEstimator(), recorder, logger.New("eligibility"))
	optimizer := services.NewGroupingOptimizer(cfg, recorder, logger.New("grouping"))

	router := api.NewRouter(feasibility, eligibility, optimizer, bookings, logger.New("api"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("addr", ":"+port).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}
