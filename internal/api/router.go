package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"multidrop-routing-service/internal/api/handlers"
	"multidrop-routing-service/internal/ports"
	"multidrop-routing-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	feasibility *services.FeasibilityEngine,
	eligibility *services.EligibilityEngine,
	optimizer *services.GroupingOptimizer,
	bookings ports.BookingRepository,
	log zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Log: log}
	availabilityHandler := &handlers.AvailabilityHandler{Engine: feasibility, Log: log}
	eligibilityHandler := &handlers.EligibilityHandler{Engine: eligibility, Log: log}
	routeHandler := &handlers.RouteHandler{Optimizer: optimizer, Bookings: bookings, Log: log}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/availability", availabilityHandler.Calculate)
	mux.HandleFunc("/eligibility", eligibilityHandler.Analyze)
	mux.HandleFunc("/routes/optimize", routeHandler.Optimize)
	mux.HandleFunc("/routes/can-add", routeHandler.CanAdd)
	mux.Handle("/metrics", promhttp.Handler())

	return loggingMiddleware(mux, log)
}
