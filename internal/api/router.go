package api

import (
	"net/http"
	"time"

	"ev-route-service/internal/api/handlers"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Provider ports.RouteProvider
	Finder   ports.StationFinder
	Searcher ports.StationSearcher
	Geocoder ports.Geocoder
	Planner  services.PlannerConfig

	// Optional plan cache; nil disables it.
	PlanCache    ports.PlanCache
	PlanCacheTTL time.Duration

	// Origins allowed to call the API from a browser; empty allows all.
	AllowedOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Provider: deps.Provider,
		Finder:   deps.Finder,
		Planner:  deps.Planner,
		Cache:    deps.PlanCache,
		CacheTTL: deps.PlanCacheTTL,
	}
	stationHandler := &handlers.StationHandler{Searcher: deps.Searcher}
	geocodeHandler := &handlers.GeocodeHandler{Geocoder: deps.Geocoder}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/v1/routes/calculate", routeHandler.Calculate)
	mux.HandleFunc("/v1/charging-stations", stationHandler.List)
	mux.HandleFunc("/v1/geocoding", geocodeHandler.Lookup)

	return requestIDMiddleware(loggingMiddleware(corsMiddleware(deps.AllowedOrigins, mux)))
}
