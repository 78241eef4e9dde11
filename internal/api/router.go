package api

import (
	"checkpoint-route-service/internal/api/handlers"
	"checkpoint-route-service/internal/platform/obs"
	"checkpoint-route-service/internal/ports"
	"checkpoint-route-service/internal/services"
	"checkpoint-route-service/internal/zones"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Dependencies are the adapters the HTTP surface is built from.
// Distances, Cache and Metrics may be nil.
type Dependencies struct {
	Checkpoints ports.CheckpointRepository
	Districts   ports.DistrictReader
	Directions  ports.DirectionReader
	Sequences   ports.SequenceRepository
	Distances   ports.DistanceProvider
	Cache       ports.PathCache
	Zones       *zones.Resolver
	Metrics     *obs.Metrics
	// SearchTimeout bounds one path search (0 = no bound).
	SearchTimeout time.Duration
	// Ping backs /health; nil reports ok unconditionally.
	Ping func(ctx context.Context) error
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Dependencies) http.Handler {
	routeDeps := services.RouteDeps{
		Checkpoints: deps.Checkpoints,
		Districts:   deps.Districts,
		Directions:  deps.Directions,
		Distances:   deps.Distances,
		Cache:       deps.Cache,
		Metrics:     deps.Metrics,
	}

	zoneHandler := &handlers.ZoneHandler{Resolver: deps.Zones, Timeout: deps.SearchTimeout}
	checkpointHandler := &handlers.CheckpointHandler{
		Deps:    routeDeps,
		Linker:  deps.Checkpoints,
		Timeout: deps.SearchTimeout,
	}
	shipmentHandler := &handlers.ShipmentHandler{
		Deps:      routeDeps,
		Sequences: deps.Sequences,
		Metrics:   deps.Metrics,
		Timeout:   deps.SearchTimeout,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", (&handlers.HealthHandler{Ping: deps.Ping}).Health)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Get("/zones/paths", zoneHandler.Paths)

	r.Route("/checkpoints", func(r chi.Router) {
		r.Get("/", checkpointHandler.List)
		r.Get("/paths", checkpointHandler.Paths)
		r.Put("/{id}/links", checkpointHandler.UpdateLinks)
		r.Put("/{id}/links/{direction}", checkpointHandler.Link)
		r.Delete("/{id}/links/{direction}", checkpointHandler.Unlink)
	})

	r.Route("/shipments/{shipmentID}/directions/{directionID}", func(r chi.Router) {
		r.Get("/paths", shipmentHandler.Paths)
		r.Put("/sequence", shipmentHandler.SaveSequence)
		r.Get("/sequence", shipmentHandler.Sequence)
	})

	return r
}
