package main

import (
	"checkpoint-route-service/internal/adapters/cache"
	"checkpoint-route-service/internal/adapters/distance"
	"checkpoint-route-service/internal/adapters/repositories"
	"checkpoint-route-service/internal/api"
	"checkpoint-route-service/internal/config"
	"checkpoint-route-service/internal/platform/db"
	"checkpoint-route-service/internal/platform/obs"
	"checkpoint-route-service/internal/zones"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	obs.SetupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	gs, err := zones.Load()
	if err != nil {
		log.Fatal(err)
	}

	checkpoints := repositories.NewPostgresCheckpointRepository(conn)
	deps := api.Dependencies{
		Checkpoints:   checkpoints,
		Districts:     repositories.NewPostgresDistrictRepository(conn),
		Directions:    repositories.NewPostgresDirectionRepository(conn),
		Sequences:     repositories.NewPostgresSequenceRepository(conn),
		Zones:         zones.NewResolver(gs, zones.WithPathLimit(cfg.PathLimit)),
		Metrics:       obs.NewMetrics(),
		SearchTimeout: cfg.SearchTimeout,
		Ping:          conn.PingContext,
	}

	if cfg.ORSAPIKey != "" {
		provider, err := distance.NewORSDistanceProvider(cfg.ORSAPIKey, distance.WithProfile(cfg.ORSProfile))
		if err != nil {
			log.Fatal(err)
		}
		deps.Distances = provider
		log.WithField("profile", cfg.ORSProfile).Info("ORS distances enabled")
	} else {
		deps.Distances = distance.NewHaversineDistanceProvider(cfg.DetourFactor)
	}

	// The path cache is optional; leave Cache nil when Redis is not configured.
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		deps.Cache = cache.NewRedisPathCache(client, cfg.CacheTTL)
		log.WithField("ttl", cfg.CacheTTL).Info("path cache enabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.SearchTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("server shutdown")
		}
	}()

	log.WithField("addr", srv.Addr).Info("Server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Info("Server stopped")
}
