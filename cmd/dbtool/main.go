package main

import (
	"checkpoint-route-service/internal/adapters/cache"
	"checkpoint-route-service/internal/adapters/repositories"
	"checkpoint-route-service/internal/config"
	"checkpoint-route-service/internal/platform/db"
	"checkpoint-route-service/internal/platform/obs"
	"context"
	"database/sql"
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	obs.SetupLogger(cfg.LogLevel)

	seedPath := flag.String("seed", cfg.SeedPath, "path to the JSON seed file")
	schemaOnly := flag.Bool("schema-only", false, "create the schema without seeding")
	flag.Parse()

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, *seedPath, *schemaOnly); err != nil {
		log.Fatal(err)
	}

	if !*schemaOnly && cfg.RedisURL != "" {
		if err := invalidatePathCache(ctx, cfg.RedisURL); err != nil {
			log.Fatal(err)
		}
	}
}

// invalidatePathCache bumps the path cache generation so running servers
// stop serving routes computed before the seed rewrote checkpoint links.
func invalidatePathCache(ctx context.Context, redisURL string) error {
	client, err := cache.NewRedisClient(ctx, redisURL)
	if err != nil {
		return fmt.Errorf("invalidate path cache: %w", err)
	}
	defer client.Close()

	if err := cache.NewRedisPathCache(client, 0).Invalidate(ctx); err != nil {
		return err
	}
	log.Info("Path cache invalidated.")
	return nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string, schemaOnly bool) error {
	log.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info("Schema ready.")

	if schemaOnly {
		return nil
	}

	log.WithField("seed", seedPath).Info("Seeding database...")
	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info("Seeding complete.")

	return nil
}
