package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read from the environment.
// cmd/* load an optional .env file with godotenv before calling Load.
type Config struct {
	DatabaseURL string
	// RedisURL enables the path cache when set.
	RedisURL string
	Port     string
	LogLevel string
	SeedPath string

	// PathLimit caps how many paths one HTTP search enumerates.
	PathLimit int
	// SearchTimeout bounds one HTTP path search.
	SearchTimeout time.Duration
	CacheTTL      time.Duration

	// ORSAPIKey selects OpenRouteService distances; without it distances
	// are great-circle estimates scaled by DetourFactor.
	ORSAPIKey    string
	ORSProfile   string
	DetourFactor float64
}

func Load() (Config, error) {
	cfg := Config{
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:    strings.TrimSpace(os.Getenv("REDIS_URL")),
		Port:        Get("PORT", "8080"),
		LogLevel:    Get("LOG_LEVEL", "info"),
		SeedPath:    Get("SEED_PATH", "data/seeds/checkpoints.json"),
		ORSAPIKey:   strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		ORSProfile:  Get("ORS_PROFILE", "driving-hgv"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("load config: DATABASE_URL is required")
	}

	var err error
	if cfg.PathLimit, err = GetInt("ROUTE_PATH_LIMIT", 100); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.PathLimit < 0 {
		return Config{}, fmt.Errorf("load config: ROUTE_PATH_LIMIT must be >= 0, got %d", cfg.PathLimit)
	}
	if cfg.SearchTimeout, err = GetDuration("ROUTE_SEARCH_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.CacheTTL, err = GetDuration("ROUTE_CACHE_TTL", 10*time.Minute); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.DetourFactor, err = GetFloat("DISTANCE_DETOUR_FACTOR", 1.3); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.DetourFactor < 1 {
		return Config{}, fmt.Errorf("load config: DISTANCE_DETOUR_FACTOR must be >= 1, got %g", cfg.DetourFactor)
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: parse int %q: %w", key, v, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: parse float %q: %w", key, v, err)
	}
	return f, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: parse duration %q: %w", key, v, err)
	}
	return d, nil
}
