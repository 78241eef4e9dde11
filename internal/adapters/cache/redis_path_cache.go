package cache

import (
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "cproute"
	generationKey    = "gen"
)

// RedisPathCache stores checkpoint path sets per district pair in Redis.
//
// Entry keys embed a generation counter. Invalidate bumps the counter, so
// every older entry becomes unreachable at once and expires through its TTL.
type RedisPathCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisPathCache(client *redis.Client, ttl time.Duration) *RedisPathCache {
	return &RedisPathCache{client: client, ttl: ttl, prefix: defaultKeyPrefix}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis client: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis client: ping: %w", err)
	}

	return client, nil
}

type cachedPath struct {
	Path          []string `json:"path"`
	CheckpointIDs []string `json:"checkpoint_ids"`
	TotalDistance *float64 `json:"total_distance,omitempty"`
	Verified      bool     `json:"verified"`
}

// Generation returns the current cache generation; "0" before the first
// Invalidate.
func (c *RedisPathCache) Generation(ctx context.Context) (string, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("path cache: read generation: %w", err)
	}
	return gen, nil
}

func (c *RedisPathCache) Get(
	ctx context.Context,
	generation, departureDistrictID, destinationDistrictID string,
) (_ []domain.CheckpointPath, _ bool, err error) {
	defer obs.Time(ctx, "paths.cache.Get")(&err)

	key, err := c.entryKey(generation, departureDistrictID, destinationDistrictID)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get path cache: read %q: %w", key, err)
	}

	var stored []cachedPath
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, false, fmt.Errorf("get path cache: decode %q: %w", key, err)
	}

	paths := make([]domain.CheckpointPath, 0, len(stored))
	for _, p := range stored {
		ids := p.CheckpointIDs
		if ids == nil {
			ids = []string{}
		}
		paths = append(paths, domain.CheckpointPath{
			Path:          p.Path,
			CheckpointIDs: ids,
			TotalDistance: p.TotalDistance,
			Verified:      p.Verified,
		})
	}

	return paths, true, nil
}

// Put stores paths under generation. Writing under a superseded generation
// is harmless: the entry is unreachable and expires through its TTL.
func (c *RedisPathCache) Put(
	ctx context.Context,
	generation, departureDistrictID, destinationDistrictID string,
	paths []domain.CheckpointPath,
) error {
	key, err := c.entryKey(generation, departureDistrictID, destinationDistrictID)
	if err != nil {
		return err
	}

	stored := make([]cachedPath, 0, len(paths))
	for _, p := range paths {
		stored = append(stored, cachedPath{
			Path:          p.Path,
			CheckpointIDs: p.CheckpointIDs,
			TotalDistance: p.TotalDistance,
			Verified:      p.Verified,
		})
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("put path cache: encode: %w", err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put path cache: write %q: %w", key, err)
	}

	return nil
}

func (c *RedisPathCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("invalidate path cache: %w", err)
	}
	return nil
}

func (c *RedisPathCache) generationKey() string {
	return c.prefix + ":" + generationKey
}

func (c *RedisPathCache) entryKey(gen, dep, dest string) (string, error) {
	if strings.TrimSpace(gen) == "" {
		return "", errors.New("path cache: generation must not be empty")
	}
	if strings.TrimSpace(dep) == "" || strings.TrimSpace(dest) == "" {
		return "", errors.New("path cache: district ids must not be empty")
	}
	return fmt.Sprintf("%s:paths:%s:%s:%s", c.prefix, gen, dep, dest), nil
}
