package services

import (
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/ports"
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// LinkCheckpoints connects two checkpoints in both directions and drops any
// cached path sets, which may no longer match the graph.
func LinkCheckpoints(
	ctx context.Context,
	linker ports.CheckpointLinker,
	cache ports.PathCache,
	checkpointID, neighborID string,
	dir domain.Direction,
) error {
	checkpointID = strings.TrimSpace(checkpointID)
	neighborID = strings.TrimSpace(neighborID)
	if checkpointID == "" || neighborID == "" {
		return fmt.Errorf("link checkpoints: ids must be non-empty")
	}
	if checkpointID == neighborID {
		return fmt.Errorf("link checkpoints: %q: %w", checkpointID, domain.ErrSelfLink)
	}

	if err := linker.Link(ctx, checkpointID, neighborID, dir); err != nil {
		return fmt.Errorf("link checkpoints: %q %s -> %q: %w", checkpointID, dir, neighborID, err)
	}

	invalidate(ctx, cache)
	return nil
}

// UnlinkCheckpoint clears one direction of a checkpoint and the matching
// reverse link on its former neighbor.
func UnlinkCheckpoint(
	ctx context.Context,
	linker ports.CheckpointLinker,
	cache ports.PathCache,
	checkpointID string,
	dir domain.Direction,
) error {
	if strings.TrimSpace(checkpointID) == "" {
		return fmt.Errorf("unlink checkpoint: id must be non-empty")
	}

	if err := linker.Unlink(ctx, checkpointID, dir); err != nil {
		return fmt.Errorf("unlink checkpoint: %q %s: %w", checkpointID, dir, err)
	}

	invalidate(ctx, cache)
	return nil
}

// ReplaceCheckpointLinks overwrites all four link slots of one checkpoint
// without touching its neighbors, for bulk corrections where the caller
// writes each side itself.
func ReplaceCheckpointLinks(
	ctx context.Context,
	linker ports.CheckpointLinker,
	cache ports.PathCache,
	checkpointID string,
	links domain.Links,
) error {
	checkpointID = strings.TrimSpace(checkpointID)
	if checkpointID == "" {
		return fmt.Errorf("replace checkpoint links: id must be non-empty")
	}

	for _, dir := range domain.Directions {
		id := strings.TrimSpace(links.Get(dir))
		if id == checkpointID {
			return fmt.Errorf("replace checkpoint links: %q %s: %w", checkpointID, dir, domain.ErrSelfLink)
		}
		links.Set(dir, id)
	}

	if err := linker.UpdateLinks(ctx, checkpointID, links); err != nil {
		return fmt.Errorf("replace checkpoint links: %q: %w", checkpointID, err)
	}

	invalidate(ctx, cache)
	return nil
}

func invalidate(ctx context.Context, cache ports.PathCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.WithError(err).WithField("op", "checkpoint.paths.cache.Invalidate").Warn("path cache invalidation failed")
	}
}
