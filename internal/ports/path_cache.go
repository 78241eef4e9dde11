package ports

import (
	"checkpoint-route-service/internal/domain"
	"context"
)

// Optional cache of checkpoint path sets keyed by district pair.
//
// Entries live under a generation. A lookup reads the generation once,
// before it searches, and hands it to both Get and Put; a result computed
// across an Invalidate is then written under the old generation and never
// served.
type PathCache interface {
	Generation(ctx context.Context) (string, error)
	// Return cached paths; ok is false on a miss.
	Get(ctx context.Context, generation, departureDistrictID, destinationDistrictID string) (paths []domain.CheckpointPath, ok bool, err error)
	Put(ctx context.Context, generation, departureDistrictID, destinationDistrictID string, paths []domain.CheckpointPath) error
	// Drop every cached entry. Called after any checkpoint link edit.
	Invalidate(ctx context.Context) error
}
