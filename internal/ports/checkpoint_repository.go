package ports

import (
	"checkpoint-route-service/internal/domain"
	"context"
)

// Port: read access to the checkpoint graph.
type CheckpointReader interface {
	// Return every checkpoint joined with its district/province names and
	// its four neighbor ids.
	ListCheckpoints(ctx context.Context) ([]domain.CheckpointNode, error)
}

// Port: edits to checkpoint links.
type CheckpointLinker interface {
	// Overwrite the four link slots of one checkpoint. No reverse links are written.
	UpdateLinks(ctx context.Context, checkpointID string, links domain.Links) error
	// Set a.dir = b and b.opposite(dir) = a in one atomic write. Links that
	// previously occupied either slot are detached on both sides.
	Link(ctx context.Context, checkpointID, neighborID string, dir domain.Direction) error
	// Clear a.dir and the reverse slot on the former neighbor.
	Unlink(ctx context.Context, checkpointID string, dir domain.Direction) error
}

type CheckpointRepository interface {
	CheckpointReader
	CheckpointLinker
}
