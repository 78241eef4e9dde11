package services

import (
	"checkpoint-route-service/internal/domain"
	"slices"
)

// RankPaths returns a copy of paths ordered for route selection: verified
// routes first, then fewer checkpoints, then shorter TotalDistance, with
// unknown distances last. The sort is stable, so discovery order breaks ties.
func RankPaths(paths []domain.CheckpointPath) []domain.CheckpointPath {
	ranked := slices.Clone(paths)

	slices.SortStableFunc(ranked, func(a, b domain.CheckpointPath) int {
		if a.Verified != b.Verified {
			if a.Verified {
				return -1
			}
			return 1
		}
		if la, lb := len(a.CheckpointIDs), len(b.CheckpointIDs); la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
		switch {
		case a.TotalDistance == nil && b.TotalDistance == nil:
			return 0
		case a.TotalDistance == nil:
			return 1
		case b.TotalDistance == nil:
			return -1
		case *a.TotalDistance < *b.TotalDistance:
			return -1
		case *a.TotalDistance > *b.TotalDistance:
			return 1
		}
		return 0
	})

	return ranked
}
