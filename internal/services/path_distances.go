package services

import (
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/platform/obs"
	"checkpoint-route-service/internal/ports"
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Concurrent distance lookups per annotation.
const distanceFanout = 4

// AnnotateDistances returns a copy of paths with TotalDistance set, in
// kilometers, on every verified path whose checkpoints all have a location.
// Other paths keep a nil TotalDistance.
//
// Locations come from nodes, the snapshot the paths were searched on. Each
// distinct origin checkpoint is sent to the provider once with all of its
// successors on the given paths.
func AnnotateDistances(
	ctx context.Context,
	paths []domain.CheckpointPath,
	nodes []domain.CheckpointNode,
	provider ports.DistanceProvider,
) (_ []domain.CheckpointPath, err error) {
	defer obs.Time(ctx, "checkpoint.paths.AnnotateDistances")(&err)

	out := slices.Clone(paths)

	locations := make(map[string]domain.Coordinates, len(nodes))
	for _, n := range nodes {
		if n.Location != nil {
			locations[n.CheckpointID] = *n.Location
		}
	}

	// Collect distinct legs grouped by origin, in discovery order.
	var origins []string
	successors := make(map[string][]string)
	for _, p := range out {
		if !p.Verified || !located(p.CheckpointIDs, locations) {
			continue
		}
		for i := 0; i+1 < len(p.CheckpointIDs); i++ {
			from, to := p.CheckpointIDs[i], p.CheckpointIDs[i+1]
			if _, ok := successors[from]; !ok {
				origins = append(origins, from)
			}
			if !slices.Contains(successors[from], to) {
				successors[from] = append(successors[from], to)
			}
		}
	}

	rows := make([][]float64, len(origins))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(distanceFanout)
	for i, from := range origins {
		g.Go(func() error {
			dests := make([]domain.Coordinates, 0, len(successors[from]))
			for _, to := range successors[from] {
				dests = append(dests, locations[to])
			}
			row, err := provider.GetDistances(gctx, locations[from], dests)
			if err != nil {
				return fmt.Errorf("distances from %q: %w", from, err)
			}
			if len(row) != len(dests) {
				return fmt.Errorf("distances from %q: got %d results for %d destinations", from, len(row), len(dests))
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("annotate distances: %w", err)
	}

	legMeters := make(map[[2]string]float64)
	for i, from := range origins {
		for j, to := range successors[from] {
			legMeters[[2]string{from, to}] = rows[i][j]
		}
	}

	for i := range out {
		p := &out[i]
		if !p.Verified || !located(p.CheckpointIDs, locations) {
			continue
		}
		meters := 0.0
		for j := 0; j+1 < len(p.CheckpointIDs); j++ {
			meters += legMeters[[2]string{p.CheckpointIDs[j], p.CheckpointIDs[j+1]}]
		}
		km := meters / 1000
		p.TotalDistance = &km
	}

	return out, nil
}

func located(ids []string, locations map[string]domain.Coordinates) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if _, ok := locations[id]; !ok {
			return false
		}
	}
	return true
}
