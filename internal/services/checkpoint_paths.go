package services

import (
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/platform/obs"
	"checkpoint-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

type FindPathsRequest struct {
	DepartureDistrictID   string
	DestinationDistrictID string
	// MaxPaths stops the search after this many paths (0 = every path).
	MaxPaths int
}

// FindAllCheckpointPaths finds every checkpoint route from the departure
// district to the destination district.
//
// Checkpoints are loaded once and partitioned by district. Each pair of
// (departure checkpoint, destination checkpoint) is searched with a
// cycle-safe depth-first walk over the north/south/east/west links. The
// union of all pair results is returned unranked and without deduplication.
//
// When no checkpoint route exists, including when either district has no
// checkpoints, exactly one unverified fallback path holding the two district
// names is returned. An empty result is never returned.
func FindAllCheckpointPaths(
	ctx context.Context,
	req FindPathsRequest,
	checkpoints ports.CheckpointReader,
	districts ports.DistrictReader,
) ([]domain.CheckpointPath, error) {
	nodes, err := loadCheckpoints(ctx, req, checkpoints)
	if err != nil {
		return nil, err
	}
	return searchCheckpointPaths(ctx, req, nodes, districts)
}

// loadCheckpoints validates req and reads the graph snapshot one search runs on.
func loadCheckpoints(ctx context.Context, req FindPathsRequest, checkpoints ports.CheckpointReader) ([]domain.CheckpointNode, error) {
	if strings.TrimSpace(req.DepartureDistrictID) == "" || strings.TrimSpace(req.DestinationDistrictID) == "" {
		return nil, errors.New("find checkpoint paths: departure and destination district ids must be non-empty")
	}

	nodes, err := checkpoints.ListCheckpoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("find checkpoint paths: list checkpoints: %w", err)
	}
	return nodes, nil
}

func searchCheckpointPaths(
	ctx context.Context,
	req FindPathsRequest,
	nodes []domain.CheckpointNode,
	districts ports.DistrictReader,
) (_ []domain.CheckpointPath, err error) {
	defer obs.Time(ctx, "checkpoint.paths.FindAll")(&err)

	byID := make(map[string]*domain.CheckpointNode, len(nodes))
	var departures, destinations []*domain.CheckpointNode
	for i := range nodes {
		cp := &nodes[i]
		byID[cp.CheckpointID] = cp
		if cp.DistrictID == req.DepartureDistrictID {
			departures = append(departures, cp)
		}
		if cp.DistrictID == req.DestinationDistrictID {
			destinations = append(destinations, cp)
		}
	}

	f := &checkpointFinder{
		ctx:      ctx,
		byID:     byID,
		visited:  make(map[string]bool, len(nodes)),
		maxPaths: req.MaxPaths,
	}

search:
	for _, dep := range departures {
		for _, dest := range destinations {
			if err := f.findPathsBetweenCheckpoints(dep, dest); err != nil {
				return nil, fmt.Errorf("find checkpoint paths: %w", err)
			}
			if f.full() {
				break search
			}
		}
	}

	if len(f.out) > 0 {
		return f.out, nil
	}

	fallback, err := fallbackPath(ctx, req, districts)
	if err != nil {
		return nil, fmt.Errorf("find checkpoint paths: %w", err)
	}
	return []domain.CheckpointPath{fallback}, nil
}

// checkpointFinder walks the checkpoint graph with explicit backtracking:
// a checkpoint is marked visited before its neighbors are explored and
// unmarked afterwards, so one set serves every branch.
type checkpointFinder struct {
	ctx      context.Context
	byID     map[string]*domain.CheckpointNode
	visited  map[string]bool
	names    []string
	ids      []string
	out      []domain.CheckpointPath
	maxPaths int
	steps    int
}

const ctxCheckInterval = 1024

func (f *checkpointFinder) findPathsBetweenCheckpoints(current, destination *domain.CheckpointNode) error {
	f.steps++
	if f.steps%ctxCheckInterval == 0 {
		if err := f.ctx.Err(); err != nil {
			return err
		}
	}

	if f.full() {
		return nil
	}

	if current.CheckpointID == destination.CheckpointID {
		names := append(append(make([]string, 0, len(f.names)+1), f.names...), current.DistrictName)
		ids := append(append(make([]string, 0, len(f.ids)+1), f.ids...), current.CheckpointID)
		f.out = append(f.out, domain.CheckpointPath{
			Path:          names,
			CheckpointIDs: ids,
			Verified:      true,
		})
		return nil
	}

	if f.visited[current.CheckpointID] {
		return nil
	}

	f.visited[current.CheckpointID] = true
	f.names = append(f.names, current.DistrictName)
	f.ids = append(f.ids, current.CheckpointID)
	defer func() {
		delete(f.visited, current.CheckpointID)
		f.names = f.names[:len(f.names)-1]
		f.ids = f.ids[:len(f.ids)-1]
	}()

	for _, nextID := range current.Neighbors() {
		// Dangling links are treated as absent.
		next, ok := f.byID[nextID]
		if !ok {
			continue
		}
		if err := f.findPathsBetweenCheckpoints(next, destination); err != nil {
			return err
		}
	}

	return nil
}

func (f *checkpointFinder) full() bool {
	return f.maxPaths > 0 && len(f.out) >= f.maxPaths
}

// fallbackPath resolves both district names concurrently. A district that
// cannot be found is labelled with the unknown-district placeholder.
func fallbackPath(ctx context.Context, req FindPathsRequest, districts ports.DistrictReader) (domain.CheckpointPath, error) {
	var departure, destination string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		name, err := districtNameOrPlaceholder(gctx, districts, req.DepartureDistrictID)
		departure = name
		return err
	})
	g.Go(func() error {
		name, err := districtNameOrPlaceholder(gctx, districts, req.DestinationDistrictID)
		destination = name
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.CheckpointPath{}, fmt.Errorf("resolve fallback district names: %w", err)
	}

	return domain.FallbackPath(departure, destination), nil
}

func districtNameOrPlaceholder(ctx context.Context, districts ports.DistrictReader, id string) (string, error) {
	name, err := districts.DistrictName(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.UnknownDistrictName, nil
	}
	if err != nil {
		return "", fmt.Errorf("district %q: %w", id, err)
	}
	return name, nil
}
