package services

import (
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/platform/obs"
	"checkpoint-route-service/internal/ports"
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// RouteDeps groups the collaborators of a checkpoint route lookup.
// Distances, Cache and Metrics are optional.
type RouteDeps struct {
	Checkpoints ports.CheckpointReader
	Districts   ports.DistrictReader
	Directions  ports.DirectionReader
	Distances   ports.DistanceProvider
	Cache       ports.PathCache
	Metrics     *obs.Metrics
}

// LookupCheckpointPaths serves a path search from the cache when possible
// and otherwise runs the search and caches the result. With a distance
// provider configured, paths are annotated before caching.
//
// Only unbounded searches are cached. The cache generation is read once,
// before the search, so a link edit that lands mid-search leaves the result
// under the superseded generation. Cache and distance failures are logged
// and never fail the lookup.
func LookupCheckpointPaths(ctx context.Context, req FindPathsRequest, deps RouteDeps) ([]domain.CheckpointPath, error) {
	cache := deps.Cache
	if req.MaxPaths > 0 {
		cache = nil
	}

	var gen string
	if cache != nil {
		var err error
		if gen, err = cache.Generation(ctx); err != nil {
			log.WithError(err).WithField("op", "checkpoint.paths.cache.Generation").Warn("path cache unavailable")
			cache = nil
		}
	}

	if cache != nil {
		paths, ok, err := cache.Get(ctx, gen, req.DepartureDistrictID, req.DestinationDistrictID)
		switch {
		case err != nil:
			log.WithError(err).WithField("op", "checkpoint.paths.cache.Get").Warn("path cache read failed")
		case ok:
			deps.Metrics.ObserveCacheLookup(true)
			return paths, nil
		default:
			deps.Metrics.ObserveCacheLookup(false)
		}
	}

	nodes, err := loadCheckpoints(ctx, req, deps.Checkpoints)
	if err != nil {
		return nil, err
	}
	paths, err := searchCheckpointPaths(ctx, req, nodes, deps.Districts)
	if err != nil {
		return nil, err
	}
	deps.Metrics.ObservePathSearch(paths)

	if deps.Distances != nil {
		annotated, err := AnnotateDistances(ctx, paths, nodes, deps.Distances)
		if err != nil {
			log.WithError(err).WithField("op", "checkpoint.paths.AnnotateDistances").Warn("distance annotation failed")
		} else {
			paths = annotated
		}
	}

	if cache != nil {
		if err := cache.Put(ctx, gen, req.DepartureDistrictID, req.DestinationDistrictID, paths); err != nil {
			log.WithError(err).WithField("op", "checkpoint.paths.cache.Put").Warn("path cache write failed")
		}
	}

	return paths, nil
}

// DirectionPaths are the checkpoint routes of one shipment leg.
type DirectionPaths struct {
	DepartureDistrictID   string
	DestinationDistrictID string
	Paths                 []domain.CheckpointPath
}

// LookupDirectionPaths resolves a shipment direction to its departure and
// destination districts and looks up the checkpoint routes between them.
func LookupDirectionPaths(
	ctx context.Context,
	shipmentID, directionID string,
	maxPaths int,
	deps RouteDeps,
) (DirectionPaths, error) {
	dep, dest, err := deps.Directions.DirectionDistricts(ctx, shipmentID, directionID)
	if err != nil {
		return DirectionPaths{}, fmt.Errorf("lookup direction paths: shipment %q direction %q: %w", shipmentID, directionID, err)
	}
	if dep == "" || dest == "" {
		return DirectionPaths{}, fmt.Errorf("lookup direction paths: shipment %q direction %q: %w",
			shipmentID, directionID, domain.ErrUnresolvedDirection)
	}

	paths, err := LookupCheckpointPaths(ctx, FindPathsRequest{
		DepartureDistrictID:   dep,
		DestinationDistrictID: dest,
		MaxPaths:              maxPaths,
	}, deps)
	if err != nil {
		return DirectionPaths{}, fmt.Errorf("lookup direction paths: %w", err)
	}

	return DirectionPaths{DepartureDistrictID: dep, DestinationDistrictID: dest, Paths: paths}, nil
}
