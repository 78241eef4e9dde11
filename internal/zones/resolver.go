package zones

import (
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/pathfind"
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
)

// Resolver picks the smallest zone graph containing both ends of a route.
// Merged graphs are built once in NewResolver.
type Resolver struct {
	north, central, south pathfind.Graph
	northCentral          pathfind.Graph
	centralSouth          pathfind.Graph
	all                   pathfind.Graph

	pathLimit int
}

type ResolverOption func(*Resolver)

// WithPathLimit caps how many paths Paths enumerates (0 = every path).
func WithPathLimit(n int) ResolverOption {
	return func(r *Resolver) { r.pathLimit = n }
}

func NewResolver(gs *Graphs, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		north:        gs.North,
		central:      gs.Central,
		south:        gs.South,
		northCentral: Merge(gs.North, gs.Central),
		centralSouth: Merge(gs.Central, gs.South),
		all:          Merge(gs.North, gs.Central, gs.South),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Graph returns the graph a route from start to end should use:
// a single zone holding both districts, else a merged pair of adjacent
// zones, else all three zones.
func (r *Resolver) Graph(start, end string) pathfind.Graph {
	for _, g := range []pathfind.Graph{r.north, r.central, r.south} {
		if has(g, start) && has(g, end) {
			return g
		}
	}

	for _, g := range []pathfind.Graph{r.northCentral, r.centralSouth} {
		if has(g, start) && has(g, end) {
			return g
		}
	}

	return r.all
}

// Paths enumerates district routes between start and end over Graph(start, end).
func (r *Resolver) Paths(ctx context.Context, start, end string) (domain.ZonePaths, error) {
	g := r.Graph(start, end)

	all, err := pathfind.Enumerate(g, start, end,
		pathfind.WithContext(ctx),
		pathfind.WithMaxPaths(r.pathLimit),
	)
	if err != nil {
		return domain.ZonePaths{}, fmt.Errorf("zone paths %q -> %q: %w", start, end, err)
	}

	res := domain.ZonePaths{AllPaths: all}
	if len(all) == 0 {
		return res, nil
	}
	res.ShortestPath = all[0]

	hops, err := fewestHops(ctx, g, start, end)
	if err != nil {
		return domain.ZonePaths{}, fmt.Errorf("zone paths %q -> %q: %w", start, end, err)
	}
	res.FewestHops = hops

	return res, nil
}

// fewestHops runs a breadth-first search over g and returns a minimum-hop
// route, or nil when end is unreachable.
func fewestHops(ctx context.Context, g pathfind.Graph, start, end string) ([]string, error) {
	cg := core.NewGraph(core.WithDirected(true))
	for district, neighbors := range g {
		if err := cg.AddVertex(district); err != nil {
			return nil, fmt.Errorf("build hop graph: add %q: %w", district, err)
		}
		seen := make(map[string]bool, len(neighbors))
		for _, n := range neighbors {
			if n == district || seen[n] {
				continue
			}
			seen[n] = true
			if _, err := cg.AddEdge(district, n, 0); err != nil {
				return nil, fmt.Errorf("build hop graph: edge %q -> %q: %w", district, n, err)
			}
		}
	}

	res, err := bfs.BFS(cg, start, bfs.WithContext(ctx))
	if err != nil {
		if errors.Is(err, bfs.ErrStartVertexNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("bfs from %q: %w", start, err)
	}

	path, err := res.PathTo(end)
	if err != nil {
		return nil, nil
	}
	return path, nil
}

func has(g pathfind.Graph, district string) bool {
	_, ok := g[district]
	return ok
}
