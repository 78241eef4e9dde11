// Package zones holds the static district adjacency of the three macro-zones
// and resolves which zone graph a district pair should be routed over.
package zones

import (
	"checkpoint-route-service/internal/pathfind"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

type Zone string

const (
	North   Zone = "north"
	Central Zone = "central"
	South   Zone = "south"
)

//go:embed zones.yaml
var zonesYAML []byte

// Graphs holds the three zone graphs. Values are never mutated after Load.
type Graphs struct {
	North   pathfind.Graph
	Central pathfind.Graph
	South   pathfind.Graph
}

// Load parses the embedded zone tables.
func Load() (*Graphs, error) {
	return parse(zonesYAML)
}

func parse(data []byte) (*Graphs, error) {
	var raw map[Zone]map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("load zones: parse yaml: %w", err)
	}

	gs := &Graphs{}
	for _, z := range []struct {
		zone Zone
		dst  *pathfind.Graph
	}{
		{North, &gs.North},
		{Central, &gs.Central},
		{South, &gs.South},
	} {
		adj, ok := raw[z.zone]
		if !ok || len(adj) == 0 {
			return nil, fmt.Errorf("load zones: zone %q is missing or empty", z.zone)
		}
		g := make(pathfind.Graph, len(adj))
		for district, neighbors := range adj {
			if neighbors == nil {
				neighbors = []string{}
			}
			g[district] = neighbors
		}
		*z.dst = g
	}

	return gs, nil
}

// Merge unions graphs. A district present in several inputs keeps the
// neighbors of the first input in order, followed by any new neighbors
// from later inputs.
func Merge(graphs ...pathfind.Graph) pathfind.Graph {
	size := 0
	for _, g := range graphs {
		size += len(g)
	}

	out := make(pathfind.Graph, size)
	for _, g := range graphs {
		for district, neighbors := range g {
			existing := out[district]
			seen := make(map[string]struct{}, len(existing)+len(neighbors))
			for _, n := range existing {
				seen[n] = struct{}{}
			}
			merged := append(make([]string, 0, len(existing)+len(neighbors)), existing...)
			for _, n := range neighbors {
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				merged = append(merged, n)
			}
			out[district] = merged
		}
	}

	return out
}
