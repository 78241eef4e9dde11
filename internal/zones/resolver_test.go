package zones

import (
	"checkpoint-route-service/internal/pathfind"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, opts ...ResolverOption) (*Resolver, *Graphs) {
	t.Helper()
	gs, err := Load()
	require.NoError(t, err)
	return NewResolver(gs, opts...), gs
}

func keys(g pathfind.Graph) []string {
	out := make([]string, 0, len(g))
	for k := range g {
		out = append(out, k)
	}
	return out
}

func TestLoadZoneTablesAreSymmetric(t *testing.T) {
	gs, err := Load()
	require.NoError(t, err)

	for name, g := range map[string]pathfind.Graph{"north": gs.North, "central": gs.Central, "south": gs.South} {
		for district, neighbors := range g {
			for _, n := range neighbors {
				back, ok := g[n]
				require.True(t, ok, "%s: %q lists %q which is not a key", name, district, n)
				assert.Contains(t, back, district, "%s: %q -> %q has no reverse link", name, district, n)
			}
		}
	}
}

func TestGraphSingleZone(t *testing.T) {
	r, gs := newTestResolver(t)

	g := r.Graph("Eráti", "Chiúre")
	assert.ElementsMatch(t, keys(gs.North), keys(g))

	g = r.Graph("Quelimane", "Beira")
	assert.ElementsMatch(t, keys(gs.Central), keys(g))

	g = r.Graph("Maputo", "Xai-Xai")
	assert.ElementsMatch(t, keys(gs.South), keys(g))
}

func TestGraphAdjacentZones(t *testing.T) {
	r, gs := newTestResolver(t)

	g := r.Graph("Nampula", "Quelimane")
	assert.ElementsMatch(t, keys(Merge(gs.North, gs.Central)), keys(g))

	g = r.Graph("Beira", "Maputo")
	assert.ElementsMatch(t, keys(Merge(gs.Central, gs.South)), keys(g))
}

func TestGraphAllZones(t *testing.T) {
	r, gs := newTestResolver(t)

	g := r.Graph("Pemba", "Maputo")
	assert.ElementsMatch(t, keys(Merge(gs.North, gs.Central, gs.South)), keys(g))

	// Unknown districts fall through to the full merge as well.
	g = r.Graph("Nowhere", "Pemba")
	assert.Len(t, g, len(Merge(gs.North, gs.Central, gs.South)))
}

func TestMergeUnionsBorderNeighbors(t *testing.T) {
	a := pathfind.Graph{"X": {"A", "B"}, "A": {"X"}, "B": {"X"}}
	b := pathfind.Graph{"X": {"B", "C"}, "C": {"X"}}

	m := Merge(a, b)
	assert.Equal(t, []string{"A", "B", "C"}, m["X"])
	assert.Len(t, m, 4)
	assert.Equal(t, []string{"A", "B"}, a["X"], "inputs must not be mutated")
}

func TestPathsIncludesDirectEdge(t *testing.T) {
	r, _ := newTestResolver(t, WithPathLimit(200))

	res, err := r.Paths(context.Background(), "Eráti", "Chiúre")
	require.NoError(t, err)

	require.NotEmpty(t, res.AllPaths)
	assert.Contains(t, res.AllPaths, []string{"Eráti", "Chiúre"})
	assert.Equal(t, res.AllPaths[0], res.ShortestPath)
	assert.Equal(t, []string{"Eráti", "Chiúre"}, res.FewestHops)
	for _, p := range res.AllPaths {
		assert.Equal(t, "Eráti", p[0])
		assert.Equal(t, "Chiúre", p[len(p)-1])
	}
}

func TestPathsFewestHopsDiffersFromFirstFound(t *testing.T) {
	r, _ := newTestResolver(t, WithPathLimit(1))

	// Pemba lists Metuge before Mecúfi, so the first DFS path detours
	// through Metuge while the minimum-hop route goes via Mecúfi.
	res, err := r.Paths(context.Background(), "Pemba", "Chiúre")
	require.NoError(t, err)

	require.Len(t, res.AllPaths, 1)
	assert.Equal(t, "Metuge", res.ShortestPath[1])
	assert.Equal(t, []string{"Pemba", "Mecúfi", "Chiúre"}, res.FewestHops)
	assert.Greater(t, len(res.ShortestPath), len(res.FewestHops))
}

func TestPathsAcrossZones(t *testing.T) {
	r, _ := newTestResolver(t, WithPathLimit(5))

	res, err := r.Paths(context.Background(), "Nampula", "Quelimane")
	require.NoError(t, err)

	require.NotEmpty(t, res.AllPaths)
	require.NotEmpty(t, res.FewestHops)
	assert.Equal(t, "Nampula", res.FewestHops[0])
	assert.Equal(t, "Quelimane", res.FewestHops[len(res.FewestHops)-1])
}

func TestPathsUnknownDistrict(t *testing.T) {
	r, _ := newTestResolver(t)

	res, err := r.Paths(context.Background(), "Nowhere", "Pemba")
	require.NoError(t, err)
	assert.Empty(t, res.AllPaths)
	assert.Nil(t, res.ShortestPath)
	assert.Nil(t, res.FewestHops)
}

func TestPathsSameDistrict(t *testing.T) {
	r, _ := newTestResolver(t)

	res, err := r.Paths(context.Background(), "Pemba", "Pemba")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Pemba"}}, res.AllPaths)
	assert.Equal(t, []string{"Pemba"}, res.FewestHops)
}
