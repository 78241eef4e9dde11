package services

import (
	"checkpoint-route-service/internal/adapters/memory"
	"checkpoint-route-service/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkpoint(id, districtID, districtName string, links domain.Links) domain.CheckpointNode {
	return domain.CheckpointNode{
		CheckpointID:   id,
		Name:           "Posto " + id,
		DistrictID:     districtID,
		DistrictName:   districtName,
		ProvinceName:   "Nampula",
		CheckpointType: domain.CheckpointInterdistrital,
		Links:          links,
	}
}

func districts() *memory.DistrictStore {
	return memory.NewDistrictStore(
		domain.District{DistrictID: "d-erati", Name: "Eráti"},
		domain.District{DistrictID: "d-chiure", Name: "Chiúre"},
		domain.District{DistrictID: "d-memba", Name: "Memba"},
	)
}

func find(t *testing.T, cps *memory.CheckpointStore, dep, dest string) []domain.CheckpointPath {
	t.Helper()
	paths, err := FindAllCheckpointPaths(context.Background(), FindPathsRequest{
		DepartureDistrictID:   dep,
		DestinationDistrictID: dest,
	}, cps, districts())
	require.NoError(t, err)
	return paths
}

func TestFindAllCheckpointPathsDirectEastLink(t *testing.T) {
	cps := memory.NewCheckpointStore(
		checkpoint("cpA", "d-erati", "Eráti", domain.Links{EasternNext: "cpB"}),
		checkpoint("cpB", "d-chiure", "Chiúre", domain.Links{WesternNext: "cpA"}),
	)

	paths := find(t, cps, "d-erati", "d-chiure")

	require.Len(t, paths, 1)
	assert.Equal(t, []string{"cpA", "cpB"}, paths[0].CheckpointIDs)
	assert.Equal(t, []string{"Eráti", "Chiúre"}, paths[0].Path)
	assert.True(t, paths[0].Verified)
}

func TestFindAllCheckpointPathsThroughIntermediateDistrict(t *testing.T) {
	cps := memory.NewCheckpointStore(
		checkpoint("cpA", "d-erati", "Eráti", domain.Links{NorthernNext: "cpM"}),
		checkpoint("cpM", "d-memba", "Memba", domain.Links{SouthernNext: "cpA", NorthernNext: "cpB"}),
		checkpoint("cpB", "d-chiure", "Chiúre", domain.Links{SouthernNext: "cpM"}),
	)

	paths := find(t, cps, "d-erati", "d-chiure")

	require.Len(t, paths, 1)
	assert.Equal(t, []string{"cpA", "cpM", "cpB"}, paths[0].CheckpointIDs)
	assert.Equal(t, []string{"Eráti", "Memba", "Chiúre"}, paths[0].Path)
}

func TestFindAllCheckpointPathsUnionsEveryPair(t *testing.T) {
	// Two departure checkpoints, two destination checkpoints.
	cps := memory.NewCheckpointStore(
		checkpoint("a1", "d-erati", "Eráti", domain.Links{EasternNext: "b1", NorthernNext: "b2"}),
		checkpoint("a2", "d-erati", "Eráti", domain.Links{EasternNext: "b2"}),
		checkpoint("b1", "d-chiure", "Chiúre", domain.Links{WesternNext: "a1"}),
		checkpoint("b2", "d-chiure", "Chiúre", domain.Links{SouthernNext: "a1", WesternNext: "a2"}),
	)

	paths := find(t, cps, "d-erati", "d-chiure")

	ids := make([][]string, 0, len(paths))
	for _, p := range paths {
		assert.Equal(t, len(p.Path), len(p.CheckpointIDs))
		ids = append(ids, p.CheckpointIDs)
	}
	assert.ElementsMatch(t, [][]string{
		{"a1", "b1"},
		{"a1", "b2"},
		{"a2", "b2", "a1", "b1"},
		{"a2", "b2"},
	}, ids)
}

func TestFindAllCheckpointPathsNoDepartureCheckpoints(t *testing.T) {
	cps := memory.NewCheckpointStore(
		checkpoint("cpB", "d-chiure", "Chiúre", domain.Links{}),
	)

	paths := find(t, cps, "d-erati", "d-chiure")

	require.Len(t, paths, 1)
	assert.Equal(t, []string{"Eráti", "Chiúre"}, paths[0].Path)
	assert.Empty(t, paths[0].CheckpointIDs)
	assert.NotNil(t, paths[0].CheckpointIDs)
	assert.False(t, paths[0].Verified)
}

func TestFindAllCheckpointPathsDisconnectedFallsBack(t *testing.T) {
	cps := memory.NewCheckpointStore(
		checkpoint("cpA", "d-erati", "Eráti", domain.Links{}),
		checkpoint("cpB", "d-chiure", "Chiúre", domain.Links{}),
	)

	paths := find(t, cps, "d-erati", "d-chiure")

	require.Len(t, paths, 1)
	assert.Equal(t, domain.FallbackPath("Eráti", "Chiúre"), paths[0])
}

func TestFindAllCheckpointPathsUnknownDistrictPlaceholder(t *testing.T) {
	cps := memory.NewCheckpointStore()

	paths := find(t, cps, "d-missing", "d-chiure")

	require.Len(t, paths, 1)
	assert.Equal(t, []string{domain.UnknownDistrictName, "Chiúre"}, paths[0].Path)
}

func TestFindAllCheckpointPathsCycleTerminates(t *testing.T) {
	// A.north=B, B.south=A, B.north=A
	cps := memory.NewCheckpointStore(
		checkpoint("A", "d-erati", "Eráti", domain.Links{NorthernNext: "B"}),
		checkpoint("B", "d-memba", "Memba", domain.Links{SouthernNext: "A", NorthernNext: "A"}),
		checkpoint("C", "d-chiure", "Chiúre", domain.Links{}),
	)

	// C is unreachable: the walk must terminate and fall back.
	paths := find(t, cps, "d-erati", "d-chiure")
	require.Len(t, paths, 1)
	assert.False(t, paths[0].Verified)

	// B is reachable: exactly one path, no checkpoint repeated.
	paths = find(t, cps, "d-erati", "d-memba")
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"A", "B"}, paths[0].CheckpointIDs)
}

func TestFindAllCheckpointPathsDenseCycleHasNoRepeats(t *testing.T) {
	// Square of four checkpoints linked both ways on every side.
	cps := memory.NewCheckpointStore(
		checkpoint("nw", "d-erati", "Eráti", domain.Links{EasternNext: "ne", SouthernNext: "sw"}),
		checkpoint("ne", "d-memba", "Memba", domain.Links{WesternNext: "nw", SouthernNext: "se"}),
		checkpoint("sw", "d-memba", "Memba", domain.Links{NorthernNext: "nw", EasternNext: "se"}),
		checkpoint("se", "d-chiure", "Chiúre", domain.Links{NorthernNext: "ne", WesternNext: "sw"}),
	)

	paths := find(t, cps, "d-erati", "d-chiure")

	require.Len(t, paths, 2)
	for _, p := range paths {
		seen := map[string]bool{}
		for _, id := range p.CheckpointIDs {
			require.False(t, seen[id], "path %v repeats %s", p.CheckpointIDs, id)
			seen[id] = true
		}
		assert.Equal(t, "nw", p.CheckpointIDs[0])
		assert.Equal(t, "se", p.CheckpointIDs[len(p.CheckpointIDs)-1])
	}
	// South is explored before east.
	assert.Equal(t, []string{"nw", "sw", "se"}, paths[0].CheckpointIDs)
	assert.Equal(t, []string{"nw", "ne", "se"}, paths[1].CheckpointIDs)
}

func TestFindAllCheckpointPathsSkipsDanglingLinks(t *testing.T) {
	cps := memory.NewCheckpointStore(
		checkpoint("cpA", "d-erati", "Eráti", domain.Links{NorthernNext: "ghost", EasternNext: "cpB"}),
		checkpoint("cpB", "d-chiure", "Chiúre", domain.Links{}),
	)

	paths := find(t, cps, "d-erati", "d-chiure")

	require.Len(t, paths, 1)
	assert.Equal(t, []string{"cpA", "cpB"}, paths[0].CheckpointIDs)
}

func TestFindAllCheckpointPathsKeepsUnresolvedNames(t *testing.T) {
	mid := checkpoint("cpM", "d-gone", domain.UnknownDistrictName, domain.Links{EasternNext: "cpB"})
	mid.ProvinceName = domain.UnknownProvinceName
	cps := memory.NewCheckpointStore(
		checkpoint("cpA", "d-erati", "Eráti", domain.Links{EasternNext: "cpM"}),
		mid,
		checkpoint("cpB", "d-chiure", "Chiúre", domain.Links{}),
	)

	paths := find(t, cps, "d-erati", "d-chiure")

	require.Len(t, paths, 1)
	assert.Equal(t, []string{"Eráti", domain.UnknownDistrictName, "Chiúre"}, paths[0].Path)
}

func TestFindAllCheckpointPathsSameDistrict(t *testing.T) {
	cps := memory.NewCheckpointStore(
		checkpoint("cpA", "d-erati", "Eráti", domain.Links{}),
	)

	paths := find(t, cps, "d-erati", "d-erati")

	require.Len(t, paths, 1)
	assert.Equal(t, []string{"cpA"}, paths[0].CheckpointIDs)
	assert.Equal(t, []string{"Eráti"}, paths[0].Path)
}

func TestFindAllCheckpointPathsMaxPaths(t *testing.T) {
	cps := memory.NewCheckpointStore(
		checkpoint("a1", "d-erati", "Eráti", domain.Links{EasternNext: "b1"}),
		checkpoint("a2", "d-erati", "Eráti", domain.Links{EasternNext: "b1"}),
		checkpoint("b1", "d-chiure", "Chiúre", domain.Links{}),
	)

	paths, err := FindAllCheckpointPaths(context.Background(), FindPathsRequest{
		DepartureDistrictID:   "d-erati",
		DestinationDistrictID: "d-chiure",
		MaxPaths:              1,
	}, cps, districts())
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"a1", "b1"}, paths[0].CheckpointIDs)
}

type failingReader struct{ err error }

func (f failingReader) ListCheckpoints(context.Context) ([]domain.CheckpointNode, error) {
	return nil, f.err
}

func (f failingReader) DistrictName(context.Context, string) (string, error) {
	return "", f.err
}

func TestFindAllCheckpointPathsPropagatesQueryErrors(t *testing.T) {
	boom := errors.New("connection reset")

	_, err := FindAllCheckpointPaths(context.Background(), FindPathsRequest{
		DepartureDistrictID:   "d-erati",
		DestinationDistrictID: "d-chiure",
	}, failingReader{err: boom}, districts())
	assert.ErrorIs(t, err, boom)

	_, err = FindAllCheckpointPaths(context.Background(), FindPathsRequest{
		DepartureDistrictID:   "d-erati",
		DestinationDistrictID: "d-chiure",
	}, memory.NewCheckpointStore(), failingReader{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestFindAllCheckpointPathsRequiresDistricts(t *testing.T) {
	_, err := FindAllCheckpointPaths(context.Background(), FindPathsRequest{
		DepartureDistrictID: "d-erati",
	}, memory.NewCheckpointStore(), districts())
	assert.Error(t, err)
}
