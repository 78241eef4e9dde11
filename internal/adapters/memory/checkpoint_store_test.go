package memory

import (
	"checkpoint-route-service/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cp(id string) domain.CheckpointNode {
	return domain.CheckpointNode{CheckpointID: id, Name: id, DistrictID: "d-" + id}
}

func TestLinkWritesBothSides(t *testing.T) {
	ctx := context.Background()
	s := NewCheckpointStore(cp("a"), cp("b"))

	require.NoError(t, s.Link(ctx, "a", "b", domain.North))

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	assert.Equal(t, "b", a.NorthernNext)
	assert.Equal(t, "a", b.SouthernNext)
}

func TestLinkDetachesPreviousNeighbors(t *testing.T) {
	ctx := context.Background()
	s := NewCheckpointStore(cp("a"), cp("b"), cp("c"), cp("d"))

	require.NoError(t, s.Link(ctx, "a", "b", domain.East))
	require.NoError(t, s.Link(ctx, "d", "c", domain.East))
	// a.east moves from b to c; c.west moves from d to a.
	require.NoError(t, s.Link(ctx, "a", "c", domain.East))

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	c, _ := s.Get("c")
	d, _ := s.Get("d")
	assert.Equal(t, "c", a.EasternNext)
	assert.Equal(t, "a", c.WesternNext)
	assert.Empty(t, b.WesternNext)
	assert.Empty(t, d.EasternNext)
}

func TestLinkUnknownCheckpoint(t *testing.T) {
	s := NewCheckpointStore(cp("a"))
	err := s.Link(context.Background(), "a", "zz", domain.South)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnlinkClearsReverse(t *testing.T) {
	ctx := context.Background()
	s := NewCheckpointStore(cp("a"), cp("b"))
	require.NoError(t, s.Link(ctx, "a", "b", domain.West))

	require.NoError(t, s.Unlink(ctx, "b", domain.East))

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	assert.Empty(t, a.WesternNext)
	assert.Empty(t, b.EasternNext)
}

func TestUpdateLinksIsOneSided(t *testing.T) {
	ctx := context.Background()
	s := NewCheckpointStore(cp("a"), cp("b"))

	require.NoError(t, s.UpdateLinks(ctx, "a", domain.Links{NorthernNext: "b"}))

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	assert.Equal(t, "b", a.NorthernNext)
	assert.Empty(t, b.SouthernNext)
	assert.ErrorIs(t, s.UpdateLinks(ctx, "zz", domain.Links{}), domain.ErrNotFound)
}

func TestSequenceStoreReplace(t *testing.T) {
	ctx := context.Background()
	s := NewSequenceStore()
	rows := []domain.ShipmentCheckpointSequence{
		{ShipmentID: "s", ShipmentDirectionID: "d", CheckpointID: "b", SequenceOrder: 2},
		{ShipmentID: "s", ShipmentDirectionID: "d", CheckpointID: "a", SequenceOrder: 1},
	}

	require.NoError(t, s.ReplaceSequence(ctx, "s", "d", rows))
	require.NoError(t, s.ReplaceSequence(ctx, "s", "d", rows))

	got, err := s.ListSequence(ctx, "s", "d")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].CheckpointID)

	empty, err := s.ListSequence(ctx, "s", "other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
