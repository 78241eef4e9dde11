package memory

import (
	"checkpoint-route-service/internal/domain"
	"context"
	"fmt"
	"sync"
)

// CheckpointStore is an in-memory checkpoint graph. Checkpoints are listed
// in insertion order. It implements ports.CheckpointRepository.
type CheckpointStore struct {
	mu    sync.RWMutex
	order []string
	nodes map[string]domain.CheckpointNode
}

func NewCheckpointStore(nodes ...domain.CheckpointNode) *CheckpointStore {
	s := &CheckpointStore{nodes: make(map[string]domain.CheckpointNode, len(nodes))}
	for _, n := range nodes {
		s.Put(n)
	}
	return s
}

// Put inserts or replaces a checkpoint.
func (s *CheckpointStore) Put(n domain.CheckpointNode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[n.CheckpointID]; !ok {
		s.order = append(s.order, n.CheckpointID)
	}
	s.nodes[n.CheckpointID] = n
}

func (s *CheckpointStore) Get(id string) (domain.CheckpointNode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	return n, ok
}

func (s *CheckpointStore) ListCheckpoints(ctx context.Context) ([]domain.CheckpointNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CheckpointNode, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out, nil
}

func (s *CheckpointStore) UpdateLinks(ctx context.Context, checkpointID string, links domain.Links) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[checkpointID]
	if !ok {
		return fmt.Errorf("update links: checkpoint %q: %w", checkpointID, domain.ErrNotFound)
	}
	for _, d := range domain.Directions {
		id := links.Get(d)
		if id == "" {
			continue
		}
		if _, ok := s.nodes[id]; !ok {
			return fmt.Errorf("update links: neighbor %q: %w", id, domain.ErrNotFound)
		}
	}
	n.Links = links
	s.nodes[checkpointID] = n
	return nil
}

func (s *CheckpointStore) Link(ctx context.Context, checkpointID, neighborID string, dir domain.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.nodes[checkpointID]
	if !ok {
		return fmt.Errorf("link: checkpoint %q: %w", checkpointID, domain.ErrNotFound)
	}
	b, ok := s.nodes[neighborID]
	if !ok {
		return fmt.Errorf("link: checkpoint %q: %w", neighborID, domain.ErrNotFound)
	}
	rev := dir.Opposite()

	// Detach whatever a and b pointed at before, on the far side.
	if old := a.Links.Get(dir); old != "" && old != neighborID {
		s.clearIfPointsTo(old, rev, checkpointID)
	}
	if old := b.Links.Get(rev); old != "" && old != checkpointID {
		s.clearIfPointsTo(old, dir, neighborID)
	}

	a = s.nodes[checkpointID]
	b = s.nodes[neighborID]
	a.Links.Set(dir, neighborID)
	b.Links.Set(rev, checkpointID)
	s.nodes[checkpointID] = a
	s.nodes[neighborID] = b
	return nil
}

func (s *CheckpointStore) Unlink(ctx context.Context, checkpointID string, dir domain.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.nodes[checkpointID]
	if !ok {
		return fmt.Errorf("unlink: checkpoint %q: %w", checkpointID, domain.ErrNotFound)
	}

	old := a.Links.Get(dir)
	a.Links.Set(dir, "")
	s.nodes[checkpointID] = a
	if old != "" {
		s.clearIfPointsTo(old, dir.Opposite(), checkpointID)
	}
	return nil
}

// clearIfPointsTo empties id's dir slot when it references target.
// Callers hold s.mu.
func (s *CheckpointStore) clearIfPointsTo(id string, dir domain.Direction, target string) {
	n, ok := s.nodes[id]
	if !ok || n.Links.Get(dir) != target {
		return
	}
	n.Links.Set(dir, "")
	s.nodes[id] = n
}
