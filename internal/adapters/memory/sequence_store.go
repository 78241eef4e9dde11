package memory

import (
	"checkpoint-route-service/internal/domain"
	"context"
	"fmt"
	"slices"
	"sync"
)

// SequenceStore keeps committed checkpoint sequences in memory.
// It implements ports.SequenceRepository.
type SequenceStore struct {
	mu   sync.RWMutex
	legs map[directionKey][]domain.ShipmentCheckpointSequence
}

func NewSequenceStore() *SequenceStore {
	return &SequenceStore{legs: make(map[directionKey][]domain.ShipmentCheckpointSequence)}
}

func (s *SequenceStore) ReplaceSequence(
	ctx context.Context,
	shipmentID, directionID string,
	rows []domain.ShipmentCheckpointSequence,
) error {
	seen := make(map[int]struct{}, len(rows))
	for _, r := range rows {
		if r.ShipmentID != shipmentID || r.ShipmentDirectionID != directionID {
			return fmt.Errorf("replace sequence: row for %q/%q does not belong to %q/%q",
				r.ShipmentID, r.ShipmentDirectionID, shipmentID, directionID)
		}
		if _, dup := seen[r.SequenceOrder]; dup {
			return fmt.Errorf("replace sequence: duplicate sequence_order %d", r.SequenceOrder)
		}
		seen[r.SequenceOrder] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.legs[directionKey{shipmentID, directionID}] = slices.Clone(rows)
	return nil
}

func (s *SequenceStore) ListSequence(ctx context.Context, shipmentID, directionID string) ([]domain.ShipmentCheckpointSequence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := slices.Clone(s.legs[directionKey{shipmentID, directionID}])
	slices.SortFunc(rows, func(a, b domain.ShipmentCheckpointSequence) int {
		return a.SequenceOrder - b.SequenceOrder
	})
	if rows == nil {
		rows = []domain.ShipmentCheckpointSequence{}
	}
	return rows, nil
}
