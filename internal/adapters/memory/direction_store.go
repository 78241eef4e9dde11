package memory

import (
	"checkpoint-route-service/internal/domain"
	"context"
	"fmt"
	"sync"
)

type directionKey struct{ shipmentID, directionID string }

type directionDistricts struct{ departure, destination string }

// DirectionStore maps shipment directions to district ids.
// It implements ports.DirectionReader.
type DirectionStore struct {
	mu   sync.RWMutex
	legs map[directionKey]directionDistricts
}

func NewDirectionStore() *DirectionStore {
	return &DirectionStore{legs: make(map[directionKey]directionDistricts)}
}

func (s *DirectionStore) Put(shipmentID, directionID, departureDistrictID, destinationDistrictID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.legs[directionKey{shipmentID, directionID}] = directionDistricts{departureDistrictID, destinationDistrictID}
}

func (s *DirectionStore) DirectionDistricts(ctx context.Context, shipmentID, directionID string) (string, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	leg, ok := s.legs[directionKey{shipmentID, directionID}]
	if !ok {
		return "", "", fmt.Errorf("direction districts: shipment %q direction %q: %w", shipmentID, directionID, domain.ErrNotFound)
	}
	return leg.departure, leg.destination, nil
}
