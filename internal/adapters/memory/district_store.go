package memory

import (
	"checkpoint-route-service/internal/domain"
	"context"
	"fmt"
	"sync"
)

// DistrictStore maps district ids to names. It implements ports.DistrictReader.
type DistrictStore struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewDistrictStore(districts ...domain.District) *DistrictStore {
	s := &DistrictStore{names: make(map[string]string, len(districts))}
	for _, d := range districts {
		s.names[d.DistrictID] = d.Name
	}
	return s
}

func (s *DistrictStore) DistrictName(ctx context.Context, districtID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.names[districtID]
	if !ok {
		return "", fmt.Errorf("district name: %q: %w", districtID, domain.ErrNotFound)
	}
	return name, nil
}
