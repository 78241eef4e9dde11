package ports

import (
	"checkpoint-route-service/internal/domain"
	"context"
)

// Contract for road distances between checkpoint locations.
type DistanceProvider interface {
	// Return the distance in meters from origin to each destination,
	// in destination order.
	GetDistances(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]float64, error)
}
