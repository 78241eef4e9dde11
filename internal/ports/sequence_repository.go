package ports

import (
	"checkpoint-route-service/internal/domain"
	"context"
)

//go:generate mockgen -source=sequence_repository.go -destination=mocks/mock_sequence_repository.go -package=mocks

// Port: durable storage for committed checkpoint sequences.
type SequenceRepository interface {
	// Replace every row of the shipment leg with rows, atomically.
	ReplaceSequence(ctx context.Context, shipmentID, directionID string, rows []domain.ShipmentCheckpointSequence) error
	// Return the rows of a shipment leg ordered by SequenceOrder.
	ListSequence(ctx context.Context, shipmentID, directionID string) ([]domain.ShipmentCheckpointSequence, error)
}
