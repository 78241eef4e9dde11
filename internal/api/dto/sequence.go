package dto

import "time"

type SaveSequenceRequest struct {
	CheckpointIDs []string `json:"checkpoint_ids" validate:"required,dive,required,max=64"`
	SyncID        string   `json:"sync_id" validate:"omitempty,max=64"`
	Label         string   `json:"label" validate:"omitempty,pathLabel"`
}

type SaveSequenceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SequenceRowResponse struct {
	CheckpointID  string    `json:"checkpoint_id"`
	SequenceOrder int       `json:"sequence_order"`
	SyncID        string    `json:"sync_id"`
	Label         string    `json:"label"`
	CreatedAt     time.Time `json:"created_at"`
}

type SequenceResponse struct {
	ShipmentID          string                `json:"shipment_id"`
	ShipmentDirectionID string                `json:"shipment_direction_id"`
	Checkpoints         []SequenceRowResponse `json:"checkpoints"`
	// NextCheckpointID is the first checkpoint still to be inspected, or
	// the one after the `after` query parameter.
	NextCheckpointID *string `json:"next_checkpoint_id"`
}
