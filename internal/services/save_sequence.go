package services

import (
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/platform/obs"
	"checkpoint-route-service/internal/ports"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type SaveSequenceRequest struct {
	ShipmentID          string
	ShipmentDirectionID string
	CheckpointIDs       []string
	// SyncID tags every row of one save. A fresh id is generated when empty.
	SyncID string
	// Label defaults to SYSTEM_GENERATED.
	Label domain.PathLabel
}

// SaveCheckpointSequence replaces the committed route of one shipment leg.
//
// Every existing row for (shipment, direction) is removed and one row per
// checkpoint id is written with a 1-based SequenceOrder. The repository does
// both steps atomically, so repeated saves of the same ids always leave
// exactly len(ids) rows and a failed save leaves the previous route intact.
//
// Failures are reported through SaveResult; no error is returned.
func SaveCheckpointSequence(
	ctx context.Context,
	repo ports.SequenceRepository,
	metrics *obs.Metrics,
	req SaveSequenceRequest,
) (res domain.SaveResult) {
	var err error
	defer obs.Time(ctx, "sequence.Save")(&err)
	defer func() { metrics.ObserveSequenceSave(res.Success) }()

	if strings.TrimSpace(req.ShipmentID) == "" || strings.TrimSpace(req.ShipmentDirectionID) == "" {
		return domain.SaveResult{Success: false, Message: "shipment id and shipment direction id are required"}
	}

	label := req.Label
	if label == "" {
		label = domain.PathSystemGenerated
	}
	if !label.Valid() {
		return domain.SaveResult{Success: false, Message: fmt.Sprintf("unknown path label %q", label)}
	}

	syncID := strings.TrimSpace(req.SyncID)
	if syncID == "" {
		syncID = uuid.NewString()
	}

	now := time.Now().UTC()
	rows := make([]domain.ShipmentCheckpointSequence, 0, len(req.CheckpointIDs))
	for i, id := range req.CheckpointIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return domain.SaveResult{Success: false, Message: fmt.Sprintf("checkpoint id at position %d is empty", i+1)}
		}
		rows = append(rows, domain.ShipmentCheckpointSequence{
			ShipmentID:          req.ShipmentID,
			ShipmentDirectionID: req.ShipmentDirectionID,
			CheckpointID:        id,
			SequenceOrder:       i + 1,
			SyncID:              syncID,
			Label:               label,
			CreatedAt:           now,
		})
	}

	if err = repo.ReplaceSequence(ctx, req.ShipmentID, req.ShipmentDirectionID, rows); err != nil {
		log.WithFields(log.Fields{
			"shipment_id":  req.ShipmentID,
			"direction_id": req.ShipmentDirectionID,
		}).WithError(err).Error("save checkpoint sequence failed")
		return domain.SaveResult{Success: false, Message: "failed to save checkpoint sequence"}
	}

	return domain.SaveResult{
		Success: true,
		Message: fmt.Sprintf("saved %d checkpoints", len(rows)),
	}
}
