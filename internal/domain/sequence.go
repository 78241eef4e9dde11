package domain

import "time"

// Why a route was recorded or changed. Audit metadata only; the path
// finder never reads it.
type PathLabel string

const (
	PathSystemGenerated             PathLabel = "SYSTEM_GENERATED"
	PathChangedDueToRejection       PathLabel = "CHANGED_DUE_TO_REJECTION"
	PathChangedUnexpectedlyByDriver PathLabel = "CHANGED_UNEXPECTEDLY_BY_DRIVER"
)

func (l PathLabel) Valid() bool {
	switch l {
	case PathSystemGenerated, PathChangedDueToRejection, PathChangedUnexpectedlyByDriver:
		return true
	}
	return false
}

// One row of the committed route for a shipment leg.
// SequenceOrder is 1-based and unique per (ShipmentID, ShipmentDirectionID).
type ShipmentCheckpointSequence struct {
	ShipmentID          string
	ShipmentDirectionID string
	CheckpointID        string
	SequenceOrder       int
	SyncID              string
	Label               PathLabel
	CreatedAt           time.Time
}

// SaveResult reports the outcome of a sequence save. Failures are reported
// here rather than as errors; callers must check Success.
type SaveResult struct {
	Success bool
	Message string
}

// NextCheckpoint returns the checkpoint that follows afterCheckpointID in an
// ordered sequence. An empty afterCheckpointID yields the first checkpoint.
// ok is false when the sequence is exhausted or afterCheckpointID is absent.
func NextCheckpoint(seq []ShipmentCheckpointSequence, afterCheckpointID string) (string, bool) {
	if len(seq) == 0 {
		return "", false
	}
	if afterCheckpointID == "" {
		return seq[0].CheckpointID, true
	}
	for i, row := range seq {
		if row.CheckpointID == afterCheckpointID {
			if i+1 < len(seq) {
				return seq[i+1].CheckpointID, true
			}
			return "", false
		}
	}
	return "", false
}
