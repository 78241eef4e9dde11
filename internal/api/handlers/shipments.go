package handlers

import (
	"checkpoint-route-service/internal/api/dto"
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/platform/obs"
	"checkpoint-route-service/internal/ports"
	"checkpoint-route-service/internal/services"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// ShipmentHandler serves route lookups and committed checkpoint sequences
// for one shipment leg.
type ShipmentHandler struct {
	Deps      services.RouteDeps
	Sequences ports.SequenceRepository
	Metrics   *obs.Metrics
	Timeout   time.Duration
}

func (h *ShipmentHandler) Paths(w http.ResponseWriter, r *http.Request) {
	maxPaths, ok := queryInt(r, "max")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "max must be a non-negative integer")
		return
	}

	ctx, cancel := withTimeout(r.Context(), h.Timeout)
	defer cancel()

	res, err := services.LookupDirectionPaths(ctx,
		chi.URLParam(r, "shipmentID"), chi.URLParam(r, "directionID"), maxPaths, h.Deps)
	if err != nil {
		writeServiceError(w, r, "shipments.Paths", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListPathsResponse{
		DepartureDistrictID:   res.DepartureDistrictID,
		DestinationDistrictID: res.DestinationDistrictID,
		Paths:                 toPathResponses(services.RankPaths(res.Paths)),
	})
}

// SaveSequence replaces the committed checkpoint sequence of the leg.
func (h *ShipmentHandler) SaveSequence(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveSequenceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ids := make([]string, 0, len(req.CheckpointIDs))
	for _, id := range req.CheckpointIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			writeError(w, r, http.StatusBadRequest, "checkpoint_ids must not contain blank ids")
			return
		}
		ids = append(ids, id)
	}

	res := services.SaveCheckpointSequence(r.Context(), h.Sequences, h.Metrics, services.SaveSequenceRequest{
		ShipmentID:          chi.URLParam(r, "shipmentID"),
		ShipmentDirectionID: chi.URLParam(r, "directionID"),
		CheckpointIDs:       ids,
		SyncID:              req.SyncID,
		Label:               domain.PathLabel(req.Label),
	})

	status := http.StatusOK
	if !res.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, r, status, dto.SaveSequenceResponse{Success: res.Success, Message: res.Message})
}

// Sequence returns the stored rows in order. With ?after=<checkpoint id>
// the response names the checkpoint that follows it.
func (h *ShipmentHandler) Sequence(w http.ResponseWriter, r *http.Request) {
	shipmentID := chi.URLParam(r, "shipmentID")
	directionID := chi.URLParam(r, "directionID")

	rows, err := h.Sequences.ListSequence(r.Context(), shipmentID, directionID)
	if err != nil {
		writeServiceError(w, r, "shipments.Sequence", err)
		return
	}

	res := dto.SequenceResponse{
		ShipmentID:          shipmentID,
		ShipmentDirectionID: directionID,
		Checkpoints:         make([]dto.SequenceRowResponse, 0, len(rows)),
	}
	for _, row := range rows {
		res.Checkpoints = append(res.Checkpoints, dto.SequenceRowResponse{
			CheckpointID:  row.CheckpointID,
			SequenceOrder: row.SequenceOrder,
			SyncID:        row.SyncID,
			Label:         string(row.Label),
			CreatedAt:     row.CreatedAt,
		})
	}
	if next, ok := domain.NextCheckpoint(rows, strings.TrimSpace(r.URL.Query().Get("after"))); ok {
		res.NextCheckpointID = &next
	}

	writeJSON(w, r, http.StatusOK, res)
}
