package handlers

import (
	"checkpoint-route-service/internal/api/dto"
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/ports"
	"checkpoint-route-service/internal/services"
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// CheckpointHandler exposes checkpoint path search and link editing.
type CheckpointHandler struct {
	Deps    services.RouteDeps
	Linker  ports.CheckpointLinker
	Timeout time.Duration
}

// Paths finds checkpoint routes between two districts.
// Query: departure, destination (required), max, rank.
func (h *CheckpointHandler) Paths(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dep := strings.TrimSpace(q.Get("departure"))
	dest := strings.TrimSpace(q.Get("destination"))
	if dep == "" || dest == "" {
		writeError(w, r, http.StatusBadRequest, "departure and destination are required")
		return
	}

	maxPaths, ok := queryInt(r, "max")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "max must be a non-negative integer")
		return
	}

	rank := false
	if v := q.Get("rank"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "rank must be a boolean")
			return
		}
		rank = b
	}

	ctx, cancel := withTimeout(r.Context(), h.Timeout)
	defer cancel()

	paths, err := services.LookupCheckpointPaths(ctx, services.FindPathsRequest{
		DepartureDistrictID:   dep,
		DestinationDistrictID: dest,
		MaxPaths:              maxPaths,
	}, h.Deps)
	if err != nil {
		writeServiceError(w, r, "checkpoints.Paths", err)
		return
	}
	if rank {
		paths = services.RankPaths(paths)
	}

	writeJSON(w, r, http.StatusOK, dto.ListPathsResponse{
		DepartureDistrictID:   dep,
		DestinationDistrictID: dest,
		Paths:                 toPathResponses(paths),
	})
}

func (h *CheckpointHandler) List(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.Deps.Checkpoints.ListCheckpoints(r.Context())
	if err != nil {
		writeServiceError(w, r, "checkpoints.List", err)
		return
	}

	res := dto.ListCheckpointsResponse{
		Checkpoints: make([]dto.CheckpointResponse, 0, len(nodes)),
	}
	for _, n := range nodes {
		var loc *dto.LocationResponse
		if n.Location != nil {
			loc = &dto.LocationResponse{Lat: n.Location.Lat, Lon: n.Location.Lon}
		}
		res.Checkpoints = append(res.Checkpoints, dto.CheckpointResponse{
			CheckpointID:   n.CheckpointID,
			Name:           n.Name,
			DistrictID:     n.DistrictID,
			DistrictName:   n.DistrictName,
			ProvinceName:   n.ProvinceName,
			CheckpointType: string(n.CheckpointType),
			Location:       loc,
			Links: dto.LinksResponse{
				NorthernNext: optional(n.NorthernNext),
				SouthernNext: optional(n.SouthernNext),
				EasternNext:  optional(n.EasternNext),
				WesternNext:  optional(n.WesternNext),
			},
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Link connects {id} to the body's neighbor in {direction} and writes the
// reverse link on the neighbor.
func (h *CheckpointHandler) Link(w http.ResponseWriter, r *http.Request) {
	dir, err := domain.ParseDirection(chi.URLParam(r, "direction"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "direction must be one of north, south, east, west")
		return
	}

	var req dto.LinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err = services.LinkCheckpoints(r.Context(), h.Linker, h.Deps.Cache,
		chi.URLParam(r, "id"), req.NeighborID, dir)
	if err != nil {
		writeServiceError(w, r, "checkpoints.Link", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateLinks overwrites the four link slots of {id} as sent. Neighbors'
// reverse slots are not touched.
func (h *CheckpointHandler) UpdateLinks(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateLinksRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	links := domain.Links{
		NorthernNext: req.NorthernNext,
		SouthernNext: req.SouthernNext,
		EasternNext:  req.EasternNext,
		WesternNext:  req.WesternNext,
	}
	if err := services.ReplaceCheckpointLinks(r.Context(), h.Linker, h.Deps.Cache, chi.URLParam(r, "id"), links); err != nil {
		writeServiceError(w, r, "checkpoints.UpdateLinks", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CheckpointHandler) Unlink(w http.ResponseWriter, r *http.Request) {
	dir, err := domain.ParseDirection(chi.URLParam(r, "direction"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "direction must be one of north, south, east, west")
		return
	}

	if err := services.UnlinkCheckpoint(r.Context(), h.Linker, h.Deps.Cache, chi.URLParam(r, "id"), dir); err != nil {
		writeServiceError(w, r, "checkpoints.Unlink", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func optional(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
