package handlers

import (
	"checkpoint-route-service/internal/api/dto"
	"checkpoint-route-service/internal/zones"
	"context"
	"net/http"
	"strings"
	"time"
)

// ZoneHandler serves coarse district-level routes from the zone graphs.
type ZoneHandler struct {
	Resolver *zones.Resolver
	Timeout  time.Duration
}

func (h *ZoneHandler) Paths(w http.ResponseWriter, r *http.Request) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		writeError(w, r, http.StatusBadRequest, "from and to are required")
		return
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	res, err := h.Resolver.Paths(ctx, from, to)
	if err != nil {
		writeServiceError(w, r, "zones.Paths", err)
		return
	}

	all := res.AllPaths
	if all == nil {
		all = [][]string{}
	}
	writeJSON(w, r, http.StatusOK, dto.ZonePathsResponse{
		From:         from,
		To:           to,
		ShortestPath: res.ShortestPath,
		FewestHops:   res.FewestHops,
		AllPaths:     all,
	})
}
