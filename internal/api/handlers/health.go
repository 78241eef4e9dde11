package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthHandler reports liveness and, when Ping is set, database reachability.
type HealthHandler struct {
	Ping func(ctx context.Context) error
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("health: database unreachable")
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{
				"status":   "unavailable",
				"database": "unreachable",
			})
			return
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
