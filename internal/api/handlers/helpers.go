package handlers

import (
	"checkpoint-route-service/internal/api/dto"
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithFields(log.Fields{
			"req_id": obs.RequestID(r.Context()),
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Warn("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps a service error to a status code. Unexpected
// errors are logged and reported as 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrSelfLink), errors.Is(err, domain.ErrInvalidDirection):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnresolvedDirection):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "path search timed out")
	default:
		log.WithFields(log.Fields{
			"req_id": obs.RequestID(r.Context()),
			"op":     op,
		}).WithError(err).Error("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads exactly one JSON object into dst and validates it.
// On failure it writes a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	if err := requestValidate.Struct(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, key string) (int, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func toPathResponses(paths []domain.CheckpointPath) []dto.CheckpointPathResponse {
	out := make([]dto.CheckpointPathResponse, 0, len(paths))
	for _, p := range paths {
		ids := p.CheckpointIDs
		if ids == nil {
			ids = []string{}
		}
		out = append(out, dto.CheckpointPathResponse{
			Path:          p.Path,
			CheckpointIDs: ids,
			TotalDistance: p.TotalDistance,
			Verified:      p.Verified,
		})
	}
	return out
}
