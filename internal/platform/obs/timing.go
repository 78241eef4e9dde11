package obs

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// Time logs the duration of an operation. Use as:
//
//	defer obs.Time(ctx, "op")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		entry := log.WithFields(log.Fields{
			"req_id": reqID,
			"op":     name,
			"dur_ms": time.Since(start).Milliseconds(),
		})

		if errp != nil && *errp != nil {
			entry.WithError(*errp).Warn("operation failed")
			return
		}
		entry.Debug("operation done")
	}
}
