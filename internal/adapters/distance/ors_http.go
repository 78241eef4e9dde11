package distance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// maxRetryAfter caps how long a Retry-After header may stall a route search.
const maxRetryAfter = 5 * time.Second

// orsStatusError is a non-2xx ORS reply. RetryAfter is set from the
// Retry-After header when the server sent one in seconds.
type orsStatusError struct {
	Code       int
	Body       string
	RetryAfter time.Duration
}

func (e *orsStatusError) Error() string {
	return fmt.Sprintf("ors status %d: %s", e.Code, e.Body)
}

// postJSON sends payload to endpoint, retrying throttling, 5xx replies and
// network errors with exponential backoff. The caller closes the body.
func (o *ORSDistanceProvider) postJSON(ctx context.Context, endpoint string, payload []byte) (*http.Response, error) {
	wait := o.backoff

	var lastErr error
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := o.send(ctx, endpoint, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == o.maxAttempts {
			break
		}

		delay := wait
		var se *orsStatusError
		if errors.As(err, &se) && se.RetryAfter > delay {
			delay = min(se.RetryAfter, maxRetryAfter)
		}
		logrus.WithFields(logrus.Fields{
			"attempt": attempt,
			"delay":   delay,
		}).WithError(err).Debug("ors: retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}

	return nil, lastErr
}

func (o *ORSDistanceProvider) send(ctx context.Context, endpoint string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 400 {
		return resp, nil
	}

	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	se := &orsStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		se.RetryAfter = time.Duration(secs) * time.Second
	}
	return nil, se
}

func retryable(err error) bool {
	var se *orsStatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
