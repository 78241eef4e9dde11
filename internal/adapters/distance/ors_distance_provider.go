package distance

import (
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/platform/obs"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultORSBaseURL = "https://api.openrouteservice.org"
	defaultORSProfile = "driving-car"

	// Destinations per matrix request.
	matrixChunkSize = 50
)

// ORSDistanceProvider implements DistanceProvider using OpenRouteService.
//
// Each origin is sent as one matrix row; long destination lists are split
// into chunks. Transient failures are retried with backoff.
//
// The provider is safe for concurrent use.
type ORSDistanceProvider struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	profile     string
	maxAttempts int
	backoff     time.Duration
}

type ORSOption func(*ORSDistanceProvider)

func WithBaseURL(u string) ORSOption {
	return func(o *ORSDistanceProvider) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithProfile selects the ORS routing profile, e.g. driving-hgv for trucks.
func WithProfile(p string) ORSOption {
	return func(o *ORSDistanceProvider) { o.profile = p }
}

func WithHTTPClient(c *http.Client) ORSOption {
	return func(o *ORSDistanceProvider) { o.session = c }
}

func WithRetry(maxAttempts int, backoff time.Duration) ORSOption {
	return func(o *ORSDistanceProvider) {
		if maxAttempts > 0 {
			o.maxAttempts = maxAttempts
		}
		o.backoff = backoff
	}
}

func NewORSDistanceProvider(apiKey string, opts ...ORSOption) (*ORSDistanceProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSDistanceProvider{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     defaultORSBaseURL,
		profile:     defaultORSProfile,
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

// GetDistances returns road distances in meters from origin to each
// destination, in destination order.
func (o *ORSDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []float64, err error) {
	defer obs.Time(ctx, "ors.GetDistances")(&err)

	out := make([]float64, 0, len(destinations))
	for start := 0; start < len(destinations); start += matrixChunkSize {
		end := min(start+matrixChunkSize, len(destinations))

		row, err := o.fetchMatrixRow(ctx, origin, destinations[start:end])
		if err != nil {
			return nil, fmt.Errorf("ORS distances for destinations %d-%d: %w", start+1, end, err)
		}
		out = append(out, row...)
	}

	return out, nil
}
