package obs

import (
	"checkpoint-route-service/internal/domain"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsObservePathSearch(t *testing.T) {
	m := NewMetrics()

	m.ObservePathSearch([]domain.CheckpointPath{domain.FallbackPath("A", "B")})
	m.ObservePathSearch([]domain.CheckpointPath{
		{Path: []string{"A", "B"}, CheckpointIDs: []string{"1", "2"}, Verified: true},
	})
	m.ObservePathSearch([]domain.CheckpointPath{
		{Path: []string{"A", "B"}, CheckpointIDs: []string{"1", "2"}, Verified: true},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.pathSearches.WithLabelValues("fallback")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.pathSearches.WithLabelValues("verified")))
}

func TestMetricsNilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObservePathSearch(nil)
	m.ObserveCacheLookup(true)
	m.ObserveSequenceSave(false)
	assert.NotNil(t, m.Handler())
}

func TestMetricsSequenceSaves(t *testing.T) {
	m := NewMetrics()
	m.ObserveSequenceSave(true)
	m.ObserveSequenceSave(false)
	m.ObserveSequenceSave(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sequenceSaves.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sequenceSaves.WithLabelValues("failure")))
}
