package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordOutcome(OutcomeSuccess)
	m.RecordOutcome(OutcomeSuccess)
	m.RecordOutcome(OutcomeInvalidURL)
	m.RecordCache("hit")
	m.ObserveStage(StageFetch, time.Now().Add(-time.Second))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GenerationTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationTotal.WithLabelValues(OutcomeInvalidURL)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DetailCache.WithLabelValues("hit")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StageDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordOutcome(OutcomeSuccess)
		m.ObserveStage(StageGenerate, time.Now())
		m.RecordCache("miss")
	})
}
