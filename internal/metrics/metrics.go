package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidURL      = "invalid_url"
	OutcomeFetchFailed     = "fetch_failed"
	OutcomeGenerateFailed  = "generation_failed"
	OutcomePersistFailed   = "persist_failed"
	OutcomeSerializeFailed = "serialize_failed"
)

// Pipeline stages.
const (
	StageFetch    = "fetch"
	StageGenerate = "generate"
	StagePersist  = "persist"
)

// Metrics holds the quiz pipeline collectors. A nil *Metrics records nothing.
type Metrics struct {
	GenerationTotal *prometheus.CounterVec
	StageDuration   *prometheus.HistogramVec
	DetailCache     *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GenerationTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wikiquiz_generation_total",
			Help: "Quiz generation requests by outcome",
		}, []string{"outcome"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wikiquiz_pipeline_stage_seconds",
			Help:    "Duration of each generation pipeline stage",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		}, []string{"stage"}),
		DetailCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wikiquiz_detail_cache_total",
			Help: "Quiz detail cache lookups by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.GenerationTotal.WithLabelValues(outcome).Inc()
}

// ObserveStage records the time elapsed since start for stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// RecordCache records a detail cache "hit", "miss" or "error".
func (m *Metrics) RecordCache(result string) {
	if m == nil {
		return
	}
	m.DetailCache.WithLabelValues(result).Inc()
}
