package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	TurnsTotal          *prometheus.CounterVec
	ExtractionFallbacks prometheus.Counter
	LLMRetries          prometheus.Counter
	CatalogErrors       prometheus.Counter
	TurnLatency         prometheus.Histogram
	ActiveConnections   prometheus.Gauge

	turnStages *turnStageWindow
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TurnsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Handled user turns by outcome.",
		}, []string{"outcome"}),
		ExtractionFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_fallbacks_total",
			Help:      "Intent extractions that fell back to the short-utterance heuristic.",
		}),
		LLMRetries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_retries_total",
			Help:      "Chat completion attempts retried after rate limiting.",
		}),
		CatalogErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_errors_total",
			Help:      "Catalog lookups that failed and were served as empty results.",
		}),
		TurnLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_latency_seconds",
			Help:      "End-to-end latency of one user turn.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		ActiveConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Open websocket chat connections.",
		}),
		turnStages: newTurnStageWindow(256),
	}
}

func (m *Metrics) ObserveTurnLatency(d time.Duration) {
	m.TurnLatency.Observe(d.Seconds())
	m.turnStages.Observe("turn_total", float64(d.Milliseconds()))
}

// ObserveTurnStage records one pipeline-stage latency sample.
func (m *Metrics) ObserveTurnStage(stage string, d time.Duration) {
	m.turnStages.Observe(stage, float64(d.Milliseconds()))
}

func (m *Metrics) ObserveTurnIndicator(name string) {
	m.turnStages.ObserveIndicator(name)
}

func (m *Metrics) SnapshotTurnStages() TurnStageSnapshot {
	return m.turnStages.Snapshot()
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
