package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Station outcomes used as the "outcome" label of StationsProcessed.
const (
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
	OutcomeSkipped  = "skipped"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

// Metrics holds the Prometheus collectors of one crawl run.
type Metrics struct {
	StationsProcessed *prometheus.CounterVec // labels: mode, outcome
	RowsEmitted       *prometheus.CounterVec // labels: mode
	FetchFailures     prometheus.Counter
	FetchDuration     prometheus.Histogram

	registry *prometheus.Registry
}

func newMetrics() *Metrics {
	return &Metrics{
		StationsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pegel_crawler",
			Name:      "stations_processed_total",
			Help:      "Stations processed by mode and outcome.",
		}, []string{"mode", "outcome"}),
		RowsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pegel_crawler",
			Name:      "rows_emitted_total",
			Help:      "Records extracted from station pages by mode.",
		}, []string{"mode"}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pegel_crawler",
			Name:      "fetch_failures_total",
			Help:      "Page fetches that failed with a transport error or non-success status.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pegel_crawler",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a single page fetch.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// NewMetrics creates the run metrics on a dedicated registry so they can be
// written out with WriteTextfile at the end of the run.
func NewMetrics() *Metrics {
	m := newMetrics()
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		m.StationsProcessed,
		m.RowsEmitted,
		m.FetchFailures,
		m.FetchDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// WriteTextfile writes all registered metrics to path in the text exposition
// format read by the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m.registry == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
