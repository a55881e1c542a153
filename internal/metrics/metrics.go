// Package metrics records validation counters for Prometheus.
//
// A Recorder owns its registry so that repeated runs in one process (and
// tests) never collide on the global default registry. The CLI writes the
// registry to a node_exporter textfile after a batch.
package metrics

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

const namespace = "ddexcheck"

// durationBuckets cover single small messages up to large catalogue feeds.
var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Recorder counts documents and issues. It is safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	documents *prometheus.CounterVec
	issues    *prometheus.CounterVec
	duration  prometheus.Histogram
	lastRun   prometheus.Gauge

	mu      sync.Mutex
	batches int
}

// NewRecorder creates a recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		documents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_total",
				Help:      "Documents validated, by outcome",
			},
			[]string{"valid"},
		),
		issues: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "issues_total",
				Help:      "Validation issues reported, by severity and code",
			},
			[]string{"severity", "code"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_seconds",
				Help:      "Time taken to validate one document",
				Buckets:   durationBuckets,
			},
		),
		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_success_ratio",
				Help:      "Share of valid documents in the most recent batch (0-1)",
			},
		),
	}
}

// Observe records one result.
func (r *Recorder) Observe(res ddex.Result) {
	r.documents.WithLabelValues(strconv.FormatBool(res.Valid)).Inc()
	for _, issue := range res.Issues() {
		code := issue.Code
		if code == "" {
			code = "unknown"
		}
		r.issues.WithLabelValues(string(issue.Severity), code).Inc()
	}
	if res.Duration > 0 {
		r.duration.Observe(res.Duration.Seconds())
	}
}

// ObserveBatch records every result of a batch and the batch success ratio.
func (r *Recorder) ObserveBatch(results []ddex.Result, stats ddex.StatisticsSummary) {
	for _, res := range results {
		r.Observe(res)
	}
	r.lastRun.Set(stats.SuccessRate / 100)

	r.mu.Lock()
	r.batches++
	r.mu.Unlock()
}

// Batches returns the number of batches observed.
func (r *Recorder) Batches() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batches
}

// Registry exposes the recorder's registry as a Gatherer.
func (r *Recorder) Registry() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics in the text exposition format to path,
// atomically, for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
