// Package metrics exports editor and compiler instrumentation as Prometheus
// collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pagebuilder"

// Outcome labels for persistence calls.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Recorder receives editor events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveCompile(breakpoint string, blocks int, duration time.Duration)
	IncMutation(operation string)
	ObservePersist(action, outcome string, duration time.Duration)
	IncUndoRedo(direction string)
}

// Metrics holds the page builder collectors.
type Metrics struct {
	CompileDuration *prometheus.HistogramVec
	CompiledBlocks  prometheus.Histogram
	Mutations       *prometheus.CounterVec
	PersistDuration *prometheus.HistogramVec
	PersistTotal    *prometheus.CounterVec
	HistoryMoves    *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	m := &Metrics{}

	m.CompileDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "compile_duration_seconds",
		Help:      "Time to compile a page preview",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}, []string{"breakpoint"})

	m.CompiledBlocks = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "compile_blocks",
		Help:      "Number of blocks per compiled preview",
		Buckets:   []float64{1, 5, 10, 25, 50, 100},
	})

	m.Mutations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Document mutations applied by the editor",
	}, []string{"operation"})

	m.PersistDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "persist_duration_seconds",
		Help:      "Time spent in save and publish calls",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})

	m.PersistTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persist_total",
		Help:      "Save and publish attempts by outcome",
	}, []string{"action", "outcome"})

	m.HistoryMoves = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_moves_total",
		Help:      "Undo and redo steps taken",
	}, []string{"direction"})

	return m
}

func (m *Metrics) ObserveCompile(breakpoint string, blocks int, duration time.Duration) {
	m.CompileDuration.WithLabelValues(breakpoint).Observe(duration.Seconds())
	m.CompiledBlocks.Observe(float64(blocks))
}

func (m *Metrics) IncMutation(operation string) {
	m.Mutations.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObservePersist(action, outcome string, duration time.Duration) {
	m.PersistDuration.WithLabelValues(action).Observe(duration.Seconds())
	m.PersistTotal.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) IncUndoRedo(direction string) {
	m.HistoryMoves.WithLabelValues(direction).Inc()
}

// Noop discards every observation.
func Noop() Recorder {
	return noopRecorder{}
}

type noopRecorder struct{}

func (noopRecorder) ObserveCompile(string, int, time.Duration)    {}
func (noopRecorder) IncMutation(string)                           {}
func (noopRecorder) ObservePersist(string, string, time.Duration) {}
func (noopRecorder) IncUndoRedo(string)                           {}

var (
	_ Recorder = (*Metrics)(nil)
	_ Recorder = noopRecorder{}
)
