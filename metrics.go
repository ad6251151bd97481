package treesort

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records sort runs as Prometheus collectors.
//
// Create one with NewMetrics and pass it to every Sorter that should report
// into the same registry via WithMetrics. A nil *Metrics records nothing.
type Metrics struct {
	sorts          *prometheus.CounterVec // treesort_sorts_total{status}
	phaseDuration  *prometheus.SummaryVec // treesort_phase_duration_seconds{phase}
	rounds         prometheus.Histogram   // treesort_merge_rounds
	elements       prometheus.Counter     // treesort_elements_total
	workerFailures *prometheus.CounterVec // treesort_worker_failures_total{phase}
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		sorts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treesort_sorts_total",
				Help: "Total number of sort runs, partitioned by status.",
			},
			[]string{"status"},
		),
		phaseDuration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "treesort_phase_duration_seconds",
				Help:       "Duration of sort phases in seconds, partitioned by phase.",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"phase"},
		),
		rounds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "treesort_merge_rounds",
				Help:    "Number of tree merge rounds per successful sort.",
				Buckets: prometheus.LinearBuckets(0, 1, 12),
			},
		),
		elements: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "treesort_elements_total",
				Help: "Total number of elements sorted successfully.",
			},
		),
		workerFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treesort_worker_failures_total",
				Help: "Sort runs failed by a worker, partitioned by phase.",
			},
			[]string{"phase"},
		),
	}

	for name, c := range map[string]prometheus.Collector{
		"sorts counter":           m.sorts,
		"phase summary":           m.phaseDuration,
		"rounds histogram":        m.rounds,
		"elements counter":        m.elements,
		"worker failures counter": m.workerFailures,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("treesort: register %s: %w", name, err)
		}
	}
	return m, nil
}

func (m *Metrics) observeSuccess(s Stats) {
	if m == nil {
		return
	}
	m.sorts.WithLabelValues("ok").Inc()
	m.phaseDuration.WithLabelValues(phaseLocalSort).Observe(s.LocalSort.Seconds())
	m.phaseDuration.WithLabelValues(phaseMerge).Observe(s.Merge.Seconds())
	m.rounds.Observe(float64(s.Rounds))
	m.elements.Add(float64(s.Elements))
}

// observeFailure records a failed run. phase is empty when the failure was
// not caused by a worker (cancellation, verification).
func (m *Metrics) observeFailure(phase string) {
	if m == nil {
		return
	}
	m.sorts.WithLabelValues("error").Inc()
	if phase != "" {
		m.workerFailures.WithLabelValues(phase).Inc()
	}
}
