// Package metrics holds the Prometheus instruments of the scheduled tasks.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

const namespace = "listing_manager"

// Cycle outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeTransient = "transient"
	OutcomeFailure   = "failure"
)

// TaskMetrics contains every instrument the scheduler records
type TaskMetrics struct {
	Registry *prometheus.Registry

	CyclesTotal     *prometheus.CounterVec
	CycleDuration   *prometheus.HistogramVec
	SkippedTotal    *prometheus.CounterVec
	ActionsTotal    *prometheus.CounterVec
	OrdersFulfilled prometheus.Counter
}

// NewTaskMetrics registers all instruments on a private registry
func NewTaskMetrics() *TaskMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &TaskMetrics{
		Registry: reg,

		CyclesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cycles_total",
				Help:      "Completed task cycles by outcome",
			},
			[]string{"task", "outcome"},
		),

		CycleDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cycle_duration_seconds",
				Help:      "Wall time of one task cycle",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"task"},
		),

		// Ticks dropped because the previous cycle of the same task was still running
		SkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "skipped_cycles_total",
				Help:      "Ticks skipped because a cycle was already running",
			},
			[]string{"task"},
		),

		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sweep_actions_total",
				Help:      "Devices acted on by liveness sweeps",
			},
			[]string{"task", "reason"},
		),

		OrdersFulfilled: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_fulfilled_total",
				Help:      "Orders fulfilled",
			},
		),
	}
}

// ObserveCycle records one finished cycle
func (m *TaskMetrics) ObserveCycle(task, outcome string, elapsed time.Duration) {
	m.CyclesTotal.WithLabelValues(task, outcome).Inc()
	m.CycleDuration.WithLabelValues(task).Observe(elapsed.Seconds())
}

// ObserveSkip records a tick dropped by the overlap guard
func (m *TaskMetrics) ObserveSkip(task string) {
	m.SkippedTotal.WithLabelValues(task).Inc()
}

// ObserveAction records a sweep action
func (m *TaskMetrics) ObserveAction(task, reason string) {
	m.ActionsTotal.WithLabelValues(task, reason).Inc()
}

// Module provides the metrics FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewTaskMetrics),
)
