package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by engine hooks.
type Metrics struct {
	Queries  *prometheus.CounterVec
	Steps    *prometheus.CounterVec
	Forks    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_queries_total",
				Help: "Total number of language queries by machine kind and verdict",
			},
			[]string{"kind", "accepted"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_steps_total",
				Help: "Total number of applied moves",
			},
			[]string{"kind"},
		),
		Forks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_forks_total",
				Help: "Total number of nondeterministic branch points",
			},
			[]string{"kind"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_query_duration_seconds",
				Help:    "Duration of language queries",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Queries, m.Steps, m.Forks, m.Duration)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(string(e.Kind)).Inc()
		},
		OnFork: func(_ context.Context, e *domain.ForkEvent) {
			m.Forks.WithLabelValues(string(e.Kind)).Inc()
		},
		OnAccept: func(_ context.Context, e *domain.QueryEvent) {
			accepted := strconv.FormatBool(e.Accepted)
			if e.Err != nil {
				accepted = "error"
			}
			m.Queries.WithLabelValues(string(e.Kind), accepted).Inc()
			m.Duration.WithLabelValues(string(e.Kind)).Observe(e.Duration.Seconds())
		},
	}
}
