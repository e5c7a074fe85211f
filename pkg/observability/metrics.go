package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine collectors.
type Metrics struct {
	StageEnters        *prometheus.CounterVec
	Generations        *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	SessionsCompleted  prometheus.Counter
	SessionGrowth      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		StageEnters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindbuffer_stage_enter_total",
				Help: "Total number of flow stage entries",
			},
			[]string{"stage"},
		),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindbuffer_generations_total",
				Help: "Total number of content generation calls",
			},
			[]string{"kind", "source", "fallback"},
		),
		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mindbuffer_generation_duration_seconds",
				Help:    "Duration of content generation calls",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
			},
			[]string{"kind"},
		),
		SessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mindbuffer_sessions_completed_total",
			Help: "Total number of archived sessions",
		}),
		SessionGrowth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mindbuffer_session_growth_value",
			Help:    "Growth value of archived sessions",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
	}

	for _, c := range []prometheus.Collector{m.StageEnters, m.Generations, m.GenerationDuration, m.SessionsCompleted, m.SessionGrowth} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnter: func(_ context.Context, e *domain.StageEvent) {
			m.StageEnters.WithLabelValues(e.Stage).Inc()
		},
		OnGenerate: func(_ context.Context, e *domain.GenerationEvent) {
			m.Generations.WithLabelValues(string(e.Kind), e.Source, strconv.FormatBool(e.Fallback)).Inc()
			m.GenerationDuration.WithLabelValues(string(e.Kind)).Observe(e.Duration.Seconds())
		},
		OnSessionComplete: func(_ context.Context, e *domain.SessionEvent) {
			m.SessionsCompleted.Inc()
			m.SessionGrowth.Observe(float64(e.GrowthValue))
		},
	}
}
