package observability

import (
	"context"
	"errors"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "longboard"

// Metrics holds the Prometheus collectors for navigation events.
type Metrics struct {
	Gestures       *prometheus.CounterVec
	Samples        *prometheus.CounterVec
	Updates        *prometheus.CounterVec
	UpdateDuration prometheus.Histogram
	Kinks          prometheus.Histogram
	PreviewSets    prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Gestures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gestures_total",
			Help:      "Finished drag gestures by outcome.",
		}, []string{"outcome"}),
		Samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gesture_samples_total",
			Help:      "Pointer samples applied or dropped.",
		}, []string{"result"}),
		Updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "glyph_updates_total",
			Help:      "Glyph regenerations by result.",
		}, []string{"result"}),
		UpdateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "glyph_update_duration_seconds",
			Help:      "Time spent generating and analysing a glyph.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		Kinks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "glyph_kinks",
			Help:      "Kinks found per successful update.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16},
		}),
		PreviewSets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_sets_total",
			Help:      "Preview locations set by explicit actions.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Gestures, m.Samples, m.Updates, m.UpdateDuration, m.Kinks, m.PreviewSets)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGestureEnd: func(_ context.Context, e *domain.GestureEvent) {
			outcome := "cancelled"
			if e.Committed {
				outcome = "committed"
			}
			m.Gestures.WithLabelValues(outcome).Inc()
		},
		OnSample: func(_ context.Context, e *domain.GestureEvent) {
			result := "applied"
			if e.Dropped {
				result = "dropped"
			}
			m.Samples.WithLabelValues(result).Inc()
		},
		OnUpdate: func(_ context.Context, e *domain.UpdateEvent) {
			m.Updates.WithLabelValues("ok").Inc()
			m.UpdateDuration.Observe(e.Duration.Seconds())
			m.Kinks.Observe(float64(e.Kinks))
		},
		OnUpdateFailed: func(_ context.Context, e *domain.UpdateEvent) {
			result := "error"
			if errors.Is(e.Err, domain.ErrUnreachableLocation) {
				result = "unreachable"
			}
			m.Updates.WithLabelValues(result).Inc()
			m.UpdateDuration.Observe(e.Duration.Seconds())
		},
		OnPreviewSet: func(context.Context, *domain.GestureEvent) {
			m.PreviewSets.Inc()
		},
	}
}
