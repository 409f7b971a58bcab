package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records draft generation outcomes. A nil *Metrics records nothing.
type Metrics struct {
	generated      *prometheus.CounterVec
	renderFailures prometheus.Counter
	renderDuration prometheus.Histogram
}

// NewMetrics creates the draft metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drafts_generated_total",
				Help: "Total number of drafts generated, by resolved category.",
			},
			[]string{"category"},
		),
		renderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draft_render_failures_total",
			Help: "Total number of drafts that could not be laid out.",
		}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "draft_render_duration_seconds",
			Help:    "Time spent laying out a draft PDF.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}

	for _, c := range []prometheus.Collector{m.generated, m.renderFailures, m.renderDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeRender(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(d.Seconds())
	if err != nil {
		m.renderFailures.Inc()
	}
}

func (m *Metrics) incGenerated(category string) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(category).Inc()
}
