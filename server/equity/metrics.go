package equity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	started   prometheus.Counter
	outcomes  *prometheus.CounterVec
	durations prometheus.Histogram
}

func (m *metrics) SessionStarted() { m.started.Inc() }

func (m *metrics) SessionSettled(outcome string, seconds float64) {
	m.outcomes.WithLabelValues(outcome).Inc()
	m.durations.Observe(seconds)
}

var Metrics = &metrics{
	started: promauto.NewCounter(prometheus.CounterOpts{
		Name: "equity_sessions_started_total",
		Help: "Total number of equity retrieval sessions started",
	}),
	outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "equity_sessions_settled_total",
		Help: "Equity retrieval sessions by outcome (ready, failed, discarded)",
	}, []string{"outcome"}),
	durations: promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "equity_request_duration_seconds",
		Help:    "Time from session start until the equity service answered",
		Buckets: prometheus.DefBuckets,
	}),
}
