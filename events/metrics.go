package events

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors a Kernel updates. A nil *Metrics
// records nothing.
type Metrics struct {
	raisedTotal   *prometheus.CounterVec
	handlersTotal *prometheus.CounterVec
	faultsTotal   *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewMetrics creates and registers the kernel collectors on reg under the
// given namespace. A nil reg uses prometheus.DefaultRegisterer.
//
// Metrics collected:
//   - <ns>_events_raised_total: events raised with at least one handler, by event
//   - <ns>_events_handler_calls_total: handler invocations, by event
//   - <ns>_events_handler_faults_total: handler errors and panics, by event, owner and kind
//   - <ns>_events_dispatch_duration_seconds: time to run all handlers of one Raise, by event
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		raisedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "raised_total",
			Help:      "Total number of events raised with at least one handler",
		}, []string{"event"}),

		handlersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "handler_calls_total",
			Help:      "Total number of handler invocations",
		}, []string{"event"}),

		faultsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "handler_faults_total",
			Help:      "Total number of handler errors and panics",
		}, []string{"event", "owner", "kind"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent running every handler of one dispatch",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		}, []string{"event"}),
	}
}

func (m *Metrics) raised(event string, handlers int, d time.Duration) {
	if m == nil {
		return
	}
	m.raisedTotal.WithLabelValues(event).Inc()
	m.handlersTotal.WithLabelValues(event).Add(float64(handlers))
	m.duration.WithLabelValues(event).Observe(d.Seconds())
}

func (m *Metrics) fault(event, owner string, err error) {
	if m == nil {
		return
	}
	kind := "error"
	if errors.Is(err, ErrHandlerPanic) {
		kind = "panic"
	}
	m.faultsTotal.WithLabelValues(event, owner, kind).Inc()
}
