package session

import (
	"github.com/opd-ai/orion/packets"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the relay collectors. A nil *Metrics records nothing.
type Metrics struct {
	packetsTotal  *prometheus.CounterVec
	bytesTotal    *prometheus.CounterVec
	droppedTotal  *prometheus.CounterVec
	faultsTotal   prometheus.Counter
	sessionsTotal prometheus.Counter
	rejected      *prometheus.CounterVec
	active        prometheus.Gauge
}

// NewMetrics creates and registers the session collectors on reg under the
// given namespace. A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		packetsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "packets_total",
			Help:      "Total number of packets decoded",
		}, []string{"direction"}),

		bytesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "bytes_total",
			Help:      "Total number of frame bytes forwarded",
		}, []string{"direction"}),

		droppedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "dropped_total",
			Help:      "Total number of packets dropped by a canceled event",
		}, []string{"direction"}),

		faultsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "faults_total",
			Help:      "Total number of sessions ended by a corrupt frame",
		}),

		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "opened_total",
			Help:      "Total number of sessions opened",
		}),

		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "rejected_total",
			Help:      "Total number of client connections refused",
		}, []string{"reason"}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Number of sessions currently relaying",
		}),
	}
}

func (m *Metrics) packet(dir packets.Direction) {
	if m == nil {
		return
	}
	m.packetsTotal.WithLabelValues(dir.String()).Inc()
}

func (m *Metrics) forwarded(dir packets.Direction, n int) {
	if m == nil {
		return
	}
	m.bytesTotal.WithLabelValues(dir.String()).Add(float64(n))
}

func (m *Metrics) dropped(dir packets.Direction) {
	if m == nil {
		return
	}
	m.droppedTotal.WithLabelValues(dir.String()).Inc()
}

func (m *Metrics) fault() {
	if m == nil {
		return
	}
	m.faultsTotal.Inc()
}

func (m *Metrics) opened() {
	if m == nil {
		return
	}
	m.sessionsTotal.Inc()
	m.active.Inc()
}

func (m *Metrics) closed() {
	if m == nil {
		return
	}
	m.active.Dec()
}

func (m *Metrics) reject(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}
