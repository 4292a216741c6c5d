package firemodel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	activeListeners      prometheus.Gauge
	listenerReplacements prometheus.Counter
	snapshots            *prometheus.CounterVec
	droppedDocuments     *prometheus.CounterVec
}

// newMetrics creates the client metrics. With a nil Registerer the metrics
// still work but are not exported.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		activeListeners: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "firemodel",
			Name:      "active_listeners",
			Help:      "Number of registered snapshot listeners",
		}),
		listenerReplacements: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "firemodel",
			Name:      "listener_replacements_total",
			Help:      "Number of listeners cancelled because the same key was listened to again",
		}),
		snapshots: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firemodel",
			Name:      "snapshots_total",
			Help:      "Snapshots received by listeners, by listener kind and outcome",
		}, []string{"kind", "outcome"}),
		droppedDocuments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firemodel",
			Name:      "dropped_documents_total",
			Help:      "Documents left out of collection results because they could not be decoded",
		}, []string{"collection"}),
	}
}

const (
	kindDocument = "document"
	kindQuery    = "query"

	outcomeDelivered  = "delivered"
	outcomeSuppressed = "suppressed"
	outcomeFailed     = "failed"
)
