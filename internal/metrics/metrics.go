// Package metrics exposes the Prometheus collectors of the service. They are
// registered on the default registry served by promhttp.Handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "order_desk"

var (
	StoreFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "read_fallbacks_total",
		Help:      "Reads that returned the default value instead of persisted state.",
	}, []string{"key", "reason"})

	StoreWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "write_failures_total",
		Help:      "Writes that were dropped, leaving the previous value in place.",
	}, []string{"key", "reason"})

	OrderEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "events_total",
		Help:      "Repository mutations by type.",
	}, []string{"type"})

	OrdersStored = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "stored",
		Help:      "Orders currently in the collection.",
	})

	PrintJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "print",
		Name:      "jobs_total",
		Help:      "Print attempts by result.",
	}, []string{"result"})

	IntakeMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "intake",
		Name:      "messages_total",
		Help:      "Order drafts received from the intake topic by result.",
	}, []string{"result"})
)

// ObserveOrderEvent records one repository mutation and the resulting
// collection size.
func ObserveOrderEvent(eventType string, stored int) {
	OrderEvents.WithLabelValues(eventType).Inc()
	OrdersStored.Set(float64(stored))
}
