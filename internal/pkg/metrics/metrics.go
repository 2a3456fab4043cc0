package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the ledger counters exposed on the metrics route.
type Metrics struct {
	gatherer            prometheus.Gatherer
	allocationsRecorded *prometheus.CounterVec
	statusTransitions   *prometheus.CounterVec
	employeesCreated    prometheus.Counter
}

// New registers the collectors on reg. Passing a fresh prometheus.Registry
// keeps tests isolated from the default registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		allocationsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bench",
			Name:      "allocations_recorded_total",
			Help:      "Allocation rows appended to the ledger, by status type.",
		}, []string{"status"}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bench",
			Name:      "status_transitions_total",
			Help:      "Employee status changes applied, by target status.",
		}, []string{"status"}),
		employeesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bench",
			Name:      "employees_created_total",
			Help:      "Employees added to the directory.",
		}),
	}
	reg.MustRegister(m.allocationsRecorded, m.statusTransitions, m.employeesCreated)
	return m
}

func (m *Metrics) AllocationRecorded(status string) {
	if m == nil {
		return
	}
	m.allocationsRecorded.WithLabelValues(status).Inc()
}

func (m *Metrics) StatusApplied(status string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) EmployeeCreated() {
	if m == nil {
		return
	}
	m.employeesCreated.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
