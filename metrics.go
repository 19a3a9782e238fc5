package intelxaudit

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "intelx_audit"

type metrics struct {
	registry     *prometheus.Registry
	targets      *prometheus.CounterVec
	requests     *prometheus.CounterVec
	records      prometheus.Counter
	exportedSize prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		targets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "targets_total",
			Help:      "Audited targets by outcome.",
		}, []string{"outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "api_requests_total",
			Help:      "Requests sent to the search API by endpoint and status code; code 0 means no response.",
		}, []string{"endpoint", "code"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "records_found_total",
			Help:      "Leak records returned across all targets.",
		}),
		exportedSize: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "export_bytes_total",
			Help:      "Bytes written to export archives.",
		}),
	}

	m.registry.MustRegister(m.targets, m.requests, m.records, m.exportedSize)

	return m
}

func (m *metrics) observeOutcome(o Outcome) {
	m.targets.WithLabelValues(o.String()).Inc()
}

func (m *metrics) observeRequest(endpoint string, code int) {
	m.requests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}

// WriteMetrics writes the counters of this auditor to path in the Prometheus text format,
// suitable for node_exporter's textfile collector.
func (a *Auditor) WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, a.metrics.registry); err != nil {
		return fmt.Errorf("writing metrics to %q: %w", path, err)
	}

	return nil
}
