package scraper

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the harvester.
type Metrics struct {
	Registry         *prometheus.Registry
	PagesFetched     prometheus.Counter
	RecordsExtracted prometheus.Counter
	FetchRetries     prometheus.Counter
	ErrorsTotal      *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "harvester_pages_fetched_total",
		Help: "Total listing pages fetched and parsed.",
	})
	records := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "harvester_records_extracted_total",
		Help: "Total launch records extracted this process.",
	})
	retries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "harvester_fetch_retries_total",
		Help: "Total fetch attempts that failed and were retried.",
	})
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvester_errors_total",
			Help: "Total errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(pages, records, retries, errorsTotal)

	return &Metrics{
		Registry:         registry,
		PagesFetched:     pages,
		RecordsExtracted: records,
		FetchRetries:     retries,
		ErrorsTotal:      errorsTotal,
	}
}

// IncPages increments the listing-page counter.
func (m *Metrics) IncPages() {
	if m == nil {
		return
	}
	m.PagesFetched.Inc()
}

// IncRecords increments the extracted-record counter.
func (m *Metrics) IncRecords() {
	if m == nil {
		return
	}
	m.RecordsExtracted.Inc()
}

// IncRetries increments the fetch-retry counter.
func (m *Metrics) IncRetries() {
	if m == nil {
		return
	}
	m.FetchRetries.Inc()
}

// IncError increments the error counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
