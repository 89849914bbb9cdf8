// Package metrics holds the Prometheus collectors for extraction runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ppiankov/verdict/internal/model"
)

const namespace = "verdict"

// DefaultAnnotatorDurationBuckets spans in-process models to slow remote LLMs
var DefaultAnnotatorDurationBuckets = []float64{.01, .05, .1, .5, 1, 2, 5, 10, 30, 60}

// Metrics is a private registry with the extraction collectors. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsTotal    *prometheus.CounterVec
	EntitiesTotal     *prometheus.CounterVec
	AnnotatorFailures *prometheus.CounterVec
	AnnotatorDuration *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DocumentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents processed, by outcome.",
		}, []string{"status"}),
		EntitiesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_total",
			Help:      "Entities in assembled records, by kind.",
		}, []string{"kind"}),
		AnnotatorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "annotator_failures_total",
			Help:      "Annotator calls that contributed nothing, by reason.",
		}, []string{"annotator", "reason"}),
		AnnotatorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "annotator_duration_seconds",
			Help:      "Annotator call latency.",
			Buckets:   DefaultAnnotatorDurationBuckets,
		}, []string{"annotator"}),
	}

	m.registry.MustRegister(
		m.DocumentsTotal,
		m.EntitiesTotal,
		m.AnnotatorFailures,
		m.AnnotatorDuration,
		prometheus.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry for scraping
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// WriteTextfile writes the registry in the node_exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// ObserveDocument counts one processed document
func (m *Metrics) ObserveDocument(status string) {
	if m == nil {
		return
	}
	m.DocumentsTotal.WithLabelValues(status).Inc()
}

// ObserveRecord counts the entities of an assembled record
func (m *Metrics) ObserveRecord(r *model.CaseRecord) {
	if m == nil || r == nil {
		return
	}
	m.EntitiesTotal.WithLabelValues(model.KindPerson.String()).Add(float64(len(r.Persons)))
	m.EntitiesTotal.WithLabelValues(model.KindDate.String()).Add(float64(len(r.Dates)))
	m.EntitiesTotal.WithLabelValues(model.KindAmount.String()).Add(float64(len(r.Amounts)))
	m.EntitiesTotal.WithLabelValues(model.KindLawReference.String()).Add(float64(len(r.LawReferences)))
	m.EntitiesTotal.WithLabelValues(model.KindPlace.String()).Add(float64(len(r.Places)))
	m.EntitiesTotal.WithLabelValues(model.KindAddress.String()).Add(float64(len(r.Addresses)))
	m.EntitiesTotal.WithLabelValues(model.KindRedacted.String()).Add(float64(len(r.Redacted)))
}

// ObserveAnnotator records one annotator call duration
func (m *Metrics) ObserveAnnotator(name string, d time.Duration) {
	if m == nil {
		return
	}
	m.AnnotatorDuration.WithLabelValues(name).Observe(d.Seconds())
}

// AnnotatorFailed counts a fail-open annotator call
func (m *Metrics) AnnotatorFailed(name, reason string) {
	if m == nil {
		return
	}
	m.AnnotatorFailures.WithLabelValues(name, reason).Inc()
}
