package ast

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/creachadair/jvalue"
)

// Metrics records statistics about documents processed by a Parser.
// A nil *Metrics records nothing.
type Metrics struct {
	documents   *prometheus.CounterVec
	parseErrors *prometheus.CounterVec
	docBytes    prometheus.Histogram
	duration    prometheus.Histogram
}

// NewMetrics constructs a Metrics whose collectors are registered with r.
// If r is nil, the collectors are not registered.
func NewMetrics(r prometheus.Registerer) *Metrics {
	return &Metrics{
		documents: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "jvalue_documents_total",
			Help: "Total number of parse calls, by result.",
		}, []string{"result"}),
		parseErrors: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "jvalue_parse_errors_total",
			Help: "Total number of failed parse calls, by error class.",
		}, []string{"class"}),
		docBytes: promauto.With(r).NewHistogram(prometheus.HistogramOpts{
			Name:    "jvalue_document_bytes",
			Help:    "Number of input bytes consumed per parse call.",
			Buckets: prometheus.ExponentialBuckets(64, 4, 10),
		}),
		duration: promauto.With(r).NewHistogram(prometheus.HistogramOpts{
			Name:    "jvalue_parse_duration_seconds",
			Help:    "Time taken per parse call.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observe(nbytes int64, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.docBytes.Observe(float64(nbytes))
	m.duration.Observe(elapsed.Seconds())
	if err == nil {
		m.documents.WithLabelValues("ok").Inc()
		return
	}
	m.documents.WithLabelValues("error").Inc()
	m.parseErrors.WithLabelValues(classLabel(err)).Inc()
}

// classLabel returns a metric label for the class of err.
func classLabel(err error) string {
	class, ok := jvalue.ClassOf(err)
	if !ok {
		return "unknown"
	}
	return strings.ReplaceAll(string(class), " ", "_")
}
