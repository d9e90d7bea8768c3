// Package metrics expone las métricas de generación de documentos en Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "invoice_builder"

// RenderMetrics implementa billing.RenderMetrics.
type RenderMetrics struct {
	generations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	coalesced   prometheus.Counter
}

// NewRenderMetrics registra los colectores en registerer (nil = DefaultRegisterer).
func NewRenderMetrics(registerer prometheus.Registerer) *RenderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &RenderMetrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_generations_total",
			Help:      "Solicitudes de generación de PDF por resultado.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pdf_generation_duration_seconds",
			Help:      "Duración de la generación de PDF por resultado.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"outcome"}),
		coalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_coalesced_total",
			Help:      "Solicitudes idénticas resueltas con un render en curso.",
		}),
	}

	registerer.MustRegister(m.generations, m.duration, m.coalesced)
	return m
}

func (m *RenderMetrics) ObserveGeneration(outcome string, elapsed time.Duration) {
	m.generations.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *RenderMetrics) IncCoalesced() {
	m.coalesced.Inc()
}
