package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-builder/internal/application/billing"
)

var _ billing.RenderMetrics = (*RenderMetrics)(nil)

func TestRenderMetrics_CuentaPorResultado(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewRenderMetrics(registry)

	m.ObserveGeneration(billing.OutcomeSuccess, 120*time.Millisecond)
	m.ObserveGeneration(billing.OutcomeSuccess, 80*time.Millisecond)
	m.ObserveGeneration(billing.OutcomeValidation, time.Millisecond)
	m.IncCoalesced()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations.WithLabelValues(billing.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues(billing.OutcomeValidation)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.generations.WithLabelValues(billing.OutcomeRendering)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.coalesced))

	n, err := testutil.GatherAndCount(registry, "invoice_builder_pdf_generation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRenderMetrics_RegistroDuplicadoFalla(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewRenderMetrics(registry)

	assert.Panics(t, func() { NewRenderMetrics(registry) })
}
