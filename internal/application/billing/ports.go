package billing

import (
	"context"
	"time"

	"github.com/jhoicas/invoice-builder/internal/application/binding"
)

// DocumentRenderer motor que convierte el payload en un PDF.
// Debe devolver el documento completo o un error, nunca una salida parcial.
type DocumentRenderer interface {
	Render(ctx context.Context, data binding.DataBinding, opts binding.RenderOptions) ([]byte, error)
}

// TemplateRenderer sustituye el payload en la plantilla HTML fija.
type TemplateRenderer interface {
	RenderHTML(data binding.DataBinding) (string, error)
}

// Resultados de una generación para métricas.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_failure"
	OutcomeRendering  = "rendering_failure"
)

// RenderMetrics registra el resultado y la duración de cada generación.
type RenderMetrics interface {
	ObserveGeneration(outcome string, elapsed time.Duration)
	IncCoalesced()
}

// NopMetrics descarta las métricas.
type NopMetrics struct{}

func (NopMetrics) ObserveGeneration(string, time.Duration) {}
func (NopMetrics) IncCoalesced()                           {}
