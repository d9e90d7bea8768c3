package billing

import (
	"fmt"

	"github.com/jhoicas/invoice-builder/internal/application/binding"
	"github.com/jhoicas/invoice-builder/internal/domain"
	"github.com/jhoicas/invoice-builder/internal/domain/entity"
	"github.com/jhoicas/invoice-builder/internal/domain/invoice"
)

// PreviewUseCase vista previa en vivo mientras se edita: totales y HTML.
// No valida campos requeridos; la validación solo bloquea la generación del PDF.
type PreviewUseCase struct {
	templates TemplateRenderer
}

// NewPreviewUseCase construye el caso de uso.
func NewPreviewUseCase(templates TemplateRenderer) *PreviewUseCase {
	return &PreviewUseCase{templates: templates}
}

// Totals totales corrientes de la factura (sin redondear; use Formatted para mostrar).
func (uc *PreviewUseCase) Totals(inv entity.Invoice) invoice.Totals {
	return invoice.CalculateInvoice(inv)
}

// HTML sustituye la factura en la plantilla del documento.
func (uc *PreviewUseCase) HTML(inv entity.Invoice, watermark bool) (string, error) {
	data := binding.Bind(inv, invoice.CalculateInvoice(inv), watermark)
	html, err := uc.templates.RenderHTML(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRendering, err)
	}
	return html, nil
}
