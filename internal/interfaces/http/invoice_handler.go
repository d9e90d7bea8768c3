package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-builder/internal/application/billing"
	"github.com/jhoicas/invoice-builder/internal/application/dto"
	"github.com/jhoicas/invoice-builder/internal/domain"
	"github.com/jhoicas/invoice-builder/internal/domain/invoice"
)

// msgRenderFailure mensaje fijo para fallos del motor; la causa solo se registra en el log.
const msgRenderFailure = "Failed to generate PDF"

// InvoiceHandler maneja el editor de facturas: totales en vivo, vista previa y PDF.
type InvoiceHandler struct {
	pdf     *billing.PDFUseCase
	preview *billing.PreviewUseCase
	drafts  *billing.DraftUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(pdf *billing.PDFUseCase, preview *billing.PreviewUseCase, drafts *billing.DraftUseCase) *InvoiceHandler {
	return &InvoiceHandler{pdf: pdf, preview: preview, drafts: drafts}
}

// GeneratePDF godoc
// @Summary      Generar el PDF de la factura
// @Description  Valida la factura, calcula los totales y devuelve el documento.
// @Description  Con isWatermark=true el documento lleva la marca DRAFT.
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.GeneratePDFRequest  true  "invoiceData e isWatermark"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/generate-pdf [post]
func (h *InvoiceHandler) GeneratePDF(c *fiber.Ctx) error {
	var in dto.GeneratePDFRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	inv, err := in.InvoiceData.ToEntity()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Error: err.Error()})
	}
	// Solo una factura válida consume número de la secuencia del día.
	if invoice.Validate(inv) == nil {
		inv = h.drafts.Complete(inv)
	}

	doc, filename, err := h.pdf.GeneratePDF(c.UserContext(), inv, in.IsWatermark)
	if err != nil {
		var verr *invoice.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "factura incompleta", Fields: verr.Fields})
		case errors.Is(err, domain.ErrRendering):
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RENDER_FAILED", Error: msgRenderFailure})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Error: msgRenderFailure})
		}
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(doc)
}

// Totals godoc
// @Summary      Totales en vivo
// @Description  Subtotal, impuesto y total a dos decimales. No valida la factura.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceData  true  "estado del formulario"
// @Success      200   {object}  dto.TotalsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/totals [post]
func (h *InvoiceHandler) Totals(c *fiber.Ctx) error {
	var in dto.InvoiceData
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	inv, err := in.ToEntity()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Error: err.Error()})
	}
	return c.JSON(dto.ToTotalsResponse(h.preview.Totals(inv)))
}

// Preview godoc
// @Summary      Vista previa HTML
// @Description  Documento HTML con los datos actuales; permitido con la factura incompleta.
// @Tags         invoices
// @Accept       json
// @Produce      html
// @Param        body  body  dto.GeneratePDFRequest  true  "invoiceData e isWatermark"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.GeneratePDFRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	inv, err := in.InvoiceData.ToEntity()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Error: err.Error()})
	}
	html, err := h.preview.HTML(inv, in.IsWatermark)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RENDER_FAILED", Error: "no se pudo generar la vista previa"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// New godoc
// @Summary      Factura de ejemplo
// @Description  Borrador inicial con número del día, vencimiento a 30 días y una línea en blanco.
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  dto.InvoiceData
// @Router       /api/invoices/new [get]
func (h *InvoiceHandler) New(c *fiber.Ctx) error {
	return c.JSON(dto.FromEntity(h.drafts.New()))
}
