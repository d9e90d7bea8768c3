package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-builder/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PDF       *billing.PDFUseCase
	Preview   *billing.PreviewUseCase
	Drafts    *billing.DraftUseCase
	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	invoiceHandler := NewInvoiceHandler(deps.PDF, deps.Preview, deps.Drafts)
	api.Post("/generate-pdf", invoiceHandler.GeneratePDF)

	invoices := api.Group("/invoices")
	invoices.Get("/new", invoiceHandler.New)
	invoices.Post("/totals", invoiceHandler.Totals)
	invoices.Post("/preview", invoiceHandler.Preview)

	// Sesión (protegido)
	api.Get("/user", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), Me)
}
