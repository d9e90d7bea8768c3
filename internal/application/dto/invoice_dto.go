package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-builder/internal/domain"
	"github.com/jhoicas/invoice-builder/internal/domain/entity"
	"github.com/jhoicas/invoice-builder/internal/domain/invoice"
)

// GeneratePDFRequest body para POST /api/generate-pdf y POST /api/invoices/preview.
type GeneratePDFRequest struct {
	InvoiceData InvoiceData `json:"invoiceData"`
	IsWatermark bool        `json:"isWatermark"`
}

// InvoiceData estado del formulario tal como lo envía el navegador.
type InvoiceData struct {
	Business BusinessDTO   `json:"business"`
	Customer CustomerDTO   `json:"customer"`
	Invoice  HeaderDTO     `json:"invoice"`
	Items    []LineItemDTO `json:"items"`
	TaxRate  Rate          `json:"taxRate"`
}

type BusinessDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Logo    string `json:"logo,omitempty"`
}

type CustomerDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// HeaderDTO fechas en formato YYYY-MM-DD; vacías se completan en el servidor.
type HeaderDTO struct {
	Number  string `json:"number"`
	Date    string `json:"date"`
	DueDate string `json:"dueDate"`
}

// LineItemDTO línea del formulario. Sin total (null o ausente) se calcula
// Quantity × UnitPrice; con total se respeta el valor recibido.
type LineItemDTO struct {
	ID          TokenID             `json:"id"`
	Description string              `json:"description"`
	Quantity    int                 `json:"quantity"`
	UnitPrice   decimal.Decimal     `json:"unitPrice"`
	Total       decimal.NullDecimal `json:"total"`
}

// ToEntity convierte el formulario en el agregado de dominio.
// Falla con domain.ErrInvalidInput si una fecha está mal formada o si un
// precio o total de línea excede el rango monetario.
func (d InvoiceData) ToEntity() (entity.Invoice, error) {
	date, err := parseOptionalDate("invoice.date", d.Invoice.Date)
	if err != nil {
		return entity.Invoice{}, err
	}
	due, err := parseOptionalDate("invoice.dueDate", d.Invoice.DueDate)
	if err != nil {
		return entity.Invoice{}, err
	}

	items := make([]entity.LineItem, 0, len(d.Items))
	for i, it := range d.Items {
		if !inMoneyRange(it.UnitPrice) {
			return entity.Invoice{}, fmt.Errorf("%w: items[%d].unitPrice fuera de rango", domain.ErrInvalidInput, i)
		}
		if it.Total.Valid && !inMoneyRange(it.Total.Decimal) {
			return entity.Invoice{}, fmt.Errorf("%w: items[%d].total fuera de rango", domain.ErrInvalidInput, i)
		}
		li := entity.LineItem{
			ID:          string(it.ID),
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
		if it.Total.Valid {
			li.Total = it.Total.Decimal
		} else {
			li = li.Recomputed()
		}
		items = append(items, li)
	}

	return entity.NewInvoice(
		entity.Party{Name: d.Business.Name, Email: d.Business.Email, Address: d.Business.Address, Logo: d.Business.Logo},
		entity.Party{Name: d.Customer.Name, Email: d.Customer.Email, Address: d.Customer.Address},
		entity.Header{Number: d.Invoice.Number, Date: date, DueDate: due},
		items,
		d.TaxRate.Decimal(),
	), nil
}

// FromEntity arma el formulario a partir del agregado (GET /api/invoices/new).
func FromEntity(inv entity.Invoice) InvoiceData {
	b, c, h := inv.Business(), inv.Customer(), inv.Header()
	items := inv.Items()
	out := InvoiceData{
		Business: BusinessDTO{Name: b.Name, Email: b.Email, Address: b.Address, Logo: b.Logo},
		Customer: CustomerDTO{Name: c.Name, Email: c.Email, Address: c.Address},
		Invoice:  HeaderDTO{Number: h.Number, Date: h.Date.String(), DueDate: h.DueDate.String()},
		Items:    make([]LineItemDTO, 0, len(items)),
		TaxRate:  RateOf(inv.TaxRate()),
	}
	for _, li := range items {
		out.Items = append(out.Items, LineItemDTO{
			ID:          TokenID(li.ID),
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Total:       decimal.NewNullDecimal(li.Total),
		})
	}
	return out
}

// TotalsResponse totales en vivo a dos decimales (POST /api/invoices/totals).
type TotalsResponse struct {
	Subtotal  string `json:"subtotal"`
	TaxAmount string `json:"taxAmount"`
	Total     string `json:"total"`
}

// ToTotalsResponse redondea solo para presentación.
func ToTotalsResponse(t invoice.Totals) TotalsResponse {
	f := t.Formatted()
	return TotalsResponse{Subtotal: f.Subtotal, TaxAmount: f.TaxAmount, Total: f.Total}
}

func parseOptionalDate(field, s string) (entity.Date, error) {
	if s == "" {
		return entity.Date{}, nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return entity.Date{}, fmt.Errorf("%w: %s %q no es YYYY-MM-DD", domain.ErrInvalidInput, field, s)
	}
	return d, nil
}
