// Package binding transforma la factura y sus totales en el payload plano que
// consume la plantilla del documento.
package binding

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-builder/internal/domain/entity"
	"github.com/jhoicas/invoice-builder/internal/domain/invoice"
)

// DataBinding objeto de datos de la plantilla. Los montos agregados van como
// cadenas con dos decimales; taxRate y los montos de línea como números crudos.
type DataBinding struct {
	Business    Business      `json:"business"`
	Customer    Customer      `json:"customer"`
	Invoice     InvoiceHeader `json:"invoice"`
	Items       []Item        `json:"items"`
	Subtotal    string        `json:"subtotal"`
	TaxRate     json.Number   `json:"taxRate"`
	TaxAmount   string        `json:"taxAmount"`
	Total       string        `json:"total"`
	IsWatermark bool          `json:"isWatermark"`
}

type Business struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Logo    string `json:"logo,omitempty"`
}

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type InvoiceHeader struct {
	Number  string `json:"number"`
	Date    string `json:"date"`
	DueDate string `json:"dueDate"`
}

// Item línea del documento, en el mismo orden que en la factura.
type Item struct {
	Description string      `json:"description"`
	Quantity    int         `json:"quantity"`
	UnitPrice   json.Number `json:"unitPrice"`
	Total       json.Number `json:"total"`
}

// UnitPriceFixed precio unitario con dos decimales para mostrar.
func (it Item) UnitPriceFixed() string { return fixed(it.UnitPrice) }

// TotalFixed total de la línea con dos decimales para mostrar.
func (it Item) TotalFixed() string { return fixed(it.Total) }

// Bind arma el payload de la plantilla. No valida: la validación ocurre en la
// capa que invoca al binder, antes de llegar aquí.
func Bind(inv entity.Invoice, totals invoice.Totals, watermark bool) DataBinding {
	b, c, h := inv.Business(), inv.Customer(), inv.Header()
	f := totals.Formatted()

	src := inv.Items()
	items := make([]Item, 0, len(src))
	for _, li := range src {
		items = append(items, Item{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   number(li.UnitPrice),
			Total:       number(li.Total),
		})
	}

	return DataBinding{
		Business: Business{Name: b.Name, Email: b.Email, Address: b.Address, Logo: b.Logo},
		Customer: Customer{Name: c.Name, Email: c.Email, Address: c.Address},
		Invoice: InvoiceHeader{
			Number:  h.Number,
			Date:    h.Date.String(),
			DueDate: h.DueDate.String(),
		},
		Items:       items,
		Subtotal:    f.Subtotal,
		TaxRate:     number(inv.TaxRate()),
		TaxAmount:   f.TaxAmount,
		Total:       f.Total,
		IsWatermark: watermark,
	}
}

// Filename nombre sugerido de descarga: invoice-<número>.pdf.
// Comillas, barras y caracteres de control se reemplazan por "_" para que el
// nombre sea seguro dentro de Content-Disposition.
func Filename(number string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f, r == '"', r == '\\', r == '/':
			return '_'
		}
		return r
	}, number)
	return "invoice-" + clean + ".pdf"
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func fixed(n json.Number) string {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return n.String()
	}
	return invoice.FormatMoney(d)
}
