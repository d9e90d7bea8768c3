// Package invoice contiene la lógica de dominio de la factura: cálculo de
// totales, validación previa a la generación y numeración por defecto.
package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-builder/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals totales derivados de una factura. Los valores no se redondean; el
// redondeo a dos decimales ocurre solo al presentar (Formatted).
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// FormattedTotals totales como cadenas con exactamente dos decimales.
type FormattedTotals struct {
	Subtotal  string
	TaxAmount string
	Total     string
}

// Calculate suma item.Total de izquierda a derecha y aplica el impuesto:
//
//	TaxAmount = Subtotal × taxRate / 100
//	Total     = Subtotal + TaxAmount
//
// Es total sobre cualquier entrada: sin líneas devuelve ceros y no rechaza
// cantidades, precios ni tasas fuera de rango. Usa el Total almacenado de cada
// línea sin volver a derivarlo de cantidad y precio.
func Calculate(items []entity.LineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
	}
	taxAmount := subtotal.Mul(taxRate).Div(hundred)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}
}

// CalculateInvoice aplica Calculate a las líneas y tasa de la factura.
func CalculateInvoice(inv entity.Invoice) Totals {
	return Calculate(inv.Items(), inv.TaxRate())
}

// Formatted redondea cada total a dos decimales (mitad alejada de cero).
func (t Totals) Formatted() FormattedTotals {
	return FormattedTotals{
		Subtotal:  FormatMoney(t.Subtotal),
		TaxAmount: FormatMoney(t.TaxAmount),
		Total:     FormatMoney(t.Total),
	}
}

// FormatMoney formatea un monto con exactamente dos decimales.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
