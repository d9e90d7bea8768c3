package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoice-builder/internal/domain/entity"
	"github.com/jhoicas/invoice-builder/internal/domain/invoice"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(qty int, price, total string) entity.LineItem {
	return entity.LineItem{Quantity: qty, UnitPrice: dec(price), Total: dec(total)}
}

func TestCalculate_UnaLineaConImpuesto(t *testing.T) {
	totals := invoice.Calculate([]entity.LineItem{item(2, "50.00", "100.00")}, dec("10"))

	f := totals.Formatted()
	assert.Equal(t, "100.00", f.Subtotal)
	assert.Equal(t, "10.00", f.TaxAmount)
	assert.Equal(t, "110.00", f.Total)
}

func TestCalculate_SinLineas(t *testing.T) {
	totals := invoice.Calculate(nil, dec("20"))

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.Equal(t, invoice.FormattedTotals{Subtotal: "0.00", TaxAmount: "0.00", Total: "0.00"}, totals.Formatted())
}

func TestCalculate_CentavosSinDeriva(t *testing.T) {
	items := []entity.LineItem{
		item(3, "19.99", "59.97"),
		item(1, "0.01", "0.01"),
	}
	totals := invoice.Calculate(items, decimal.Zero)

	assert.Equal(t, "59.98", totals.Formatted().Subtotal)
	assert.Equal(t, "59.98", totals.Formatted().Total)
	assert.True(t, totals.Subtotal.Equal(dec("59.98")), "la suma debe ser exacta, no aproximada")
}

func TestCalculate_SumaRepetidaExacta(t *testing.T) {
	items := make([]entity.LineItem, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, item(1, "0.10", "0.10"))
	}
	totals := invoice.Calculate(items, decimal.Zero)

	assert.True(t, totals.Subtotal.Equal(dec("100")), "1000 × 0.10 debe ser exactamente 100")
}

func TestCalculate_UsaTotalAlmacenado(t *testing.T) {
	// Total inconsistente a propósito: el calculador confía en el valor almacenado.
	items := []entity.LineItem{item(5, "10.00", "1.00")}
	totals := invoice.Calculate(items, decimal.Zero)

	assert.Equal(t, "1.00", totals.Formatted().Subtotal)
}

func TestCalculate_NoRechazaValoresFueraDeRango(t *testing.T) {
	items := []entity.LineItem{
		item(-2, "10.00", "-20.00"),
		item(0, "99.00", "0"),
		item(1, "30.00", "30.00"),
	}
	totals := invoice.Calculate(items, dec("150"))

	assert.Equal(t, "10.00", totals.Formatted().Subtotal)
	assert.Equal(t, "15.00", totals.Formatted().TaxAmount)
	assert.Equal(t, "25.00", totals.Formatted().Total)
}

func TestCalculate_Propiedades(t *testing.T) {
	cases := []struct {
		name  string
		items []entity.LineItem
		rate  string
	}{
		{"tasa cero", []entity.LineItem{item(1, "12.34", "12.34")}, "0"},
		{"tasa completa", []entity.LineItem{item(4, "2.50", "10.00")}, "100"},
		{"tasa fraccional", []entity.LineItem{item(1, "100", "100"), item(2, "0.335", "0.67")}, "7.25"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rate := dec(tc.rate)
			totals := invoice.Calculate(tc.items, rate)

			sum := decimal.Zero
			for _, it := range tc.items {
				sum = sum.Add(it.Total)
			}
			assert.True(t, totals.Subtotal.Equal(sum))
			assert.True(t, totals.TaxAmount.Equal(sum.Mul(rate).Div(decimal.NewFromInt(100))))
			assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.TaxAmount)))
		})
	}
}

func TestCalculateInvoice_Idempotente(t *testing.T) {
	inv := entity.NewInvoice(entity.Party{}, entity.Party{}, entity.Header{},
		[]entity.LineItem{item(3, "19.99", "59.97")}, dec("8.5"))

	first := invoice.CalculateInvoice(inv)
	second := invoice.CalculateInvoice(inv)

	assert.Equal(t, first.Formatted(), second.Formatted())
	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, "59.97", inv.Items()[0].Total.StringFixed(2), "el cálculo no debe mutar la factura")
}

func TestFormatMoney_RedondeaSoloAlPresentar(t *testing.T) {
	totals := invoice.Calculate([]entity.LineItem{item(1, "10.005", "10.005")}, decimal.Zero)

	assert.Equal(t, "10.005", totals.Subtotal.String(), "el valor interno no se redondea")
	assert.Equal(t, "10.01", totals.Formatted().Subtotal)
}
