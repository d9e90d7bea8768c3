package entity

import "github.com/shopspring/decimal"

// LineItem representa una línea facturable.
// Total es derivado (Quantity × UnitPrice); el cálculo de la factura usa el
// valor almacenado tal cual, por eso las mutaciones de cantidad o precio lo
// recalculan al escribir.
type LineItem struct {
	ID          string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// NewLineItem construye una línea con el total ya calculado.
func NewLineItem(id, description string, quantity int, unitPrice decimal.Decimal) LineItem {
	item := LineItem{
		ID:          id,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
	return item.Recomputed()
}

// Recomputed devuelve la línea con Total = Quantity × UnitPrice.
func (li LineItem) Recomputed() LineItem {
	li.Total = decimal.NewFromInt(int64(li.Quantity)).Mul(li.UnitPrice)
	return li
}

// IsConsistent indica si Total coincide con Quantity × UnitPrice.
func (li LineItem) IsConsistent() bool {
	return li.Total.Equal(li.Recomputed().Total)
}
