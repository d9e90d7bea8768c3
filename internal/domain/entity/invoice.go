package entity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-builder/internal/domain"
)

// Invoice es el agregado raíz de una sesión de edición.
//
// Es un valor inmutable: los campos no se exportan, los accesores devuelven
// copias y cada mutación (With…) devuelve una factura nueva sin compartir el
// slice de líneas con la original.
type Invoice struct {
	business Party
	customer Party
	header   Header
	items    []LineItem
	taxRate  decimal.Decimal
}

// NewInvoice construye la factura a partir de datos del llamador.
//
// No recalcula ni verifica LineItem.Total: los totales recibidos se usan tal
// cual en el cálculo. Para forzar Total = Quantity × UnitPrice use Recalculated.
func NewInvoice(business, customer Party, header Header, items []LineItem, taxRate decimal.Decimal) Invoice {
	return Invoice{
		business: business,
		customer: customer,
		header:   header,
		items:    cloneItems(items),
		taxRate:  taxRate,
	}
}

// ── Accesores ─────────────────────────────────────────────────────────────────

func (inv Invoice) Business() Party          { return inv.business }
func (inv Invoice) Customer() Party          { return inv.customer }
func (inv Invoice) Header() Header           { return inv.header }
func (inv Invoice) TaxRate() decimal.Decimal { return inv.taxRate }
func (inv Invoice) Len() int                 { return len(inv.items) }

// Items devuelve una copia de las líneas en orden de inserción.
func (inv Invoice) Items() []LineItem { return cloneItems(inv.items) }

// Item busca una línea por id.
func (inv Invoice) Item(id string) (LineItem, bool) {
	if i := inv.indexOf(id); i >= 0 {
		return inv.items[i], true
	}
	return LineItem{}, false
}

// ── Mutaciones copy-on-write ──────────────────────────────────────────────────

func (inv Invoice) WithBusiness(p Party) Invoice {
	out := inv.clone()
	out.business = p
	return out
}

func (inv Invoice) WithCustomer(p Party) Invoice {
	out := inv.clone()
	out.customer = p
	return out
}

func (inv Invoice) WithHeader(h Header) Invoice {
	out := inv.clone()
	out.header = h
	return out
}

func (inv Invoice) WithTaxRate(rate decimal.Decimal) Invoice {
	out := inv.clone()
	out.taxRate = rate
	return out
}

// WithLineItem agrega la línea al final. Si el id está vacío se asigna uno nuevo.
func (inv Invoice) WithLineItem(item LineItem) Invoice {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	out := inv.clone()
	out.items = append(out.items, item)
	return out
}

// WithNewLineItem agrega una línea en blanco (cantidad 1, precio 0).
func (inv Invoice) WithNewLineItem() Invoice {
	return inv.WithLineItem(NewLineItem(uuid.New().String(), "", 1, decimal.Zero))
}

// WithoutLineItem elimina la línea indicada. La última línea no se puede eliminar.
func (inv Invoice) WithoutLineItem(id string) (Invoice, error) {
	i := inv.indexOf(id)
	if i < 0 {
		return inv, fmt.Errorf("%w: %s", domain.ErrLineItemNotFound, id)
	}
	if len(inv.items) <= 1 {
		return inv, domain.ErrLastLineItem
	}
	out := inv.clone()
	out.items = append(out.items[:i], out.items[i+1:]...)
	return out, nil
}

func (inv Invoice) WithItemDescription(id, description string) (Invoice, error) {
	return inv.updateItem(id, func(li LineItem) LineItem {
		li.Description = description
		return li
	})
}

// WithItemQuantity cambia la cantidad y recalcula el total de la línea.
func (inv Invoice) WithItemQuantity(id string, quantity int) (Invoice, error) {
	return inv.updateItem(id, func(li LineItem) LineItem {
		li.Quantity = quantity
		return li.Recomputed()
	})
}

// WithItemUnitPrice cambia el precio unitario y recalcula el total de la línea.
func (inv Invoice) WithItemUnitPrice(id string, unitPrice decimal.Decimal) (Invoice, error) {
	return inv.updateItem(id, func(li LineItem) LineItem {
		li.UnitPrice = unitPrice
		return li.Recomputed()
	})
}

// Recalculated devuelve la factura con todas las líneas recalculadas.
func (inv Invoice) Recalculated() Invoice {
	out := inv.clone()
	for i := range out.items {
		out.items[i] = out.items[i].Recomputed()
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (inv Invoice) updateItem(id string, fn func(LineItem) LineItem) (Invoice, error) {
	i := inv.indexOf(id)
	if i < 0 {
		return inv, fmt.Errorf("%w: %s", domain.ErrLineItemNotFound, id)
	}
	out := inv.clone()
	out.items[i] = fn(out.items[i])
	return out, nil
}

func (inv Invoice) indexOf(id string) int {
	for i, li := range inv.items {
		if li.ID == id {
			return i
		}
	}
	return -1
}

func (inv Invoice) clone() Invoice {
	inv.items = cloneItems(inv.items)
	return inv
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
