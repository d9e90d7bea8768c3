package billing

import (
	"time"

	"github.com/jhoicas/invoice-builder/internal/domain/entity"
	"github.com/jhoicas/invoice-builder/internal/domain/invoice"
)

// DraftUseCase crea la factura de ejemplo con la que arranca una sesión.
type DraftUseCase struct {
	seq *invoice.Sequencer
	now func() time.Time
}

// NewDraftUseCase construye el caso de uso. now nil usa time.Now.
func NewDraftUseCase(seq *invoice.Sequencer, now func() time.Time) *DraftUseCase {
	if now == nil {
		now = time.Now
	}
	return &DraftUseCase{seq: seq, now: now}
}

// New devuelve un borrador con número INV-YYYYMMDD-NNN del día actual.
func (uc *DraftUseCase) New() entity.Invoice {
	today := entity.DateOf(uc.now())
	return entity.DefaultInvoice(today, uc.seq.Next(today))
}

// Complete rellena lo que el cliente dejó vacío: número del día, fecha de
// emisión (hoy) y vencimiento (emisión + DefaultPaymentTermDays). Lo que ya
// viene asignado se respeta.
func (uc *DraftUseCase) Complete(inv entity.Invoice) entity.Invoice {
	h := inv.Header()
	if h.Date.IsZero() {
		h.Date = entity.DateOf(uc.now())
	}
	if h.DueDate.IsZero() {
		h.DueDate = h.Date.AddDays(entity.DefaultPaymentTermDays)
	}
	if h.Number == "" {
		h.Number = uc.seq.Next(h.Date)
	}
	if h == inv.Header() {
		return inv
	}
	return inv.WithHeader(h)
}
