package invoice

import (
	"fmt"
	"sync"

	"github.com/jhoicas/invoice-builder/internal/domain/entity"
)

// NumberPrefix prefijo de los números de factura generados por defecto.
const NumberPrefix = "INV"

// FormatNumber arma INV-YYYYMMDD-NNN (NNN con al menos tres dígitos).
func FormatNumber(date entity.Date, seq int) string {
	return fmt.Sprintf("%s-%04d%02d%02d-%03d", NumberPrefix, date.Year, int(date.Month), date.Day, seq)
}

// Sequencer asigna números por defecto con un contador por día.
// Dos borradores creados el mismo día en el mismo proceso reciben -001, -002, ...
// El contador vive en memoria: no garantiza unicidad entre procesos ni reinicios;
// el llamador que necesite unicidad global debe enviar su propio número.
// Cada borrador nuevo consume un número aunque nunca llegue a generarse.
type Sequencer struct {
	mu   sync.Mutex
	day  entity.Date
	next int
}

// NewSequencer construye un secuenciador vacío.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Next devuelve el siguiente número del día indicado.
func (s *Sequencer) Next(day entity.Date) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if day != s.day {
		s.day = day
		s.next = 0
	}
	s.next++
	return FormatNumber(day, s.next)
}
