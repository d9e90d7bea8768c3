package invoice_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoice-builder/internal/domain/entity"
	"github.com/jhoicas/invoice-builder/internal/domain/invoice"
)

func TestFormatNumber(t *testing.T) {
	day := entity.Date{Year: 2026, Month: time.March, Day: 7}

	assert.Equal(t, "INV-20260307-001", invoice.FormatNumber(day, 1))
	assert.Equal(t, "INV-20260307-042", invoice.FormatNumber(day, 42))
	assert.Equal(t, "INV-20260307-1000", invoice.FormatNumber(day, 1000))
}

func TestSequencer_IncrementaPorDia(t *testing.T) {
	s := invoice.NewSequencer()
	d1 := entity.Date{Year: 2026, Month: time.October, Day: 14}
	d2 := d1.AddDays(1)

	assert.Equal(t, "INV-20261014-001", s.Next(d1))
	assert.Equal(t, "INV-20261014-002", s.Next(d1))
	assert.Equal(t, "INV-20261015-001", s.Next(d2), "el contador se reinicia al cambiar de día")
}

func TestSequencer_SinDuplicadosConcurrentes(t *testing.T) {
	s := invoice.NewSequencer()
	day := entity.Date{Year: 2026, Month: time.October, Day: 14}

	const n = 50
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num := s.Next(day)
			mu.Lock()
			seen[num] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}
