package billing_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-builder/internal/application/billing"
	"github.com/jhoicas/invoice-builder/internal/application/binding"
	"github.com/jhoicas/invoice-builder/internal/domain"
	"github.com/jhoicas/invoice-builder/internal/domain/entity"
	"github.com/jhoicas/invoice-builder/internal/domain/invoice"
	"github.com/jhoicas/invoice-builder/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeRenderer struct {
	calls   atomic.Int32
	out     []byte
	err     error
	release chan struct{} // si no es nil, Render espera a que se cierre
	last    binding.DataBinding
	opts    binding.RenderOptions
	mu      sync.Mutex
}

func (f *fakeRenderer) Render(ctx context.Context, data binding.DataBinding, opts binding.RenderOptions) ([]byte, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.last, f.opts = data, opts
	f.mu.Unlock()
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.out, f.err
}

type fakeMetrics struct {
	mu        sync.Mutex
	outcomes  []string
	coalesced int
}

func (m *fakeMetrics) ObserveGeneration(outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *fakeMetrics) IncCoalesced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coalesced++
}

var pdfBytes = []byte("%PDF-1.7\n%fake\n")

func validInvoice() entity.Invoice {
	return entity.NewInvoice(
		entity.Party{Name: "Holmes Investigations", Email: "sherlock@example.com"},
		entity.Party{Name: "Dr. John H. Watson", Email: "watson@example.com"},
		entity.Header{Number: "INV-20261014-001"},
		[]entity.LineItem{entity.NewLineItem("1", "Consulting", 2, decimal.NewFromInt(50))},
		decimal.NewFromInt(10),
	)
}

func newUC(r billing.DocumentRenderer, m billing.RenderMetrics, cfg billing.PDFConfig) *billing.PDFUseCase {
	if cfg.Options.Format == "" {
		cfg.Options = binding.DefaultRenderOptions
	}
	return billing.NewPDFUseCase(r, m, logger.Nop(), cfg)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneratePDF_Exito(t *testing.T) {
	r := &fakeRenderer{out: pdfBytes}
	m := &fakeMetrics{}
	uc := newUC(r, m, billing.PDFConfig{})

	doc, filename, err := uc.GeneratePDF(context.Background(), validInvoice(), true)
	require.NoError(t, err)

	assert.Equal(t, pdfBytes, doc)
	assert.Equal(t, "invoice-INV-20261014-001.pdf", filename)
	assert.Equal(t, "100.00", r.last.Subtotal)
	assert.Equal(t, "10.00", r.last.TaxAmount)
	assert.Equal(t, "110.00", r.last.Total)
	assert.True(t, r.last.IsWatermark)
	assert.Equal(t, binding.DefaultRenderOptions, r.opts)
	assert.Equal(t, []string{billing.OutcomeSuccess}, m.outcomes)
}

func TestGeneratePDF_ValidacionBloqueaRender(t *testing.T) {
	r := &fakeRenderer{out: pdfBytes}
	m := &fakeMetrics{}
	uc := newUC(r, m, billing.PDFConfig{})

	inv := validInvoice().WithCustomer(entity.Party{Email: "watson@example.com"})
	doc, filename, err := uc.GeneratePDF(context.Background(), inv, false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	var verr *invoice.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "customer.name", verr.Fields[0].Field)
	assert.Nil(t, doc)
	assert.Empty(t, filename)
	assert.Equal(t, int32(0), r.calls.Load(), "el motor no debe invocarse si la validación falla")
	assert.Equal(t, []string{billing.OutcomeValidation}, m.outcomes)
}

func TestGeneratePDF_FalloDelMotorEsOpaco(t *testing.T) {
	r := &fakeRenderer{err: errors.New("chromium crashed")}
	m := &fakeMetrics{}
	uc := newUC(r, m, billing.PDFConfig{})

	doc, _, err := uc.GeneratePDF(context.Background(), validInvoice(), false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRendering))
	assert.Nil(t, doc, "nunca se devuelve salida parcial")
	assert.Equal(t, []string{billing.OutcomeRendering}, m.outcomes)
}

func TestGeneratePDF_SalidaQueNoEsPDF(t *testing.T) {
	r := &fakeRenderer{out: []byte("<html>oops</html>")}
	uc := newUC(r, nil, billing.PDFConfig{})

	doc, _, err := uc.GeneratePDF(context.Background(), validInvoice(), false)

	assert.True(t, errors.Is(err, domain.ErrRendering))
	assert.Nil(t, doc)
}

func TestGeneratePDF_Timeout(t *testing.T) {
	r := &fakeRenderer{out: pdfBytes, release: make(chan struct{})}
	defer close(r.release)
	uc := newUC(r, nil, billing.PDFConfig{RenderTimeout: 20 * time.Millisecond})

	_, _, err := uc.GeneratePDF(context.Background(), validInvoice(), false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRendering))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGeneratePDF_RecalculaTotalesSiSeConfigura(t *testing.T) {
	stale := entity.NewInvoice(
		entity.Party{Name: "Holmes"},
		entity.Party{Name: "Watson", Email: "w@example.com"},
		entity.Header{Number: "INV-1"},
		[]entity.LineItem{{ID: "1", Description: "x", Quantity: 4, UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(1)}},
		decimal.Zero,
	)

	trusting := &fakeRenderer{out: pdfBytes}
	_, _, err := newUC(trusting, nil, billing.PDFConfig{}).GeneratePDF(context.Background(), stale, false)
	require.NoError(t, err)
	assert.Equal(t, "1.00", trusting.last.Subtotal, "por defecto se usa el total almacenado")

	strict := &fakeRenderer{out: pdfBytes}
	_, _, err = newUC(strict, nil, billing.PDFConfig{RecomputeLineTotals: true}).GeneratePDF(context.Background(), stale, false)
	require.NoError(t, err)
	assert.Equal(t, "20.00", strict.last.Subtotal)
}

func TestGeneratePDF_SolicitudesDuplicadasSeCoalescen(t *testing.T) {
	r := &fakeRenderer{out: pdfBytes, release: make(chan struct{})}
	m := &fakeMetrics{}
	uc := newUC(r, m, billing.PDFConfig{})

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = uc.GeneratePDF(context.Background(), validInvoice(), false)
		}(i)
	}

	// Espera a que el primer render esté en curso y da tiempo a que lleguen los demás.
	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(r.release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), r.calls.Load(), "un solo render para solicitudes idénticas simultáneas")
	assert.Equal(t, n-1, m.coalesced)
}

func TestGeneratePDF_PayloadsDistintosNoSeCoalescen(t *testing.T) {
	r := &fakeRenderer{out: pdfBytes}
	uc := newUC(r, nil, billing.PDFConfig{})

	_, _, err := uc.GeneratePDF(context.Background(), validInvoice(), false)
	require.NoError(t, err)
	_, _, err = uc.GeneratePDF(context.Background(), validInvoice(), true)
	require.NoError(t, err)

	assert.Equal(t, int32(2), r.calls.Load())
}
