package billing

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/invoice-builder/internal/application/binding"
	"github.com/jhoicas/invoice-builder/internal/domain"
	"github.com/jhoicas/invoice-builder/internal/domain/entity"
	"github.com/jhoicas/invoice-builder/internal/domain/invoice"
	"github.com/jhoicas/invoice-builder/pkg/logger"
)

var pdfMagic = []byte("%PDF-")

// PDFConfig parámetros de la generación.
type PDFConfig struct {
	RecomputeLineTotals bool          // recalcula Quantity × UnitPrice antes de validar
	RenderTimeout       time.Duration // 0 = sin límite propio
	Options             binding.RenderOptions
}

// PDFUseCase genera el PDF de una factura: valida, calcula totales, arma el
// payload y lo entrega al motor de render. Todo o nada.
type PDFUseCase struct {
	renderer DocumentRenderer
	metrics  RenderMetrics
	log      *logger.Logger
	cfg      PDFConfig
	inflight singleflight.Group
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(renderer DocumentRenderer, metrics RenderMetrics, log *logger.Logger, cfg PDFConfig) *PDFUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &PDFUseCase{
		renderer: renderer,
		metrics:  metrics,
		log:      log,
		cfg:      cfg,
	}
}

// GeneratePDF produce el documento y su nombre sugerido.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - *invoice.ValidationError   (errors.Is domain.ErrValidation) si faltan campos;
//     en ese caso el motor de render no se invoca.
//   - domain.ErrRendering        si el motor falla, excede el timeout o no devuelve un PDF.
//
// Solicitudes idénticas concurrentes (mismo payload) comparten un único render.
func (uc *PDFUseCase) GeneratePDF(ctx context.Context, inv entity.Invoice, watermark bool) (pdfBytes []byte, filename string, err error) {
	start := time.Now()

	// ── 1. Normalizar y validar ───────────────────────────────────────────────
	if uc.cfg.RecomputeLineTotals {
		inv = inv.Recalculated()
	}
	if err := invoice.Validate(inv); err != nil {
		uc.metrics.ObserveGeneration(OutcomeValidation, time.Since(start))
		return nil, "", err
	}

	// ── 2. Totales y payload ──────────────────────────────────────────────────
	data := binding.Bind(inv, invoice.CalculateInvoice(inv), watermark)
	filename = binding.Filename(inv.Header().Number)

	key, err := fingerprint(data)
	if err != nil {
		uc.metrics.ObserveGeneration(OutcomeRendering, time.Since(start))
		return nil, "", uc.renderFailure(inv, fmt.Errorf("serializar payload: %w", err))
	}

	// ── 3. Render ─────────────────────────────────────────────────────────────
	v, err, shared := uc.inflight.Do(key, func() (interface{}, error) {
		return uc.render(ctx, data)
	})
	if shared {
		uc.metrics.IncCoalesced()
	}
	if err != nil {
		uc.metrics.ObserveGeneration(OutcomeRendering, time.Since(start))
		return nil, "", uc.renderFailure(inv, err)
	}

	uc.metrics.ObserveGeneration(OutcomeSuccess, time.Since(start))
	doc := v.([]byte)
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, filename, nil
}

func (uc *PDFUseCase) render(ctx context.Context, data binding.DataBinding) ([]byte, error) {
	// El render se comparte entre solicitudes: no depende de la cancelación del
	// primer llamador, solo del timeout propio.
	rctx := context.WithoutCancel(ctx)
	if uc.cfg.RenderTimeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(rctx, uc.cfg.RenderTimeout)
		defer cancel()
	}

	doc, err := uc.renderer.Render(rctx, data, uc.cfg.Options)
	if err != nil {
		return nil, err
	}
	if rctx.Err() != nil {
		return nil, fmt.Errorf("render: %w", rctx.Err())
	}
	if !bytes.HasPrefix(doc, pdfMagic) {
		return nil, fmt.Errorf("render: la salida no es un PDF (%d bytes)", len(doc))
	}
	return doc, nil
}

// renderFailure registra la causa y devuelve el error opaco.
func (uc *PDFUseCase) renderFailure(inv entity.Invoice, cause error) error {
	if uc.log != nil {
		uc.log.Error().
			Err(cause).
			Str("invoice_number", inv.Header().Number).
			Msg("generación de PDF fallida")
	}
	return fmt.Errorf("%w: %w", domain.ErrRendering, cause)
}

func fingerprint(data binding.DataBinding) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
