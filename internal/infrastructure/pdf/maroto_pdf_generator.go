// Package pdf implementa los motores que convierten el payload de la factura
// en un PDF.
//
// Layout de la página A4 (motor Maroto):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  [DRAFT] si isWatermark                                      │
//	│  HEADER: Logo + Negocio (nombre/email/dirección) │ INVOICE   │
//	│          N° / Fecha / Vencimiento                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: Cliente (nombre/email/dirección)                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | P.Unit | Total                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Tax (rate%) / Total                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	stdimage "image"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/invoice-builder/internal/application/binding"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary   = &props.Color{Red: 29, Green: 78, Blue: 216}
	colorGray      = &props.Color{Red: 107, Green: 114, Blue: 128}
	colorWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorWatermark = &props.Color{Red: 220, Green: 38, Blue: 38}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentRenderer usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Render genera el PDF y devuelve sus bytes. Un panic del motor se convierte en
// error. Si ctx vence antes de terminar, Render retorna de inmediato con el
// error del contexto y el documento en curso se descarta.
func (g *MarotoPDFGenerator) Render(
	ctx context.Context,
	data binding.DataBinding,
	opts binding.RenderOptions,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	if !strings.EqualFold(opts.Format, "A4") {
		return nil, fmt.Errorf("pdf: formato de página no soportado %q", opts.Format)
	}
	return runWithContext(ctx, func() ([]byte, error) {
		return build(data, opts)
	})
}

type renderResult struct {
	doc []byte
	err error
}

// runWithContext ejecuta fn en su propia goroutine y espera el resultado o el
// fin de ctx, lo que ocurra primero.
func runWithContext(ctx context.Context, fn func() ([]byte, error)) ([]byte, error) {
	done := make(chan renderResult, 1)
	go func() {
		var res renderResult
		defer func() {
			if r := recover(); r != nil {
				res = renderResult{err: fmt.Errorf("pdf: motor maroto: %v", r)}
			}
			done <- res
		}()
		res.doc, res.err = fn()
	}()

	select {
	case res := <-done:
		return res.doc, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("pdf: %w", ctx.Err())
	}
}

func build(data binding.DataBinding, opts binding.RenderOptions) ([]byte, error) {
	margin := opts.MarginMM()
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(margin).WithRightMargin(margin).
		WithTopMargin(margin).WithBottomMargin(margin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+data.Invoice.Number, true).
		WithAuthor(data.Business.Name, true).
		Build()

	m := maroto.New(cfg)

	if data.IsWatermark {
		m.AddRows(watermarkRow())
	}

	// Header
	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(data.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(data.Items)...)

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return generated.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func watermarkRow() core.Row {
	return row.New(16).Add(
		col.New(12).Add(text.New("DRAFT", props.Text{
			Style: fontstyle.Bold, Size: 28, Align: align.Center,
			Color: colorWatermark, Top: 2,
		})),
	)
}

// headerRow: logo y negocio (izq) y N° / fechas (der).
func headerRow(data binding.DataBinding) core.Row {
	left := []core.Component{
		text.New(data.Business.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
		text.New(nonEmpty(data.Business.Email, "—"), props.Text{
			Size: 8, Top: 8, Color: colorGray,
		}),
		text.New(nonEmpty(data.Business.Address, "—"), props.Text{
			Size: 8, Top: 12, Color: colorGray,
		}),
	}

	cols := []core.Col{}
	if logo := logoComponent(data.Business.Logo); logo != nil {
		cols = append(cols, col.New(2).Add(logo), col.New(5).Add(left...))
	} else {
		cols = append(cols, col.New(7).Add(left...))
	}

	cols = append(cols, col.New(5).Add(
		text.New("INVOICE", props.Text{
			Style: fontstyle.Bold, Size: 16, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New(data.Invoice.Number, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 9,
		}),
		text.New("Date: "+data.Invoice.Date, props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
		text.New("Due: "+data.Invoice.DueDate, props.Text{
			Size: 8, Align: align.Right, Top: 18, Color: colorGray,
		}),
	))

	return row.New(24).Add(cols...)
}

// billToRow: datos del cliente.
func billToRow(c binding.Customer) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(fmt.Sprintf("%s   |   %s",
				nonEmpty(c.Email, "—"),
				nonEmpty(c.Address, "—"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo del color primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 6, align.Left),
		h("Qty", 1, align.Center),
		h("Unit price", 2, align.Right),
		h("Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableItemRows: una fila por línea, en orden.
func tableItemRows(items []binding.Item) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				strconv.Itoa(it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+it.UnitPriceFixed(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+it.TotalFixed(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(data binding.DataBinding) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, right, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Right: right, Top: top,
		})
	}

	return row.New(22).Add(
		col.New(6), // espacio izquierdo
		col.New(3).Add(
			label("Subtotal:", 2),
			label(fmt.Sprintf("Tax (%s%%):", data.TaxRate), 7),
			grand("TOTAL:", 2, 13),
		),
		col.New(3).Add(
			value("$"+data.Subtotal, 2),
			value("$"+data.TaxAmount, 7),
			grand("$"+data.Total, 1, 13),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// logoComponent decodifica un data URI png/jpeg. Las URLs remotas no se
// descargan: el motor Maroto solo embebe imágenes que vienen en el payload.
func logoComponent(logo string) core.Component {
	raw, ext, ok := decodeDataURI(logo)
	if !ok {
		return nil
	}
	return image.NewFromBytes(raw, ext, props.Rect{Percent: 90})
}

func decodeDataURI(s string) ([]byte, extension.Type, bool) {
	meta, payload, found := strings.Cut(strings.TrimSpace(s), ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}
	var ext extension.Type
	switch strings.ToLower(strings.TrimSuffix(meta, ";base64")) {
	case "data:image/png":
		ext = extension.Png
	case "data:image/jpeg", "data:image/jpg":
		ext = extension.Jpg
	default:
		return nil, "", false
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(raw) == 0 {
		return nil, "", false
	}
	// Un logo corrupto se omite en lugar de tumbar el documento completo.
	if _, _, err := stdimage.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return nil, "", false
	}
	return raw, ext, true
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
