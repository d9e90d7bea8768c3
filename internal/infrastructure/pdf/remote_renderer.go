package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/invoice-builder/internal/application/binding"
)

// convertHTMLPath ruta de conversión HTML→PDF (API compatible con Gotenberg).
const convertHTMLPath = "/forms/chromium/convert/html"

// maxPDFBytes límite de lectura de la respuesta.
const maxPDFBytes = 32 << 20

// A4 en pulgadas.
const (
	a4WidthIn  = "8.27"
	a4HeightIn = "11.7"
)

// HTMLRenderer convierte el payload en HTML (plantilla fija).
type HTMLRenderer interface {
	RenderHTML(data binding.DataBinding) (string, error)
}

// RemotePDFRenderer implementa billing.DocumentRenderer delegando en un servicio
// HTML→PDF externo. Usa net/http de la stdlib con timeout de red.
type RemotePDFRenderer struct {
	baseURL    string
	templates  HTMLRenderer
	httpClient *http.Client
}

// NewRemotePDFRenderer construye el cliente. timeout <= 0 usa 30 s.
func NewRemotePDFRenderer(baseURL string, templates HTMLRenderer, timeout time.Duration) *RemotePDFRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemotePDFRenderer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		templates:  templates,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Render sustituye el payload en la plantilla y envía el HTML al servicio.
func (r *RemotePDFRenderer) Render(ctx context.Context, data binding.DataBinding, opts binding.RenderOptions) ([]byte, error) {
	if !strings.EqualFold(opts.Format, "A4") {
		return nil, fmt.Errorf("pdf remoto: formato de página no soportado %q", opts.Format)
	}
	html, err := r.templates.RenderHTML(data)
	if err != nil {
		return nil, fmt.Errorf("pdf remoto: plantilla: %w", err)
	}

	body, contentType, err := buildForm(html, opts)
	if err != nil {
		return nil, fmt.Errorf("pdf remoto: armar formulario: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+convertHTMLPath, body)
	if err != nil {
		return nil, fmt.Errorf("pdf remoto: crear request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Gotenberg-Output-Filename", strings.TrimSuffix(binding.Filename(data.Invoice.Number), ".pdf"))

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pdf remoto: enviar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pdf remoto: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	doc, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes+1))
	if err != nil {
		return nil, fmt.Errorf("pdf remoto: leer respuesta: %w", err)
	}
	if len(doc) > maxPDFBytes {
		return nil, fmt.Errorf("pdf remoto: respuesta excede %d bytes", maxPDFBytes)
	}
	return doc, nil
}

// buildForm arma el multipart con index.html y las opciones de página.
// Sin archivos header.html/footer.html el servicio no dibuja encabezado ni pie.
func buildForm(html string, opts binding.RenderOptions) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, "", err
	}
	if _, err := io.WriteString(fw, html); err != nil {
		return nil, "", err
	}

	margin := strconv.Itoa(opts.MarginPx) + "px"
	fields := []struct{ k, v string }{
		{"paperWidth", a4WidthIn},
		{"paperHeight", a4HeightIn},
		{"landscape", "false"},
		{"marginTop", margin},
		{"marginBottom", margin},
		{"marginLeft", margin},
		{"marginRight", margin},
		{"printBackground", strconv.FormatBool(opts.PrintBackground)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.k, f.v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
