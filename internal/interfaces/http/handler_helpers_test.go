package http_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-builder/internal/application/billing"
	"github.com/jhoicas/invoice-builder/internal/application/binding"
	"github.com/jhoicas/invoice-builder/internal/domain/invoice"
	tpl "github.com/jhoicas/invoice-builder/internal/infrastructure/template"
	apphttp "github.com/jhoicas/invoice-builder/internal/interfaces/http"
	"github.com/jhoicas/invoice-builder/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "invoice-builder-test"
	testUserID    = "00000000-0000-0000-0000-000000000001"
)

var testNow = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

// stubRenderer motor falso: devuelve un PDF mínimo o el error configurado.
type stubRenderer struct {
	err   error
	calls atomic.Int32
}

func (s *stubRenderer) Render(context.Context, binding.DataBinding, binding.RenderOptions) ([]byte, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.7\n%stub\n"), nil
}

// buildTestApp arma la aplicación Fiber completa con el motor indicado.
func buildTestApp(t *testing.T, renderer billing.DocumentRenderer, jwtSecret string) *fiber.App {
	t.Helper()
	templates, err := tpl.NewHTMLTemplate("")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	apphttp.Router(app, apphttp.RouterDeps{
		PDF: billing.NewPDFUseCase(renderer, nil, logger.Nop(), billing.PDFConfig{
			RenderTimeout: time.Second,
			Options:       binding.DefaultRenderOptions,
		}),
		Preview:   billing.NewPreviewUseCase(templates),
		Drafts:    billing.NewDraftUseCase(invoice.NewSequencer(), func() time.Time { return testNow }),
		JWTSecret: jwtSecret,
		JWTIssuer: testIssuer,
	})
	return app
}

// doJSON lanza una petición con cuerpo JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

var errEngine = errors.New("chromium: target closed at /tmp/secret-path")
