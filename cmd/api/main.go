package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/invoice-builder/internal/application/billing"
	"github.com/jhoicas/invoice-builder/internal/application/binding"
	"github.com/jhoicas/invoice-builder/internal/domain/invoice"
	inframetrics "github.com/jhoicas/invoice-builder/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/invoice-builder/internal/infrastructure/pdf"
	infratemplate "github.com/jhoicas/invoice-builder/internal/infrastructure/template"
	httpRouter "github.com/jhoicas/invoice-builder/internal/interfaces/http"
	"github.com/jhoicas/invoice-builder/pkg/config"
	"github.com/jhoicas/invoice-builder/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("render_engine", cfg.Render.Engine).
		Msg("iniciando aplicación")

	templates, err := infratemplate.NewHTMLTemplate(cfg.Render.TemplatePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Render.TemplatePath).Msg("cargar plantilla")
	}

	// Métricas en un registry propio (sin colisiones con el DefaultRegisterer).
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	renderMetrics := inframetrics.NewRenderMetrics(registry)

	pdfUC := billing.NewPDFUseCase(newRenderer(cfg.Render, templates), renderMetrics, log, billing.PDFConfig{
		RecomputeLineTotals: cfg.Render.RecomputeLineTotals,
		RenderTimeout:       cfg.Render.Timeout,
		Options:             binding.DefaultRenderOptions,
	})
	previewUC := billing.NewPreviewUseCase(templates)
	draftUC := billing.NewDraftUseCase(invoice.NewSequencer(), time.Now)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Render.Timeout + time.Second*10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // logos en data URI
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Invoice Builder API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		PDF:       pdfUC,
		Preview:   previewUC,
		Drafts:    draftUC,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// newRenderer elige el motor de PDF según RENDER_ENGINE.
func newRenderer(cfg config.RenderConfig, templates *infratemplate.HTMLTemplate) billing.DocumentRenderer {
	if cfg.Engine == config.EngineRemote {
		return infrapdf.NewRemotePDFRenderer(cfg.RemoteURL, templates, cfg.Timeout)
	}
	return infrapdf.NewMarotoPDFGenerator()
}
