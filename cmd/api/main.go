package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"docintake/internal/config"
	"docintake/internal/extractor"
	handlers "docintake/internal/http/handler"
	"docintake/internal/http/middleware"
	"docintake/internal/otel"
	"docintake/internal/repository/memory"
	"docintake/internal/service"
	"docintake/internal/storage"
	"docintake/pkg/logger"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Tracing is env-driven and degrades to propagation-only when no
	// exporter is reachable.
	shutdownTracing, err := otel.Init(context.Background(), zlog)
	if err != nil {
		zlog.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			zlog.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	// Optional original-upload archive; the document store itself is
	// in-memory and needs no setup.
	var archive storage.Storage
	if cfg.ArchiveEnabled() {
		archive, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			zlog.Fatal("failed to initialize object storage", zap.Error(err))
		}
	}

	docRepo := memory.NewDocumentMemory()
	textExtractor := extractor.New(cfg.Extraction.Language)
	docSvc := service.NewDocumentService(textExtractor, docRepo, archive, zlog, service.Config{
		MaxFileBytes:             cfg.Upload.MaxFileBytes,
		ExtractTimeout:           time.Duration(cfg.Extraction.TimeoutSec) * time.Second,
		MaxConcurrentExtractions: cfg.Extraction.MaxConcurrent,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Above the upload cap so the service's own FileTooLarge check is
		// the one the client sees; the extra megabyte covers the multipart
		// framing and form fields.
		BodyLimit: int(cfg.Upload.MaxFileBytes) + 1024*1024,
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(zlog))
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		zlog.Fatal("failed to register metrics", zap.Error(err))
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, docSvc)

	addr := ":" + cfg.Port
	zlog.Info("starting server", zap.String("addr", addr), zap.Bool("archive_enabled", cfg.ArchiveEnabled()))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
