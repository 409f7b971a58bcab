package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"draftgen/docs"
	"draftgen/internal/config"
	"draftgen/internal/content"
	"draftgen/internal/database"
	"draftgen/internal/database/migration"
	handlers "draftgen/internal/http/handler"
	"draftgen/internal/http/middleware"
	"draftgen/internal/logging"
	"draftgen/internal/otel"
	"draftgen/internal/render"
	"draftgen/internal/repository"
	"draftgen/internal/repository/memory"
	"draftgen/internal/repository/postgres"
	"draftgen/internal/service"
	"draftgen/internal/storage"
)

// @title Draft Generator API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.Location())
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("tracing_init_failed", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// History backend: PostgreSQL when DB_HOST is set, process memory otherwise
	var (
		db        *sql.DB
		draftRepo repository.DraftRepository
	)
	if cfg.Database.Enabled() {
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal("db_connect_failed", zap.Error(err))
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.Fatal("db_migration_failed", zap.Error(err))
		}
		draftRepo = postgres.NewDraftPostgres(db)
	} else {
		log.Info("history_backend", zap.String("backend", "memory"))
		draftRepo = memory.NewDraftMemory()
	}

	// Object storage: MinIO when MINIO_ENDPOINT is set, process memory otherwise
	var objStore storage.Storage
	if cfg.MinIO.Enabled() {
		objStore, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatal("storage_init_failed", zap.Error(err))
		}
	} else {
		log.Info("storage_backend", zap.String("backend", "memory"))
		objStore = storage.NewMemory()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("metrics_init_failed", zap.Error(err))
	}
	draftMetrics, err := service.NewMetrics(reg)
	if err != nil {
		log.Fatal("metrics_init_failed", zap.Error(err))
	}

	resolver, err := content.New()
	if err != nil {
		log.Fatal("catalog_load_failed", zap.Error(err))
	}
	renderer := render.New(render.WithMaxPages(cfg.Draft.MaxPages))

	draftSvc := service.NewDraftService(objStore, draftRepo, resolver, renderer,
		service.WithMetrics(draftMetrics),
		service.WithPresignExpiry(cfg.Draft.PresignExpiry()),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.LoggerWithZap(log.Named("access")))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, draftSvc, log)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("server_shutdown")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server_start_failed", zap.Error(err))
	}
}
