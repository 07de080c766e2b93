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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docflow/internal/ai"
	"docflow/internal/config"
	"docflow/internal/database"
	"docflow/internal/database/migration"
	"docflow/internal/directory"
	handlers "docflow/internal/http/handler"
	"docflow/internal/http/middleware"
	"docflow/internal/otel"
	"docflow/internal/render"
	"docflow/internal/repository/postgres"
	"docflow/internal/service"
	"docflow/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC
	ctx := context.Background()

	// Tracing is a no-op unless OTEL_* endpoints are configured
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Bring the schema up if this is a fresh database
	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Downstream service clients
	renderer, err := render.NewHTTPClient(cfg.Render.BaseURL, time.Duration(cfg.Render.TimeoutSec)*time.Second)
	if err != nil {
		log.Fatalf("failed to initialize render client: %v", err)
	}
	dir, err := directory.NewHTTPClient(cfg.Directory.BaseURL, time.Duration(cfg.Directory.TimeoutSec)*time.Second)
	if err != nil {
		log.Fatalf("failed to initialize directory client: %v", err)
	}

	enhancer := ai.NewPassthrough()
	if cfg.AI.Enabled && cfg.AI.BaseURL != "" {
		enhancer, err = ai.NewHTTPClient(cfg.AI.BaseURL, time.Duration(cfg.AI.TimeoutSec)*time.Second)
		if err != nil {
			log.Fatalf("failed to initialize ai client: %v", err)
		}
	}

	// Initialize repositories and services
	assetRepo := postgres.NewAssetPostgres(db)
	historyRepo := postgres.NewHistoryPostgres(db)

	assetSvc := service.NewAssetService(objStore, assetRepo)
	historySvc := service.NewHistoryService(historyRepo)
	genSvc := service.NewGeneratorService(dir, renderer, enhancer, assetSvc, historySvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	auth := middleware.Auth([]byte(cfg.Auth.JWTSecret))
	handlers.RegisterRoutes(app, db, auth, assetSvc, historySvc, genSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
