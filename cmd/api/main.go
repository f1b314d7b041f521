package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docmanage/docs"
	"docmanage/internal/config"
	"docmanage/internal/database"
	handlers "docmanage/internal/http/handler"
	"docmanage/internal/http/middleware"
	"docmanage/internal/notify"
	"docmanage/internal/otel"
	"docmanage/internal/repository/postgres"
	"docmanage/internal/service"
	"docmanage/internal/storage"
	"docmanage/internal/token"
)

// @title Document Management API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	shutdownTracing, err := otel.Init(context.Background(), time.Local)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	tokens, err := token.New(cfg.JWT)
	if err != nil {
		log.Fatalf("failed to initialize token service: %v", err)
	}

	// Initialize repositories and services
	userRepo := postgres.NewUserPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	authSvc := service.NewAuthService(userRepo, tokens)
	docSvc := service.NewDocumentService(objStore, docRepo, notify.NewLogNotifier(cfg.Notify))

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Above the service-level file size cap so oversized uploads get the
		// domain 400 instead of Fiber's 413.
		BodyLimit: 8 * 1024 * 1024,
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
	handlers.RegisterRoutes(app, db, authSvc, docSvc,
		middleware.Auth(tokens, userRepo), middleware.AdminOnly())

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

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
