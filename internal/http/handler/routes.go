package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"docmanage/internal/service"
)

// Home is a trivial root endpoint useful as a smoke check.
func Home() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "API Running Successfully"})
	}
}

// HealthCheck reports readiness: it pings the database with a short timeout.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "Database unreachable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// LivenessProbe reports that the process is up, nothing more.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	}
}

// RegisterRoutes mounts the public, authenticated and admin route groups.
// authn must populate the current user local; adminOnly assumes authn ran
// before it.
func RegisterRoutes(app *fiber.App, db *sql.DB, authSvc service.AuthService, docSvc service.DocumentService, authn, adminOnly fiber.Handler) {
	app.Get("/", Home())
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	auth := app.Group("/auth")
	auth.Post("/register", Register(authSvc))
	auth.Post("/login", Login(authSvc))

	docs := app.Group("/documents", authn)
	docs.Post("/upload", UploadDocument(docSvc))
	docs.Get("/my", MyDocuments(docSvc))
	docs.Get("/all", adminOnly, ListAllDocuments(docSvc))
	docs.Put("/review/:id", adminOnly, ReviewDocument(docSvc))
	docs.Get("/:id/download", DownloadDocument(docSvc))
	docs.Get("/:id/history", adminOnly, DocumentHistory(docSvc))
}
