package main

import (
	"context"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"docmanage/internal/config"
	"docmanage/internal/database"
	"docmanage/internal/database/migration"
)

// Deploy-time schema migration. Run once before starting the API server.
func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := migration.EnsureMigrated(ctx, db, time.Local, cfg.Database.Host); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}
