package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"

	_ "github.com/lib/pq"

	"ripple/config"
	"ripple/internal/cache"
	"ripple/internal/database"
	"ripple/internal/di"
	"ripple/internal/ledger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// The ledger keeps its own database/sql handle; its tables are managed
	// outside gorm.
	sqlDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open ledger connection: %v", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing ledger connection: %v", err)
		}
	}()
	if err := ledger.NewPostgresRepository(sqlDB).EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to create ledger schema: %v", err)
	}

	redisCache, err := cache.NewRedisCache(cfg.RedisAddr)
	if err != nil {
		// Presence reads fall back to the durable flag.
		log.Printf("Redis unavailable, presence cache disabled: %v", err)
		redisCache = nil
	}

	server := di.InitializeServer(cfg, db, sqlDB, redisCache, logger)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}
