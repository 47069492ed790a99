//go:build wireinject
// +build wireinject

package di

import (
	"database/sql"
	"log/slog"

	"github.com/google/wire"

	"ripple/config"
	"ripple/internal/api"
	"ripple/internal/cache"
	"ripple/internal/database"
)

func InitializeServer(cfg *config.Config, db *database.Database, sqlDB *sql.DB, redis *cache.RedisCache, log *slog.Logger) *api.Server {
	wire.Build(Set)
	return nil
}
