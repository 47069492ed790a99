package di

import (
	"log/slog"

	"github.com/google/wire"
	"gorm.io/gorm"

	"ripple/config"
	"ripple/internal/api"
	"ripple/internal/cache"
	"ripple/internal/chat"
	"ripple/internal/connections"
	"ripple/internal/database"
	"ripple/internal/groups"
	"ripple/internal/ledger"
	"ripple/internal/messages"
	"ripple/internal/notifications"
	"ripple/internal/realtime"
	"ripple/internal/user"
	"ripple/pkg/jwt"
)

var Set = wire.NewSet(
	ProvideGormDB,
	ProvideTokens,
	ProvidePresenceCache,
	ProvideStatusStore,
	ProvidePresence,
	ProvideRouter,
	ProvideChatHandler,
	ProvideServer,
	realtime.NewRegistry,
	user.NewRepository,
	user.NewHandler,
	connections.NewRepository,
	connections.NewGate,
	connections.NewService,
	connections.NewHandler,
	notifications.NewRepository,
	notifications.NewDispatcher,
	notifications.NewHandler,
	groups.NewRepository,
	groups.NewService,
	groups.NewHandler,
	ledger.NewPostgresRepository,
	wire.Bind(new(ledger.Repository), new(*ledger.PostgresRepository)),
	ledger.NewService,
	ledger.NewHandler,
	messages.NewRepository,
	wire.Bind(new(messages.Gate), new(*connections.Gate)),
	wire.Bind(new(messages.Membership), new(*groups.Service)),
	wire.Bind(new(messages.LedgerPurger), new(*ledger.Service)),
	messages.NewService,
	messages.NewHandler,
)

func ProvideGormDB(db *database.Database) *gorm.DB {
	return db.DB
}

func ProvideTokens(cfg *config.Config) *jwt.JWT {
	return jwt.NewJWT(cfg.JWTSecret, 24*60*60)
}

// ProvidePresenceCache keeps a nil *RedisCache from becoming a non-nil
// interface inside the presence tracker.
func ProvidePresenceCache(redis *cache.RedisCache) realtime.PresenceCache {
	if redis == nil {
		return nil
	}
	return redis
}

func ProvideStatusStore(repo user.Repository) realtime.StatusStore {
	return repo
}

func ProvidePresence(registry *realtime.Registry, store realtime.StatusStore, presenceCache realtime.PresenceCache, log *slog.Logger) *realtime.Presence {
	return realtime.NewPresence(registry, store, presenceCache, log)
}

func ProvideRouter(cfg *config.Config, registry *realtime.Registry, presence *realtime.Presence, svc *messages.Service, log *slog.Logger) *chat.Router {
	return chat.NewRouter(registry, presence, svc, cfg.SupportReplyDelay, log)
}

func ProvideChatHandler(cfg *config.Config, router *chat.Router, tokens *jwt.JWT, log *slog.Logger) *chat.Handler {
	return chat.NewHandler(router, tokens, cfg.ChannelQueueSize, log)
}

func ProvideServer(
	cfg *config.Config,
	tokens *jwt.JWT,
	chatHandler *chat.Handler,
	connectionsHandler *connections.Handler,
	groupsHandler *groups.Handler,
	messagesHandler *messages.Handler,
	ledgerHandler *ledger.Handler,
	notificationsHandler *notifications.Handler,
	usersHandler *user.Handler,
) *api.Server {
	return api.NewServer(tokens, cfg.RequestsPerSecond, api.Handlers{
		Chat:          chatHandler,
		Connections:   connectionsHandler,
		Groups:        groupsHandler,
		Messages:      messagesHandler,
		Ledger:        ledgerHandler,
		Notifications: notificationsHandler,
		Users:         usersHandler,
	})
}
