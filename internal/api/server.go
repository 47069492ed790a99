package api

import (
	"github.com/gin-gonic/gin"

	"ripple/internal/chat"
	"ripple/internal/connections"
	"ripple/internal/groups"
	"ripple/internal/ledger"
	"ripple/internal/messages"
	"ripple/internal/notifications"
	"ripple/internal/user"
)

type Server struct {
	router *gin.Engine
}

type Handlers struct {
	Chat          *chat.Handler
	Connections   *connections.Handler
	Groups        *groups.Handler
	Messages      *messages.Handler
	Ledger        *ledger.Handler
	Notifications *notifications.Handler
	Users         *user.Handler
}

func NewServer(tokens TokenParser, rps int, handlers Handlers) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(Logger())
	router.Use(RateLimitMiddleware(rps))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// The websocket endpoint does its own identity resolution: clients may
	// carry the token in the query string or finish a connect handshake.
	router.GET("/ws", handlers.Chat.HandleWebSocket)

	authed := router.Group("/")
	authed.Use(AuthMiddleware(tokens))
	{
		authed.GET("/presence/online", handlers.Chat.HandleOnlineUsers)
		handlers.Connections.Register(authed)
		handlers.Groups.Register(authed)
		handlers.Messages.Register(authed)
		handlers.Ledger.Register(authed)
		handlers.Notifications.Register(authed)
		handlers.Users.Register(authed)
	}

	return &Server{router: router}
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
