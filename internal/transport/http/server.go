package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/auth"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/config"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/relay"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/service/notify"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/store"
)

// NewServer builds the HTTP server with REST routes and the WS endpoint.
func NewServer(r *relay.Relay, authService *auth.Service, st store.Store, notifier *notify.Service, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	authHandlers := NewAuthHandlers(authService, logger)
	userHandlers := NewUserHandlers(st, logger)
	convHandlers := NewConversationHandlers(st, logger)
	notifHandlers := NewNotificationHandlers(st, logger)
	postingHandlers := NewPostingHandlers(st, notifier, logger)

	api := router.Group("/api")
	api.POST("/register", authHandlers.Register)
	api.POST("/login", authHandlers.Login)

	authed := api.Group("", AuthMiddleware(authService, logger))
	authed.GET("/users/search", userHandlers.SearchUsers)
	authed.GET("/users/:id", userHandlers.GetUser)
	authed.POST("/conversations", convHandlers.CreateConversation)
	authed.GET("/conversations", convHandlers.ListConversations)
	authed.GET("/conversations/:id/messages", convHandlers.ListMessages)
	authed.POST("/conversations/:id/messages", convHandlers.SendMessage)
	authed.GET("/notifications", notifHandlers.ListNotifications)
	authed.DELETE("/notifications/:id", notifHandlers.DeleteNotification)
	authed.POST("/jobs", postingHandlers.CreateJob)
	authed.GET("/jobs", postingHandlers.ListJobs)
	authed.POST("/events", postingHandlers.CreateEvent)
	authed.GET("/events", postingHandlers.ListEvents)

	router.GET("/ws", gin.WrapH(NewWSHandler(r, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
