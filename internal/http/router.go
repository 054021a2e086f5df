package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gww-voice/dashboard/internal/analytics"
	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/config"
	"github.com/gww-voice/dashboard/internal/http/handlers"
	"github.com/gww-voice/dashboard/internal/http/live"
	"github.com/gww-voice/dashboard/internal/http/middleware"
	"github.com/gww-voice/dashboard/internal/panel"
	"github.com/gww-voice/dashboard/internal/poller"
	"github.com/gww-voice/dashboard/internal/ui"
	"github.com/gww-voice/dashboard/internal/web"

	_ "github.com/gww-voice/dashboard/docs"
)

// Router wires the views, their pollers and every route. The returned hub
// must be closed on shutdown.
func Router(cfg config.Config, api backend.API, logger zerolog.Logger) (*gin.Engine, *live.Hub, error) {
	tmpl, err := web.Templates(ui.Funcs())
	if err != nil {
		return nil, nil, err
	}

	r := gin.New()
	// Ids are path-escaped in forms; match on the raw path so an encoded
	// "/" stays inside its segment.
	r.UseRawPath = true
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.SetHTMLTemplate(tmpl)

	opts := panel.Options{FlashTTL: cfg.FlashTTL, Logger: logger}
	h := &handlers.Handler{
		Sessions:        panel.NewSessions(api, opts),
		Users:           panel.NewUsers(api, opts),
		Conversations:   panel.NewConversations(api, cfg.ConversationsLim, opts),
		Logs:            panel.NewLogs(api, cfg.LogsLimit, opts),
		Status:          panel.NewStatus(api, opts),
		Analytics:       analytics.NewView(api, logger),
		Validator:       validator.New(),
		Logger:          logger,
		BaseURL:         cfg.APIBaseURL,
		TurnRevealDelay: cfg.TurnRevealDelay,
	}

	hub := live.NewHub(logger)
	for _, name := range []string{handlers.ViewUsers, handlers.ViewConversations, handlers.ViewSessions} {
		hub.Register(poller.New(name, cfg.PanelRefresh, h.Refresher(name), logger))
	}
	hub.Register(poller.New(handlers.ViewDashboard, cfg.AnalyticsRefresh, h.Refresher(handlers.ViewDashboard), logger))

	r.GET("/healthz", h.Healthz)
	r.GET("/ws", hub.Serve)
	r.StaticFS("/static", web.Static())

	r.GET("/", h.DashboardPage)
	r.GET("/users", h.UsersPage)
	r.GET("/conversations", h.ConversationsPage)
	r.GET("/sessions", h.SessionsPage)
	r.GET("/fragments/:view", h.Fragment)

	r.POST("/dashboard/refresh", h.RefreshDashboardAction)
	r.POST("/dialog/cancel", h.CancelDialog)

	sessions := r.Group("/sessions")
	{
		sessions.POST("/refresh", h.RefreshSessionsAction)
		sessions.POST("/confirm", h.ConfirmEndSession)
		sessions.POST("/:id/end", h.RequestEndSession)
	}

	users := r.Group("/users")
	{
		users.GET("/lookup", h.LookupUser)
		users.POST("/refresh", h.RefreshUsersAction)
		users.POST("/confirm", h.ConfirmDeleteUser)
		users.POST("/dialog/submit", h.SubmitUserDialog)
		users.POST("/dialog/:kind", h.OpenUserDialog)
		users.POST("/:phone/otp", h.SendOTP)
		users.POST("/:phone/delete", h.RequestDeleteUser)
	}

	conversations := r.Group("/conversations")
	{
		conversations.GET("/:id", h.ConversationPage)
		conversations.POST("/refresh", h.RefreshConversationsAction)
		conversations.POST("/close", h.CloseTranscript)
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" || cfg.CORSAllowed == "" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins()
	}

	apiGroup := r.Group("/api")
	apiGroup.Use(cors.New(corsCfg))
	{
		apiGroup.GET("/dashboard", h.APIDashboard)
		apiGroup.GET("/status", h.APIStatus)
		apiGroup.GET("/sessions", h.APISessions)
		apiGroup.GET("/users", h.APIUsers)
		apiGroup.GET("/users/lookup", h.APILookupUser)
		apiGroup.GET("/conversations", h.APIConversations)
		apiGroup.GET("/conversations/:id", h.APIConversation)
		apiGroup.GET("/logs", h.APILogs)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, hub, nil
}
