package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gww-voice/dashboard/internal/analytics"
	"github.com/gww-voice/dashboard/internal/panel"
	"github.com/gww-voice/dashboard/internal/view"
)

const (
	ViewDashboard     = "dashboard"
	ViewUsers         = "users"
	ViewConversations = "conversations"
	ViewSessions      = "sessions"
)

type Handler struct {
	Sessions      *panel.Sessions
	Users         *panel.Users
	Conversations *panel.Conversations
	Logs          *panel.Logs
	Status        *panel.Status
	Analytics     *analytics.View

	Validator       *validator.Validate
	Logger          zerolog.Logger
	BaseURL         string
	TurnRevealDelay time.Duration
	Now             func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Healthz reports on the dashboard process itself, not the voice backend.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RefreshDashboard reloads analytics and the header status together.
func (h *Handler) RefreshDashboard(ctx context.Context, mode view.Mode) error {
	_ = h.Status.Refresh(ctx)
	return h.Analytics.Refresh(ctx, mode)
}

// RefreshSessions reloads the live sessions and the log tail shown beneath
// them.
func (h *Handler) RefreshSessions(ctx context.Context, mode view.Mode) error {
	_ = h.Logs.Refresh(ctx, mode)
	return h.Sessions.Refresh(ctx, mode)
}

// detached keeps a backend call running when the browser navigates away
// mid-request. Results land in shared view records, so a cancelled fetch
// would show its cancellation to every viewer.
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
