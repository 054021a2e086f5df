package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gww-voice/dashboard/internal/analytics"
	"github.com/gww-voice/dashboard/internal/models"
	"github.com/gww-voice/dashboard/internal/panel"
	"github.com/gww-voice/dashboard/internal/ui"
	"github.com/gww-voice/dashboard/internal/view"
)

type navItem struct {
	View  string
	Title string
	Href  string
}

var nav = []navItem{
	{ViewDashboard, "Dashboard", "/"},
	{ViewUsers, "Users", "/users"},
	{ViewConversations, "Conversations", "/conversations"},
	{ViewSessions, "Sessions", "/sessions"},
}

type pageData struct {
	Title   string
	View    string
	Nav     []navItem
	Status  panel.StatusState
	BaseURL string
	Body    any
}

type dashboardBody struct {
	State analytics.State
}

type sessionsBody struct {
	State   view.ListState[models.Session]
	Notice  string
	Confirm ui.Modal
	Logs    view.ListState[string]
}

type usersBody struct {
	State   view.ListState[models.User]
	Notice  string
	Dialog  view.Dialog
	Confirm ui.Modal
	Lookup  panel.UserLookup
}

type conversationsBody struct {
	State         view.ListState[models.ConversationItem]
	Transcript    panel.Transcript
	RevealDelayMS int
}

func (h *Handler) dashboardBody() dashboardBody {
	return dashboardBody{State: h.Analytics.Snapshot()}
}

func (h *Handler) sessionsBody() sessionsBody {
	st := h.Sessions.Snapshot()
	return sessionsBody{
		State:  st,
		Notice: st.Notice.Text(h.now()),
		Confirm: h.confirm(st.Dialog.Is(panel.DialogEndSession), "End session",
			"End call "+st.Dialog.Target+"? The caller will be disconnected.",
			"End session", "", "/sessions/confirm", "/dialog/cancel?view="+ViewSessions),
		Logs: h.Logs.Snapshot(),
	}
}

func (h *Handler) confirm(open bool, title, message, confirmText, cancelText, confirmAction, cancelAction string) ui.Modal {
	m, err := ui.Confirm(open, title, message, confirmText, cancelText, confirmAction, cancelAction)
	if err != nil {
		h.Logger.Error().Err(err).Str("dialog", title).Msg("failed to render confirm dialog")
	}
	return m
}

func (h *Handler) usersBody() usersBody {
	st := h.Users.Snapshot()
	return usersBody{
		State:  st,
		Notice: st.Notice.Text(h.now()),
		Dialog: st.Dialog,
		Confirm: h.confirm(st.Dialog.Is(panel.DialogDeleteUser), "Delete user",
			"Delete user "+st.Dialog.Target+"? This cannot be undone.",
			"Delete", "", "/users/confirm", "/dialog/cancel?view="+ViewUsers),
		Lookup: h.Users.LookupResult(),
	}
}

func (h *Handler) conversationsBody() conversationsBody {
	return conversationsBody{
		State:         h.Conversations.Snapshot(),
		Transcript:    h.Conversations.Transcript(),
		RevealDelayMS: int(h.TurnRevealDelay.Milliseconds()),
	}
}

func (h *Handler) body(name string) (any, bool) {
	switch name {
	case ViewDashboard:
		return h.dashboardBody(), true
	case ViewSessions:
		return h.sessionsBody(), true
	case ViewUsers:
		return h.usersBody(), true
	case ViewConversations:
		return h.conversationsBody(), true
	}
	return nil, false
}

func (h *Handler) render(c *gin.Context, name string) {
	body, _ := h.body(name)
	title := "Dashboard"
	for _, n := range nav {
		if n.View == name {
			title = n.Title
		}
	}
	c.HTML(http.StatusOK, "page", pageData{
		Title:   title,
		View:    name,
		Nav:     nav,
		Status:  h.Status.Snapshot(),
		BaseURL: h.BaseURL,
		Body:    body,
	})
}

// mounted reports whether the page should re-fetch on this GET. Redirects
// after an action carry keep=1 because the action already re-fetched.
func mounted(c *gin.Context) bool {
	return c.Query("keep") != "1"
}

func (h *Handler) DashboardPage(c *gin.Context) {
	if mounted(c) {
		_ = h.RefreshDashboard(detached(c), view.Foreground)
	}
	h.render(c, ViewDashboard)
}

func (h *Handler) SessionsPage(c *gin.Context) {
	if mounted(c) {
		_ = h.RefreshSessions(detached(c), view.Foreground)
	}
	h.render(c, ViewSessions)
}

func (h *Handler) UsersPage(c *gin.Context) {
	if mounted(c) {
		_ = h.Users.Refresh(detached(c), view.Foreground)
	}
	h.render(c, ViewUsers)
}

func (h *Handler) ConversationsPage(c *gin.Context) {
	if mounted(c) {
		_ = h.Conversations.Refresh(detached(c), view.Foreground)
	}
	h.render(c, ViewConversations)
}

// ConversationPage selects one conversation and shows its transcript next to
// the list.
func (h *Handler) ConversationPage(c *gin.Context) {
	ctx := detached(c)
	if h.Conversations.Snapshot().Phase == view.PhaseIdle {
		_ = h.Conversations.Refresh(ctx, view.Foreground)
	}
	_ = h.Conversations.View(ctx, c.Param("id"))
	h.render(c, ViewConversations)
}

// Fragment renders only a view's body so a live page can swap it in after a
// background refresh.
func (h *Handler) Fragment(c *gin.Context) {
	name := c.Param("view")
	body, ok := h.body(name)
	if !ok {
		writeError(c, http.StatusNotFound, "VIEW_NOT_FOUND", "Unknown view", name)
		return
	}
	c.HTML(http.StatusOK, name+"-body", body)
}

// Refresher returns the background refresh of a view for its poller.
func (h *Handler) Refresher(name string) func(ctx context.Context) error {
	switch name {
	case ViewDashboard:
		return func(ctx context.Context) error { return h.RefreshDashboard(ctx, view.Background) }
	case ViewSessions:
		return func(ctx context.Context) error { return h.RefreshSessions(ctx, view.Background) }
	case ViewUsers:
		return func(ctx context.Context) error { return h.Users.Refresh(ctx, view.Background) }
	case ViewConversations:
		return func(ctx context.Context) error { return h.Conversations.Refresh(ctx, view.Background) }
	}
	return nil
}
