package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gww-voice/dashboard/internal/view"
)

// refreshRequested lets JSON clients ask for a foreground re-fetch before
// the snapshot is returned.
func refreshRequested(c *gin.Context) bool {
	return c.Query("refresh") == "1"
}

// @Summary Dashboard analytics
// @Description Snapshot of the analytics view, including the field-update distribution
// @Tags views
// @Produce json
// @Param refresh query string false "1 to re-fetch first"
// @Success 200 {object} analytics.State
// @Router /api/dashboard [get]
func (h *Handler) APIDashboard(c *gin.Context) {
	if refreshRequested(c) {
		_ = h.RefreshDashboard(detached(c), view.Foreground)
	}
	c.JSON(http.StatusOK, h.Analytics.Snapshot())
}

// @Summary Backend status
// @Tags views
// @Produce json
// @Success 200 {object} panel.StatusState
// @Router /api/status [get]
func (h *Handler) APIStatus(c *gin.Context) {
	if refreshRequested(c) {
		_ = h.Status.Refresh(detached(c))
	}
	c.JSON(http.StatusOK, h.Status.Snapshot())
}

// @Summary Active sessions
// @Tags views
// @Produce json
// @Param refresh query string false "1 to re-fetch first"
// @Success 200 {object} map[string]any
// @Router /api/sessions [get]
func (h *Handler) APISessions(c *gin.Context) {
	if refreshRequested(c) {
		_ = h.Sessions.Refresh(detached(c), view.Foreground)
	}
	c.JSON(http.StatusOK, h.Sessions.Snapshot())
}

// @Summary Users
// @Tags views
// @Produce json
// @Param refresh query string false "1 to re-fetch first"
// @Success 200 {object} map[string]any
// @Router /api/users [get]
func (h *Handler) APIUsers(c *gin.Context) {
	if refreshRequested(c) {
		_ = h.Users.Refresh(detached(c), view.Foreground)
	}
	c.JSON(http.StatusOK, h.Users.Snapshot())
}

// @Summary Find one user
// @Tags views
// @Produce json
// @Param by query string true "phone or name"
// @Param q query string true "Phone number or name"
// @Success 200 {object} panel.UserLookup
// @Failure 400 {object} map[string]any
// @Failure 404 {object} panel.UserLookup
// @Router /api/users/lookup [get]
func (h *Handler) APILookupUser(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid query", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil || req.Key == "" {
		writeError(c, http.StatusBadRequest, "INVALID_QUERY", "by must be phone or name and q is required", nil)
		return
	}
	if err := h.Users.Lookup(detached(c), req.By, req.Key); err != nil {
		c.JSON(http.StatusNotFound, h.Users.LookupResult())
		return
	}
	c.JSON(http.StatusOK, h.Users.LookupResult())
}

// @Summary Conversations
// @Tags views
// @Produce json
// @Param refresh query string false "1 to re-fetch first"
// @Success 200 {object} map[string]any
// @Router /api/conversations [get]
func (h *Handler) APIConversations(c *gin.Context) {
	if refreshRequested(c) {
		_ = h.Conversations.Refresh(detached(c), view.Foreground)
	}
	c.JSON(http.StatusOK, h.Conversations.Snapshot())
}

// @Summary Conversation transcript
// @Tags views
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} panel.Transcript
// @Failure 502 {object} panel.Transcript
// @Router /api/conversations/{id} [get]
func (h *Handler) APIConversation(c *gin.Context) {
	if err := h.Conversations.View(detached(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, h.Conversations.Transcript())
		return
	}
	c.JSON(http.StatusOK, h.Conversations.Transcript())
}

// @Summary Backend log tail
// @Tags views
// @Produce json
// @Param refresh query string false "1 to re-fetch first"
// @Success 200 {object} map[string]any
// @Router /api/logs [get]
func (h *Handler) APILogs(c *gin.Context) {
	if refreshRequested(c) {
		_ = h.Logs.Refresh(detached(c), view.Foreground)
	}
	c.JSON(http.StatusOK, h.Logs.Snapshot())
}
