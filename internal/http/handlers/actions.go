package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gww-voice/dashboard/internal/models"
	"github.com/gww-voice/dashboard/internal/panel"
	"github.com/gww-voice/dashboard/internal/view"
)

type dialogRequest struct {
	Kind  string `validate:"required,oneof=email callback outcome create validate-otp delete-user"`
	Phone string `validate:"required_unless=Kind create"`
}

type lookupRequest struct {
	By  string `form:"by" validate:"required,oneof=phone name"`
	Key string `form:"q"`
}

// back finishes an action with a see-other redirect to the view's page.
func back(c *gin.Context, name string) {
	target := "/" + name
	if name == ViewDashboard {
		target = "/"
	}
	c.Redirect(http.StatusSeeOther, target+"?keep=1")
}

func (h *Handler) RefreshSessionsAction(c *gin.Context) {
	_ = h.RefreshSessions(detached(c), view.Foreground)
	back(c, ViewSessions)
}

func (h *Handler) RequestEndSession(c *gin.Context) {
	h.Sessions.RequestEnd(c.Param("id"))
	back(c, ViewSessions)
}

func (h *Handler) ConfirmEndSession(c *gin.Context) {
	_ = h.Sessions.ConfirmEnd(detached(c))
	back(c, ViewSessions)
}

func (h *Handler) RefreshUsersAction(c *gin.Context) {
	_ = h.Users.Refresh(detached(c), view.Foreground)
	back(c, ViewUsers)
}

func (h *Handler) OpenUserDialog(c *gin.Context) {
	req := dialogRequest{Kind: c.Param("kind"), Phone: strings.TrimSpace(c.PostForm("phone"))}
	if err := h.Validator.Struct(req); err != nil {
		h.Users.Reject("Invalid dialog request")
		back(c, ViewUsers)
		return
	}
	if err := h.Users.Open(req.Kind, req.Phone); err != nil {
		h.Users.Reject("Invalid dialog request")
	}
	back(c, ViewUsers)
}

// SubmitUserDialog submits the form of whichever users dialog is open.
func (h *Handler) SubmitUserDialog(c *gin.Context) {
	ctx := detached(c)
	d := h.Users.Snapshot().Dialog
	switch d.Kind {
	case panel.DialogEmail:
		_ = h.Users.SubmitEmail(ctx, strings.TrimSpace(c.PostForm("email")))
	case panel.DialogCallback:
		_ = h.Users.SubmitCallback(ctx, strings.TrimSpace(c.PostForm("when")))
	case panel.DialogOutcome:
		_ = h.Users.SubmitOutcome(ctx, c.PostForm("outcome"))
	case panel.DialogValidateOTP:
		_ = h.Users.SubmitValidateOTP(ctx, strings.TrimSpace(c.PostForm("otp")))
	case panel.DialogCreate:
		var req models.CreateUserRequest
		if err := c.ShouldBind(&req); err != nil {
			h.Users.Reject("Invalid form")
			break
		}
		_ = h.Users.SubmitCreate(ctx, req)
	case panel.DialogDeleteUser:
		_ = h.Users.ConfirmDelete(ctx)
	}
	back(c, ViewUsers)
}

func (h *Handler) SendOTP(c *gin.Context) {
	_ = h.Users.SendOTP(detached(c), c.Param("phone"))
	back(c, ViewUsers)
}

func (h *Handler) RequestDeleteUser(c *gin.Context) {
	h.Users.RequestDelete(c.Param("phone"))
	back(c, ViewUsers)
}

func (h *Handler) ConfirmDeleteUser(c *gin.Context) {
	_ = h.Users.ConfirmDelete(detached(c))
	back(c, ViewUsers)
}

func (h *Handler) LookupUser(c *gin.Context) {
	var req lookupRequest
	_ = c.ShouldBindQuery(&req)
	if strings.TrimSpace(req.Key) == "" {
		h.Users.ClearLookup()
		back(c, ViewUsers)
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		h.Users.Reject("Search by phone or name")
		back(c, ViewUsers)
		return
	}
	_ = h.Users.Lookup(detached(c), req.By, req.Key)
	back(c, ViewUsers)
}

func (h *Handler) CancelDialog(c *gin.Context) {
	name := c.Query("view")
	switch name {
	case ViewSessions:
		h.Sessions.CancelDialog()
	case ViewUsers:
		h.Users.CancelDialog()
	default:
		writeError(c, http.StatusBadRequest, "INVALID_VIEW", "Unknown view", name)
		return
	}
	back(c, name)
}

func (h *Handler) RefreshConversationsAction(c *gin.Context) {
	_ = h.Conversations.Refresh(detached(c), view.Foreground)
	back(c, ViewConversations)
}

func (h *Handler) CloseTranscript(c *gin.Context) {
	h.Conversations.CloseTranscript()
	back(c, ViewConversations)
}

func (h *Handler) RefreshDashboardAction(c *gin.Context) {
	_ = h.RefreshDashboard(detached(c), view.Foreground)
	back(c, ViewDashboard)
}
