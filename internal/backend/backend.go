package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/gww-voice/dashboard/internal/models"
)

// API is the call-center backend as seen by the dashboard: one method per
// endpoint, inputs passed through as given.
type API interface {
	Health(ctx context.Context) (models.Health, error)
	Config(ctx context.Context) (models.BackendConfig, error)

	ListSessions(ctx context.Context) (models.SessionsResponse, error)
	DeleteSession(ctx context.Context, sessionID string) (models.OKResponse, error)

	ListConversations(ctx context.Context, limit, offset int) (models.ConversationsResponse, error)
	GetConversation(ctx context.Context, sessionID string) (models.ConversationResponse, error)

	Logs(ctx context.Context, limit int) (models.LogsResponse, error)

	ListUsers(ctx context.Context) (models.UsersListResponse, error)
	DataUsers(ctx context.Context) (models.UsersListResponse, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error)
	DeleteUser(ctx context.Context, phone string) (models.DeleteUserResponse, error)
	GetUserByPhone(ctx context.Context, phone string) (models.User, error)
	GetUserByName(ctx context.Context, name string) (models.User, error)
	SendOTP(ctx context.Context, phone string) (models.OKResponse, error)
	UpdateEmail(ctx context.Context, phone, email string) (models.OKResponse, error)
	ScheduleCallback(ctx context.Context, phone, when string) (models.OKResponse, error)
	SetOutcome(ctx context.Context, phone, outcome string) (models.OKResponse, error)
	ValidateOTP(ctx context.Context, phone, otp string) (models.ValidateOTPResponse, error)

	UserAnalytics(ctx context.Context) (models.UserAnalyticsResponse, error)
	DashboardAnalytics(ctx context.Context) (models.DashboardAnalyticsResponse, error)
}

// APIError is the single error shape returned for transport failures and
// non-2xx responses. Status is 0 when no response was received.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func statusError(status int) *APIError {
	return &APIError{Status: status, Message: fmt.Sprintf("Request failed with status %d", status)}
}

// Message returns the text to show an operator for err, or fallback when the
// error carries none.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
