package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/gww-voice/dashboard/internal/models"
)

// HTTPClient talks to the backend over HTTP. It sets no timeout and never
// retries; a hung request lasts until ctx is done.
type HTTPClient struct {
	baseURL string
	client  *resty.Client
	logger  zerolog.Logger
}

func NewHTTPClient(baseURL string, logger zerolog.Logger) *HTTPClient {
	baseURL = strings.TrimRight(baseURL, "/")
	l := logger.With().Str("component", "backend").Logger()
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{l})
	return &HTTPClient{baseURL: baseURL, client: client, logger: l}
}

func (h *HTTPClient) BaseURL() string {
	return h.baseURL
}

func (h *HTTPClient) Health(ctx context.Context) (models.Health, error) {
	var out models.Health
	err := h.do(ctx, http.MethodGet, "/health", nil, nil, &out)
	return out, err
}

func (h *HTTPClient) Config(ctx context.Context) (models.BackendConfig, error) {
	var out models.BackendConfig
	err := h.do(ctx, http.MethodGet, "/config", nil, nil, &out)
	return out, err
}

func (h *HTTPClient) ListSessions(ctx context.Context) (models.SessionsResponse, error) {
	var out models.SessionsResponse
	err := h.do(ctx, http.MethodGet, "/sessions", nil, nil, &out)
	return out, err
}

func (h *HTTPClient) DeleteSession(ctx context.Context, sessionID string) (models.OKResponse, error) {
	var out models.OKResponse
	err := h.do(ctx, http.MethodDelete, "/sessions/"+url.PathEscape(sessionID), nil, nil, &out)
	return out, err
}

func (h *HTTPClient) ListConversations(ctx context.Context, limit, offset int) (models.ConversationsResponse, error) {
	var out models.ConversationsResponse
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	err := h.do(ctx, http.MethodGet, "/conversations", query, nil, &out)
	return out, err
}

func (h *HTTPClient) GetConversation(ctx context.Context, sessionID string) (models.ConversationResponse, error) {
	var out models.ConversationResponse
	err := h.do(ctx, http.MethodGet, "/conversations/"+url.PathEscape(sessionID), nil, nil, &out)
	return out, err
}

func (h *HTTPClient) Logs(ctx context.Context, limit int) (models.LogsResponse, error) {
	var out models.LogsResponse
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	err := h.do(ctx, http.MethodGet, "/logs", query, nil, &out)
	return out, err
}

func (h *HTTPClient) ListUsers(ctx context.Context) (models.UsersListResponse, error) {
	var out models.UsersListResponse
	err := h.do(ctx, http.MethodGet, "/users", nil, nil, &out)
	return out, err
}

func (h *HTTPClient) DataUsers(ctx context.Context) (models.UsersListResponse, error) {
	var out models.UsersListResponse
	err := h.do(ctx, http.MethodGet, "/data/users", nil, nil, &out)
	return out, err
}

func (h *HTTPClient) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error) {
	var out models.CreateUserResponse
	err := h.do(ctx, http.MethodPost, "/users", nil, req, &out)
	return out, err
}

func (h *HTTPClient) DeleteUser(ctx context.Context, phone string) (models.DeleteUserResponse, error) {
	var out models.DeleteUserResponse
	err := h.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(phone), nil, nil, &out)
	return out, err
}

func (h *HTTPClient) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	var out models.User
	err := h.do(ctx, http.MethodGet, "/users/by-phone/"+url.PathEscape(phone), nil, nil, &out)
	return out, err
}

func (h *HTTPClient) GetUserByName(ctx context.Context, name string) (models.User, error) {
	var out models.User
	err := h.do(ctx, http.MethodGet, "/users/by-name/"+url.PathEscape(name), nil, nil, &out)
	return out, err
}

func (h *HTTPClient) SendOTP(ctx context.Context, phone string) (models.OKResponse, error) {
	var out models.OKResponse
	err := h.do(ctx, http.MethodPost, "/users/"+url.PathEscape(phone)+"/otp", nil, map[string]any{}, &out)
	return out, err
}

func (h *HTTPClient) UpdateEmail(ctx context.Context, phone, email string) (models.OKResponse, error) {
	var out models.OKResponse
	body := map[string]string{"email": email}
	err := h.do(ctx, http.MethodPost, "/users/"+url.PathEscape(phone)+"/email", nil, body, &out)
	return out, err
}

func (h *HTTPClient) ScheduleCallback(ctx context.Context, phone, when string) (models.OKResponse, error) {
	var out models.OKResponse
	body := map[string]string{"when": when}
	err := h.do(ctx, http.MethodPost, "/users/"+url.PathEscape(phone)+"/callback", nil, body, &out)
	return out, err
}

func (h *HTTPClient) SetOutcome(ctx context.Context, phone, outcome string) (models.OKResponse, error) {
	var out models.OKResponse
	body := map[string]string{"outcome": outcome}
	err := h.do(ctx, http.MethodPost, "/users/"+url.PathEscape(phone)+"/outcome", nil, body, &out)
	return out, err
}

func (h *HTTPClient) ValidateOTP(ctx context.Context, phone, otp string) (models.ValidateOTPResponse, error) {
	var out models.ValidateOTPResponse
	body := map[string]string{"phone_number": phone, "otp": otp}
	err := h.do(ctx, http.MethodPost, "/validate-otp", nil, body, &out)
	return out, err
}

func (h *HTTPClient) UserAnalytics(ctx context.Context) (models.UserAnalyticsResponse, error) {
	var out models.UserAnalyticsResponse
	err := h.do(ctx, http.MethodGet, "/analytics/users", nil, nil, &out)
	return out, err
}

func (h *HTTPClient) DashboardAnalytics(ctx context.Context) (models.DashboardAnalyticsResponse, error) {
	var out models.DashboardAnalyticsResponse
	err := h.do(ctx, http.MethodGet, "/analytics/dashboard", nil, nil, &out)
	return out, err
}

func (h *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	req := h.client.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		h.logger.Debug().Err(err).Str("method", method).Str("path", path).Dur("latency", time.Since(start)).Msg("backend call failed")
		return &APIError{Message: err.Error(), Err: err}
	}

	status := resp.StatusCode()
	h.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Msg("backend call")

	isJSON := strings.Contains(resp.Header().Get("Content-Type"), "application/json")
	if status < 200 || status >= 300 {
		return decodeError(status, isJSON, resp.Body())
	}
	if !isJSON || out == nil {
		return nil
	}
	raw := resp.Body()
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: status, Message: fmt.Sprintf("invalid response body: %v", err), Err: err}
	}
	return nil
}

// decodeError builds the error for a non-2xx response. A JSON body's detail
// is used, and message wins over detail when both are present.
func decodeError(status int, isJSON bool, raw []byte) *APIError {
	apiErr := statusError(status)
	if !isJSON {
		return apiErr
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}
	if detail, ok := body["detail"].(string); ok && detail != "" {
		apiErr.Message = detail
	}
	if message, ok := body["message"].(string); ok && message != "" {
		apiErr.Message = message
	}
	return apiErr
}

type restyLogger struct {
	l zerolog.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.l.Error().Msgf(format, v...)
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.l.Warn().Msgf(format, v...)
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.l.Debug().Msgf(format, v...)
}
