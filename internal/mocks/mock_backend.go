package mocks

import (
	"context"
	"sync"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/models"
)

// MockAPI implements backend.API for tests. Every method delegates to its
// Func field when set and otherwise returns a zero response. Calls are
// recorded by method name in order.
type MockAPI struct {
	HealthFunc             func(ctx context.Context) (models.Health, error)
	ConfigFunc             func(ctx context.Context) (models.BackendConfig, error)
	ListSessionsFunc       func(ctx context.Context) (models.SessionsResponse, error)
	DeleteSessionFunc      func(ctx context.Context, sessionID string) (models.OKResponse, error)
	ListConversationsFunc  func(ctx context.Context, limit, offset int) (models.ConversationsResponse, error)
	GetConversationFunc    func(ctx context.Context, sessionID string) (models.ConversationResponse, error)
	LogsFunc               func(ctx context.Context, limit int) (models.LogsResponse, error)
	ListUsersFunc          func(ctx context.Context) (models.UsersListResponse, error)
	DataUsersFunc          func(ctx context.Context) (models.UsersListResponse, error)
	CreateUserFunc         func(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error)
	DeleteUserFunc         func(ctx context.Context, phone string) (models.DeleteUserResponse, error)
	GetUserByPhoneFunc     func(ctx context.Context, phone string) (models.User, error)
	GetUserByNameFunc      func(ctx context.Context, name string) (models.User, error)
	SendOTPFunc            func(ctx context.Context, phone string) (models.OKResponse, error)
	UpdateEmailFunc        func(ctx context.Context, phone, email string) (models.OKResponse, error)
	ScheduleCallbackFunc   func(ctx context.Context, phone, when string) (models.OKResponse, error)
	SetOutcomeFunc         func(ctx context.Context, phone, outcome string) (models.OKResponse, error)
	ValidateOTPFunc        func(ctx context.Context, phone, otp string) (models.ValidateOTPResponse, error)
	UserAnalyticsFunc      func(ctx context.Context) (models.UserAnalyticsResponse, error)
	DashboardAnalyticsFunc func(ctx context.Context) (models.DashboardAnalyticsResponse, error)

	mu    sync.Mutex
	calls []string
}

func NewMockAPI() *MockAPI {
	return &MockAPI{}
}

func (m *MockAPI) record(name string) {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	m.mu.Unlock()
}

// Calls returns the recorded method names in call order.
func (m *MockAPI) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times name was called.
func (m *MockAPI) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (m *MockAPI) Health(ctx context.Context) (models.Health, error) {
	m.record("Health")
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return models.Health{Status: "ok"}, nil
}

func (m *MockAPI) Config(ctx context.Context) (models.BackendConfig, error) {
	m.record("Config")
	if m.ConfigFunc != nil {
		return m.ConfigFunc(ctx)
	}
	return models.BackendConfig{}, nil
}

func (m *MockAPI) ListSessions(ctx context.Context) (models.SessionsResponse, error) {
	m.record("ListSessions")
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return models.SessionsResponse{Sessions: []models.Session{}}, nil
}

func (m *MockAPI) DeleteSession(ctx context.Context, sessionID string) (models.OKResponse, error) {
	m.record("DeleteSession")
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return models.OKResponse{OK: true}, nil
}

func (m *MockAPI) ListConversations(ctx context.Context, limit, offset int) (models.ConversationsResponse, error) {
	m.record("ListConversations")
	if m.ListConversationsFunc != nil {
		return m.ListConversationsFunc(ctx, limit, offset)
	}
	return models.ConversationsResponse{}, nil
}

func (m *MockAPI) GetConversation(ctx context.Context, sessionID string) (models.ConversationResponse, error) {
	m.record("GetConversation")
	if m.GetConversationFunc != nil {
		return m.GetConversationFunc(ctx, sessionID)
	}
	return models.ConversationResponse{OK: true, Conversation: models.Conversation{SessionID: sessionID}}, nil
}

func (m *MockAPI) Logs(ctx context.Context, limit int) (models.LogsResponse, error) {
	m.record("Logs")
	if m.LogsFunc != nil {
		return m.LogsFunc(ctx, limit)
	}
	return models.LogsResponse{}, nil
}

func (m *MockAPI) ListUsers(ctx context.Context) (models.UsersListResponse, error) {
	m.record("ListUsers")
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return models.UsersListResponse{}, nil
}

func (m *MockAPI) DataUsers(ctx context.Context) (models.UsersListResponse, error) {
	m.record("DataUsers")
	if m.DataUsersFunc != nil {
		return m.DataUsersFunc(ctx)
	}
	return models.UsersListResponse{}, nil
}

func (m *MockAPI) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error) {
	m.record("CreateUser")
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, req)
	}
	return models.CreateUserResponse{OK: true}, nil
}

func (m *MockAPI) DeleteUser(ctx context.Context, phone string) (models.DeleteUserResponse, error) {
	m.record("DeleteUser")
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, phone)
	}
	return models.DeleteUserResponse{OK: true}, nil
}

func (m *MockAPI) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	m.record("GetUserByPhone")
	if m.GetUserByPhoneFunc != nil {
		return m.GetUserByPhoneFunc(ctx, phone)
	}
	return models.User{PhoneNumber: phone}, nil
}

func (m *MockAPI) GetUserByName(ctx context.Context, name string) (models.User, error) {
	m.record("GetUserByName")
	if m.GetUserByNameFunc != nil {
		return m.GetUserByNameFunc(ctx, name)
	}
	return models.User{Name: name}, nil
}

func (m *MockAPI) SendOTP(ctx context.Context, phone string) (models.OKResponse, error) {
	m.record("SendOTP")
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, phone)
	}
	return models.OKResponse{OK: true}, nil
}

func (m *MockAPI) UpdateEmail(ctx context.Context, phone, email string) (models.OKResponse, error) {
	m.record("UpdateEmail")
	if m.UpdateEmailFunc != nil {
		return m.UpdateEmailFunc(ctx, phone, email)
	}
	return models.OKResponse{OK: true}, nil
}

func (m *MockAPI) ScheduleCallback(ctx context.Context, phone, when string) (models.OKResponse, error) {
	m.record("ScheduleCallback")
	if m.ScheduleCallbackFunc != nil {
		return m.ScheduleCallbackFunc(ctx, phone, when)
	}
	return models.OKResponse{OK: true}, nil
}

func (m *MockAPI) SetOutcome(ctx context.Context, phone, outcome string) (models.OKResponse, error) {
	m.record("SetOutcome")
	if m.SetOutcomeFunc != nil {
		return m.SetOutcomeFunc(ctx, phone, outcome)
	}
	return models.OKResponse{OK: true}, nil
}

func (m *MockAPI) ValidateOTP(ctx context.Context, phone, otp string) (models.ValidateOTPResponse, error) {
	m.record("ValidateOTP")
	if m.ValidateOTPFunc != nil {
		return m.ValidateOTPFunc(ctx, phone, otp)
	}
	return models.ValidateOTPResponse{OK: true, Verified: true}, nil
}

func (m *MockAPI) UserAnalytics(ctx context.Context) (models.UserAnalyticsResponse, error) {
	m.record("UserAnalytics")
	if m.UserAnalyticsFunc != nil {
		return m.UserAnalyticsFunc(ctx)
	}
	return models.UserAnalyticsResponse{}, nil
}

func (m *MockAPI) DashboardAnalytics(ctx context.Context) (models.DashboardAnalyticsResponse, error) {
	m.record("DashboardAnalytics")
	if m.DashboardAnalyticsFunc != nil {
		return m.DashboardAnalyticsFunc(ctx)
	}
	return models.DashboardAnalyticsResponse{}, nil
}

// Compile-time interface compliance verification
var _ backend.API = (*MockAPI)(nil)
