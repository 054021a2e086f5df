package backend

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gww-voice/dashboard/internal/models"
	"github.com/gww-voice/dashboard/internal/utils"
)

// MockBackend is an in-memory stand-in for the call-center backend, used for
// demo mode and handler tests. OTP codes are derived from the phone number so
// runs are reproducible.
type MockBackend struct {
	mu            sync.Mutex
	sessions      []models.Session
	users         []models.User
	conversations []models.ConversationItem
	otps          map[string]string
	logs          []string
	now           func() time.Time
}

func NewMockBackend() *MockBackend {
	return &MockBackend{otps: map[string]string{}, now: time.Now}
}

// NewSeededMockBackend returns a mock populated with a few sessions, users and
// finished conversations.
func NewSeededMockBackend() *MockBackend {
	m := NewMockBackend()
	base := m.now().UTC().Add(-72 * time.Hour).Truncate(time.Hour)

	m.AddUser(models.User{Name: "Ada Lovelace", Address: "12 St James's Square, London", PhoneNumber: "+15551234567", DOB: "1815-12-10", Email: "ada@example.com", FieldsUpdated: models.FieldList{"email"}})
	m.AddUser(models.User{Name: "Alan Turing", Address: "Wilmslow, Cheshire", PhoneNumber: "+15557654321", DOB: "1912-06-23", Email: "alan@example.com", FieldsUpdated: models.FieldList{"email", "dob"}, PortalMailSent: true})
	m.AddUser(models.User{Name: "Grace Hopper", Address: "Arlington, Virginia", PhoneNumber: "+15550001111", SecondaryPhoneNumber: "+15550002222", DOB: "1906-12-09", Email: "grace@example.com"})

	for i, phone := range []string{"+15551234567", "+15557654321", "+15550001111"} {
		start := base.Add(time.Duration(i*20) * time.Hour)
		end := start.Add(time.Duration(90+i*45) * time.Second)
		m.AddConversation(finishedConversation(fmt.Sprintf("conv-%d", i+1), phone, start, end))
	}

	now := m.now().UTC()
	m.AddSession(models.Session{SessionID: "sess-live-1", CallSID: utils.CallSID("sess-live-1"), FromNumber: "+15550009999", ToNumber: "+15551234567", StartTime: now.Add(-3 * time.Minute).Format(time.RFC3339)})
	m.AddSession(models.Session{SessionID: "sess-live-2", CallSID: utils.CallSID("sess-live-2"), FromNumber: "+15550009999", ToNumber: "+15557654321", StartTime: now.Add(-40 * time.Second).Format(time.RFC3339)})
	return m
}

func finishedConversation(id, phone string, start, end time.Time) models.ConversationItem {
	endStr := end.Format(time.RFC3339)
	duration := end.Sub(start).Seconds()
	return models.ConversationItem{
		SessionID:       id,
		CallSID:         utils.CallSID(id),
		FromNumber:      "+15550009999",
		ToNumber:        phone,
		StartTime:       start.Format(time.RFC3339),
		EndTime:         &endStr,
		DurationSeconds: &duration,
		Turns: []models.ConversationTurn{
			{Role: "assistant", Text: "Hello, this is the customer care line. Am I speaking with the account holder?", Timestamp: start.Format(time.RFC3339)},
			{Role: "customer", Text: "Yes, speaking.", Timestamp: start.Add(5 * time.Second).Format(time.RFC3339)},
			{Role: "assistant", Text: "I have sent a one-time code to your phone. Could you read it back to me?", Timestamp: start.Add(12 * time.Second).Format(time.RFC3339)},
			{Role: "customer", Text: "Sure, one moment.", Timestamp: start.Add(20 * time.Second).Format(time.RFC3339)},
		},
	}
}

func (m *MockBackend) AddSession(s models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, s)
}

func (m *MockBackend) AddUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, cloneUser(u))
}

func (m *MockBackend) AddConversation(c models.ConversationItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations = append(m.conversations, c)
}

// OTP returns the last code issued for phone.
func (m *MockBackend) OTP(phone string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.otps[phone]
}

func (m *MockBackend) Health(ctx context.Context) (models.Health, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.Health{Status: "ok", ActiveSessions: len(m.sessions), Timestamp: m.now().UTC().Format(time.RFC3339)}, nil
}

func (m *MockBackend) Config(ctx context.Context) (models.BackendConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.BackendConfig{ServerDomain: "mock.local", Port: 8000, ActiveSessions: len(m.sessions)}, nil
}

func (m *MockBackend) ListSessions(ctx context.Context) (models.SessionsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Session, len(m.sessions))
	copy(out, m.sessions)
	return models.SessionsResponse{Sessions: out}, nil
}

func (m *MockBackend) DeleteSession(ctx context.Context, sessionID string) (models.OKResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.sessions {
		if s.SessionID != sessionID {
			continue
		}
		m.sessions = append(m.sessions[:i:i], m.sessions[i+1:]...)
		start, err := time.Parse(time.RFC3339, s.StartTime)
		if err != nil {
			start = m.now().UTC()
		}
		conv := finishedConversation(s.SessionID, s.ToNumber, start, m.now().UTC())
		conv.CallSID = s.CallSID
		conv.FromNumber = s.FromNumber
		m.conversations = append(m.conversations, conv)
		m.logf("session %s ended by operator", sessionID)
		return models.OKResponse{OK: true}, nil
	}
	return models.OKResponse{}, &APIError{Status: http.StatusNotFound, Message: "session not found"}
}

func (m *MockBackend) ListConversations(ctx context.Context, limit, offset int) (models.ConversationsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset < 0 {
		offset = 0
	}
	if offset > len(m.conversations) {
		offset = len(m.conversations)
	}
	end := len(m.conversations)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]models.ConversationItem, end-offset)
	copy(out, m.conversations[offset:end])
	return models.ConversationsResponse{Count: len(out), Items: out}, nil
}

func (m *MockBackend) GetConversation(ctx context.Context, sessionID string) (models.ConversationResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.conversations {
		if c.SessionID == sessionID {
			turns := make([]models.ConversationTurn, len(c.Turns))
			copy(turns, c.Turns)
			return models.ConversationResponse{OK: true, Conversation: models.Conversation{SessionID: c.SessionID, Turns: turns}}, nil
		}
	}
	return models.ConversationResponse{}, &APIError{Status: http.StatusNotFound, Message: "conversation not found"}
}

func (m *MockBackend) Logs(ctx context.Context, limit int) (models.LogsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.logs
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return models.LogsResponse{Lines: out}, nil
}

func (m *MockBackend) ListUsers(ctx context.Context) (models.UsersListResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.UsersListResponse{Items: m.usersCopy()}, nil
}

func (m *MockBackend) DataUsers(ctx context.Context) (models.UsersListResponse, error) {
	return m.ListUsers(ctx)
}

func (m *MockBackend) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.Name == "" || req.PhoneNumber == "" || req.Address == "" || req.DOB == "" || req.Email == "" {
		return models.CreateUserResponse{}, statusError(http.StatusBadRequest)
	}
	if _, ok := m.userIndex(req.PhoneNumber); ok {
		return models.CreateUserResponse{}, &APIError{Status: http.StatusConflict, Message: "user already exists"}
	}
	u := models.User{
		Name:                 req.Name,
		Address:              req.Address,
		PhoneNumber:          req.PhoneNumber,
		SecondaryPhoneNumber: req.SecondaryPhoneNumber,
		DOB:                  req.DOB,
		Email:                req.Email,
	}
	m.users = append(m.users, u)
	m.logf("user %s created", req.PhoneNumber)
	created := cloneUser(u)
	return models.CreateUserResponse{OK: true, User: &created}, nil
}

func (m *MockBackend) DeleteUser(ctx context.Context, phone string) (models.DeleteUserResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.userIndex(phone)
	if !ok {
		return models.DeleteUserResponse{}, &APIError{Status: http.StatusNotFound, Message: "user not found"}
	}
	m.users = append(m.users[:i:i], m.users[i+1:]...)
	m.logf("user %s deleted", phone)
	return models.DeleteUserResponse{OK: true}, nil
}

func (m *MockBackend) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.userIndex(phone)
	if !ok {
		return models.User{}, &APIError{Status: http.StatusNotFound, Message: "user not found"}
	}
	return cloneUser(m.users[i]), nil
}

func (m *MockBackend) GetUserByName(ctx context.Context, name string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Name, strings.TrimSpace(name)) {
			return cloneUser(u), nil
		}
	}
	return models.User{}, &APIError{Status: http.StatusNotFound, Message: "user not found"}
}

func (m *MockBackend) SendOTP(ctx context.Context, phone string) (models.OKResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.userIndex(phone)
	if !ok {
		return models.OKResponse{}, &APIError{Status: http.StatusNotFound, Message: "user not found"}
	}
	m.users[i].OTPCount++
	seed := fmt.Sprintf("%s#%d", phone, m.users[i].OTPCount)
	m.otps[phone] = utils.DigitCode(seed, 6)
	m.logf("otp issued for %s", phone)
	return models.OKResponse{OK: true}, nil
}

func (m *MockBackend) UpdateEmail(ctx context.Context, phone, email string) (models.OKResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.userIndex(phone)
	if !ok {
		return models.OKResponse{}, &APIError{Status: http.StatusNotFound, Message: "user not found"}
	}
	if strings.TrimSpace(email) == "" {
		return models.OKResponse{}, &APIError{Status: http.StatusBadRequest, Message: "email is required"}
	}
	m.users[i].Email = email
	m.markUpdated(i, "email")
	m.logf("email updated for %s", phone)
	return models.OKResponse{OK: true}, nil
}

func (m *MockBackend) ScheduleCallback(ctx context.Context, phone, when string) (models.OKResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.userIndex(phone)
	if !ok {
		return models.OKResponse{}, &APIError{Status: http.StatusNotFound, Message: "user not found"}
	}
	if strings.TrimSpace(when) == "" {
		return models.OKResponse{}, &APIError{Status: http.StatusBadRequest, Message: "when is required"}
	}
	w := when
	outcome := models.OutcomeCallBackScheduled
	m.users[i].CallBackDatetime = &w
	m.users[i].ScheduledCallback = &w
	m.users[i].CallOutcome = &outcome
	m.logf("callback scheduled for %s at %s", phone, when)
	return models.OKResponse{OK: true}, nil
}

func (m *MockBackend) SetOutcome(ctx context.Context, phone, outcome string) (models.OKResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.userIndex(phone)
	if !ok {
		return models.OKResponse{}, &APIError{Status: http.StatusNotFound, Message: "user not found"}
	}
	o := outcome
	m.users[i].CallOutcome = &o
	m.logf("outcome %s recorded for %s", outcome, phone)
	return models.OKResponse{OK: true}, nil
}

func (m *MockBackend) ValidateOTP(ctx context.Context, phone, otp string) (models.ValidateOTPResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.userIndex(phone)
	if !ok {
		return models.ValidateOTPResponse{}, &APIError{Status: http.StatusNotFound, Message: "user not found"}
	}
	code, issued := m.otps[phone]
	if !issued {
		return models.ValidateOTPResponse{}, &APIError{Status: http.StatusBadRequest, Message: "no otp issued for this number"}
	}
	verified := code == strings.TrimSpace(otp)
	if verified {
		m.users[i].OTPVerified = true
		delete(m.otps, phone)
	}
	return models.ValidateOTPResponse{OK: true, Verified: verified}, nil
}

func (m *MockBackend) UserAnalytics(ctx context.Context) (models.UserAnalyticsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.UserAnalyticsResponse{Data: m.usersCopy()}, nil
}

func (m *MockBackend) DashboardAnalytics(ctx context.Context) (models.DashboardAnalyticsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var a models.DashboardAnalytics
	a.Overview.TotalCalls = len(m.conversations)
	a.Overview.TotalUsers = len(m.users)

	type day struct {
		calls    int
		duration float64
		timed    int
	}
	days := map[string]*day{}
	var totalDuration float64
	var timed int
	for _, c := range m.conversations {
		date := c.StartTime
		if len(date) >= 10 {
			date = date[:10]
		}
		d, ok := days[date]
		if !ok {
			d = &day{}
			days[date] = d
		}
		d.calls++
		if c.DurationSeconds != nil {
			d.duration += *c.DurationSeconds
			d.timed++
			totalDuration += *c.DurationSeconds
			timed++
		}
	}
	if timed > 0 {
		a.Overview.AvgConversationTimeMinutes = totalDuration / float64(timed) / 60
	}
	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		d := days[date]
		a.TimeSeries.CallsOverTime = append(a.TimeSeries.CallsOverTime, models.DateCount{Date: date, Count: d.calls})
		avg := 0.0
		if d.timed > 0 {
			avg = d.duration / float64(d.timed)
		}
		a.TimeSeries.DurationTrend = append(a.TimeSeries.DurationTrend, models.DateDuration{Date: date, AvgDurationSeconds: avg})
	}

	for _, u := range m.users {
		a.OTPStatistics.TotalOTPSent += u.OTPCount
		if u.OTPVerified {
			a.OTPStatistics.OTPVerified++
		} else {
			a.OTPStatistics.OTPUnverified++
		}
		if u.CallBackDatetime != nil {
			a.Engagement.CallbacksScheduled++
		}
		if u.PortalMailSent {
			a.Engagement.PortalMailsSent++
		}
	}
	if n := len(m.users); n > 0 {
		a.OTPStatistics.AverageOTPPerUser = float64(a.OTPStatistics.TotalOTPSent) / float64(n)
		a.OTPStatistics.VerificationRatePercentage = float64(a.OTPStatistics.OTPVerified) / float64(n) * 100
	}
	return models.DashboardAnalyticsResponse{Data: &a}, nil
}

func (m *MockBackend) userIndex(phone string) (int, bool) {
	for i, u := range m.users {
		if u.PhoneNumber == phone {
			return i, true
		}
	}
	return 0, false
}

func (m *MockBackend) markUpdated(i int, field string) {
	for _, f := range m.users[i].FieldsUpdated {
		if f == field {
			return
		}
	}
	m.users[i].FieldsUpdated = append(m.users[i].FieldsUpdated, field)
}

func (m *MockBackend) usersCopy() []models.User {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, cloneUser(u))
	}
	return out
}

func (m *MockBackend) logf(format string, args ...any) {
	line := m.now().UTC().Format(time.RFC3339) + " " + fmt.Sprintf(format, args...)
	m.logs = append(m.logs, line)
}

func cloneUser(u models.User) models.User {
	if u.FieldsUpdated != nil {
		u.FieldsUpdated = append(models.FieldList(nil), u.FieldsUpdated...)
	}
	if u.CallOutcome != nil {
		v := *u.CallOutcome
		u.CallOutcome = &v
	}
	if u.CallBackDatetime != nil {
		v := *u.CallBackDatetime
		u.CallBackDatetime = &v
	}
	if u.ScheduledCallback != nil {
		v := *u.ScheduledCallback
		u.ScheduledCallback = &v
	}
	return u
}

var _ API = (*MockBackend)(nil)
var _ API = (*HTTPClient)(nil)
