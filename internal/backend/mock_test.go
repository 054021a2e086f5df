package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gww-voice/dashboard/internal/models"
)

func TestMockBackendDeleteSessionFinalizesConversation(t *testing.T) {
	m := NewMockBackend()
	m.AddSession(models.Session{SessionID: "abc", CallSID: "CA1", FromNumber: "+1", ToNumber: "+2", StartTime: "2025-01-01T10:00:00Z"})
	ctx := context.Background()

	_, err := m.DeleteSession(ctx, "abc")
	require.NoError(t, err)

	sessions, err := m.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions.Sessions)

	conv, err := m.GetConversation(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", conv.Conversation.SessionID)

	_, err = m.DeleteSession(ctx, "abc")
	require.Error(t, err)
	assert.Equal(t, "session not found", err.Error())
}

func TestMockBackendCreateUserRequiresFields(t *testing.T) {
	m := NewMockBackend()
	_, err := m.CreateUser(context.Background(), models.CreateUserRequest{Name: "Ada", PhoneNumber: "+15551234567"})
	require.Error(t, err)
	assert.Equal(t, "Request failed with status 400", err.Error())
}

func TestMockBackendOTPRoundTrip(t *testing.T) {
	m := NewMockBackend()
	m.AddUser(models.User{Name: "Ada", PhoneNumber: "+15551234567"})
	ctx := context.Background()

	_, err := m.SendOTP(ctx, "+15551234567")
	require.NoError(t, err)
	code := m.OTP("+15551234567")
	require.Len(t, code, 6)

	res, err := m.ValidateOTP(ctx, "+15551234567", "nope")
	require.NoError(t, err)
	assert.False(t, res.Verified)

	res, err = m.ValidateOTP(ctx, "+15551234567", code)
	require.NoError(t, err)
	assert.True(t, res.Verified)

	u, err := m.GetUserByPhone(ctx, "+15551234567")
	require.NoError(t, err)
	assert.True(t, u.OTPVerified)
	assert.Equal(t, 1, u.OTPCount)
}

func TestMockBackendReturnsCopies(t *testing.T) {
	m := NewMockBackend()
	m.AddUser(models.User{Name: "Ada", PhoneNumber: "+1", FieldsUpdated: models.FieldList{"email"}})

	list, err := m.ListUsers(context.Background())
	require.NoError(t, err)
	list.Items[0].FieldsUpdated[0] = "changed"

	again, err := m.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "email", again.Items[0].FieldsUpdated[0])
}

func TestMockBackendDashboardAnalytics(t *testing.T) {
	m := NewSeededMockBackend()
	res, err := m.DashboardAnalytics(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res.Data)
	assert.Equal(t, 3, res.Data.Overview.TotalCalls)
	assert.Equal(t, 3, res.Data.Overview.TotalUsers)
	assert.Equal(t, 1, res.Data.Engagement.PortalMailsSent)
	assert.NotEmpty(t, res.Data.TimeSeries.CallsOverTime)
}
