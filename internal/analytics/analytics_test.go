package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/mocks"
	"github.com/gww-voice/dashboard/internal/models"
	"github.com/gww-voice/dashboard/internal/view"
)

func TestFieldDistribution(t *testing.T) {
	users := []models.User{
		{FieldsUpdated: models.FieldList{"email", "dob"}},
		{FieldsUpdated: models.FieldList{"email"}},
		{},
	}

	got := FieldDistribution(users)
	assert.Equal(t, []FieldCount{
		{Field: "email", Label: "Email", Count: 2},
		{Field: "dob", Label: "Date of Birth", Count: 1},
	}, got)
}

func TestFieldDistributionTiesByName(t *testing.T) {
	users := []models.User{{FieldsUpdated: models.FieldList{"name", "address", "marital_status"}}}

	got := FieldDistribution(users)
	require.Len(t, got, 3)
	assert.Equal(t, "address", got[0].Field)
	assert.Equal(t, "marital_status", got[1].Field)
	assert.Equal(t, "MARITAL STATUS", got[1].Label)
	assert.Equal(t, "name", got[2].Field)
}

func TestFieldDistributionEmpty(t *testing.T) {
	assert.Empty(t, FieldDistribution(nil))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.User{
		{FieldsUpdated: models.FieldList{"email", "dob"}},
		{FieldsUpdated: models.FieldList{"email"}},
		{},
	})
	assert.Equal(t, 3, s.TotalUpdates)
	assert.Equal(t, 2, s.UsersWithUpdates)
	assert.InDelta(t, 1.5, s.AveragePerUser, 1e-9)

	assert.Equal(t, FieldSummary{}, Summarize(nil))
}

func dashboardFixture() *models.DashboardAnalytics {
	return &models.DashboardAnalytics{
		Overview:      models.Overview{TotalCalls: 12, AvgConversationTimeMinutes: 3.25, TotalUsers: 4},
		OTPStatistics: models.OTPStatistics{TotalOTPSent: 9, OTPVerified: 3, OTPUnverified: 1, VerificationRatePercentage: 75},
		TimeSeries: models.TimeSeries{
			CallsOverTime: []models.DateCount{{Date: "2025-01-01", Count: 5}, {Date: "2025-01-02", Count: 7}},
			DurationTrend: []models.DateDuration{{Date: "2025-01-01", AvgDurationSeconds: 180}},
		},
	}
}

func TestRefreshBuildsSnapshot(t *testing.T) {
	api := mocks.NewMockAPI()
	api.DashboardAnalyticsFunc = func(ctx context.Context) (models.DashboardAnalyticsResponse, error) {
		return models.DashboardAnalyticsResponse{Data: dashboardFixture()}, nil
	}
	api.UserAnalyticsFunc = func(ctx context.Context) (models.UserAnalyticsResponse, error) {
		return models.UserAnalyticsResponse{Data: []models.User{{FieldsUpdated: models.FieldList{"email"}}}}, nil
	}
	v := NewView(api, zerolog.Nop())

	require.NoError(t, v.Refresh(context.Background(), view.Foreground))

	st := v.Snapshot()
	require.NotNil(t, st.Data)
	assert.False(t, st.Empty())
	assert.Equal(t, 12, st.Data.Dashboard.Overview.TotalCalls)
	assert.Equal(t, 3.25, st.Data.Dashboard.Overview.AvgConversationTimeMinutes)
	assert.Equal(t, []FieldCount{{Field: "email", Label: "Email", Count: 1}}, st.Data.Fields)
	assert.Len(t, st.Data.CallsOverTime(), 2)
	assert.Len(t, st.Data.DurationTrend(), 1)
	assert.Equal(t, 3.0, st.Data.OTPPoints()[0].Value)
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	api := mocks.NewMockAPI()
	api.DashboardAnalyticsFunc = func(ctx context.Context) (models.DashboardAnalyticsResponse, error) {
		return models.DashboardAnalyticsResponse{Data: dashboardFixture()}, nil
	}
	v := NewView(api, zerolog.Nop())
	require.NoError(t, v.Refresh(context.Background(), view.Foreground))

	api.UserAnalyticsFunc = func(ctx context.Context) (models.UserAnalyticsResponse, error) {
		return models.UserAnalyticsResponse{}, &backend.APIError{Status: 500, Message: "Request failed with status 500"}
	}
	require.Error(t, v.Refresh(context.Background(), view.Background))

	st := v.Snapshot()
	assert.Equal(t, view.PhaseError, st.Phase)
	assert.Equal(t, "Request failed with status 500", st.Err)
	require.NotNil(t, st.Data)
	assert.Equal(t, 12, st.Data.Dashboard.Overview.TotalCalls)
	assert.False(t, st.Refreshing)
}

func TestRefreshNullPayloadIsEmpty(t *testing.T) {
	v := NewView(mocks.NewMockAPI(), zerolog.Nop())
	require.NoError(t, v.Refresh(context.Background(), view.Foreground))
	assert.True(t, v.Snapshot().Empty())
}

func TestRefreshFallbackMessage(t *testing.T) {
	api := mocks.NewMockAPI()
	api.DashboardAnalyticsFunc = func(ctx context.Context) (models.DashboardAnalyticsResponse, error) {
		return models.DashboardAnalyticsResponse{}, errors.New("")
	}
	v := NewView(api, zerolog.Nop())
	require.Error(t, v.Refresh(context.Background(), view.Foreground))
	assert.Equal(t, "Failed to load analytics", v.Snapshot().Err)
}
