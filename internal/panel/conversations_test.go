package panel

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/mocks"
	"github.com/gww-voice/dashboard/internal/models"
	"github.com/gww-voice/dashboard/internal/view"
)

func TestSortByStartDesc(t *testing.T) {
	items := []models.ConversationItem{
		{SessionID: "a", StartTime: "2025-01-01T10:00:00Z"},
		{SessionID: "c", StartTime: "2025-01-03T10:00:00Z"},
		{SessionID: "b", StartTime: "2025-01-02T10:00:00+00:00"},
	}
	SortByStartDesc(items)

	got := []string{items[0].SessionID, items[1].SessionID, items[2].SessionID}
	assert.Equal(t, []string{"c", "b", "a"}, got)
}

func TestConversations_RefreshRequestsFirstPage(t *testing.T) {
	api := mocks.NewMockAPI()
	var gotLimit, gotOffset int
	api.ListConversationsFunc = func(ctx context.Context, limit, offset int) (models.ConversationsResponse, error) {
		gotLimit, gotOffset = limit, offset
		return models.ConversationsResponse{Count: 2, Items: []models.ConversationItem{
			{SessionID: "old", StartTime: "2025-01-01T10:00:00Z"},
			{SessionID: "new", StartTime: "2025-02-01T10:00:00Z"},
		}}, nil
	}
	p := NewConversations(api, 0, testOptions())

	require.NoError(t, p.Refresh(context.Background(), view.Foreground))
	assert.Equal(t, 50, gotLimit)
	assert.Equal(t, 0, gotOffset)

	st := p.Snapshot()
	require.Len(t, st.Items, 2)
	assert.Equal(t, "new", st.Items[0].SessionID)
}

func TestConversations_View(t *testing.T) {
	api := mocks.NewMockAPI()
	api.GetConversationFunc = func(ctx context.Context, id string) (models.ConversationResponse, error) {
		if id == "missing" {
			return models.ConversationResponse{}, &backend.APIError{Status: http.StatusNotFound, Message: "conversation not found"}
		}
		return models.ConversationResponse{OK: true, Conversation: models.Conversation{
			SessionID: id,
			Turns: []models.ConversationTurn{
				{Role: "user", Text: "Hi"},
				{Role: "assistant", Text: "Hello"},
			},
		}}, nil
	}
	p := NewConversations(api, 50, testOptions())
	ctx := context.Background()

	require.NoError(t, p.View(ctx, "s-1"))
	tr := p.Transcript()
	assert.True(t, tr.Selected())
	assert.False(t, tr.Loading)
	require.Len(t, tr.Turns, 2)
	assert.Equal(t, "assistant", tr.Turns[1].Role)

	require.Error(t, p.View(ctx, "missing"))
	tr = p.Transcript()
	assert.Equal(t, "conversation not found", tr.Err)
	assert.Empty(t, tr.Turns)

	p.CloseTranscript()
	assert.False(t, p.Transcript().Selected())
}

func TestConversations_StaleTranscriptDropped(t *testing.T) {
	api := mocks.NewMockAPI()
	release := make(chan struct{})
	started := make(chan struct{})
	api.GetConversationFunc = func(ctx context.Context, id string) (models.ConversationResponse, error) {
		if id == "slow" {
			close(started)
			<-release
		}
		return models.ConversationResponse{OK: true, Conversation: models.Conversation{
			SessionID: id,
			Turns:     []models.ConversationTurn{{Role: "user", Text: id}},
		}}, nil
	}
	p := NewConversations(api, 50, testOptions())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- p.View(ctx, "slow") }()
	<-started

	require.NoError(t, p.View(ctx, "fast"))
	close(release)
	require.NoError(t, <-done)

	tr := p.Transcript()
	assert.Equal(t, "fast", tr.SessionID)
	require.Len(t, tr.Turns, 1)
	assert.Equal(t, "fast", tr.Turns[0].Text)
}
