package panel

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/models"
	"github.com/gww-voice/dashboard/internal/view"
)

const defaultConversationsLimit = 50

// Conversations lists finished calls, newest first, and shows one transcript
// at a time. Transcripts are read-only.
type Conversations struct {
	api   backend.API
	opts  Options
	limit int
	st    *store[models.ConversationItem]

	mu         sync.Mutex
	transcript Transcript
}

// Transcript is the selected conversation. All turns arrive in one response;
// the page only staggers how they are revealed.
type Transcript struct {
	SessionID string                    `json:"session_id,omitempty"`
	Loading   bool                      `json:"loading"`
	Turns     []models.ConversationTurn `json:"turns"`
	Err       string                    `json:"error,omitempty"`
}

func (t Transcript) Selected() bool {
	return t.SessionID != ""
}

func NewConversations(api backend.API, limit int, opts Options) *Conversations {
	if limit <= 0 {
		limit = defaultConversationsLimit
	}
	return &Conversations{api: api, opts: opts.named("conversations"), limit: limit, st: newStore[models.ConversationItem]()}
}

func (p *Conversations) Snapshot() view.ListState[models.ConversationItem] {
	return p.st.snapshot()
}

func (p *Conversations) Refresh(ctx context.Context, mode view.Mode) error {
	return load(ctx, p.st, p.opts, mode, "Failed to load conversations", func(ctx context.Context) ([]models.ConversationItem, error) {
		res, err := p.api.ListConversations(ctx, p.limit, 0)
		if err != nil {
			return nil, err
		}
		items := make([]models.ConversationItem, len(res.Items))
		copy(items, res.Items)
		SortByStartDesc(items)
		return items, nil
	})
}

// View selects sessionID and fetches its turns. A response for a
// conversation that is no longer selected is dropped.
func (p *Conversations) View(ctx context.Context, sessionID string) error {
	p.mu.Lock()
	p.transcript = Transcript{SessionID: sessionID, Loading: true}
	p.mu.Unlock()

	res, err := p.api.GetConversation(ctx, sessionID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.transcript.SessionID != sessionID {
		return err
	}
	if err != nil {
		p.opts.Logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to load conversation")
		p.transcript = Transcript{SessionID: sessionID, Err: backend.Message(err, "Failed to load conversation")}
		return err
	}
	turns := make([]models.ConversationTurn, len(res.Conversation.Turns))
	copy(turns, res.Conversation.Turns)
	p.transcript = Transcript{SessionID: sessionID, Turns: turns}
	return nil
}

func (p *Conversations) Transcript() Transcript {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.transcript
	if out.Turns != nil {
		out.Turns = append([]models.ConversationTurn(nil), out.Turns...)
	}
	return out
}

func (p *Conversations) CloseTranscript() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transcript = Transcript{}
}

// SortByStartDesc orders conversations by start_time, newest first. Values
// that do not parse as RFC 3339 are compared as strings.
func SortByStartDesc(items []models.ConversationItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, errA := time.Parse(time.RFC3339, items[i].StartTime)
		b, errB := time.Parse(time.RFC3339, items[j].StartTime)
		if errA == nil && errB == nil {
			return a.After(b)
		}
		return items[i].StartTime > items[j].StartTime
	})
}
