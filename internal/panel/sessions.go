package panel

import (
	"context"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/models"
	"github.com/gww-voice/dashboard/internal/view"
)

const DialogEndSession = "end-session"

type Sessions struct {
	api  backend.API
	opts Options
	st   *store[models.Session]
}

func NewSessions(api backend.API, opts Options) *Sessions {
	return &Sessions{api: api, opts: opts.named("sessions"), st: newStore[models.Session]()}
}

func (p *Sessions) Snapshot() view.ListState[models.Session] {
	return p.st.snapshot()
}

func (p *Sessions) Refresh(ctx context.Context, mode view.Mode) error {
	return load(ctx, p.st, p.opts, mode, "Failed to load sessions", func(ctx context.Context) ([]models.Session, error) {
		res, err := p.api.ListSessions(ctx)
		return res.Sessions, err
	})
}

// RequestEnd opens the confirmation for ending sessionID. Nothing is sent
// until ConfirmEnd.
func (p *Sessions) RequestEnd(sessionID string) {
	p.st.apply(func(s view.ListState[models.Session]) view.ListState[models.Session] {
		return s.WithDialog(view.Dialog{Kind: DialogEndSession, Target: sessionID})
	})
}

func (p *Sessions) ConfirmEnd(ctx context.Context) error {
	d := p.st.snapshot().Dialog
	if !d.Is(DialogEndSession) {
		return nil
	}
	return mutate(ctx, p.st, p.opts, "Session ended", "Failed to end session", func(ctx context.Context) error {
		_, err := p.api.DeleteSession(ctx, d.Target)
		return err
	}, p.Refresh)
}

func (p *Sessions) CancelDialog() {
	p.st.closeDialog()
}
