package panel

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/models"
)

// StatusState is the backend health and configuration shown in the header.
type StatusState struct {
	Health    *models.Health        `json:"health,omitempty"`
	Config    *models.BackendConfig `json:"config,omitempty"`
	Err       string                `json:"error,omitempty"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Healthy reports whether the last health check answered "ok".
func (s StatusState) Healthy() bool {
	return s.Health != nil && s.Health.Status == "ok"
}

type Status struct {
	api  backend.API
	opts Options

	mu    sync.Mutex
	state StatusState
}

func NewStatus(api backend.API, opts Options) *Status {
	return &Status{api: api, opts: opts.named("status")}
}

func (p *Status) Snapshot() StatusState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneStatus(p.state)
}

// Refresh fetches health and config together. Either failing keeps the
// previous values and sets the error.
func (p *Status) Refresh(ctx context.Context) error {
	var (
		health models.Health
		cfg    models.BackendConfig
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		health, err = p.api.Health(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cfg, err = p.api.Config(gctx)
		return err
	})
	err := g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.opts.Logger.Warn().Err(err).Msg("failed to load backend status")
		p.state.Err = backend.Message(err, "Backend unreachable")
		return err
	}
	p.state = StatusState{Health: &health, Config: &cfg, UpdatedAt: p.opts.now()}
	return nil
}

func cloneStatus(s StatusState) StatusState {
	out := s
	if s.Health != nil {
		h := *s.Health
		out.Health = &h
	}
	if s.Config != nil {
		c := *s.Config
		out.Config = &c
	}
	return out
}
