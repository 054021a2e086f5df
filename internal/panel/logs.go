package panel

import (
	"context"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/view"
)

const defaultLogsLimit = 100

// Logs shows the tail of the backend log.
type Logs struct {
	api   backend.API
	opts  Options
	limit int
	st    *store[string]
}

func NewLogs(api backend.API, limit int, opts Options) *Logs {
	if limit <= 0 {
		limit = defaultLogsLimit
	}
	return &Logs{api: api, opts: opts.named("logs"), limit: limit, st: newStore[string]()}
}

func (p *Logs) Snapshot() view.ListState[string] {
	return p.st.snapshot()
}

func (p *Logs) Refresh(ctx context.Context, mode view.Mode) error {
	return load(ctx, p.st, p.opts, mode, "Failed to load logs", func(ctx context.Context) ([]string, error) {
		res, err := p.api.Logs(ctx, p.limit)
		return res.Lines, err
	})
}
