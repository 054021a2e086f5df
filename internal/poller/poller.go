// Package poller runs a view's periodic background refresh while at least one
// browser is watching that view.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	EventRefreshing = "refreshing"
	EventRefreshed  = "refreshed"
)

// Event tells viewers that a view started or finished a background refresh.
type Event struct {
	View string    `json:"view"`
	Type string    `json:"type"`
	Err  string    `json:"error,omitempty"`
	At   time.Time `json:"at"`
}

type RefreshFunc func(ctx context.Context) error

// Poller is reference counted: the first Acquire starts the ticker and the
// last Release stops it. A refresh already in flight when it stops is left
// to finish.
type Poller struct {
	name     string
	interval time.Duration
	refresh  RefreshFunc
	logger   zerolog.Logger

	mu      sync.Mutex
	notify  func(Event)
	viewers int
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(name string, interval time.Duration, refresh RefreshFunc, logger zerolog.Logger) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		refresh:  refresh,
		logger:   logger.With().Str("component", "poller").Str("view", name).Logger(),
	}
}

func (p *Poller) Name() string {
	return p.name
}

// OnEvent sets the listener for refresh events.
func (p *Poller) OnEvent(fn func(Event)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notify = fn
}

func (p *Poller) Acquire() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewers++
	if p.viewers == 1 {
		p.start()
	}
}

func (p *Poller) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.viewers == 0 {
		return
	}
	p.viewers--
	if p.viewers == 0 {
		p.halt()
	}
}

func (p *Poller) Viewers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewers
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Stop halts the loop regardless of viewers and waits for it to exit, or
// for ctx to end if a refresh is stuck in flight.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	done := p.done
	p.viewers = 0
	p.halt()
	p.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		p.logger.Warn().Err(ctx.Err()).Msg("poller stop timed out with a refresh in flight")
		return ctx.Err()
	}
}

func (p *Poller) start() {
	if p.interval <= 0 {
		p.logger.Warn().Msg("poller interval not set; auto-refresh disabled")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
	p.logger.Debug().Dur("interval", p.interval).Msg("poller started")
}

func (p *Poller) halt() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	p.done = nil
	p.logger.Debug().Msg("poller stopped")
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	p.emit(Event{View: p.name, Type: EventRefreshing, At: time.Now()})

	ev := Event{View: p.name, Type: EventRefreshed}
	if err := p.refresh(context.WithoutCancel(ctx)); err != nil {
		p.logger.Debug().Err(err).Msg("background refresh failed")
		ev.Err = err.Error()
	}
	ev.At = time.Now()
	p.emit(ev)
}

func (p *Poller) emit(ev Event) {
	p.mu.Lock()
	notify := p.notify
	p.mu.Unlock()
	if notify != nil {
		notify(ev)
	}
}
