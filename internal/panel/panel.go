// Package panel implements the list views of the dashboard. Each panel owns
// one view.ListState record and follows the same loop: fetch, render, mutate,
// re-fetch. Mutations never edit the list; the re-fetch that follows a
// successful call decides what is shown.
package panel

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/view"
)

const defaultFlashTTL = 2 * time.Second

type Options struct {
	FlashTTL time.Duration
	Now      func() time.Time
	Logger   zerolog.Logger
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) flashTTL() time.Duration {
	if o.FlashTTL > 0 {
		return o.FlashTTL
	}
	return defaultFlashTTL
}

func (o Options) named(component string) Options {
	o.Logger = o.Logger.With().Str("component", component).Logger()
	return o
}

type store[T any] struct {
	mu    sync.Mutex
	state view.ListState[T]
}

func newStore[T any]() *store[T] {
	return &store[T]{state: view.NewListState[T]()}
}

func (s *store[T]) snapshot() view.ListState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *store[T]) apply(fn func(view.ListState[T]) view.ListState[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
}

func (s *store[T]) closeDialog() {
	s.apply(func(st view.ListState[T]) view.ListState[T] {
		return st.WithDialog(view.Dialog{})
	})
}

// load runs one fetch cycle. The store is not locked while fetch runs.
func load[T any](ctx context.Context, st *store[T], o Options, mode view.Mode, fallback string, fetch func(context.Context) ([]T, error)) error {
	st.apply(func(s view.ListState[T]) view.ListState[T] {
		return s.Begin(mode)
	})

	items, err := fetch(ctx)
	if err != nil {
		msg := backend.Message(err, fallback)
		o.Logger.Warn().Err(err).Msg(fallback)
		st.apply(func(s view.ListState[T]) view.ListState[T] {
			return s.Fail(msg)
		})
		return err
	}

	now := o.now()
	st.apply(func(s view.ListState[T]) view.ListState[T] {
		return s.Succeed(items, now)
	})
	return nil
}

// mutate issues call and, only once it succeeded, closes the dialog, shows
// notice and runs a foreground re-fetch. A failed call sets the banner and
// leaves the list and the open dialog as they were.
func mutate[T any](ctx context.Context, st *store[T], o Options, notice, fallback string, call func(context.Context) error, refresh func(context.Context, view.Mode) error) error {
	if err := call(ctx); err != nil {
		msg := backend.Message(err, fallback)
		o.Logger.Warn().Err(err).Msg(fallback)
		st.apply(func(s view.ListState[T]) view.ListState[T] {
			return s.WithError(msg)
		})
		return err
	}

	flash := view.NewFlash(notice, o.now(), o.flashTTL())
	st.apply(func(s view.ListState[T]) view.ListState[T] {
		return s.WithDialog(view.Dialog{}).WithNotice(flash)
	})
	o.Logger.Info().Str("action", notice).Msg("mutation succeeded")
	return refresh(ctx, view.Foreground)
}
