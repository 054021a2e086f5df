package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestAcquireRelease(t *testing.T) {
	var calls atomic.Int32
	p := New("sessions", 5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, zerolog.Nop())
	defer p.Stop(context.Background())

	assert.False(t, p.Running())

	p.Acquire()
	p.Acquire()
	assert.True(t, p.Running())
	assert.Equal(t, 2, p.Viewers())

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	p.Release()
	assert.True(t, p.Running(), "still one viewer")

	p.Release()
	assert.False(t, p.Running())
	assert.Equal(t, 0, p.Viewers())

	// Releasing past zero is ignored.
	p.Release()
	assert.Equal(t, 0, p.Viewers())
}

func TestStopsTicking(t *testing.T) {
	var calls atomic.Int32
	p := New("users", 5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, zerolog.Nop())

	p.Acquire()
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	assert.NoError(t, p.Stop(context.Background()))

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestEvents(t *testing.T) {
	var (
		mu     sync.Mutex
		events []Event
	)
	p := New("dashboard", 5*time.Millisecond, func(ctx context.Context) error {
		return errors.New("backend down")
	}, zerolog.Nop())
	p.OnEvent(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	p.Acquire()
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) >= 2
	}, time.Second, 5*time.Millisecond)
	assert.NoError(t, p.Stop(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, EventRefreshing, events[0].Type)
	assert.Equal(t, EventRefreshed, events[1].Type)
	assert.Equal(t, "backend down", events[1].Err)
	assert.Equal(t, "dashboard", events[1].View)
}

func TestRefreshContextSurvivesStop(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	ctxErr := make(chan error, 1)
	var once sync.Once
	p := New("conversations", 5*time.Millisecond, func(ctx context.Context) error {
		first := false
		once.Do(func() { first = true })
		if !first {
			return nil
		}
		close(started)
		<-release
		ctxErr <- ctx.Err()
		return nil
	}, zerolog.Nop())

	p.Acquire()
	<-started
	p.Release()
	close(release)

	assert.NoError(t, <-ctxErr)
	assert.NoError(t, p.Stop(context.Background()))
}

func TestZeroIntervalNeverStarts(t *testing.T) {
	p := New("logs", 0, func(ctx context.Context) error { return nil }, zerolog.Nop())
	p.Acquire()
	assert.False(t, p.Running())
	p.Release()
}

func TestStopGivesUpOnStuckRefresh(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	var once sync.Once
	p := New("sessions", 5*time.Millisecond, func(ctx context.Context) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	}, zerolog.Nop())

	p.Acquire()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	begin := time.Now()
	err := p.Stop(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(begin), time.Second)
	assert.False(t, p.Running())
}
