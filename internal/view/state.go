// Package view holds the display state records owned by each dashboard view.
// Records are values: every transition returns a new record that replaces the
// old one, nothing is patched in place.
package view

import "time"

// Mode says what triggered a refresh.
type Mode int

const (
	// Foreground refreshes come from mount, the refresh button or a
	// post-mutation re-fetch and show the loading state.
	Foreground Mode = iota
	// Background refreshes come from the auto-refresh timer and only show a
	// light refreshing indicator.
	Background
)

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

type ListState[T any] struct {
	Items      []T       `json:"items"`
	Phase      Phase     `json:"phase"`
	Loading    bool      `json:"loading"`
	Refreshing bool      `json:"refreshing"`
	Err        string    `json:"error,omitempty"`
	Notice     Flash     `json:"notice"`
	Dialog     Dialog    `json:"dialog"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewListState[T any]() ListState[T] {
	return ListState[T]{Phase: PhaseIdle}
}

// Begin marks a fetch as started. Items stay as they were.
func (s ListState[T]) Begin(mode Mode) ListState[T] {
	next := s.Clone()
	next.Phase = PhaseLoading
	next.Err = ""
	if mode == Background {
		next.Refreshing = true
	} else {
		next.Loading = true
	}
	return next
}

// Succeed replaces the items with exactly the fetched list.
func (s ListState[T]) Succeed(items []T, now time.Time) ListState[T] {
	next := s.Clone()
	next.Items = make([]T, len(items))
	copy(next.Items, items)
	next.Phase = PhaseSuccess
	next.Loading = false
	next.Refreshing = false
	next.Err = ""
	next.UpdatedAt = now
	return next
}

// Fail records a fetch failure and keeps the last known items.
func (s ListState[T]) Fail(msg string) ListState[T] {
	next := s.Clone()
	next.Phase = PhaseError
	next.Loading = false
	next.Refreshing = false
	next.Err = msg
	return next
}

// WithError sets the banner for a failed action without touching the list or
// the fetch phase.
func (s ListState[T]) WithError(msg string) ListState[T] {
	next := s.Clone()
	next.Err = msg
	return next
}

func (s ListState[T]) WithNotice(f Flash) ListState[T] {
	next := s.Clone()
	next.Notice = f
	return next
}

func (s ListState[T]) WithDialog(d Dialog) ListState[T] {
	next := s.Clone()
	next.Dialog = d.Clone()
	return next
}

func (s ListState[T]) Clone() ListState[T] {
	next := s
	if s.Items != nil {
		next.Items = make([]T, len(s.Items))
		copy(next.Items, s.Items)
	}
	next.Dialog = s.Dialog.Clone()
	return next
}

// Empty reports whether a finished fetch produced no items.
func (s ListState[T]) Empty() bool {
	return !s.Loading && s.Phase != PhaseIdle && len(s.Items) == 0
}
