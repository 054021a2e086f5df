// Package analytics implements the Dashboard view: aggregate numbers from
// the backend plus the field-update distribution computed from the user
// analytics feed.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/models"
	"github.com/gww-voice/dashboard/internal/ui"
	"github.com/gww-voice/dashboard/internal/view"
)

// Snapshot is one successful pair of analytics responses. Backend numbers
// are kept as they came.
type Snapshot struct {
	Dashboard *models.DashboardAnalytics `json:"dashboard"`
	Users     []models.User              `json:"users"`
	Fields    []FieldCount               `json:"fields"`
	Summary   FieldSummary               `json:"summary"`
}

type State struct {
	Data       *Snapshot  `json:"data"`
	Phase      view.Phase `json:"phase"`
	Loading    bool       `json:"loading"`
	Refreshing bool       `json:"refreshing"`
	Err        string     `json:"error,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Empty reports whether a finished fetch returned no dashboard payload.
func (s State) Empty() bool {
	return !s.Loading && s.Phase != view.PhaseIdle && (s.Data == nil || s.Data.Dashboard == nil)
}

type View struct {
	api    backend.API
	now    func() time.Time
	logger zerolog.Logger

	mu    sync.Mutex
	state State
}

func NewView(api backend.API, logger zerolog.Logger) *View {
	return &View{
		api:    api,
		now:    time.Now,
		logger: logger.With().Str("component", "analytics").Logger(),
		state:  State{Phase: view.PhaseIdle},
	}
}

func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Refresh fetches the dashboard and user analytics together. The snapshot is
// replaced only when both succeed.
func (v *View) Refresh(ctx context.Context, mode view.Mode) error {
	v.mu.Lock()
	v.state.Phase = view.PhaseLoading
	v.state.Err = ""
	if mode == view.Background {
		v.state.Refreshing = true
	} else {
		v.state.Loading = true
	}
	v.mu.Unlock()

	var (
		dash  models.DashboardAnalyticsResponse
		users models.UserAnalyticsResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dash, err = v.api.DashboardAnalytics(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = v.api.UserAnalytics(gctx)
		return err
	})
	err := g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Loading = false
	v.state.Refreshing = false
	if err != nil {
		v.logger.Warn().Err(err).Msg("failed to load analytics")
		v.state.Phase = view.PhaseError
		v.state.Err = backend.Message(err, "Failed to load analytics")
		return err
	}

	v.state.Phase = view.PhaseSuccess
	v.state.Data = &Snapshot{
		Dashboard: dash.Data,
		Users:     users.Data,
		Fields:    FieldDistribution(users.Data),
		Summary:   Summarize(users.Data),
	}
	v.state.UpdatedAt = v.now()
	return nil
}

// CallsOverTime is the calls-per-day series for the bar chart.
func (s *Snapshot) CallsOverTime() []ui.Point {
	if s == nil || s.Dashboard == nil {
		return nil
	}
	out := make([]ui.Point, 0, len(s.Dashboard.TimeSeries.CallsOverTime))
	for _, d := range s.Dashboard.TimeSeries.CallsOverTime {
		out = append(out, ui.Point{Label: d.Date, Value: float64(d.Count)})
	}
	return out
}

// DurationTrend is the average call length per day, in seconds.
func (s *Snapshot) DurationTrend() []ui.Point {
	if s == nil || s.Dashboard == nil {
		return nil
	}
	out := make([]ui.Point, 0, len(s.Dashboard.TimeSeries.DurationTrend))
	for _, d := range s.Dashboard.TimeSeries.DurationTrend {
		out = append(out, ui.Point{Label: d.Date, Value: d.AvgDurationSeconds})
	}
	return out
}

func (s *Snapshot) FieldPoints() []ui.Point {
	if s == nil {
		return nil
	}
	out := make([]ui.Point, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, ui.Point{Label: f.Label, Value: float64(f.Count)})
	}
	return out
}

// OTPPoints splits OTPs into verified and unverified.
func (s *Snapshot) OTPPoints() []ui.Point {
	if s == nil || s.Dashboard == nil {
		return nil
	}
	otp := s.Dashboard.OTPStatistics
	return []ui.Point{
		{Label: "Verified", Value: float64(otp.OTPVerified)},
		{Label: "Unverified", Value: float64(otp.OTPUnverified)},
	}
}
