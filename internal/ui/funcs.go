package ui

import (
	"fmt"
	"html/template"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/gww-voice/dashboard/internal/models"
)

const placeholder = "—"

// Funcs returns the helpers available to every dashboard template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"localTime":  LocalTime,
		"clock":      Clock,
		"fixed":      Fixed,
		"dash":       Dash,
		"deref":      Deref,
		"duration":   Duration,
		"tone":       models.OutcomeTone,
		"outcomes":   func() []string { return models.Outcomes },
		"confirm":    Confirm,
		"bars":       Bars,
		"line":       Line,
		"join":       strings.Join,
		"pathEscape": url.PathEscape,
		"add":        func(a, b int) int { return a + b },
		"mul":        func(a, b int) int { return a * b },
	}
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LocalTime renders a backend timestamp in the server's local zone. Values
// that do not parse are shown as they are.
func LocalTime(s string) string {
	if s == "" {
		return placeholder
	}
	t, ok := parseTime(s)
	if !ok {
		return s
	}
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

func Clock(s string) string {
	if s == "" {
		return ""
	}
	t, ok := parseTime(s)
	if !ok {
		return s
	}
	return t.Local().Format("15:04:05")
}

func Fixed(v float64, digits int) string {
	return fmt.Sprintf("%.*f", digits, v)
}

func Dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Duration formats seconds as "1m 05s". A nil value renders the placeholder.
func Duration(sec *float64) string {
	if sec == nil {
		return placeholder
	}
	total := int(math.Round(*sec))
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%dm %02ds", total/60, total%60)
}
