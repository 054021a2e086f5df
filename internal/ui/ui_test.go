package ui

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmDefaults(t *testing.T) {
	m, err := Confirm(true, "End session", "End call <s-1>?", "", "", "/sessions/confirm", "/dialog/cancel?view=sessions")
	require.NoError(t, err)

	assert.True(t, m.Open)
	assert.Equal(t, "End session", m.Title)
	assert.Equal(t, "/dialog/cancel?view=sessions", m.CloseURL)
	assert.Contains(t, string(m.Body), "End call &lt;s-1&gt;?")
	assert.Contains(t, string(m.Footer), ">Confirm</button>")
	assert.Contains(t, string(m.Footer), ">Cancel</button>")
	assert.Contains(t, string(m.Footer), `action="/sessions/confirm"`)
}

func TestConfirmCustomText(t *testing.T) {
	m, err := Confirm(false, "Delete user", "Delete?", "Delete", "Keep", "/users/confirm", "/dialog/cancel")
	require.NoError(t, err)
	assert.False(t, m.Open)
	assert.Contains(t, string(m.Footer), ">Delete</button>")
	assert.Contains(t, string(m.Footer), ">Keep</button>")
}

func TestConfirmFooterErrorLeavesFooterEmpty(t *testing.T) {
	orig := confirmFooter
	confirmFooter = template.Must(template.New("broken").Parse(`{{.Missing}}`))
	t.Cleanup(func() { confirmFooter = orig })

	m, err := Confirm(true, "End session", "End call s-1?", "", "", "/sessions/confirm", "/dialog/cancel")
	require.Error(t, err)
	assert.True(t, m.Open)
	assert.Equal(t, "End session", m.Title)
	assert.Contains(t, string(m.Body), "End call s-1?")
	assert.Empty(t, m.Footer)
}

func TestPathEscapeKeepsSegment(t *testing.T) {
	tmpl := template.Must(template.New("a").Funcs(Funcs()).Parse(`<a href="/sessions/{{pathEscape .}}/end">x</a>`))
	var b strings.Builder
	require.NoError(t, tmpl.Execute(&b, "call/7#a?b"))
	assert.Contains(t, b.String(), `href="/sessions/call%2F7%23a%3Fb/end"`)
}

func TestBars(t *testing.T) {
	chart := Bars([]Point{{"a", 2}, {"b", 4}}, 248, 248)
	require.Len(t, chart.Bars, 2)
	assert.Equal(t, 4.0, chart.Max)

	// plot height is 200; the tallest bar fills it.
	assert.InDelta(t, 200, chart.Bars[1].Height, 1e-9)
	assert.InDelta(t, 100, chart.Bars[0].Height, 1e-9)
	assert.InDelta(t, 24, chart.Bars[1].Y, 1e-9)
	assert.Less(t, chart.Bars[0].X, chart.Bars[1].X)
}

func TestBarsEmptyAndZero(t *testing.T) {
	assert.Empty(t, Bars(nil, 100, 100).Bars)

	chart := Bars([]Point{{"a", 0}}, 100, 100)
	require.Len(t, chart.Bars, 1)
	assert.Zero(t, chart.Bars[0].Height)
}

func TestLine(t *testing.T) {
	chart := Line([]Point{{"d1", 0}, {"d2", 10}}, 248, 248)
	require.Len(t, chart.Dots, 2)
	assert.Equal(t, "M24.0 224.0 L224.0 24.0", chart.Path)

	single := Line([]Point{{"d1", 5}}, 248, 248)
	assert.Equal(t, "M124.0 24.0", single.Path)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "—", Dash(" "))
	assert.Equal(t, "x", Dash("x"))
	assert.Equal(t, "", Deref(nil))
	assert.Equal(t, "3.14", Fixed(3.14159, 2))
	assert.Equal(t, "not a time", LocalTime("not a time"))
	assert.Equal(t, "—", LocalTime(""))

	sec := 65.4
	assert.Equal(t, "1m 05s", Duration(&sec))
	short := 9.0
	assert.Equal(t, "9s", Duration(&short))
	assert.Equal(t, "—", Duration(nil))
}
