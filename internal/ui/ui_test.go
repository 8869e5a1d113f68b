package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/logging"
	"github.com/litescript/ls-solar/internal/spa"
	"github.com/litescript/ls-solar/internal/state"
	"github.com/litescript/ls-solar/internal/track"
	"github.com/litescript/ls-solar/internal/version"
)

var fixedNow = time.Date(2007, 2, 18, 15, 0, 0, 0, time.UTC)

func testModel(loc astro.Location) Model {
	in := spa.Input{Location: loc, DeltaT: 65}
	m := New(state.NewManager(state.DefaultConfig()), track.DefaultParams(in, time.Time{}), nil)
	m.now = func() time.Time { return fixedNow }
	return m
}

func cambridgeModel() Model {
	return testModel(astro.Location{Latitude: 42.364908, Longitude: -71.112828, Name: "Cambridge, MA"})
}

// withTrace runs the first tick and the resulting track computation.
func withTrace(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.refresh(false)
	if cmd == nil {
		t.Fatal("first refresh did not request a track")
	}
	raw := cmd()
	msg, ok := raw.(traceComputedMsg)
	if !ok {
		t.Fatalf("track command returned %T", raw)
	}
	if msg.err != nil {
		t.Fatalf("track computation failed: %v", msg.err)
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(m Model, key tea.KeyMsg) Model {
	updated, _ := m.Update(key)
	return updated.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewBeforeReady(t *testing.T) {
	m := cambridgeModel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", got)
	}
}

func TestTickUpdatesPosition(t *testing.T) {
	m := cambridgeModel()

	updated, cmd := m.Update(TickMsg(fixedNow))
	m = updated.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	snap := m.snapshot
	if snap.Position == nil {
		t.Fatal("no position after tick")
	}
	if !snap.Position.Time.Equal(fixedNow) {
		t.Errorf("position time = %v, want %v", snap.Position.Time, fixedNow)
	}
	if snap.Position.Elevation < 20 || snap.Position.Elevation > 40 {
		t.Errorf("elevation = %.2f, want mid-afternoon winter sun", snap.Position.Elevation)
	}
	if !m.computing {
		t.Error("first tick should start a track computation")
	}
}

func TestTraceWindowCentredOnClock(t *testing.T) {
	m := withTrace(t, cambridgeModel())

	if m.computing {
		t.Error("computing still set after traceComputedMsg")
	}
	tr := m.snapshot.Trace
	if tr == nil {
		t.Fatal("no trace in snapshot")
	}
	if len(tr.Samples) != track.DefaultSteps {
		t.Errorf("samples = %d, want %d", len(tr.Samples), track.DefaultSteps)
	}
	if fixedNow.Before(tr.Params.Start) || fixedNow.After(tr.Params.End()) {
		t.Errorf("window %v..%v does not contain clock %v", tr.Params.Start, tr.Params.End(), fixedNow)
	}
	if got := fixedNow.Sub(tr.Params.Start); got != 12*time.Hour {
		t.Errorf("clock is %v after window start, want 12h", got)
	}
	if m.needsTrace(m.Clock()) {
		t.Error("needsTrace true with clock inside the window")
	}
}

func TestClockKeys(t *testing.T) {
	m := withTrace(t, cambridgeModel())
	interval := track.DefaultInterval

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Offset() != interval {
		t.Errorf("offset after right = %v, want %v", m.Offset(), interval)
	}
	if !m.Clock().Equal(fixedNow.Add(interval)) {
		t.Errorf("Clock() = %v", m.Clock())
	}
	if !m.snapshot.Position.Time.Equal(fixedNow.Add(interval)) {
		t.Errorf("position not recomputed for the new clock: %v", m.snapshot.Position.Time)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Offset() != -interval {
		t.Errorf("offset after left twice = %v, want %v", m.Offset(), -interval)
	}

	m = press(m, runes("n"))
	if m.Offset() != 0 {
		t.Errorf("offset after n = %v, want 0", m.Offset())
	}
}

func TestSteppingOutOfWindowRecomputes(t *testing.T) {
	m := withTrace(t, cambridgeModel())

	for i := 0; i < track.DefaultSteps/2-1; i++ {
		m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.computing {
		t.Fatal("recomputed while the clock was inside the window")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if !m.computing {
		t.Error("stepping past the window should start a computation")
	}
}

func TestModelToggle(t *testing.T) {
	m := withTrace(t, cambridgeModel())
	if m.TrackModel() != track.ModelSimple {
		t.Fatalf("default model = %s", m.TrackModel())
	}

	m = press(m, runes("m"))
	if m.TrackModel() != track.ModelSPA {
		t.Errorf("model after m = %s, want spa", m.TrackModel())
	}
	if !m.computing {
		t.Error("changing model should recompute the track")
	}

	m = press(m, runes("m"))
	if m.TrackModel() != track.ModelSimple {
		t.Errorf("model after second m = %s, want simple", m.TrackModel())
	}
}

func TestRecomputeKey(t *testing.T) {
	m := withTrace(t, cambridgeModel())
	m = press(m, runes("r"))
	if !m.computing {
		t.Error("r should start a track computation")
	}
}

func TestSupersededTraceIsDropped(t *testing.T) {
	m := withTrace(t, cambridgeModel())

	older := m.refresh(true)
	m.params.Model = track.ModelSPA
	newer := m.refresh(true)
	olderMsg, newerMsg := older(), newer()

	// The older result arrives first and must not end the computation.
	updated, _ := m.Update(olderMsg)
	m = updated.(Model)
	if !m.computing {
		t.Error("superseded result cleared computing")
	}
	if got := m.snapshot.Trace.Params.Model; got != track.ModelSimple {
		t.Errorf("trace model = %s before the latest result", got)
	}

	updated, _ = m.Update(newerMsg)
	m = updated.(Model)
	if m.computing {
		t.Error("latest result did not clear computing")
	}
	if got := m.snapshot.Trace.Params.Model; got != track.ModelSPA {
		t.Errorf("trace model = %s, want spa", got)
	}

	// Replaying the older result afterwards changes nothing.
	updated, _ = m.Update(olderMsg)
	m = updated.(Model)
	if got := m.snapshot.Trace.Params.Model; got != track.ModelSPA {
		t.Errorf("stale result replaced the trace: model = %s", got)
	}
}

func TestRefreshRateKeys(t *testing.T) {
	m := cambridgeModel()
	start := m.state.RefreshInterval()

	m = press(m, runes("+"))
	if got := m.state.RefreshInterval(); got != start/2 {
		t.Errorf("interval after + = %v, want %v", got, start/2)
	}
	m = press(m, runes("-"))
	m = press(m, runes("-"))
	if got := m.state.RefreshInterval(); got != start*2 {
		t.Errorf("interval after - - = %v, want %v", got, start*2)
	}

	for i := 0; i < 10; i++ {
		m = press(m, runes("+"))
	}
	if got := m.state.RefreshInterval(); got != MinRefresh {
		t.Errorf("interval = %v, want clamped to %v", got, MinRefresh)
	}
	for i := 0; i < 20; i++ {
		m = press(m, runes("-"))
	}
	if got := m.state.RefreshInterval(); got != MaxRefresh {
		t.Errorf("interval = %v, want clamped to %v", got, MaxRefresh)
	}
}

func TestDebugToggle(t *testing.T) {
	m := cambridgeModel()
	m.logger = logging.NewWithFile(logging.LevelInfo, nil, logging.FileConfig{})

	m = press(m, runes("d"))
	if !m.logger.Enabled(logging.LevelDebug) {
		t.Error("d should enable debug logging")
	}
	m = press(m, runes("d"))
	if m.logger.Enabled(logging.LevelDebug) {
		t.Error("second d should disable debug logging")
	}
}

func TestSunriseEventShown(t *testing.T) {
	m := withTrace(t, cambridgeModel())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = updated.(Model)

	// Walk the clock forward across sunrise, about 11:37Z.
	m.offset = -5 * time.Hour
	m.refresh(false)
	for i := 0; i < 4; i++ {
		m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	}

	if !strings.Contains(m.View(), string(state.EventSunrise)) {
		t.Error("View() should list the sunrise crossed by the clock")
	}
	if got := m.state.RecentEvents(MaxEventRows); len(got) != 1 || got[0].Type != state.EventSunrise {
		t.Errorf("events = %+v, want one sunrise", got)
	}
}

func TestQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := cambridgeModel().Update(key)
		if cmd == nil {
			t.Fatalf("%s: no command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", key)
		}
	}
}

func TestViewRendersPanels(t *testing.T) {
	m := withTrace(t, cambridgeModel())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{
		"Solar Position",
		"v" + version.Version,
		"Cambridge, MA",
		"live",
		"Precise (SPA)",
		"Right ascension",
		"Direct beam",
		"rise ",
		"now: ",
		"48 samples",
		"q: quit",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if view := m.View(); !strings.Contains(view, "+30m") {
		t.Error("View() should show the clock offset after stepping")
	}
}

func TestViewShowsSimpleDomainError(t *testing.T) {
	m := testModel(astro.Location{Latitude: 0, Longitude: -78.4678, Name: "Quito"})
	m.refresh(false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "azimuth undefined at equator") {
		t.Error("View() should explain the missing simple values at the equator")
	}
	if !strings.Contains(view, "Computing track...") {
		t.Error("View() should show the pending track computation")
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 0, 10, 6); got != "#FACC15" {
		t.Errorf("gradientColor(left, top) = %s, want #FACC15", got)
	}
	if got := gradientColor(10, 0, 10, 6); got != "#EF4444" {
		t.Errorf("gradientColor(right, top) = %s, want #EF4444", got)
	}
	top := gradientColor(5, 0, 10, 6)
	bottom := gradientColor(5, 5, 10, 6)
	if top <= bottom {
		t.Errorf("bottom row %s should be darker than top row %s", bottom, top)
	}
}
