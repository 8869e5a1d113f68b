// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-solar/internal/logging"
	"github.com/litescript/ls-solar/internal/simple"
	"github.com/litescript/ls-solar/internal/spa"
	"github.com/litescript/ls-solar/internal/state"
	"github.com/litescript/ls-solar/internal/track"
	"github.com/litescript/ls-solar/internal/version"
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers a live position update.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// traceComputedMsg carries a finished track computation. gen identifies
	// the request so that superseded results can be dropped.
	traceComputedMsg struct {
		gen      uint64
		trace    *track.Trace
		duration time.Duration
		err      error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state  *state.Manager
	params track.Params
	logger *logging.Logger
	now    func() time.Time

	// Clock
	offset    time.Duration // displayed instant minus wall time
	computing bool
	traceGen  uint64 // latest track request

	// UI state
	width    int
	height   int
	ready    bool
	animTick int
	snapshot state.Snapshot

	position PositionModel
}

// Refresh interval bounds for the +/- keys.
const (
	MinRefresh = 250 * time.Millisecond
	MaxRefresh = time.Minute
)

// New creates the root UI model. params supplies the input, interval, step
// count and model of the track; its start is chosen around the clock.
func New(stateMgr *state.Manager, params track.Params, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	return Model{
		state:    stateMgr,
		params:   params,
		logger:   logger,
		now:      time.Now,
		position: NewPositionModel(params.Input.Location, params.Model),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		animTickCmd(),
		func() tea.Msg { return TickMsg(m.now()) },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "r":
			cmds = append(cmds, m.refresh(true))
		case "left", "h":
			m.offset -= m.params.Interval
			cmds = append(cmds, m.refresh(false))
		case "right", "l":
			m.offset += m.params.Interval
			cmds = append(cmds, m.refresh(false))
		case "n":
			m.offset = 0
			cmds = append(cmds, m.refresh(false))
		case "m":
			if m.params.Model == track.ModelSimple {
				m.params.Model = track.ModelSPA
			} else {
				m.params.Model = track.ModelSimple
			}
			m.position = m.position.SetModel(m.params.Model)
			m.logger.Info("harness model set to %s", m.params.Model)
			cmds = append(cmds, m.refresh(true))
		case "+", "=":
			m.setRefresh(m.state.RefreshInterval() / 2)
		case "-":
			m.setRefresh(m.state.RefreshInterval() * 2)
		case "d":
			if m.logger.Enabled(logging.LevelDebug) {
				m.logger.SetLevel(logging.LevelInfo)
				m.logger.Info("debug logging off")
			} else {
				m.logger.SetLevel(logging.LevelDebug)
				m.logger.Debug("debug logging on")
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// Logo and tagline take 10 lines, footer 2
		m.position = m.position.SetSize(msg.Width, msg.Height-12)

	case TickMsg:
		cmds = append(cmds, m.tickCmd(), m.refresh(false))

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
		m.position = m.position.SetAnimTick(m.animTick)

	case traceComputedMsg:
		if msg.gen != m.traceGen {
			m.logger.Debug("dropping superseded track %d (latest %d)", msg.gen, m.traceGen)
			break
		}
		m.computing = false
		m.state.UpdateTrace(msg.trace, msg.duration, msg.err)
		if msg.err != nil {
			m.logger.Error("computing track: %v", msg.err)
		} else {
			m.logger.Debug("computed %d samples in %s", len(msg.trace.Samples), msg.duration)
		}
		m.snapshot = m.state.Snapshot()
		m.position = m.position.UpdateData(m.snapshot, m.state.RecentEvents(MaxEventRows))
	}

	return m, tea.Batch(cmds...)
}

// Clock returns the displayed instant.
func (m Model) Clock() time.Time {
	return m.now().Add(m.offset).UTC()
}

// Offset returns how far the displayed instant is from wall time.
func (m Model) Offset() time.Duration {
	return m.offset
}

// TrackModel returns the model driving the harness columns.
func (m Model) TrackModel() track.Model {
	return m.params.Model
}

// setRefresh clamps d to [MinRefresh, MaxRefresh] and applies it from the
// next tick.
func (m *Model) setRefresh(d time.Duration) {
	d = max(MinRefresh, min(MaxRefresh, d))
	m.state.SetRefreshInterval(d)
	m.logger.Debug("refresh interval set to %s", d)
}

// refresh recomputes the live position and returns a track computation when
// forced or when the clock has left the current window.
func (m *Model) refresh(force bool) tea.Cmd {
	clock := m.Clock()

	p, err := spa.Calculate(clock, m.params.Input)
	if err != nil {
		m.logger.Error("position at %s: %v", clock.Format(time.RFC3339), err)
	} else {
		loc := m.params.Input.Location
		sp, spErr := simple.Calculate(loc.Latitude, loc.Longitude, clock)
		m.state.UpdatePosition(p, sp, spErr)
	}

	m.snapshot = m.state.Snapshot()
	m.position = m.position.SetClock(clock, m.offset).UpdateData(m.snapshot, m.state.RecentEvents(MaxEventRows))

	if force || m.needsTrace(clock) {
		return m.computeTrace()
	}
	return nil
}

// needsTrace reports whether clock lies outside the current track. A failed
// computation is not retried until the user asks for it.
func (m Model) needsTrace(clock time.Time) bool {
	if m.computing {
		return false
	}
	tr := m.snapshot.Trace
	if tr == nil {
		return m.snapshot.LastError == nil
	}
	return clock.Before(tr.Params.Start) || clock.After(tr.Params.End())
}

// windowParams returns track parameters with the clock near the middle.
func (m Model) windowParams() track.Params {
	p := m.params
	half := time.Duration(p.Steps/2) * p.Interval
	p.Start = m.Clock().Add(-half).Truncate(p.Interval)
	return p
}

// computeTrace starts a track computation off the UI goroutine.
func (m *Model) computeTrace() tea.Cmd {
	m.computing = true
	m.traceGen++
	gen := m.traceGen
	p := m.windowParams()
	m.logger.Debug("computing %d samples from %s (request %d)", p.Steps, p.Start.Format(time.RFC3339), gen)
	return func() tea.Msg {
		start := time.Now()
		tr, err := track.Compute(p)
		return traceComputedMsg{gen: gen, trace: tr, duration: time.Since(start), err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready || !m.state.HasData() {
		return "Initializing..."
	}
	return m.renderFrame(m.position.View())
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n\n" + footer
}

func (m Model) renderHeader() string {
	return m.renderLogo()
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗      ███████╗ ██████╗ ██╗      █████╗ ██████╗ `,
		`  ██║     ██╔════╝      ██╔════╝██╔═══██╗██║     ██╔══██╗██╔══██╗`,
		`  ██║     ███████╗█████╗███████╗██║   ██║██║     ███████║██████╔╝`,
		`  ██║     ╚════██║╚════╝╚════██║██║   ██║██║     ██╔══██║██╔══██╗`,
		`  ███████╗███████║      ███████║╚██████╔╝███████╗██║  ██║██║  ██║`,
		`  ╚══════╝╚══════╝      ╚══════╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Solar Position · NREL SPA and Masters"))
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("  (c) 2025 litescript.net | v%s", version.Version)))
	b.WriteString("\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Horizontal: yellow -> amber -> orange -> red, darkening toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Yellow (#FACC15) -> Amber (#F59E0B) -> Orange (#F97316) -> Red (#EF4444)
	stops := [][3]float64{{250, 204, 21}, {245, 158, 11}, {249, 115, 22}, {239, 68, 68}}
	seg := int(xRatio * 3)
	if seg > 2 {
		seg = 2
	}
	t := xRatio*3 - float64(seg)
	from, to := stops[seg], stops[seg+1]

	brightness := 1.0 - yRatio*0.4
	channel := func(i int) int {
		v := int((from[i] + t*(to[i]-from[i])) * brightness)
		return max(0, min(255, v))
	}

	return fmt.Sprintf("#%02X%02X%02X", channel(0), channel(1), channel(2))
}

func (m Model) renderFooter() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.computing:
		status = accentStyle.Render(spinner) + " " + shimmer("Computing track...", m.animTick)
	case m.snapshot.Trace != nil:
		status = accentStyle.Render(spinner) + mutedStyle.Render(fmt.Sprintf(" %d samples · %s model (%s)",
			len(m.snapshot.Trace.Samples), m.params.Model, m.snapshot.ComputeDuration.Round(time.Millisecond)))
	default:
		status = accentStyle.Render(spinner) + " " + shimmer("Waiting for data...", m.animTick)
	}

	help := mutedStyle.Render(fmt.Sprintf("q: quit | r: recompute | ←/→: step | n: now | m: model | +/-: rate %s | d: debug",
		m.state.RefreshInterval()))
	return "  " + status + "  " + mutedStyle.Render("|") + "  " + help
}

func (m Model) tickCmd() tea.Cmd {
	interval := m.state.RefreshInterval()
	if interval <= 0 {
		interval = time.Second
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// shimmer renders text with a subtle moving shine effect.
func shimmer(text string, tick int) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := tick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		// Warm amber highlight over a dim brown base
		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 250, 210, 140
		case dist <= 3:
			r8, g8, b8 = 200, 160, 100
		case dist <= 5:
			r8, g8, b8 = 160, 120, 80
		default:
			r8, g8, b8 = 120, 90, 60
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
