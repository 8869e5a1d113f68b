package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/state"
	"github.com/litescript/ls-solar/internal/track"
)

// MaxEventRows is how many recent events the position view lists.
const MaxEventRows = 5

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(18)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(20)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// PositionModel shows the live sun position from both models, the elevation
// curve of the current track and recent events.
type PositionModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	events   []state.Event // oldest first
	site     astro.Location
	model    track.Model
	clock    time.Time
	offset   time.Duration
	animTick int
}

// NewPositionModel creates a position view for site.
func NewPositionModel(site astro.Location, model track.Model) PositionModel {
	return PositionModel{site: site, model: model}
}

// SetSize updates the viewport size.
func (m PositionModel) SetSize(width, height int) PositionModel {
	m.width = width
	m.height = height
	return m
}

// SetAnimTick updates the animation tick for shimmer effects.
func (m PositionModel) SetAnimTick(tick int) PositionModel {
	m.animTick = tick
	return m
}

// SetClock sets the displayed instant and its offset from wall time.
func (m PositionModel) SetClock(clock time.Time, offset time.Duration) PositionModel {
	m.clock = clock
	m.offset = offset
	return m
}

// SetModel sets which model drives the harness columns.
func (m PositionModel) SetModel(model track.Model) PositionModel {
	m.model = model
	return m
}

// UpdateData updates with a new state snapshot and the most recent events,
// oldest first.
func (m PositionModel) UpdateData(snapshot state.Snapshot, events []state.Event) PositionModel {
	m.snapshot = snapshot
	m.events = events
	return m
}

// View renders the position panel, sparkline and events.
func (m PositionModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderClock())
	b.WriteString("\n\n")
	b.WriteString(m.renderPosition())
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("  Elevation"))
	b.WriteString("\n  ")
	b.WriteString(m.renderElevationSparkline())
	b.WriteString("\n  ")
	b.WriteString(m.renderDaylight())
	b.WriteString("\n\n")
	b.WriteString(m.renderEvents())

	return b.String()
}

func (m PositionModel) renderClock() string {
	line := "  " + labelStyle.Render("Site") + valueStyle.UnsetWidth().Render(siteLabel(m.site))
	line += "\n  " + labelStyle.Render("Clock") + valueStyle.UnsetWidth().Render(m.clock.UTC().Format("2006-01-02 15:04:05 MST"))
	if m.offset == 0 {
		line += " " + headerStyle.Render("live")
	} else {
		line += " " + dimStyle.Render(formatOffset(m.offset))
	}
	return line
}

func (m PositionModel) renderPosition() string {
	p := m.snapshot.Position
	if p == nil {
		return "  " + m.renderShimmerText("Waiting for position...") + "\n"
	}
	sp := m.snapshot.Simple
	hasSimple := m.snapshot.SimpleErr == nil

	simpleValue := func(format string, v float64) string {
		if !hasSimple {
			return "—"
		}
		return fmt.Sprintf(format, v)
	}

	rows := []struct {
		label         string
		precise, fast string
	}{
		{"Elevation", tierStyle(track.Tier(p.Elevation)).Render(fmt.Sprintf("%.4f°", p.Elevation)), simpleValue("%.4f°", sp.Altitude)},
		{"Azimuth", fmt.Sprintf("%.4f°", p.Azimuth), simpleValue("%.4f°", astro.Normalize360(180-sp.Azimuth))},
		{"Zenith", fmt.Sprintf("%.4f°", p.Zenith), ""},
		{"Right ascension", track.FormatRA(p.TopocentricRightAscension), ""},
		{"Declination", track.FormatAngle(p.TopocentricDeclination), simpleValue("%.4f°", sp.Declination)},
		{"Hour angle", fmt.Sprintf("%.4f°", p.TopocentricHourAngle), simpleValue("%.4f°", sp.HourAngle)},
		{"Incidence", fmt.Sprintf("%.4f°", p.Incidence), ""},
		{"Refraction", fmt.Sprintf("%.4f°", p.Refraction), ""},
		{"Distance", fmt.Sprintf("%.6f AU", p.RadiusVector), ""},
		{"Direct beam", "", simpleValue("%.1f W/m²", sp.Radiation)},
		{"Air mass", "", airMass(hasSimple, sp.AirMass)},
	}

	var b strings.Builder
	b.WriteString("  " + labelStyle.Render("") + headerStyle.Width(20).Render("Precise (SPA)") + headerStyle.Render("Simple"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString("  " + labelStyle.Render(r.label) + valueStyle.Render(r.precise) + valueStyle.UnsetWidth().Render(r.fast))
		b.WriteString("\n")
	}
	if !hasSimple {
		b.WriteString("  " + dimStyle.Render("simple: "+m.snapshot.SimpleErr.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

// tierStyle colors an elevation value by how high the sun stands.
func tierStyle(tier track.ElevationTier) lipgloss.Style {
	switch tier {
	case track.ElevationHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	case track.ElevationMedium:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case track.ElevationLow:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("166"))
	default:
		return dimStyle
	}
}

func airMass(ok bool, v float64) string {
	if !ok {
		return "—"
	}
	if v == 0 {
		return "below horizon"
	}
	return fmt.Sprintf("%.3f", v)
}

func (m PositionModel) renderDaylight() string {
	tr := m.snapshot.Trace
	if tr == nil {
		return dimStyle.Render("No track computed")
	}
	line := track.FormatWindow(tr.Daylight())
	line += dimStyle.Render(fmt.Sprintf("  ·  direct beam (%s) %.0f Wh/m²", m.model, tr.Insolation(m.model)))
	return line
}

func (m PositionModel) renderEvents() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("  Events"))
	b.WriteString("\n")

	events := m.events
	if len(events) == 0 {
		b.WriteString("  " + dimStyle.Render("No horizon crossings yet"))
		return b.String()
	}
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		b.WriteString(fmt.Sprintf("  %-8s %s  az %5.1f°  el %5.1f°\n",
			e.Type, e.Timestamp.UTC().Format("15:04:05Z"), e.Azimuth, e.Elevation))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderShimmerText renders text with a moving highlight.
func (m PositionModel) renderShimmerText(text string) string {
	return shimmer(text, m.animTick)
}

func siteLabel(l astro.Location) string {
	return fmt.Sprintf("%s (%.4f°, %.4f°, %.0f m)", l, l.Latitude, l.Longitude, l.Elevation)
}

// formatOffset renders a clock offset like "+1h30m".
func formatOffset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	d = d.Round(time.Minute)
	h, mins := int(d.Hours()), int(d.Minutes())%60
	switch {
	case h == 0:
		return fmt.Sprintf("%s%dm", sign, mins)
	case mins == 0:
		return fmt.Sprintf("%s%dh", sign, h)
	}
	return fmt.Sprintf("%s%dh%02dm", sign, h, mins)
}
