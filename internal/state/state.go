// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-solar/internal/simple"
	"github.com/litescript/ls-solar/internal/spa"
	"github.com/litescript/ls-solar/internal/track"
)

// EventType represents the type of sky event.
type EventType string

const (
	EventSunrise EventType = "SUNRISE"
	EventTransit EventType = "TRANSIT"
	EventSunset  EventType = "SUNSET"
)

// MaxEventGap is the longest step between positions across which events are
// still detected. Larger jumps of the clock are treated as discontinuities.
const MaxEventGap = time.Hour

// Event is a horizon crossing or meridian transit seen by the live clock.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Elevation float64   `json:"elevation"`
	Azimuth   float64   `json:"azimuth"`
}

// HistoryEntry is a single point of the live position history.
type HistoryEntry struct {
	Timestamp time.Time
	Elevation float64
	Azimuth   float64
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current track
	trace           *track.Trace
	lastCompute     time.Time
	lastError       error
	computeDuration time.Duration

	// Live position
	position  *spa.Position
	simple    simple.Position
	simpleErr error

	// History buffer
	history       []HistoryEntry
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen   int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   120, // two minutes at one position per second
		MaxEvents:       50,
		RefreshInterval: time.Second,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxHistoryLen:   cfg.MaxHistoryLen,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
	}
}

// UpdateTrace records the result of a track computation. A nil trace keeps
// the previous one so the UI can go on showing it next to the error.
func (m *Manager) UpdateTrace(tr *track.Trace, computeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompute = time.Now()
	m.lastError = err
	m.computeDuration = computeDuration

	if tr != nil {
		m.trace = tr
	}
}

// UpdatePosition records a live position from both models and detects
// sunrise, sunset and transit against the previous position.
func (m *Manager) UpdatePosition(p spa.Position, sp simple.Position, simpleErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.position != nil {
		dt := p.Time.Sub(m.position.Time)
		switch {
		case dt <= 0:
			// The clock moved backwards; history no longer reads left to right.
			m.history = m.history[:0]
		case dt <= MaxEventGap:
			m.detectEvents(m.position, &p)
		}
	}

	m.position = &p
	m.simple = sp
	m.simpleErr = simpleErr

	m.history = append(m.history, HistoryEntry{
		Timestamp: p.Time,
		Elevation: p.Elevation,
		Azimuth:   p.Azimuth,
	})
	if m.maxHistoryLen > 0 && len(m.history) > m.maxHistoryLen {
		m.history = m.history[1:]
	}
}

// detectEvents compares two consecutive positions and logs crossings.
func (m *Manager) detectEvents(prev, curr *spa.Position) {
	switch {
	case prev.Elevation <= track.Horizon && curr.Elevation > track.Horizon:
		at := track.InterpolateCrossing(prev.Time, curr.Time, prev.Elevation, curr.Elevation, track.Horizon)
		m.addEvent(Event{Type: EventSunrise, Timestamp: at, Elevation: track.Horizon, Azimuth: curr.Azimuth})
	case prev.Elevation > track.Horizon && curr.Elevation <= track.Horizon:
		at := track.InterpolateCrossing(prev.Time, curr.Time, prev.Elevation, curr.Elevation, track.Horizon)
		m.addEvent(Event{Type: EventSunset, Timestamp: at, Elevation: track.Horizon, Azimuth: curr.Azimuth})
	}

	// H' wraps from just under 360 to just over 0 at the upper meridian.
	if prev.TopocentricHourAngle > 270 && curr.TopocentricHourAngle < 90 {
		at := track.InterpolateCrossing(prev.Time, curr.Time, prev.TopocentricHourAngle-360, curr.TopocentricHourAngle, 0)
		m.addEvent(Event{Type: EventTransit, Timestamp: at, Elevation: curr.Elevation, Azimuth: curr.Azimuth})
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Trace           *track.Trace
	LastCompute     time.Time
	LastError       error
	ComputeDuration time.Duration
	Position        *spa.Position
	Simple          simple.Position
	SimpleErr       error
	History         []HistoryEntry
	Events          []Event
}

// Snapshot returns a consistent snapshot of current state. The trace is
// shared; traces are never modified after Compute returns.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var pos *spa.Position
	if m.position != nil {
		p := *m.position
		pos = &p
	}

	hist := make([]HistoryEntry, len(m.history))
	copy(hist, m.history)

	return Snapshot{
		Trace:           m.trace,
		LastCompute:     m.lastCompute,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		Position:        pos,
		Simple:          m.simple,
		SimpleErr:       m.simpleErr,
		History:         hist,
		Events:          m.getEventsOrdered(),
	}
}

// HasData reports whether a trace or a live position has been recorded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trace != nil || m.position != nil
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// RefreshInterval returns how often the live position is recomputed.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}
