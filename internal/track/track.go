// Package track evaluates both sun models over a run of evenly spaced
// instants and derives the daylight window from the samples.
package track

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/simple"
	"github.com/litescript/ls-solar/internal/spa"
)

// Defaults for a track: one day at half-hour spacing.
const (
	DefaultInterval = 30 * time.Minute
	DefaultSteps    = 48
	MaxSteps        = 100000
)

// Errors for track computation.
var (
	ErrInvalidParams = errors.New("invalid track parameters")
	ErrUnknownModel  = errors.New("unknown model")
)

// Model selects which sun model drives harness output.
type Model string

const (
	ModelSimple Model = "simple"
	ModelSPA    Model = "spa"
)

// ParseModel parses a model name. The empty string means ModelSimple.
func ParseModel(s string) (Model, error) {
	switch Model(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModelSimple:
		return ModelSimple, nil
	case ModelSPA:
		return ModelSPA, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
	}
}

// Params describes a track.
type Params struct {
	Input    spa.Input
	Start    time.Time
	Interval time.Duration
	Steps    int
	Model    Model
}

// DefaultParams returns a day-long track starting at start.
func DefaultParams(in spa.Input, start time.Time) Params {
	return Params{
		Input:    in,
		Start:    start,
		Interval: DefaultInterval,
		Steps:    DefaultSteps,
		Model:    ModelSimple,
	}
}

// Validate checks the sampling parameters. The location and atmosphere are
// checked by spa.Calculate.
func (p Params) Validate() error {
	if p.Interval <= 0 {
		return fmt.Errorf("%w: interval %v must be positive", ErrInvalidParams, p.Interval)
	}
	if p.Steps < 1 || p.Steps > MaxSteps {
		return fmt.Errorf("%w: steps %d outside [1, %d]", ErrInvalidParams, p.Steps, MaxSteps)
	}
	if _, err := ParseModel(string(p.Model)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}

// End returns the instant of the last sample.
func (p Params) End() time.Time {
	return p.Start.Add(time.Duration(p.Steps-1) * p.Interval)
}

// Sample is both models evaluated at one instant.
type Sample struct {
	Time    time.Time
	Precise spa.Position
	Simple  simple.Position

	// SimpleErr is set when the simplified model is undefined here; Simple
	// is then the zero value.
	SimpleErr error

	// Radiation is the direct beam estimate at the precise elevation.
	Radiation float64

	// Separation is the angle in degrees between the sun directions of the
	// two models.
	Separation float64
}

// HasSimple reports whether the simplified model produced a position.
func (s *Sample) HasSimple() bool {
	return s.SimpleErr == nil
}

// SimpleAzimuthNorth converts the simplified azimuth (from south, east
// positive) to degrees east of north.
func (s *Sample) SimpleAzimuthNorth() float64 {
	return astro.Normalize360(180 - s.Simple.Azimuth)
}

// Altitude returns the sun's altitude in degrees under model m.
func (s *Sample) Altitude(m Model) float64 {
	if m == ModelSPA {
		return s.Precise.Elevation
	}
	return s.Simple.Altitude
}

// Daylit reports whether the sun is above the horizon under model m.
func (s *Sample) Daylit(m Model) bool {
	if m == ModelSPA {
		return s.Precise.AboveHorizon()
	}
	return s.Simple.Altitude > 0
}

// Azimuth returns the azimuth under model m in that model's convention.
func (s *Sample) Azimuth(m Model) float64 {
	if m == ModelSPA {
		return s.Precise.Azimuth
	}
	return s.Simple.Azimuth
}

// Power returns the direct beam estimate under model m.
func (s *Sample) Power(m Model) float64 {
	if m == ModelSPA {
		return s.Radiation
	}
	return s.Simple.Radiation
}

// Trace is a computed track.
type Trace struct {
	Params      Params
	Samples     []Sample
	GeneratedAt time.Time
}

// Compute evaluates both models at each step of p.
func Compute(p Params) (*Trace, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Model == "" {
		p.Model = ModelSimple
	}
	p.Start = p.Start.UTC()

	tr := &Trace{
		Params:      p,
		Samples:     make([]Sample, 0, p.Steps),
		GeneratedAt: time.Now().UTC(),
	}
	loc := p.Input.Location

	for i := 0; i < p.Steps; i++ {
		ts := p.Start.Add(time.Duration(i) * p.Interval)

		pos, err := spa.Calculate(ts, p.Input)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		s := Sample{
			Time:      ts,
			Precise:   pos,
			Radiation: simple.RadiationDirect(ts, pos.Elevation),
		}

		s.Simple, s.SimpleErr = simple.Calculate(loc.Latitude, loc.Longitude, ts)
		if s.SimpleErr != nil && !errors.Is(s.SimpleErr, simple.ErrDomain) {
			return nil, fmt.Errorf("step %d: %w", i, s.SimpleErr)
		}
		if s.HasSimple() {
			s.Separation = astro.AngularSeparation(
				pos.Azimuth, pos.Elevation,
				s.SimpleAzimuthNorth(), s.Simple.Altitude,
			)
		}

		tr.Samples = append(tr.Samples, s)
	}

	return tr, nil
}

// Current returns the sample closest to now, or nil if the trace is empty.
func (t *Trace) Current(now time.Time) *Sample {
	if len(t.Samples) == 0 {
		return nil
	}

	var closest *Sample
	var minDelta time.Duration = 1<<63 - 1

	for i := range t.Samples {
		delta := t.Samples[i].Time.Sub(now)
		if delta < 0 {
			delta = -delta
		}
		if delta < minDelta {
			minDelta = delta
			closest = &t.Samples[i]
		}
	}

	return closest
}

// Elevations returns the precise elevation of every sample in order.
func (t *Trace) Elevations() []float64 {
	out := make([]float64, len(t.Samples))
	for i := range t.Samples {
		out[i] = t.Samples[i].Precise.Elevation
	}
	return out
}

// Insolation integrates the direct beam estimate of model m over the trace
// with the trapezoid rule, in Wh/m².
func (t *Trace) Insolation(m Model) float64 {
	total := 0.0
	for i := 1; i < len(t.Samples); i++ {
		a, b := &t.Samples[i-1], &t.Samples[i]
		hours := b.Time.Sub(a.Time).Hours()
		total += (a.Power(m) + b.Power(m)) / 2 * hours
	}
	return total
}
