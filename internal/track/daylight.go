package track

import (
	"math"
	"time"

	"github.com/litescript/ls-solar/internal/spa"
)

// Horizon is the refracted elevation of the sun's center when its upper limb
// touches the horizon.
const Horizon = -spa.SunRadius

// DaylightWindow is a rise-transit-set cycle found in a trace.
type DaylightWindow struct {
	Rise         time.Time // zero if the sun was already up at the start
	Transit      time.Time // highest point
	Set          time.Time // zero if the sun is still up at the end
	MaxElevation float64   // degrees
	Valid        bool
	AlwaysUp     bool // midnight sun across the whole trace
	NeverUp      bool // polar night across the whole trace
}

// Length returns the time between rise and set, or zero if either is
// outside the trace.
func (w DaylightWindow) Length() time.Duration {
	if w.Rise.IsZero() || w.Set.IsZero() {
		return 0
	}
	return w.Set.Sub(w.Rise)
}

// Daylight finds the first rise, the following set and the transit between
// them. Crossings are interpolated linearly between samples.
func (t *Trace) Daylight() DaylightWindow {
	samples := t.Samples
	if len(samples) < 3 {
		return DaylightWindow{}
	}

	minEl := 90.0
	maxEl := -90.0
	maxIdx := 0
	for i := range samples {
		el := samples[i].Precise.Elevation
		if el < minEl {
			minEl = el
		}
		if el > maxEl {
			maxEl = el
			maxIdx = i
		}
	}

	if minEl > Horizon {
		tt, el := t.refineTransit(maxIdx)
		return DaylightWindow{
			Transit:      tt,
			MaxElevation: el,
			Valid:        true,
			AlwaysUp:     true,
		}
	}
	if maxEl <= Horizon {
		return DaylightWindow{
			MaxElevation: maxEl,
			Valid:        true,
			NeverUp:      true,
		}
	}

	// A trace that starts in daylight has no rise; the first set belongs
	// to that same day.
	var w DaylightWindow
	setFrom := 1
	if samples[0].Precise.Elevation <= Horizon {
		for i := 1; i < len(samples); i++ {
			prev, curr := &samples[i-1], &samples[i]
			if prev.Precise.Elevation <= Horizon && curr.Precise.Elevation > Horizon {
				w.Rise = InterpolateCrossing(prev.Time, curr.Time, prev.Precise.Elevation, curr.Precise.Elevation, Horizon)
				setFrom = i + 1
				break
			}
		}
	}
	setIdx := len(samples)
	for i := setFrom; i < len(samples); i++ {
		prev, curr := &samples[i-1], &samples[i]
		if prev.Precise.Elevation > Horizon && curr.Precise.Elevation <= Horizon {
			w.Set = InterpolateCrossing(prev.Time, curr.Time, prev.Precise.Elevation, curr.Precise.Elevation, Horizon)
			setIdx = i
			break
		}
	}

	// Transit is the highest sample within the window.
	lo := setFrom - 1
	if w.Rise.IsZero() {
		lo = 0
	}
	peak := lo
	for i := lo; i < setIdx && i < len(samples); i++ {
		if samples[i].Precise.Elevation > samples[peak].Precise.Elevation {
			peak = i
		}
	}
	w.Transit, w.MaxElevation = t.refineTransit(peak)
	w.Valid = true
	return w
}

// refineTransit fits a parabola through the sample at idx and its neighbors
// to locate the maximum between grid points.
func (t *Trace) refineTransit(idx int) (time.Time, float64) {
	samples := t.Samples
	mid := &samples[idx]
	if idx == 0 || idx == len(samples)-1 {
		return mid.Time, mid.Precise.Elevation
	}

	// Normalized time: -1 (prev), 0 (mid), +1 (next)
	y0 := samples[idx-1].Precise.Elevation
	y1 := mid.Precise.Elevation
	y2 := samples[idx+1].Precise.Elevation

	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2

	if a >= 0 {
		return mid.Time, y1
	}

	tMax := -b / (2 * a)
	tMax = math.Max(-1, math.Min(1, tMax))

	dt := mid.Time.Sub(samples[idx-1].Time)
	return mid.Time.Add(time.Duration(float64(dt) * tMax)), a*tMax*tMax + b*tMax + c
}

// InterpolateCrossing finds the time when elevation crosses threshold
// between two samples, assuming linear motion.
func InterpolateCrossing(t1, t2 time.Time, el1, el2, threshold float64) time.Time {
	if math.Abs(el2-el1) < 0.0001 {
		return t1
	}

	fraction := (threshold - el1) / (el2 - el1)
	fraction = math.Max(0, math.Min(1, fraction))

	dt := t2.Sub(t1)
	return t1.Add(time.Duration(float64(dt) * fraction))
}

// ElevationTier buckets elevation for display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

// Tier returns the tier for an elevation in degrees.
func Tier(el float64) ElevationTier {
	switch {
	case el <= 0:
		return ElevationNone
	case el < 15:
		return ElevationLow
	case el < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
