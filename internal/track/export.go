package track

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-solar/internal/astro"
)

// HarnessTimeFormat is the ctime layout used for harness lines.
const HarnessTimeFormat = time.ANSIC

// WriteHarness writes one line per daylight sample under the trace's model:
//
//	<timestamp> UTC <altitude> <azimuth> <power>
//
// Samples where the model is undefined are skipped.
func WriteHarness(w io.Writer, tr *Trace) error {
	m := tr.Params.Model
	for i := range tr.Samples {
		s := &tr.Samples[i]
		if m != ModelSPA && !s.HasSimple() {
			continue
		}
		if !s.Daylit(m) {
			continue
		}
		if _, err := fmt.Fprintln(w, s.Time.UTC().Format(HarnessTimeFormat), "UTC",
			s.Altitude(m), s.Azimuth(m), s.Power(m)); err != nil {
			return err
		}
	}
	return nil
}

// TraceExport is the JSON-serializable form of a trace.
type TraceExport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Location    astro.Location `json:"location"`
	DeltaT      float64        `json:"delta_t"`
	Start       time.Time      `json:"start"`
	Interval    string         `json:"interval"`
	Steps       int            `json:"steps"`
	Model       Model          `json:"model"`
	Daylight    DaylightExport `json:"daylight"`
	Insolation  float64        `json:"insolation_wh_m2"`
	Samples     []SampleExport `json:"samples"`
}

// DaylightExport is a JSON-friendly daylight window.
type DaylightExport struct {
	Rise         *time.Time `json:"rise,omitempty"`
	Transit      *time.Time `json:"transit,omitempty"`
	Set          *time.Time `json:"set,omitempty"`
	MaxElevation float64    `json:"max_elevation"`
	AlwaysUp     bool       `json:"always_up,omitempty"`
	NeverUp      bool       `json:"never_up,omitempty"`
}

// SampleExport is a JSON-friendly sample with both models.
type SampleExport struct {
	Time           time.Time     `json:"time"`
	RightAscension float64       `json:"right_ascension"`
	Declination    float64       `json:"declination"`
	Elevation      float64       `json:"elevation"`
	Azimuth        float64       `json:"azimuth"`
	Zenith         float64       `json:"zenith"`
	Incidence      float64       `json:"incidence"`
	Radiation      float64       `json:"radiation"`
	Simple         *SimpleExport `json:"simple,omitempty"`
	SimpleError    string        `json:"simple_error,omitempty"`
}

// SimpleExport holds the simplified model values of a sample.
type SimpleExport struct {
	Altitude   float64 `json:"altitude"`
	Azimuth    float64 `json:"azimuth"`
	Radiation  float64 `json:"radiation"`
	Separation float64 `json:"separation"`
}

// Export converts a trace to its exportable form.
func Export(tr *Trace) *TraceExport {
	if tr == nil {
		return &TraceExport{}
	}

	p := tr.Params
	out := &TraceExport{
		GeneratedAt: tr.GeneratedAt,
		Location:    p.Input.Location,
		DeltaT:      p.Input.DeltaT,
		Start:       p.Start,
		Interval:    p.Interval.String(),
		Steps:       p.Steps,
		Model:       p.Model,
		Insolation:  tr.Insolation(p.Model),
		Samples:     make([]SampleExport, 0, len(tr.Samples)),
	}

	dw := tr.Daylight()
	out.Daylight = DaylightExport{
		Rise:         timePtr(dw.Rise),
		Transit:      timePtr(dw.Transit),
		Set:          timePtr(dw.Set),
		MaxElevation: dw.MaxElevation,
		AlwaysUp:     dw.AlwaysUp,
		NeverUp:      dw.NeverUp,
	}

	for i := range tr.Samples {
		s := &tr.Samples[i]
		se := SampleExport{
			Time:           s.Time,
			RightAscension: s.Precise.TopocentricRightAscension,
			Declination:    s.Precise.TopocentricDeclination,
			Elevation:      s.Precise.Elevation,
			Azimuth:        s.Precise.Azimuth,
			Zenith:         s.Precise.Zenith,
			Incidence:      s.Precise.Incidence,
			Radiation:      s.Radiation,
		}
		if s.HasSimple() {
			se.Simple = &SimpleExport{
				Altitude:   s.Simple.Altitude,
				Azimuth:    s.Simple.Azimuth,
				Radiation:  s.Simple.Radiation,
				Separation: s.Separation,
			}
		} else {
			se.SimpleError = s.SimpleErr.Error()
		}
		out.Samples = append(out.Samples, se)
	}

	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// WriteJSON writes the export as indented JSON.
func (e *TraceExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// FormatRA formats a right ascension in degrees as hours, minutes, seconds.
func FormatRA(deg float64) string {
	return fmt.Sprintf("%.1s", sexa.FmtRA(unit.RAFromDeg(deg)))
}

// FormatAngle formats an angle in degrees as degrees, minutes, seconds.
func FormatAngle(deg float64) string {
	return fmt.Sprintf("%.0s", sexa.FmtAngle(unit.AngleFromDeg(deg)))
}

// FormatWindow renders a daylight window on one line.
func FormatWindow(w DaylightWindow) string {
	switch {
	case !w.Valid:
		return "daylight: insufficient samples"
	case w.NeverUp:
		return fmt.Sprintf("daylight: sun stays below the horizon (max %.1f°)", w.MaxElevation)
	case w.AlwaysUp:
		return fmt.Sprintf("daylight: sun stays up, transit %s at %.1f°",
			w.Transit.Format("15:04"), w.MaxElevation)
	}
	return fmt.Sprintf("rise %s  transit %s (%.1f°)  set %s",
		clock(w.Rise), clock(w.Transit), w.MaxElevation, clock(w.Set))
}

func clock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.UTC().Format("15:04")
}

// WriteSummaryTable writes a text table of the trace to w.
func WriteSummaryTable(w io.Writer, tr *Trace) {
	loc := tr.Params.Input.Location
	fmt.Fprintf(w, "Sun @ %s from %s\n", loc, tr.Params.Start.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 96))

	if len(tr.Samples) == 0 {
		fmt.Fprintln(w, "No samples")
		return
	}

	fmt.Fprintf(w, "%-6s %-12s %-13s %7s %7s %8s %8s %8s %6s\n",
		"UTC", "RA", "Dec", "Elev", "Azim", "S.Alt", "S.Azim", "W/m²", "Δ°")
	fmt.Fprintln(w, strings.Repeat("─", 96))

	for i := range tr.Samples {
		s := &tr.Samples[i]
		simpleAlt, simpleAz, sep := "-", "-", "-"
		if s.HasSimple() {
			simpleAlt = fmt.Sprintf("%.2f", s.Simple.Altitude)
			simpleAz = fmt.Sprintf("%.2f", s.Simple.Azimuth)
			sep = fmt.Sprintf("%.2f", s.Separation)
		}
		fmt.Fprintf(w, "%-6s %-12s %-13s %7.2f %7.2f %8s %8s %8.1f %6s\n",
			s.Time.UTC().Format("15:04"),
			FormatRA(s.Precise.TopocentricRightAscension),
			FormatAngle(s.Precise.TopocentricDeclination),
			s.Precise.Elevation,
			s.Precise.Azimuth,
			simpleAlt,
			simpleAz,
			s.Radiation,
			sep,
		)
	}

	fmt.Fprintln(w, strings.Repeat("─", 96))
	fmt.Fprintln(w, FormatWindow(tr.Daylight()))
	fmt.Fprintf(w, "Direct beam (%s): %.0f Wh/m² over %d samples\n",
		tr.Params.Model, tr.Insolation(tr.Params.Model), len(tr.Samples))
}
