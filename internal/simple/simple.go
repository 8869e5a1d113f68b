// Package simple implements Masters' low-precision sun model: single-harmonic
// declination, an empirical equation of time, and the direct-beam irradiance
// estimate that goes with it.
//
// The plain functions mirror the textbook formulas and let NaN and Inf fall
// out of the trigonometry at the singular points. Calculate is the checked
// entry point and reports those points as a *DomainError instead.
package simple

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/julian"
)

// Errors returned by Calculate.
var (
	ErrInvalidLocation = errors.New("invalid location")
	ErrDomain          = errors.New("outside model domain")
)

// Singularity identifies which degenerate geometry a DomainError refers to.
type Singularity int

const (
	// Equator: tan(latitude) is zero and the azimuth quadrant test divides by it.
	Equator Singularity = iota
	// Pole: the hour angle no longer determines azimuth.
	Pole
	// Zenith: cos(altitude) is zero and the azimuth formula divides by it.
	Zenith
)

func (s Singularity) String() string {
	switch s {
	case Equator:
		return "equator"
	case Pole:
		return "pole"
	case Zenith:
		return "zenith"
	default:
		return fmt.Sprintf("Singularity(%d)", int(s))
	}
}

// DomainError reports an input where the azimuth is undefined.
type DomainError struct {
	Singularity Singularity
	Latitude    float64
	Time        time.Time
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("azimuth undefined at %s (latitude %.6f, %s)",
		e.Singularity, e.Latitude, e.Time.UTC().Format(time.RFC3339))
}

// Is matches ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// zenithEpsilon bounds |cos(altitude)| below which the sun counts as overhead.
const zenithEpsilon = 1e-12

// Declination returns the solar declination in degrees for a 0-based day of
// the year.
func Declination(day int) float64 {
	return 23.45 * math.Sin((2*math.Pi/365.0)*float64(day-81))
}

// EquationOfTime returns the difference between apparent and mean solar time
// in minutes.
func EquationOfTime(day int) float64 {
	b := (2 * math.Pi / 364.0) * float64(day-81)
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}

// SolarTime returns apparent solar time in hours at longitude lon (east
// positive) for the UTC instant t.
func SolarTime(lon float64, t time.Time) float64 {
	t = t.UTC()
	minutes := float64(t.Hour())*60 + float64(t.Minute()) +
		(float64(t.Second())+float64(t.Nanosecond())/1e9)/60
	return (minutes + 4*lon + EquationOfTime(julian.DayOfYear(t))) / 60
}

// HourAngle returns 15° per hour before local solar noon; positive in the
// morning.
func HourAngle(t time.Time, lon float64) float64 {
	return 15 * (12 - SolarTime(lon, t))
}

// Altitude returns the sun's altitude above the horizon in degrees.
func Altitude(lat, lon float64, t time.Time) float64 {
	dec := Declination(julian.DayOfYear(t))
	return altitude(lat, dec, HourAngle(t, lon))
}

func altitude(lat, dec, ha float64) float64 {
	return astro.AsinD(astro.CosD(lat)*astro.CosD(dec)*astro.CosD(ha) +
		astro.SinD(lat)*astro.SinD(dec))
}

// Azimuth returns the sun's azimuth in degrees measured from south, positive
// toward the east: the afternoon sun in the northern hemisphere is negative.
func Azimuth(lat, lon float64, t time.Time) float64 {
	dec := Declination(julian.DayOfYear(t))
	ha := HourAngle(t, lon)
	return azimuth(lat, dec, ha, altitude(lat, dec, ha), false)
}

// azimuth resolves the asin quadrant ambiguity by reflecting about 180° when
// cos(H) < tan(δ)/tan(φ). With clamp set, rounding past ±1 is absorbed.
func azimuth(lat, dec, ha, alt float64, clamp bool) float64 {
	s := astro.CosD(dec) * astro.SinD(ha) / astro.CosD(alt)
	if clamp {
		s = math.Max(-1, math.Min(1, s))
	}
	az := astro.AsinD(s)
	if astro.CosD(ha) >= astro.TanD(dec)/astro.TanD(lat) {
		return az
	}
	return 180 - az
}

// AirMassRatio returns the relative optical air mass 1/sin(altitude). The
// sun below or on the horizon yields +Inf.
func AirMassRatio(alt float64) float64 {
	if alt <= 0 {
		return math.Inf(1)
	}
	return 1 / astro.SinD(alt)
}

// ApparentExtraterrestrialFlux returns the apparent extraterrestrial flux in
// W/m² for a 0-based day of the year.
func ApparentExtraterrestrialFlux(day int) float64 {
	return 1160 + 75*astro.SinD((360.0/365.0)*float64(day-275))
}

// OpticalDepth returns the atmospheric optical depth for a 0-based day of the
// year.
func OpticalDepth(day int) float64 {
	return 0.174 + 0.035*astro.SinD((360.0/365.0)*float64(day-100))
}

// RadiationDirect returns the clear-sky direct beam irradiance in W/m² for
// the sun at alt degrees on the day of t. It is zero when alt <= 0.
func RadiationDirect(t time.Time, alt float64) float64 {
	if alt <= 0 {
		return 0
	}
	day := julian.DayOfYear(t)
	return ApparentExtraterrestrialFlux(day) * math.Exp(-OpticalDepth(day)*AirMassRatio(alt))
}

// Position is the simplified model evaluated at one instant.
type Position struct {
	Time           time.Time `json:"time"`
	Day            int       `json:"day"`
	Declination    float64   `json:"declination"`
	EquationOfTime float64   `json:"equation_of_time"`
	SolarTime      float64   `json:"solar_time"`
	HourAngle      float64   `json:"hour_angle"`
	Altitude       float64   `json:"altitude"`
	Azimuth        float64   `json:"azimuth"`
	AirMass        float64   `json:"air_mass"` // zero when the sun is down
	Flux           float64   `json:"flux"`
	OpticalDepth   float64   `json:"optical_depth"`
	Radiation      float64   `json:"radiation"`
}

// Calculate evaluates the model at lat, lon for instant t. Inputs where the
// azimuth is undefined return a *DomainError matching ErrDomain.
func Calculate(lat, lon float64, t time.Time) (Position, error) {
	t = t.UTC()
	if err := (astro.Location{Latitude: lat, Longitude: lon}).Validate(); err != nil {
		return Position{}, fmt.Errorf("%w: %w", ErrInvalidLocation, err)
	}
	switch {
	case lat == 0:
		return Position{}, &DomainError{Singularity: Equator, Latitude: lat, Time: t}
	case math.Abs(lat) == 90:
		return Position{}, &DomainError{Singularity: Pole, Latitude: lat, Time: t}
	}

	day := julian.DayOfYear(t)
	p := Position{
		Time:           t,
		Day:            day,
		Declination:    Declination(day),
		EquationOfTime: EquationOfTime(day),
		SolarTime:      SolarTime(lon, t),
		HourAngle:      HourAngle(t, lon),
		Flux:           ApparentExtraterrestrialFlux(day),
		OpticalDepth:   OpticalDepth(day),
	}
	p.Altitude = altitude(lat, p.Declination, p.HourAngle)
	if math.Abs(astro.CosD(p.Altitude)) < zenithEpsilon {
		return Position{}, &DomainError{Singularity: Zenith, Latitude: lat, Time: t}
	}
	p.Azimuth = azimuth(lat, p.Declination, p.HourAngle, p.Altitude, true)
	if p.Daylight() {
		p.AirMass = AirMassRatio(p.Altitude)
	}
	p.Radiation = RadiationDirect(t, p.Altitude)
	return p, nil
}

// Daylight reports whether the sun is above the horizon.
func (p Position) Daylight() bool {
	return p.Altitude > 0
}
