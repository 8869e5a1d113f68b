// Package spa implements the high-precision solar position algorithm of
// Reda & Andreas (NREL/TP-560-34302).
//
// Each stage of the reduction is a pure function of its inputs so callers can
// inspect intermediate quantities; Calculate runs the whole pipeline:
//
//	time → JD/JDE → heliocentric L, B, R → nutation, aberration
//	     → geocentric λ, α, δ → parallax → topocentric α', δ', H'
//	     → elevation, refraction, zenith, azimuth, incidence
//
// All angles are in degrees. Stage functions propagate NaN and Inf for
// inputs outside their domain; Calculate validates its input instead.
package spa

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/julian"
)

// Supported input ranges.
const (
	MinYear   = -2000
	MaxYear   = 6000
	MaxDeltaT = 8000.0
)

// Errors returned by Calculate.
var (
	ErrTimeOutOfRange    = errors.New("time outside supported years")
	ErrInvalidLocation   = errors.New("invalid location")
	ErrInvalidAtmosphere = errors.New("invalid atmosphere")
	ErrInvalidSurface    = errors.New("invalid surface")
	ErrInvalidDeltaT     = errors.New("invalid delta-t")
)

// Input holds everything besides the instant needed to place the sun.
type Input struct {
	Location   astro.Location
	Atmosphere astro.Atmosphere // zero value means standard atmosphere
	Surface    astro.Surface
	DeltaT     float64 // TT - UT in seconds, supplied by the caller
}

// Position is the result of one pipeline run. All angles are in degrees.
type Position struct {
	Time   time.Time
	Moment julian.Moment

	HeliocentricLongitude float64 // L
	HeliocentricLatitude  float64 // B
	RadiusVector          float64 // R, AU

	GeocentricLongitude float64 // Θ
	GeocentricLatitude  float64 // β
	Nutation            Nutation
	Obliquity           float64 // ε
	Aberration          float64 // Δτ
	ApparentLongitude   float64 // λ
	SiderealTime        float64 // ν
	RightAscension      float64 // α, geocentric
	Declination         float64 // δ, geocentric
	HourAngle           float64 // H, geocentric

	Parallax                  float64 // ξ
	ParallaxRightAscension    float64 // Δα
	TopocentricRightAscension float64 // α'
	TopocentricDeclination    float64 // δ'
	TopocentricHourAngle      float64 // H'

	TrueElevation      float64 // e0, without refraction
	Refraction         float64 // Δe
	Elevation          float64 // e
	Zenith             float64 // θ
	AstronomersAzimuth float64 // Γ, westward from south
	Azimuth            float64 // Φ, eastward from north
	Incidence          float64 // θI on the configured surface
}

// Validate checks the input ranges and fills in the standard atmosphere.
func (in Input) Validate() (Input, error) {
	if err := in.Location.Validate(); err != nil {
		return in, fmt.Errorf("%w: %w", ErrInvalidLocation, err)
	}
	in.Atmosphere = in.Atmosphere.OrStandard()
	if err := in.Atmosphere.Validate(); err != nil {
		return in, fmt.Errorf("%w: %w", ErrInvalidAtmosphere, err)
	}
	if err := in.Surface.Validate(); err != nil {
		return in, fmt.Errorf("%w: %w", ErrInvalidSurface, err)
	}
	if math.IsNaN(in.DeltaT) || math.Abs(in.DeltaT) > MaxDeltaT {
		return in, fmt.Errorf("%w: %v s", ErrInvalidDeltaT, in.DeltaT)
	}
	return in, nil
}

// Calculate runs the full pipeline for instant t.
func Calculate(t time.Time, in Input) (Position, error) {
	t = t.UTC()
	if y := t.Year(); y < MinYear || y > MaxYear {
		return Position{}, fmt.Errorf("%w: year %d", ErrTimeOutOfRange, y)
	}
	in, err := in.Validate()
	if err != nil {
		return Position{}, err
	}
	return compute(t, in), nil
}

func compute(t time.Time, in Input) Position {
	lat := in.Location.Latitude
	lon := in.Location.Longitude
	p := Position{Time: t, Moment: julian.NewMoment(t, in.DeltaT)}
	jme := p.Moment.JME

	p.HeliocentricLongitude = HeliocentricLongitude(jme)
	p.HeliocentricLatitude = HeliocentricLatitude(jme)
	p.RadiusVector = RadiusVector(jme)

	p.GeocentricLongitude = GeocentricLongitude(jme)
	p.GeocentricLatitude = GeocentricLatitude(jme)
	p.Nutation = CalculateNutation(p.Moment.JDE)
	p.Obliquity = TrueEclipticObliquity(jme, p.Nutation)
	p.Aberration = AberrationCorrection(p.RadiusVector)
	p.ApparentLongitude = ApparentSunLongitude(p.GeocentricLongitude, p.Nutation, p.Aberration)
	p.SiderealTime = ApparentSiderealTime(p.Moment.JD, jme, p.Nutation)
	p.RightAscension = GeocentricSunRightAscension(p.ApparentLongitude, p.Obliquity, p.GeocentricLatitude)
	p.Declination = GeocentricSunDeclination(p.ApparentLongitude, p.Obliquity, p.GeocentricLatitude)
	p.HourAngle = LocalHourAngle(p.SiderealTime, lon, p.RightAscension)

	x := ProjectedRadialDistance(in.Location.Elevation, lat)
	y := ProjectedAxialDistance(in.Location.Elevation, lat)
	p.Parallax = EquatorialHorizontalParallax(p.RadiusVector)
	p.ParallaxRightAscension = ParallaxSunRightAscension(x, p.Parallax, p.HourAngle, p.Declination)
	p.TopocentricRightAscension = TopocentricSunRightAscension(p.RightAscension, p.ParallaxRightAscension)
	p.TopocentricDeclination = TopocentricSunDeclination(p.Declination, x, y, p.Parallax, p.ParallaxRightAscension, p.HourAngle)
	p.TopocentricHourAngle = TopocentricLocalHourAngle(p.HourAngle, p.ParallaxRightAscension)

	p.TrueElevation = TopocentricElevationAngle(lat, p.TopocentricDeclination, p.TopocentricHourAngle)
	p.Refraction = ApplyRefraction(p.TrueElevation, in.Atmosphere)
	p.Elevation = p.TrueElevation + p.Refraction
	p.Zenith = 90 - p.Elevation
	p.AstronomersAzimuth = TopocentricAstronomersAzimuth(p.TopocentricHourAngle, lat, p.TopocentricDeclination)
	p.Azimuth = TopocentricAzimuthAngle(p.TopocentricHourAngle, lat, p.TopocentricDeclination)
	p.Incidence = IncidenceAngle(p.Zenith, in.Surface.Slope, in.Surface.AzimuthRotation, p.Azimuth)

	return p
}

// AboveHorizon reports whether the refracted sun center is above the horizon.
func (p Position) AboveHorizon() bool {
	return p.Elevation > 0
}
