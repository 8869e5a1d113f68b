package spa

import (
	"github.com/litescript/ls-solar/internal/astro"
)

// Horizon constants in degrees.
const (
	SunRadius             = 0.26667
	AtmosphericRefraction = 0.5667
)

// TopocentricElevationAngle returns e0, the elevation angle without
// refraction, in degrees.
func TopocentricElevationAngle(latitude, declination, hourAngle float64) float64 {
	return astro.AsinD(astro.SinD(latitude)*astro.SinD(declination) +
		astro.CosD(latitude)*astro.CosD(declination)*astro.CosD(hourAngle))
}

// RefractionCorrection returns the atmospheric refraction Δe in degrees for a
// true elevation e0. The formula diverges near e0 = -5.11 and is only
// meaningful near or above the horizon; see ApplyRefraction. The 273 K offset
// follows NREL SPA.
func RefractionCorrection(pressure, temperature, elevation float64) float64 {
	return (pressure / 1010.0) * (283.0 / (273.0 + temperature)) *
		1.02 / (60.0 * astro.TanD(elevation+10.3/(elevation+5.11)))
}

// ApplyRefraction returns the refraction correction for e0 when the sun's
// upper limb can be above the apparent horizon, and 0 otherwise.
func ApplyRefraction(elevation float64, atm astro.Atmosphere) float64 {
	if elevation < -(SunRadius + AtmosphericRefraction) {
		return 0
	}
	atm = atm.OrStandard()
	return RefractionCorrection(atm.Pressure, atm.Temperature, elevation)
}

// TopocentricZenithAngle returns θ = 90 - e0 - Δe in degrees.
func TopocentricZenithAngle(latitude, declination, hourAngle, pressure, temperature float64) float64 {
	e0 := TopocentricElevationAngle(latitude, declination, hourAngle)
	return 90 - e0 - ApplyRefraction(e0, astro.Atmosphere{Pressure: pressure, Temperature: temperature})
}

// TopocentricAstronomersAzimuth returns Γ, measured westward from south, in
// degrees normalized to [0, 360).
func TopocentricAstronomersAzimuth(hourAngle, latitude, declination float64) float64 {
	y := astro.SinD(hourAngle)
	x := astro.CosD(hourAngle)*astro.SinD(latitude) - astro.TanD(declination)*astro.CosD(latitude)
	return astro.Normalize360(astro.Atan2D(y, x))
}

// TopocentricAzimuthAngle returns Φ, measured eastward from north, in degrees
// normalized to [0, 360).
func TopocentricAzimuthAngle(hourAngle, latitude, declination float64) float64 {
	return astro.Normalize360(TopocentricAstronomersAzimuth(hourAngle, latitude, declination) + 180)
}

// IncidenceAngle returns the angle in degrees between the sun direction and
// the normal of a surface tilted by slope and rotated by orientation from
// south (east negative). Azimuth is measured eastward from north.
func IncidenceAngle(zenith, slope, orientation, azimuth float64) float64 {
	return astro.AcosD(astro.CosD(zenith)*astro.CosD(slope) +
		astro.SinD(slope)*astro.SinD(zenith)*astro.CosD(azimuth-180-orientation))
}
