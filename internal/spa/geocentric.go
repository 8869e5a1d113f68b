package spa

import (
	"github.com/litescript/ls-solar/internal/astro"
)

// GeocentricLongitude returns the Sun's geocentric longitude Θ in degrees.
func GeocentricLongitude(jme float64) float64 {
	return astro.Normalize360(HeliocentricLongitude(jme) + 180)
}

// GeocentricLatitude returns the Sun's geocentric latitude β in degrees.
func GeocentricLatitude(jme float64) float64 {
	return -HeliocentricLatitude(jme)
}

// MeanEclipticObliquity returns ε0 in arc-seconds.
func MeanEclipticObliquity(jme float64) float64 {
	u := jme / 10.0
	sum := 0.0
	for i := len(MeanObliquityCoefficients) - 1; i >= 0; i-- {
		sum = sum*u + MeanObliquityCoefficients[i]
	}
	return sum
}

// TrueEclipticObliquity returns ε in degrees.
func TrueEclipticObliquity(jme float64, n Nutation) float64 {
	return MeanEclipticObliquity(jme)/3600.0 + n.Obliquity
}

// ApparentSunLongitude returns λ in degrees.
func ApparentSunLongitude(geocentricLongitude float64, n Nutation, aberration float64) float64 {
	return geocentricLongitude + n.Longitude + aberration
}

// GeocentricSunDeclination returns δ in degrees.
func GeocentricSunDeclination(apparentLongitude, obliquity, geocentricLatitude float64) float64 {
	return astro.AsinD(astro.SinD(geocentricLatitude)*astro.CosD(obliquity) +
		astro.CosD(geocentricLatitude)*astro.SinD(obliquity)*astro.SinD(apparentLongitude))
}

// GeocentricSunRightAscension returns α in degrees, normalized to [0, 360).
func GeocentricSunRightAscension(apparentLongitude, obliquity, geocentricLatitude float64) float64 {
	y := astro.SinD(apparentLongitude)*astro.CosD(obliquity) -
		astro.TanD(geocentricLatitude)*astro.SinD(obliquity)
	x := astro.CosD(apparentLongitude)
	return astro.Normalize360(astro.Atan2D(y, x))
}
