package spa

import (
	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/julian"
)

// MeanSiderealTime returns Greenwich mean sidereal time ν0 in degrees,
// normalized to [0, 360).
func MeanSiderealTime(jd float64) float64 {
	jc := julian.JulianCentury(jd)
	nu0 := 280.46061837 +
		360.98564736629*(jd-julian.J2000) +
		0.000387933*jc*jc -
		jc*jc*jc/38710000.0
	return astro.Normalize360(nu0)
}

// ApparentSiderealTime returns Greenwich apparent sidereal time ν in degrees.
func ApparentSiderealTime(jd, jme float64, n Nutation) float64 {
	eps := TrueEclipticObliquity(jme, n)
	return MeanSiderealTime(jd) + n.Longitude*astro.CosD(eps)
}

// LocalHourAngle returns the observer's geocentric hour angle H in degrees,
// normalized to [0, 360). Longitude is east positive.
func LocalHourAngle(apparentSiderealTime, longitude, rightAscension float64) float64 {
	return astro.Normalize360(apparentSiderealTime + longitude - rightAscension)
}

// ParallaxSunRightAscension returns the parallax in right ascension Δα in degrees.
func ParallaxSunRightAscension(radialDistance, parallax, hourAngle, declination float64) float64 {
	sinXi := astro.SinD(parallax)
	return astro.Atan2D(
		-radialDistance*sinXi*astro.SinD(hourAngle),
		astro.CosD(declination)-radialDistance*sinXi*astro.CosD(hourAngle),
	)
}

// TopocentricSunRightAscension returns α' = α + Δα in degrees.
func TopocentricSunRightAscension(rightAscension, parallaxRightAscension float64) float64 {
	return rightAscension + parallaxRightAscension
}

// TopocentricSunDeclination returns δ' in degrees.
func TopocentricSunDeclination(declination, radialDistance, axialDistance, parallax, parallaxRightAscension, hourAngle float64) float64 {
	sinXi := astro.SinD(parallax)
	return astro.Atan2D(
		(astro.SinD(declination)-axialDistance*sinXi)*astro.CosD(parallaxRightAscension),
		astro.CosD(declination)-radialDistance*sinXi*astro.CosD(hourAngle),
	)
}

// TopocentricLocalHourAngle returns H' = H - Δα in degrees.
func TopocentricLocalHourAngle(hourAngle, parallaxRightAscension float64) float64 {
	return hourAngle - parallaxRightAscension
}
