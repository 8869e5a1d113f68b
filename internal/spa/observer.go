package spa

import (
	"github.com/litescript/ls-solar/internal/astro"
)

// EarthRadius is Earth's equatorial radius in meters.
const EarthRadius = 6378140.0

// flattening is the polar-to-equatorial radius ratio b/a.
const flattening = 0.99664719

// FlattenedLatitude returns the reduced latitude u in degrees, correcting the
// geographic latitude for Earth's oblateness.
func FlattenedLatitude(latitude float64) float64 {
	return astro.AtanD(flattening * astro.TanD(latitude))
}

// ProjectedRadialDistance returns x, the observer's distance from Earth's
// rotation axis in equatorial radii.
func ProjectedRadialDistance(elevation, latitude float64) float64 {
	u := FlattenedLatitude(latitude)
	return astro.CosD(u) + elevation/EarthRadius*astro.CosD(latitude)
}

// ProjectedAxialDistance returns y, the observer's distance from the
// equatorial plane in equatorial radii.
func ProjectedAxialDistance(elevation, latitude float64) float64 {
	u := FlattenedLatitude(latitude)
	return flattening*astro.SinD(u) + elevation/EarthRadius*astro.SinD(latitude)
}

// EquatorialHorizontalParallax returns ξ in degrees for a radius vector in AU.
// This is the NREL form 8.794/(3600·r): parallax shrinks with distance.
func EquatorialHorizontalParallax(r float64) float64 {
	return 8.794 / (3600.0 * r)
}
