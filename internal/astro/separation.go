package astro

import "math"

// AngularSeparation calculates the angular separation between two points on a
// sphere given as (longitude-like, latitude-like) pairs in degrees, e.g. RA/Dec
// or azimuth/altitude. Returns separation in degrees.
func AngularSeparation(lon1, lat1, lon2, lat2 float64) float64 {
	lat1Rad := DegToRad(lat1)
	lat2Rad := DegToRad(lat2)

	// Haversine formula
	dLon := DegToRad(lon2 - lon1)
	dLat := lat2Rad - lat1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// Clamp to avoid numerical errors with asin
	if a > 1 {
		a = 1
	}

	return RadToDeg(2 * math.Asin(math.Sqrt(a)))
}
