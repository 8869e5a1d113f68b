package spa

import (
	"math"

	"github.com/litescript/ls-solar/internal/astro"
)

// Coefficient evaluates the periodic series Σ A·cos(B + C·jme) of a table.
func Coefficient(jme float64, table []Term) float64 {
	sum := 0.0
	for _, t := range table {
		sum += t.A * math.Cos(t.B+t.C*jme)
	}
	return sum
}

// polynomialSeries evaluates Σ Coefficient(jme, tables[i])·jme^i / 1e8.
func polynomialSeries(jme float64, tables ...[]Term) float64 {
	sum := 0.0
	pow := 1.0
	for _, table := range tables {
		sum += Coefficient(jme, table) * pow
		pow *= jme
	}
	return sum / 1e8
}

// HeliocentricLongitude returns Earth's heliocentric longitude in degrees,
// normalized to [0, 360).
func HeliocentricLongitude(jme float64) float64 {
	l := polynomialSeries(jme, L0, L1, L2, L3, L4, L5)
	return astro.Normalize360(astro.RadToDeg(l))
}

// HeliocentricLatitude returns Earth's heliocentric latitude in degrees.
func HeliocentricLatitude(jme float64) float64 {
	return astro.RadToDeg(polynomialSeries(jme, B0, B1))
}

// RadiusVector returns the Earth-Sun distance in astronomical units.
func RadiusVector(jme float64) float64 {
	return polynomialSeries(jme, R0, R1, R2, R3, R4)
}
