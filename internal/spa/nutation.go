package spa

import (
	"math"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/julian"
)

// Nutation is the periodic correction to ecliptic longitude and obliquity,
// both in degrees.
type Nutation struct {
	Longitude float64 // Δψ
	Obliquity float64 // Δε
}

// nutationScale converts 0.0001 arc-seconds to degrees.
const nutationScale = 36000000.0

// MeanElongationOfMoon returns the Moon's mean elongation from the Sun (X0), degrees.
func MeanElongationOfMoon(jce float64) float64 {
	return 297.85036 + 445267.111480*jce - 0.0019142*jce*jce + jce*jce*jce/189474.0
}

// MeanAnomalyOfSun returns the Sun's mean anomaly (X1), degrees.
func MeanAnomalyOfSun(jce float64) float64 {
	return 357.52772 + 35999.050340*jce - 0.0001603*jce*jce - jce*jce*jce/300000.0
}

// MeanAnomalyOfMoon returns the Moon's mean anomaly (X2), degrees.
func MeanAnomalyOfMoon(jce float64) float64 {
	return 134.96298 + 477198.867398*jce + 0.0086972*jce*jce + jce*jce*jce/56250.0
}

// ArgumentOfLatitudeOfMoon returns the Moon's argument of latitude (X3), degrees.
func ArgumentOfLatitudeOfMoon(jce float64) float64 {
	return 93.27191 + 483202.017538*jce - 0.0036825*jce*jce + jce*jce*jce/327270.0
}

// LongitudeOfAscendingNode returns the longitude of the Moon's ascending node
// on the ecliptic (X4), degrees.
func LongitudeOfAscendingNode(jce float64) float64 {
	return 125.04452 - 1934.136261*jce + 0.0020708*jce*jce + jce*jce*jce/450000.0
}

// fundamentalArguments returns X0..X4 in table column order.
func fundamentalArguments(jce float64) [5]float64 {
	return [5]float64{
		MeanElongationOfMoon(jce),
		MeanAnomalyOfSun(jce),
		MeanAnomalyOfMoon(jce),
		ArgumentOfLatitudeOfMoon(jce),
		LongitudeOfAscendingNode(jce),
	}
}

// NutationArgument returns Σ Xj·row[j] in degrees for one nutation row.
func NutationArgument(jce float64, row [5]int) float64 {
	return dotArguments(fundamentalArguments(jce), row)
}

// NutationAberrationArgument returns the argument of the leading nutation row
// (0, 0, 0, 0, 1), which reduces to the longitude of the ascending node.
func NutationAberrationArgument(jce float64) float64 {
	return NutationArgument(jce, NutationArguments[0])
}

func dotArguments(x [5]float64, row [5]int) float64 {
	sum := 0.0
	for j := range x {
		sum += x[j] * float64(row[j])
	}
	return sum
}

// CalculateNutation returns the nutation in longitude and obliquity for a
// Julian ephemeris day. As in NREL SPA, each of the 63 terms uses its own
// argument from its row of NutationArguments, not the row-0 argument.
func CalculateNutation(jde float64) Nutation {
	jce := julian.JulianCentury(jde)
	x := fundamentalArguments(jce)

	var sumPsi, sumEps float64
	for i, row := range NutationArguments {
		c := NutationCoefficients[i]
		arg := astro.DegToRad(dotArguments(x, row))
		sumPsi += (c.A + c.B*jce) * math.Sin(arg)
		sumEps += (c.C + c.D*jce) * math.Cos(arg)
	}

	return Nutation{
		Longitude: sumPsi / nutationScale,
		Obliquity: sumEps / nutationScale,
	}
}

// AberrationCorrection returns the aberration correction in degrees for an
// Earth radius vector r in AU.
func AberrationCorrection(r float64) float64 {
	return -20.4898 / (3600.0 * r)
}
