// Package astro provides the angle helpers and observer value types shared by
// the solar position models.
package astro

import (
	"math"

	"github.com/soniakeys/unit"
)

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return unit.AngleFromDeg(deg).Rad()
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return unit.Angle(rad).Deg()
}

// SinD returns the sine of an angle given in degrees.
func SinD(deg float64) float64 {
	return unit.AngleFromDeg(deg).Sin()
}

// CosD returns the cosine of an angle given in degrees.
func CosD(deg float64) float64 {
	return unit.AngleFromDeg(deg).Cos()
}

// TanD returns the tangent of an angle given in degrees.
func TanD(deg float64) float64 {
	return unit.AngleFromDeg(deg).Tan()
}

// AsinD returns the arcsine in degrees.
func AsinD(x float64) float64 {
	return RadToDeg(math.Asin(x))
}

// AcosD returns the arccosine in degrees.
func AcosD(x float64) float64 {
	return RadToDeg(math.Acos(x))
}

// AtanD returns the arctangent in degrees.
func AtanD(x float64) float64 {
	return RadToDeg(math.Atan(x))
}

// Atan2D returns atan2(y, x) in degrees, in the range (-180, 180].
func Atan2D(y, x float64) float64 {
	return RadToDeg(math.Atan2(y, x))
}

// Normalize360 normalizes an angle to [0, 360) degrees.
func Normalize360(deg float64) float64 {
	deg = unit.PMod(deg, 360)
	// PMod can return y itself for tiny negative inputs.
	if deg >= 360 {
		deg -= 360
	}
	return deg
}
