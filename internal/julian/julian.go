// Package julian converts UTC timestamps to the Julian day scales used by the
// solar position pipeline.
package julian

import (
	"math"
	"time"
)

// J2000 is the Julian day of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// gregorianCutover is the last raw Julian day still reckoned in the Julian
// calendar (1582-10-04 12:00).
const gregorianCutover = 2299160.0

const secondsPerDay = 86400.0

// JulianDay returns the Julian day for t. Calendar fields are read in UTC.
//
// Dates whose raw day number falls at or before JD 2299160 are interpreted as
// Julian calendar dates; later dates receive the Gregorian offset.
func JulianDay(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())

	// Time of day as fraction
	secs := float64(t.Hour())*3600 + float64(t.Minute())*60 + float64(t.Second()) +
		float64(t.Nanosecond())/1e9
	d := float64(t.Day()) + secs/secondsPerDay

	// Adjust for January/February (treat as months 13/14 of previous year)
	if m <= 2 {
		y--
		m += 12
	}

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d - 1524.5

	if jd <= gregorianCutover {
		return jd
	}

	// Gregorian calendar correction
	a := math.Floor(y / 100)
	return jd + 2 - a + math.Floor(a/4)
}

// JulianEphemerisDay shifts jd by deltaT, the difference TT - UT in seconds.
func JulianEphemerisDay(jd, deltaT float64) float64 {
	return jd + deltaT/secondsPerDay
}

// JulianCentury returns Julian centuries since J2000.0. Pass a Julian day for
// JC or a Julian ephemeris day for JCE.
func JulianCentury(jd float64) float64 {
	return (jd - J2000) / 36525.0
}

// JulianEphemerisMillennium converts Julian ephemeris centuries to millennia.
func JulianEphemerisMillennium(jce float64) float64 {
	return jce / 10.0
}

// DayOfYear returns the 0-based day offset of t from January 1 of its year.
func DayOfYear(t time.Time) int {
	return t.UTC().YearDay() - 1
}

// Moment bundles the time scales for one instant.
type Moment struct {
	JD  float64 // Julian day (UT)
	JDE float64 // Julian ephemeris day (TT)
	JC  float64 // Julian century
	JCE float64 // Julian ephemeris century
	JME float64 // Julian ephemeris millennium
}

// NewMoment computes all time scales for t with the given Delta-T in seconds.
func NewMoment(t time.Time, deltaT float64) Moment {
	jd := JulianDay(t)
	jde := JulianEphemerisDay(jd, deltaT)
	jce := JulianCentury(jde)
	return Moment{
		JD:  jd,
		JDE: jde,
		JC:  JulianCentury(jd),
		JCE: jce,
		JME: JulianEphemerisMillennium(jce),
	}
}
