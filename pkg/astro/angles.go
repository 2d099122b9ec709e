package astro

import (
	"math"
	"time"
)

// J2000 is the standard epoch 2000 January 1 12:00 UT.
var J2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

const (
	daysPerCentury = 36525.0
	secondsPerDay  = 86400.0
)

// Normalize360 reduces an angle in degrees to [0, 360).
func Normalize360(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// Normalize180 reduces an angle in degrees to (-180, 180].
func Normalize180(deg float64) float64 {
	m := Normalize360(deg)
	if m > 180 {
		m -= 360
	}
	return m
}

// JulianDay returns the UT Julian date of t.
func JulianDay(t time.Time) float64 {
	return 2451545.0 + t.Sub(J2000).Seconds()/secondsPerDay
}

// JulianCenturies returns Julian centuries since J2000 for t. The UT/TT
// distinction (under 80 seconds this century) is ignored; callers needing
// Terrestrial Time go through the ephemeris instead.
func JulianCenturies(t time.Time) float64 {
	return (JulianDay(t) - 2451545.0) / daysPerCentury
}

// MeanObliquity returns the mean obliquity of the ecliptic at t in degrees,
// per the IAU 1980 polynomial.
func MeanObliquity(t time.Time) float64 {
	c := JulianCenturies(t)
	seconds := 21.448 - c*(46.8150+c*(0.00059-c*0.001813))
	return 23.0 + (26.0+seconds/60.0)/60.0
}
