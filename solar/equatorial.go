package solar

import (
	"math"
)

// Equatorial represents equatorial coordinates in degrees
type Equatorial struct {
	RightAscension float64 // 0-360
	Declination    float64 // -90-90
}

// ToEquatorial converts an ecliptic position to right ascension and
// declination using the true obliquity
func ToEquatorial(e Ecliptic, o Obliquity) Equatorial {
	lambda := e.Longitude
	beta := e.Latitude
	eps := o.True

	y := sinDeg(lambda)*cosDeg(eps) - tanDeg(beta)*sinDeg(eps)
	x := cosDeg(lambda)
	ra := Normalize360(radToDeg(math.Atan2(y, x)))

	sinDec := sinDeg(beta)*cosDeg(eps) + cosDeg(beta)*sinDeg(eps)*sinDeg(lambda)
	dec := radToDeg(math.Asin(clamp(sinDec, -1, 1)))

	return Equatorial{
		RightAscension: ra,
		Declination:    dec,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}
