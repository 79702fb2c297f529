package ephemeris

import (
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/sidereal"
	meeussolar "github.com/soniakeys/meeus/v3/solar"

	"github.com/subtlepseudonym/heliocore/solar"
)

// Meeus delegates to the solar and sidereal packages of
// github.com/soniakeys/meeus. Its solar theory is the same chapter 25
// low precision series, but nutation in obliquity and sidereal time
// are carried as the library defines them, so results differ from
// Classical by a few thousandths of a degree.
type Meeus struct{}

func (Meeus) Name() string {
	return NameMeeus
}

func (Meeus) OrbitalDegree(julianDay float64) float64 {
	lambda := meeussolar.ApparentLongitude(base.J2000Century(julianDay))
	return solar.Normalize360(lambda.Deg())
}

func (Meeus) Equatorial(julianDay float64) solar.Equatorial {
	ra, dec := meeussolar.ApparentEquatorial(julianDay)
	return solar.Equatorial{
		RightAscension: solar.Normalize360(ra.Deg()),
		Declination:    dec.Deg(),
	}
}

func (Meeus) Sidereal(julianDay float64) float64 {
	// one day of sidereal time is one full turn
	return solar.Normalize360(sidereal.Mean(julianDay).Angle().Deg())
}
