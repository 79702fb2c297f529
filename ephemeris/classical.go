package ephemeris

import (
	"github.com/subtlepseudonym/heliocore/solar"
)

// Classical evaluates the low precision solar theory implemented in
// package solar
type Classical struct{}

func (Classical) Name() string {
	return NameClassical
}

func (Classical) OrbitalDegree(julianDay float64) float64 {
	p := solar.PositionAt(julianDay)
	return solar.OrbitalDegree(p.Ecliptic)
}

func (Classical) Equatorial(julianDay float64) solar.Equatorial {
	p := solar.PositionAt(julianDay)
	return solar.ToEquatorial(p.Ecliptic, p.Obliquity)
}

func (Classical) Sidereal(julianDay float64) float64 {
	return solar.GreenwichMeanSidereal(julianDay)
}
