package heliocore

import (
	"github.com/soniakeys/unit"
)

// LightPotential is the fraction of direct sunlight that falls on a
// horizontal surface for a given zenith angle, cos(z) clamped to [0, 1].
// It is 0 whenever the sun is at or below the horizon.
func LightPotential(zenith float64) float64 {
	p := unit.AngleFromDeg(zenith).Cos()
	if p < 0 {
		return 0
	} else if p > 1 {
		return 1
	}
	return p
}
