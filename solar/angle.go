package solar

import (
	"github.com/soniakeys/unit"
)

// All formulas in this package are stated in degrees. Trigonometry goes
// through unit.Angle, which stores radians.

func sinDeg(deg float64) float64 {
	return unit.AngleFromDeg(deg).Sin()
}

func cosDeg(deg float64) float64 {
	return unit.AngleFromDeg(deg).Cos()
}

func tanDeg(deg float64) float64 {
	return unit.AngleFromDeg(deg).Tan()
}

func radToDeg(rad float64) float64 {
	return unit.Angle(rad).Deg()
}

// Normalize360 reduces an angle in degrees into [0, 360)
func Normalize360(deg float64) float64 {
	d := unit.PMod(deg, 360)
	if d >= 360 {
		// tiny negative inputs round up to exactly 360
		return 0
	}
	return d
}

// Normalize180 reduces an angle in degrees into [-180, 180)
func Normalize180(deg float64) float64 {
	return Normalize360(deg+180) - 180
}
