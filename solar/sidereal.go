package solar

// GreenwichMeanSidereal calculates Greenwich mean sidereal time in
// degrees [0, 360) for a Julian day (Meeus, equation 12.4)
func GreenwichMeanSidereal(julianDay float64) float64 {
	t := JulianCenturies(julianDay)

	theta := 280.46061837 +
		360.98564736629*(julianDay-J2000) +
		0.000387933*t*t -
		t*t*t/38_710_000

	return Normalize360(theta)
}
