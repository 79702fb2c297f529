package solar

// Nutation is the periodic wobble of earth's axis, split into a
// component along the ecliptic and a component in obliquity. Degrees.
type Nutation struct {
	Longitude float64 // Δψ
	Obliquity float64 // Δε
}

// Obliquity is the tilt between the equator and the ecliptic, in degrees
type Obliquity struct {
	Mean float64 // ε0
	True float64 // ε0 + Δε
}

// NutationAt calculates the first order nutation terms from the
// longitude of the moon's ascending node
func NutationAt(node float64) Nutation {
	return Nutation{
		Longitude: -17.20 * sinDeg(node) / 3600,
		Obliquity: 9.20 * cosDeg(node) / 3600,
	}
}

// MeanObliquity calculates the mean obliquity of the ecliptic from the
// secular polynomial in Julian centuries
func MeanObliquity(t float64) float64 {
	return 23.439291 - 0.0130042*t - 0.00000000164*t*t + 0.000000000504*t*t*t
}
