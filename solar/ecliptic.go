package solar

// Ecliptic is a geocentric position along the ecliptic, in degrees
type Ecliptic struct {
	Longitude float64 // 0-360
	Latitude  float64 // always 0 for the sun at this precision
}

// Position holds the sun's ecliptic position at a Julian day along
// with the intermediate quantities the coordinate transforms need.
// All angles are in degrees.
type Position struct {
	JulianDay        float64
	Centuries        float64 // T, Julian centuries since J2000.0
	MeanLongitude    float64 // L0
	MeanAnomaly      float64 // M, reduced to [0, 360)
	EquationOfCenter float64 // C
	TrueLongitude    float64 // L0 + C
	Node             float64 // Ω, longitude of the moon's ascending node

	Ecliptic  Ecliptic
	Nutation  Nutation
	Obliquity Obliquity
}

// PositionAt computes the sun's apparent geocentric position for a
// Julian day using the low precision theory from Meeus, chapter 25.
// Results are accurate to roughly 0.01 degrees.
func PositionAt(julianDay float64) Position {
	t := JulianCenturies(julianDay)

	l0 := MeanLongitude(t)
	m := MeanAnomaly(t)
	c := EquationOfTheCenter(t, m)
	node := LunarNode(t)
	nutation := NutationAt(node)
	mean := MeanObliquity(t)

	return Position{
		JulianDay:        julianDay,
		Centuries:        t,
		MeanLongitude:    l0,
		MeanAnomaly:      m,
		EquationOfCenter: c,
		TrueLongitude:    l0 + c,
		Node:             node,
		Ecliptic: Ecliptic{
			Longitude: EclipticLongitude(l0+c, node),
			Latitude:  0,
		},
		Nutation: nutation,
		Obliquity: Obliquity{
			Mean: mean,
			True: mean + nutation.Obliquity,
		},
	}
}

// MeanLongitude calculates the geometric mean longitude of the sun,
// referred to the mean equinox of the date. The result is not reduced.
func MeanLongitude(t float64) float64 {
	return 280.46646 + 36000.76983*t + 0.0003032*t*t
}

// MeanAnomaly calculates the fraction of the sun's orbital period
// elapsed since perihelion, expressed as an angle in [0, 360)
func MeanAnomaly(t float64) float64 {
	return Normalize360(357.52911 + 35999.05029*t - 0.0001537*t*t)
}

// EquationOfTheCenter calculates the angular difference between the
// position of the actual sun (with an elliptical orbit) and the mean
// sun (with a circular orbit). This can be expressed as a function of
// mean anomaly and orbital eccentricity, which itself drifts with t.
//
// https://en.wikipedia.org/wiki/Equation_of_the_center
func EquationOfTheCenter(t, meanAnomaly float64) float64 {
	firstOrder := (1.914602 - 0.004817*t - 0.000014*t*t) * sinDeg(meanAnomaly)
	secondOrder := (0.019993 - 0.000101*t) * sinDeg(2*meanAnomaly)
	thirdOrder := 0.000289 * sinDeg(3*meanAnomaly)

	return firstOrder + secondOrder + thirdOrder
}

// LunarNode calculates the longitude of the ascending node of the
// moon's mean orbit, which drives the dominant nutation term
func LunarNode(t float64) float64 {
	return 125.04 - 1934.136*t
}

// EclipticLongitude calculates the sun's apparent distance along the
// ecliptic from its true longitude, correcting for nutation and
// aberration. The result is in [0, 360).
func EclipticLongitude(trueLongitude, node float64) float64 {
	return Normalize360(trueLongitude - 0.00569 - 0.00478*sinDeg(node))
}

// OrbitalDegree is the sun's apparent geocentric ecliptic longitude
// reduced into [0, 360).
//
// No 180 degree offset is applied: this is where the sun appears from
// earth, not where earth sits as seen from the sun.
func OrbitalDegree(e Ecliptic) float64 {
	return Normalize360(e.Longitude)
}
