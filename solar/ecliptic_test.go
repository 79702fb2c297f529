package solar

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Meeus, example 25.a: 1992 October 13.0
func TestPositionAt_MeeusExample(t *testing.T) {
	p := PositionAt(2448908.5)

	assert.InDelta(t, -0.072183436, p.Centuries, 1e-9)
	assert.InDelta(t, 201.80720, Normalize360(p.MeanLongitude), 1e-4)
	assert.InDelta(t, 278.99397, p.MeanAnomaly, 1e-4)
	assert.InDelta(t, -1.89732, p.EquationOfCenter, 1e-4)
	assert.InDelta(t, 199.90988, Normalize360(p.TrueLongitude), 1e-4)
	assert.InDelta(t, 264.65, p.Node, 1e-2)
	assert.InDelta(t, 199.90895, p.Ecliptic.Longitude, 1e-4)
	assert.Equal(t, 0.0, p.Ecliptic.Latitude)
	assert.InDelta(t, 23.44023, p.Obliquity.Mean, 1e-5)
	assert.InDelta(t, 23.43999, p.Obliquity.True, 1e-5)
}

func TestNutationAt(t *testing.T) {
	n := NutationAt(0)
	assert.InDelta(t, 0, n.Longitude, 1e-12)
	assert.InDelta(t, 9.20/3600, n.Obliquity, 1e-12)

	n = NutationAt(90)
	assert.InDelta(t, -17.20/3600, n.Longitude, 1e-12)
	assert.InDelta(t, 0, n.Obliquity, 1e-12)

	// bounded by the amplitude for any node longitude
	for node := -720.0; node <= 720; node += 7.5 {
		n := NutationAt(node)
		assert.LessOrEqual(t, math.Abs(n.Longitude), 17.20/3600+1e-12)
		assert.LessOrEqual(t, math.Abs(n.Obliquity), 9.20/3600+1e-12)
	}
}

func TestMeanObliquity_Decreases(t *testing.T) {
	assert.InDelta(t, 23.439291, MeanObliquity(0), 1e-12)

	prev := MeanObliquity(-10)
	for c := -9.0; c <= 10; c++ {
		eps := MeanObliquity(c)
		assert.Less(t, eps, prev, "century %v", c)
		prev = eps
	}
}

func TestOrbitalDegree_Range(t *testing.T) {
	tests := []struct {
		name     string
		ecliptic Ecliptic
		expected float64
	}{
		{"in range", Ecliptic{Longitude: 85.5}, 85.5},
		{"negative", Ecliptic{Longitude: -10}, 350},
		{"full turn", Ecliptic{Longitude: 360}, 0},
		{"several turns", Ecliptic{Longitude: 1085}, 5},
		{"tiny negative", Ecliptic{Longitude: -1e-15}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrbitalDegree(tt.ecliptic)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		})
	}
}

func TestEclipticLongitude_Seasons(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		min  float64
		max  float64
	}{
		{"june calibration", time.Date(2024, time.June, 16, 12, 0, 0, 0, time.UTC), 85, 87},
		{"june solstice", time.Date(2024, time.June, 20, 20, 51, 0, 0, time.UTC), 89.9, 90.1},
		{"september equinox", time.Date(2024, time.September, 22, 12, 44, 0, 0, time.UTC), 179.9, 180.1},
		{"december solstice", time.Date(2024, time.December, 21, 9, 20, 0, 0, time.UTC), 269.9, 270.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PositionAt(JulianDate(tt.time))
			assert.GreaterOrEqual(t, p.Ecliptic.Longitude, tt.min)
			assert.LessOrEqual(t, p.Ecliptic.Longitude, tt.max)
		})
	}
}
