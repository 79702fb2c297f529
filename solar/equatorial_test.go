package solar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Meeus, example 25.a continued
func TestToEquatorial_MeeusExample(t *testing.T) {
	p := PositionAt(2448908.5)
	eq := ToEquatorial(p.Ecliptic, p.Obliquity)

	assert.InDelta(t, 198.38083, eq.RightAscension, 1e-4)
	assert.InDelta(t, -7.78507, eq.Declination, 1e-4)
}

func TestToEquatorial_Cardinal(t *testing.T) {
	o := Obliquity{Mean: 23.44, True: 23.44}

	tests := []struct {
		name      string
		longitude float64
		ra        float64
		dec       float64
	}{
		{"vernal equinox", 0, 0, 0},
		{"summer solstice", 90, 90, 23.44},
		{"autumnal equinox", 180, 180, 0},
		{"winter solstice", 270, 270, -23.44},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq := ToEquatorial(Ecliptic{Longitude: tt.longitude}, o)
			assert.InDelta(t, tt.ra, eq.RightAscension, 1e-9)
			assert.InDelta(t, tt.dec, eq.Declination, 1e-9)
		})
	}
}

func TestToEquatorial_Range(t *testing.T) {
	o := Obliquity{Mean: 23.44, True: 23.4425}
	for lon := 0.0; lon < 360; lon += 0.75 {
		eq := ToEquatorial(Ecliptic{Longitude: lon}, o)
		assert.GreaterOrEqual(t, eq.RightAscension, 0.0)
		assert.Less(t, eq.RightAscension, 360.0)
		assert.LessOrEqual(t, eq.Declination, o.True+1e-9)
		assert.GreaterOrEqual(t, eq.Declination, -o.True-1e-9)
	}
}

func TestToEquatorial_UsesTrueObliquity(t *testing.T) {
	e := Ecliptic{Longitude: 90}
	mean := ToEquatorial(e, Obliquity{Mean: 23.44, True: 23.44})
	corrected := ToEquatorial(e, Obliquity{Mean: 23.44, True: 23.4425})

	assert.InDelta(t, 0.0025, corrected.Declination-mean.Declination, 1e-9)
}

func TestToEquatorial_EclipticLatitude(t *testing.T) {
	// a point at the ecliptic pole sits at declination 90 - ε
	eq := ToEquatorial(Ecliptic{Longitude: 90, Latitude: 90}, Obliquity{True: 23.44})
	assert.InDelta(t, 66.56, eq.Declination, 1e-9)
}
