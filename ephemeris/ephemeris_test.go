package ephemeris

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/heliocore/solar"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		err      error
	}{
		{"", NameClassical, nil},
		{"classical", NameClassical, nil},
		{" Meeus ", NameMeeus, nil},
		{"vsop87", "", ErrUnknownEphemeris},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eph, err := ByName(tt.name)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, eph.Name())
		})
	}
}

func TestNames(t *testing.T) {
	for _, name := range Names() {
		eph, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, eph.Name())
	}
}

// angularDiff returns the smallest separation between two angles in degrees
func angularDiff(a, b float64) float64 {
	d := math.Abs(solar.Normalize180(a - b))
	return d
}

func TestClassicalMatchesMeeus(t *testing.T) {
	classical, meeus := Classical{}, Meeus{}

	start := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)
	for tm := start; tm.Before(end); tm = tm.Add(97*24*time.Hour + 5*time.Hour + 17*time.Minute) {
		jd := solar.JulianDate(tm)

		assert.Less(t, angularDiff(classical.OrbitalDegree(jd), meeus.OrbitalDegree(jd)), 0.01, "orbital degree at %s", tm)

		ce, me := classical.Equatorial(jd), meeus.Equatorial(jd)
		assert.Less(t, angularDiff(ce.RightAscension, me.RightAscension), 0.01, "right ascension at %s", tm)
		assert.InDelta(t, ce.Declination, me.Declination, 0.01, "declination at %s", tm)

		assert.Less(t, angularDiff(classical.Sidereal(jd), meeus.Sidereal(jd)), 0.01, "sidereal time at %s", tm)
	}
}

func TestEphemeris_Ranges(t *testing.T) {
	for _, eph := range []Ephemeris{Classical{}, Meeus{}} {
		t.Run(eph.Name(), func(t *testing.T) {
			for jd := solar.J2000 - 400; jd < solar.J2000+400; jd += 1.3 {
				deg := eph.OrbitalDegree(jd)
				require.GreaterOrEqual(t, deg, 0.0)
				require.Less(t, deg, 360.0)

				eq := eph.Equatorial(jd)
				require.GreaterOrEqual(t, eq.RightAscension, 0.0)
				require.Less(t, eq.RightAscension, 360.0)
				require.LessOrEqual(t, math.Abs(eq.Declination), 23.5)

				st := eph.Sidereal(jd)
				require.GreaterOrEqual(t, st, 0.0)
				require.Less(t, st, 360.0)
			}
		})
	}
}
