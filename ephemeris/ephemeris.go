// Package ephemeris provides interchangeable sources of the sun's
// position. Classical evaluates the explicit low precision formulas in
// package solar; Meeus delegates to github.com/soniakeys/meeus.
package ephemeris

import (
	"errors"
	"fmt"
	"strings"

	"github.com/subtlepseudonym/heliocore/solar"
)

const (
	NameClassical = "classical"
	NameMeeus     = "meeus"
)

var ErrUnknownEphemeris = errors.New("unknown ephemeris")

// Ephemeris computes the sun's position for a Julian day. All angles
// are in degrees. Implementations must be safe for concurrent use.
type Ephemeris interface {
	Name() string

	// OrbitalDegree is the apparent geocentric ecliptic longitude in [0, 360)
	OrbitalDegree(julianDay float64) float64

	// Equatorial is the apparent right ascension and declination
	Equatorial(julianDay float64) solar.Equatorial

	// Sidereal is Greenwich mean sidereal time in [0, 360)
	Sidereal(julianDay float64) float64
}

// ByName returns the ephemeris registered under name. An empty name
// selects Classical.
func ByName(name string) (Ephemeris, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameClassical:
		return Classical{}, nil
	case NameMeeus:
		return Meeus{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEphemeris, name)
	}
}

// Names lists the registered ephemeris names
func Names() []string {
	return []string{NameClassical, NameMeeus}
}
