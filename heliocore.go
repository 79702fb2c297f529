// Package heliocore converts instants in UTC into two solar angles: the
// sun's apparent ecliptic longitude, exposed as an orbital degree in
// [0, 360), and the sun's zenith angle as seen from a point on earth.
//
// Both are pure functions of their arguments and safe for concurrent
// use. The arithmetic lives in package solar; package ephemeris lets a
// Calculator swap in a library backed source of the same quantities.
package heliocore

import (
	"github.com/subtlepseudonym/heliocore/solar"
)

var (
	ErrInvalidTimestamp          = solar.ErrInvalidTimestamp
	ErrInvalidObserverCoordinate = solar.ErrInvalidObserverCoordinate
)

// Location is an observer's position in degrees. Longitude is east
// positive, with negative values for degrees west.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude" toml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude" toml:"longitude"`
}

func (l Location) Observer() solar.Observer {
	return solar.Observer{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

// Validate returns ErrInvalidObserverCoordinate for latitudes outside
// [-90, 90] or non-finite coordinates
func (l Location) Validate() error {
	return l.Observer().Validate()
}

// OrbitalDegree returns the sun's apparent geocentric ecliptic
// longitude in [0, 360) at a millisecond unix timestamp
func OrbitalDegree(timestampMs int64) (float64, error) {
	return Default.OrbitalDegree(timestampMs)
}

// ZenithAngle returns the angle in degrees between the local vertical
// at lat, lon and the sun at a millisecond unix timestamp. Values above
// 90 mean the sun is below the horizon.
func ZenithAngle(lat, lon float64, timestampMs int64) (float64, error) {
	return Default.ZenithAngle(lat, lon, timestampMs)
}
