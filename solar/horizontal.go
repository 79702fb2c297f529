package solar

import (
	"fmt"
	"math"
)

// Observer is a location on earth's surface in degrees. Longitude is
// east positive, with negative values for degrees west.
type Observer struct {
	Latitude  float64
	Longitude float64
}

// Validate reports ErrInvalidObserverCoordinate for latitudes outside
// [-90, 90] and for non-finite values. Longitude is periodic and is not
// range checked.
func (o Observer) Validate() error {
	if math.IsNaN(o.Latitude) || o.Latitude < -90 || o.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidObserverCoordinate, o.Latitude)
	}
	if math.IsNaN(o.Longitude) || math.IsInf(o.Longitude, 0) {
		return fmt.Errorf("%w: longitude %v", ErrInvalidObserverCoordinate, o.Longitude)
	}

	return nil
}

// HourAngle calculates the local hour angle, in [-180, 180), of an
// object with the given right ascension. Sidereal time and longitude
// are in degrees, longitude east positive.
func HourAngle(siderealTime, longitude, rightAscension float64) float64 {
	return Normalize180(siderealTime + longitude - rightAscension)
}

// Altitude calculates the geometric altitude in degrees of an object
// above the horizon. Refraction is not applied.
func Altitude(latitude, declination, hourAngle float64) float64 {
	sinAlt := sinDeg(latitude)*sinDeg(declination) +
		cosDeg(latitude)*cosDeg(declination)*cosDeg(hourAngle)

	return radToDeg(math.Asin(clamp(sinAlt, -1, 1)))
}

// ZenithAngle calculates the angle between the local vertical and the
// sun, 90 degrees minus its altitude. Values above 90 mean the sun is
// below the horizon; the result is not clamped.
func ZenithAngle(obs Observer, siderealTime float64, eq Equatorial) (float64, error) {
	err := obs.Validate()
	if err != nil {
		return 0, err
	}

	h := HourAngle(siderealTime, obs.Longitude, eq.RightAscension)
	return 90 - Altitude(obs.Latitude, eq.Declination, h), nil
}
