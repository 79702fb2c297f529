package heliocore

import (
	"time"

	"github.com/subtlepseudonym/heliocore/ephemeris"
	"github.com/subtlepseudonym/heliocore/solar"
)

// Default evaluates the classical solar formulas
var Default = New(ephemeris.Classical{})

// Calculator binds the public operations to an ephemeris. It holds no
// mutable state and may be shared between goroutines.
type Calculator struct {
	eph ephemeris.Ephemeris
}

// New returns a Calculator backed by eph, or by the classical formulas
// when eph is nil
func New(eph ephemeris.Ephemeris) *Calculator {
	if eph == nil {
		eph = ephemeris.Classical{}
	}

	return &Calculator{
		eph: eph,
	}
}

func (c *Calculator) Ephemeris() ephemeris.Ephemeris {
	return c.eph
}

func (c *Calculator) OrbitalDegree(timestampMs int64) (float64, error) {
	jd, err := solar.JulianDay(timestampMs)
	if err != nil {
		return 0, err
	}

	return c.eph.OrbitalDegree(jd), nil
}

// Declination returns the sun's apparent declination in degrees
func (c *Calculator) Declination(timestampMs int64) (float64, error) {
	jd, err := solar.JulianDay(timestampMs)
	if err != nil {
		return 0, err
	}

	return c.eph.Equatorial(jd).Declination, nil
}

func (c *Calculator) ZenithAngle(lat, lon float64, timestampMs int64) (float64, error) {
	jd, err := solar.JulianDay(timestampMs)
	if err != nil {
		return 0, err
	}

	obs := solar.Observer{Latitude: lat, Longitude: lon}
	return solar.ZenithAngle(obs, c.eph.Sidereal(jd), c.eph.Equatorial(jd))
}

// Altitude returns the sun's geometric altitude, the complement of the
// zenith angle
func (c *Calculator) Altitude(lat, lon float64, timestampMs int64) (float64, error) {
	zenith, err := c.ZenithAngle(lat, lon, timestampMs)
	if err != nil {
		return 0, err
	}

	return 90 - zenith, nil
}

// ZenithAngleAt is ZenithAngle for a Location and time.Time
func (c *Calculator) ZenithAngleAt(loc Location, t time.Time) (float64, error) {
	return c.ZenithAngle(loc.Latitude, loc.Longitude, t.UnixMilli())
}
