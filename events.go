package heliocore

import (
	"errors"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

var ErrNoSunriseSunset = errors.New("sun does not rise or set on this date")

// Events holds the sun's daily events for a location. Times are UTC.
type Events struct {
	Date     time.Time // midnight UTC of the requested calendar date
	Sunrise  time.Time
	Sunset   time.Time
	Noon     time.Time // local solar noon, the midpoint of sunrise and sunset
	Daylight time.Duration

	// PolarDay reports whether the sun stays above the horizon all day.
	// Only meaningful alongside ErrNoSunriseSunset.
	PolarDay bool
}

// SolarEvents calculates the sun's daily events using Default
func SolarEvents(loc Location, date time.Time) (Events, error) {
	return Default.SolarEvents(loc, date)
}

// SolarEvents calculates sunrise, sunset, and solar noon on the calendar
// date of date (in date's location) for loc.
//
// During polar day or night it returns ErrNoSunriseSunset; Noon is then
// approximated from longitude alone and PolarDay is taken from the
// sun's zenith angle at that time, using c's ephemeris.
func (c *Calculator) SolarEvents(loc Location, date time.Time) (Events, error) {
	err := loc.Validate()
	if err != nil {
		return Events{}, err
	}

	year, month, day := date.Date()
	events := Events{
		Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	}

	rise, set := sunrise.SunriseSunset(loc.Latitude, loc.Longitude, year, month, day)
	if rise.IsZero() || set.IsZero() {
		// mean solar noon drifts four minutes per degree of longitude
		offset := time.Duration(loc.Longitude / 15 * float64(time.Hour))
		events.Noon = events.Date.Add(12*time.Hour - offset)

		zenith, err := c.ZenithAngleAt(loc, events.Noon)
		if err != nil {
			return events, err
		}
		events.PolarDay = zenith < 90

		return events, ErrNoSunriseSunset
	}

	events.Sunrise = rise.UTC()
	events.Sunset = set.UTC()
	events.Daylight = set.Sub(rise)
	events.Noon = events.Sunrise.Add(events.Daylight / 2)

	return events, nil
}
