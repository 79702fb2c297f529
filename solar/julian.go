package solar

import (
	"fmt"
	"math"
	"time"
)

const (
	EpochJulianDate = 2440587.5 // Julian date of the unix epoch
	J2000           = 2451545.0 // Julian date of 2000-01-01T12:00:00Z
	DaysPerCentury  = 36525.0
	SecondsPerDay   = 86400 // not including leap seconds

	// Civil year bounds a timestamp must decode into
	MinYear = -262143
	MaxYear = 262143
)

var (
	minTimestamp = time.Date(MinYear, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	maxTimestamp = time.Date(MaxYear, time.December, 31, 23, 59, 59, 999_000_000, time.UTC).UnixMilli()
)

// DecodeTimestamp converts milliseconds since the unix epoch into a
// UTC civil time. Values whose year falls outside [MinYear, MaxYear]
// return ErrInvalidTimestamp.
func DecodeTimestamp(timestampMs int64) (time.Time, error) {
	if timestampMs < minTimestamp || timestampMs > maxTimestamp {
		return time.Time{}, fmt.Errorf("%w: %d ms", ErrInvalidTimestamp, timestampMs)
	}

	// time.UnixMilli splits into whole seconds and a non-negative
	// nanosecond remainder, so pre-epoch values decode correctly
	return time.UnixMilli(timestampMs).UTC(), nil
}

// JulianDay returns the Julian day for a millisecond unix timestamp
func JulianDay(timestampMs int64) (float64, error) {
	t, err := DecodeTimestamp(timestampMs)
	if err != nil {
		return 0, err
	}

	return JulianDate(t), nil
}

// JulianDate returns the Julian date for a particular time in the
// proleptic Gregorian calendar. The time is converted to UTC first.
//
// Leap seconds are not counted; go's time package smears them, so the
// fractional day is always measured against an 86400 second day.
//
// https://en.wikipedia.org/wiki/Julian_day
func JulianDate(t time.Time) float64 {
	t = t.UTC()

	year, month, day := t.Date()
	decimalDay := float64(day) +
		float64(t.Hour())/24 +
		float64(t.Minute())/1440 +
		float64(t.Second())/SecondsPerDay +
		float64(t.Nanosecond())/86_400_000_000_000

	y := float64(year)
	m := float64(month)
	if m <= 2 {
		y -= 1
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + decimalDay + b - 1524.5
}

// JulianCenturies returns the number of Julian centuries elapsed
// since the J2000.0 epoch
func JulianCenturies(julianDay float64) float64 {
	return (julianDay - J2000) / DaysPerCentury
}
