package lamplighter

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/heliocore"
)

var newYork = heliocore.Location{Latitude: 40.7128, Longitude: -74.006}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		spec     string
		expected SolarSchedule
	}{
		{"@sunset", SolarSchedule{Location: newYork, Event: EventSunset}},
		{"@sunrise 1h", SolarSchedule{Location: newYork, Event: EventSunrise, Offset: time.Hour}},
		{" @noon   -90m ", SolarSchedule{Location: newYork, Event: EventNoon, Offset: -90 * time.Minute}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			schedule, err := ParseSchedule(tt.spec, newYork)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, schedule)
		})
	}
}

func TestParseSchedule_Cron(t *testing.T) {
	for _, spec := range []string{"0 7 * * *", "@daily", "@every 1h30m"} {
		schedule, err := ParseSchedule(spec, heliocore.Location{})
		require.NoError(t, err, spec)
		_, solar := schedule.(SolarSchedule)
		assert.False(t, solar, spec)
	}

	schedule, err := ParseSchedule("30 6 * * *", newYork)
	require.NoError(t, err)
	assert.IsType(t, &cron.SpecSchedule{}, schedule)
}

func TestParseSchedule_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec string
		loc  heliocore.Location
	}{
		{"empty", "  ", newYork},
		{"bad offset", "@sunset soon", newYork},
		{"extra fields", "@sunset 1h 2h", newYork},
		{"missing prefix", "sunset", newYork},
		{"unknown event", "@moonrise", newYork},
		{"bad cron", "61 * * * *", newYork},
		{"bad location", "@sunrise", heliocore.Location{Latitude: 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchedule(tt.spec, tt.loc)
			assert.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}

func TestSolarSchedule_Next(t *testing.T) {
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)
	schedule := SolarSchedule{Location: newYork, Event: EventSunset}

	expected, err := schedule.At(now)
	require.NoError(t, err)

	next := schedule.Next(now)
	require.False(t, next.IsZero())
	assert.True(t, next.After(now))
	assert.True(t, next.Equal(expected))

	// the next sunset is about a day later
	following := schedule.Next(next)
	assert.InDelta(t, 24*time.Hour, following.Sub(next), float64(2*time.Minute))
}

func TestSolarSchedule_NextLocal(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, time.January, 10, 20, 0, 0, 0, est)
	schedule := SolarSchedule{Location: newYork, Event: EventSunrise, Offset: -30 * time.Minute}

	next := schedule.Next(now)
	require.False(t, next.IsZero())
	assert.Equal(t, est, next.Location())

	// sunrise in new york on january 11th is a little after 7:00 EST
	assert.Equal(t, 11, next.Day())
	assert.InDelta(t, 6*60+50, next.Hour()*60+next.Minute(), 15)
}

func TestSolarSchedule_Offset(t *testing.T) {
	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	plain, err := SolarSchedule{Location: newYork, Event: EventSunrise}.At(date)
	require.NoError(t, err)
	offset, err := SolarSchedule{Location: newYork, Event: EventSunrise, Offset: 45 * time.Minute}.At(date)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, offset.Sub(plain))
}

func TestSolarSchedule_Polar(t *testing.T) {
	arctic := heliocore.Location{Latitude: 89}
	now := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)

	sunset := SolarSchedule{Location: arctic, Event: EventSunset}
	next := sunset.Next(now)
	require.False(t, next.IsZero())
	assert.Equal(t, now.AddDate(0, 0, searchDays), next)
	assert.False(t, sunset.Fires(next))

	next = SolarSchedule{Location: arctic, Event: EventNoon}.Next(now)
	require.False(t, next.IsZero())
	assert.True(t, next.After(now))
	assert.Less(t, next.Sub(now), 24*time.Hour)
}

func TestSolarSchedule_PolarNightEnds(t *testing.T) {
	tromso := heliocore.Location{Latitude: 69.65, Longitude: 18.96}
	sunset := SolarSchedule{Location: tromso, Event: EventSunset}

	// follow cron's rechecks through the polar night until the sun sets
	// again in January
	next := time.Date(2024, time.December, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12 && !sunset.Fires(next); i++ {
		prev := next
		next = sunset.Next(prev)
		require.True(t, next.After(prev))
	}

	require.True(t, sunset.Fires(next))
	assert.Equal(t, 2025, next.Year())
	assert.Equal(t, time.January, next.Month())
}

type counter struct {
	runs int
}

func (c *counter) Run() {
	c.runs++
}

func TestSolarJob(t *testing.T) {
	arctic := heliocore.Location{Latitude: 89}
	now := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)

	sunset := SolarSchedule{Location: arctic, Event: EventSunset}
	c := &counter{}
	job := solarJob{schedule: sunset, job: c, now: func() time.Time { return sunset.Next(now) }}
	job.Run()
	assert.Zero(t, c.runs)

	sunset = SolarSchedule{Location: newYork, Event: EventSunset}
	at, err := sunset.At(now)
	require.NoError(t, err)
	job = solarJob{schedule: sunset, job: c, now: func() time.Time { return at.Add(time.Second) }}
	job.Run()
	assert.Equal(t, 1, c.runs)
}

func TestSolarSchedule_UnknownEvent(t *testing.T) {
	_, err := SolarSchedule{Location: newYork, Event: "dusk"}.At(time.Now())
	assert.ErrorIs(t, err, ErrInvalidSchedule)
	assert.True(t, SolarSchedule{Location: newYork, Event: "dusk"}.Next(time.Now()).IsZero())
}

func TestSolarSchedule_String(t *testing.T) {
	assert.Equal(t, "@sunset", SolarSchedule{Event: EventSunset}.String())
	assert.Equal(t, "@sunrise -30m0s", SolarSchedule{Event: EventSunrise, Offset: -30 * time.Minute}.String())
}
