package lamplighter

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/subtlepseudonym/heliocore"
)

const (
	// searchDays bounds how far ahead a SolarSchedule looks for its next
	// event, which matters during polar day and night
	searchDays = 7

	// fireWindow is how far from an event a run may start and still
	// count as that event rather than a recheck
	fireWindow = time.Minute
)

type Event string

const (
	EventSunrise Event = "sunrise"
	EventSunset  Event = "sunset"
	EventNoon    Event = "noon"
)

var ErrInvalidSchedule = errors.New("invalid schedule")

// SolarSchedule fires once per day at a solar event plus an offset
//
// This implements robfig/cron.Schedule
type SolarSchedule struct {
	Location heliocore.Location `json:"location"`
	Event    Event              `json:"event"`
	Offset   time.Duration      `json:"offset"`

	// Calculator decides polar day and night, heliocore.Default if nil
	Calculator *heliocore.Calculator `json:"-"`
}

// At returns the schedule's time on the calendar date of date
func (s SolarSchedule) At(date time.Time) (time.Time, error) {
	calc := s.Calculator
	if calc == nil {
		calc = heliocore.Default
	}

	events, err := calc.SolarEvents(s.Location, date)

	// noon is defined during polar day and night
	if err != nil && !(s.Event == EventNoon && errors.Is(err, heliocore.ErrNoSunriseSunset)) {
		return time.Time{}, err
	}

	var at time.Time
	switch s.Event {
	case EventSunrise:
		at = events.Sunrise
	case EventSunset:
		at = events.Sunset
	case EventNoon:
		at = events.Noon
	default:
		return time.Time{}, fmt.Errorf("%w: unknown event %q", ErrInvalidSchedule, s.Event)
	}

	return at.Add(s.Offset), nil
}

// Next returns the first time after now that the schedule fires.
//
// When the event does not happen within searchDays, as in polar day or
// night, it returns a recheck time searchDays out instead. cron drops
// entries whose next time is zero, so the schedule must always return a
// time for the job to survive until the event returns. Fires
// distinguishes rechecks from events. An invalid schedule returns the
// zero time.
func (s SolarSchedule) Next(now time.Time) time.Time {
	// events on the previous date can still be ahead of now when now's
	// date is ahead of the UTC date
	for i := -1; i <= searchDays; i++ {
		at, err := s.At(now.AddDate(0, 0, i))
		if errors.Is(err, heliocore.ErrNoSunriseSunset) {
			continue
		} else if err != nil {
			log.Printf("ERR: %s schedule: %s", s.Event, err)
			return time.Time{}
		}

		if at.After(now) {
			return at.In(now.Location())
		}
	}

	recheck := now.AddDate(0, 0, searchDays)
	log.Printf("no %s within %d days of %s, checking again at %s", s.Event, searchDays, now.Format(time.RFC3339), recheck.Format(time.RFC3339))
	return recheck
}

// Fires reports whether t falls on one of the schedule's events
func (s SolarSchedule) Fires(t time.Time) bool {
	for i := -1; i <= 1; i++ {
		at, err := s.At(t.AddDate(0, 0, i))
		if err != nil {
			continue
		}

		d := t.Sub(at)
		if d > -fireWindow && d < fireWindow {
			return true
		}
	}
	return false
}

// solarJob runs job only when cron wakes it for an actual event, not
// for one of schedule's rechecks
type solarJob struct {
	schedule SolarSchedule
	job      cron.Job
	now      func() time.Time
}

func (j solarJob) Run() {
	now := j.now()
	if !j.schedule.Fires(now) {
		log.Printf("%s: no event at %s, skipping", j.schedule, now.Format(time.RFC3339))
		return
	}
	j.job.Run()
}

func (s SolarSchedule) String() string {
	if s.Offset == 0 {
		return "@" + string(s.Event)
	}
	return fmt.Sprintf("@%s %s", s.Event, s.Offset)
}

// ParseSchedule parses "@sunrise", "@sunset", or "@noon" followed by an
// optional offset such as "-30m" into a SolarSchedule at loc. Anything
// else is parsed as a standard cron spec.
func ParseSchedule(spec string, loc heliocore.Location) (cron.Schedule, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty spec", ErrInvalidSchedule)
	}

	event := Event(strings.TrimPrefix(fields[0], "@"))
	switch event {
	case EventSunrise, EventSunset, EventNoon:
	default:
		schedule, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSchedule, err)
		}
		return schedule, nil
	}

	if !strings.HasPrefix(fields[0], "@") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSchedule, spec)
	}
	if len(fields) > 2 {
		return nil, fmt.Errorf("%w: unexpected fields after offset in %q", ErrInvalidSchedule, spec)
	}

	err := loc.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSchedule, err)
	}

	var offset time.Duration
	if len(fields) == 2 {
		offset, err = time.ParseDuration(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s offset: %s", ErrInvalidSchedule, event, err)
		}
	}

	return SolarSchedule{
		Location: loc,
		Event:    event,
		Offset:   offset,
	}, nil
}
