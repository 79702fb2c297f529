// Package lamplighter schedules light transitions at solar events and
// scales light brightness by the sun's position.
package lamplighter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/subtlepseudonym/heliocore"
	"github.com/subtlepseudonym/heliocore/device"
	"github.com/subtlepseudonym/heliocore/metrics"
)

var ErrUnknownTrack = errors.New("unknown track")

// Track selects how a Job's brightness follows the sun
type Track string

const (
	TrackNone  Track = ""
	TrackSun   Track = "sun"   // brighter as the sun climbs
	TrackShade Track = "shade" // dimmer as the sun climbs
)

func ParseTrack(s string) (Track, error) {
	switch track := Track(strings.ToLower(strings.TrimSpace(s))); track {
	case TrackNone, TrackSun, TrackShade:
		return track, nil
	default:
		return TrackNone, fmt.Errorf("%w: %q", ErrUnknownTrack, s)
	}
}

// Job transitions a device to a color. Tracking jobs scale the color's
// brightness by the light potential of the sun when the job runs.
//
// This implements robfig/cron.Job
type Job struct {
	Device     device.Device
	Color      *device.Color
	Transition time.Duration
	Track      Track
	Location   heliocore.Location
	Calculator *heliocore.Calculator

	now func() time.Time
}

// Target returns the color the job would send at a given time
func (j Job) Target(at time.Time) (*device.Color, error) {
	switch j.Track {
	case TrackNone:
		return j.Color, nil
	case TrackSun, TrackShade:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrack, j.Track)
	}

	calc := j.Calculator
	if calc == nil {
		calc = heliocore.Default
	}

	zenith, err := calc.ZenithAngleAt(j.Location, at)
	metrics.Computations.WithLabelValues("zenith_angle", metrics.Result(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("zenith angle: %w", err)
	}

	potential := heliocore.LightPotential(zenith)
	if j.Track == TrackShade {
		potential = 1 - potential
	}

	return j.Color.Scale(potential), nil
}

func (j Job) Run() {
	now := time.Now
	if j.now != nil {
		now = j.now
	}

	label := j.Device.Label()
	color, err := j.Target(now())
	if err != nil {
		log.Printf("ERR: %s: target color: %s", label, err)
		metrics.Transitions.WithLabelValues(label, metrics.Result(err)).Inc()
		return
	}

	log.Printf("%s: transitioning to %.2f%% brightness over %s", label, color.BrightnessPercent(), j.Transition)
	err = j.Device.Transition(color, j.Transition)
	metrics.Transitions.WithLabelValues(label, metrics.Result(err)).Inc()
	if err != nil {
		log.Printf("ERR: transition device: %s", err)
		return
	}

	metrics.Brightness.WithLabelValues(label).Set(color.BrightnessPercent())
}

// Lamplighter is a set of devices and the cron jobs that drive them
type Lamplighter struct {
	Devices map[string]device.Device

	location heliocore.Location
	calc     *heliocore.Calculator
	cron     *cron.Cron
}

// New returns a Lamplighter whose solar schedules and tracking jobs use
// location. Cron specs are evaluated in tz.
func New(location heliocore.Location, calc *heliocore.Calculator, tz *time.Location) *Lamplighter {
	if calc == nil {
		calc = heliocore.Default
	}
	if tz == nil {
		tz = time.Local
	}

	return &Lamplighter{
		Devices:  make(map[string]device.Device),
		location: location,
		calc:     calc,
		cron: cron.New(
			cron.WithLocation(tz),
			cron.WithChain(cron.Recover(cron.DefaultLogger)),
		),
	}
}

// AddDevice registers dev under its label
func (l *Lamplighter) AddDevice(dev device.Device) {
	l.Devices[dev.Label()] = dev
}

// Schedule parses spec and schedules a transition of the named device.
// It returns the first time the job will run.
func (l *Lamplighter) Schedule(spec, label string, color *device.Color, transition time.Duration, track Track) (time.Time, error) {
	dev, ok := l.Devices[label]
	if !ok {
		return time.Time{}, fmt.Errorf("schedule references missing device %q", label)
	}

	schedule, err := ParseSchedule(spec, l.location)
	if err != nil {
		return time.Time{}, err
	}

	var job cron.Job = Job{
		Device:     dev,
		Color:      color,
		Transition: transition,
		Track:      track,
		Location:   l.location,
		Calculator: l.calc,
	}

	if solar, ok := schedule.(SolarSchedule); ok {
		solar.Calculator = l.calc
		schedule = solar
		job = solarJob{schedule: solar, job: job, now: time.Now}
	}
	l.cron.Schedule(schedule, job)

	return schedule.Next(time.Now()), nil
}

// Every runs job at a fixed interval alongside the device jobs
func (l *Lamplighter) Every(interval time.Duration, job cron.Job) cron.EntryID {
	return l.cron.Schedule(cron.Every(interval), job)
}

// Entries returns the scheduled jobs, ordered by next run time once the
// Lamplighter is started
func (l *Lamplighter) Entries() []cron.Entry {
	return l.cron.Entries()
}

func (l *Lamplighter) Start() {
	l.cron.Start()
}

// Stop stops scheduling new jobs and waits for running jobs to finish
// or for ctx to be done
func (l *Lamplighter) Stop(ctx context.Context) error {
	done := l.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
