package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/subtlepseudonym/heliocore"
	"github.com/subtlepseudonym/heliocore/device"
	"github.com/subtlepseudonym/heliocore/ephemeris"
	"github.com/subtlepseudonym/heliocore/lamplighter"
	"github.com/subtlepseudonym/heliocore/publish"
)

const (
	DefaultListen = ":9000"
	DefaultKelvin = 3500
)

type Device struct {
	Type string `yaml:"type" toml:"type"` // defaults to lifx
	Host string `yaml:"host" toml:"host"`
	MAC  string `yaml:"mac" toml:"mac"`
}

// MQTT configures periodic publishing of the sun's state. Publishing is
// disabled when Broker is empty.
type MQTT struct {
	Broker   string `yaml:"broker" toml:"broker"` // e.g. tcp://localhost:1883
	ClientID string `yaml:"client_id" toml:"client_id"`
	Topic    string `yaml:"topic" toml:"topic"`
	Interval string `yaml:"interval" toml:"interval"`
}

func (m MQTT) IntervalDuration() (time.Duration, error) {
	return time.ParseDuration(m.Interval)
}

type Config struct {
	Listen    string             `yaml:"listen" toml:"listen"`
	RateLimit float64            `yaml:"rate_limit" toml:"rate_limit"` // requests per second, 0 is unlimited
	Ephemeris string             `yaml:"ephemeris" toml:"ephemeris"`
	Location  heliocore.Location `yaml:"location" toml:"location"`
	Devices   map[string]Device  `yaml:"devices" toml:"devices"`
	Jobs      []Job              `yaml:"jobs" toml:"jobs"`
	MQTT      MQTT               `yaml:"mqtt" toml:"mqtt"`
}

// Job defines when to run, on which device, what the desired final
// state is, and how long to take getting there.
//
// Color state is defined using Hue, Saturation, and Brightness. This
// is referred to as HSB (or HSL) color.
// https://en.wikipedia.org/wiki/HSL_and_HSV
//
// Track scales brightness by the sun's position when the job runs, see
// lamplighter.Track.
type Job struct {
	Schedule string `yaml:"schedule" toml:"schedule"`
	Device   string `yaml:"device" toml:"device"`

	Hue        float64 `yaml:"hue" toml:"hue"`               // 0-360
	Saturation float64 `yaml:"saturation" toml:"saturation"` // 0-100
	Brightness float64 `yaml:"brightness" toml:"brightness"` // 0-100
	Kelvin     int     `yaml:"kelvin" toml:"kelvin"`         // 1500-9000

	Transition string `yaml:"transition" toml:"transition"`
	Track      string `yaml:"track" toml:"track"`
}

func (j Job) Color() *device.Color {
	return device.NewColor(j.Hue, j.Saturation, j.Brightness, j.Kelvin)
}

// TransitionDuration parses Transition, which may be empty
func (j Job) TransitionDuration() (time.Duration, error) {
	if j.Transition == "" {
		return 0, nil
	}
	return time.ParseDuration(j.Transition)
}

// Open reads a config file, decoding it as TOML when the file name ends
// in .toml and as YAML otherwise
func Open(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	parse := Parse
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		parse = ParseTOML
	}

	config, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	return config, nil
}

// Parse decodes a YAML config and fills in defaults
func Parse(data []byte) (*Config, error) {
	var config Config
	err := yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	config.setDefaults()
	return &config, nil
}

// ParseTOML decodes a TOML config and fills in defaults
func ParseTOML(data []byte) (*Config, error) {
	var config Config
	err := toml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	config.setDefaults()
	return &config, nil
}

func (c *Config) setDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Ephemeris == "" {
		c.Ephemeris = ephemeris.NameClassical
	}
	for label, dev := range c.Devices {
		if dev.Type == "" {
			dev.Type = string(device.TypeLifx)
		}
		dev.Type = strings.ToLower(dev.Type)
		c.Devices[label] = dev
	}
	for i := range c.Jobs {
		if c.Jobs[i].Kelvin == 0 {
			c.Jobs[i].Kelvin = DefaultKelvin
		}
	}

	if c.MQTT.Broker != "" {
		if c.MQTT.ClientID == "" {
			c.MQTT.ClientID = "heliocore"
		}
		if c.MQTT.Topic == "" {
			c.MQTT.Topic = publish.DefaultTopic
		}
		if c.MQTT.Interval == "" {
			c.MQTT.Interval = publish.DefaultInterval.String()
		}
	}
}

func (c *Config) Validate() error {
	err := c.Location.Validate()
	if err != nil {
		return fmt.Errorf("location: %w", err)
	}

	_, err = ephemeris.ByName(c.Ephemeris)
	if err != nil {
		return err
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative: %v", c.RateLimit)
	}

	if c.MQTT.Broker != "" {
		interval, err := c.MQTT.IntervalDuration()
		if err != nil {
			return fmt.Errorf("mqtt: parse interval: %w", err)
		}
		if interval < time.Second {
			return fmt.Errorf("mqtt: interval %s is shorter than a second", interval)
		}
	}

	for label, dev := range c.Devices {
		switch device.Type(dev.Type) {
		case device.TypeLifx:
			if dev.Host == "" || dev.MAC == "" {
				return fmt.Errorf("device %q: lifx devices require host and mac", label)
			}
		case device.TypeVirtual:
		default:
			return fmt.Errorf("device %q: %w: %s", label, device.ErrUnknownType, dev.Type)
		}
	}

	for i, job := range c.Jobs {
		if _, ok := c.Devices[job.Device]; !ok {
			return fmt.Errorf("schedule references missing device %q", job.Device)
		}

		_, err = lamplighter.ParseSchedule(job.Schedule, c.Location)
		if err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}

		_, err = job.TransitionDuration()
		if err != nil {
			return fmt.Errorf("job %d: parse transition: %w", i, err)
		}

		_, err = lamplighter.ParseTrack(job.Track)
		if err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
	}

	return nil
}
