// Package publish sends the sun's current position to an MQTT broker so
// that home automation can react to it.
package publish

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/subtlepseudonym/heliocore"
	"github.com/subtlepseudonym/heliocore/metrics"
)

const (
	DefaultTopic    = "heliocore/sun"
	DefaultInterval = time.Minute

	publishTimeout = 5 * time.Second
	disconnectWait = 250 // ms
)

// State is the JSON payload published on each tick
type State struct {
	Timestamp      int64   `json:"timestamp"`
	OrbitalDegree  float64 `json:"orbital_degree"`
	ZenithAngle    float64 `json:"zenith_angle"`
	Altitude       float64 `json:"altitude"`
	LightPotential float64 `json:"light_potential"`
	Daylight       bool    `json:"daylight"`
}

// client is the subset of mqtt.Client used by Publisher
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Publisher publishes State for a location to a topic
//
// This implements robfig/cron.Job
type Publisher struct {
	client   client
	topic    string
	location heliocore.Location
	calc     *heliocore.Calculator
	now      func() time.Time
}

// Dial connects to broker, a URL such as tcp://localhost:1883, and
// returns a Publisher for topic
func Dial(broker, clientID, topic string, location heliocore.Location, calc *heliocore.Calculator) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("ERR: mqtt: connection lost: %s", err)
	})

	c := mqtt.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return nil, fmt.Errorf("connect %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", broker, err)
	}
	log.Printf("connected to mqtt broker at %s", broker)

	return New(c, topic, location, calc), nil
}

func New(c client, topic string, location heliocore.Location, calc *heliocore.Calculator) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	if calc == nil {
		calc = heliocore.Default
	}

	return &Publisher{
		client:   c,
		topic:    topic,
		location: location,
		calc:     calc,
		now:      time.Now,
	}
}

// State calculates the sun's state at t
func (p *Publisher) State(t time.Time) (State, error) {
	timestamp := t.UnixMilli()

	deg, err := p.calc.OrbitalDegree(timestamp)
	metrics.Computations.WithLabelValues("orbital_degree", metrics.Result(err)).Inc()
	if err != nil {
		return State{}, err
	}

	zenith, err := p.calc.ZenithAngle(p.location.Latitude, p.location.Longitude, timestamp)
	metrics.Computations.WithLabelValues("zenith_angle", metrics.Result(err)).Inc()
	if err != nil {
		return State{}, err
	}

	return State{
		Timestamp:      timestamp,
		OrbitalDegree:  deg,
		ZenithAngle:    zenith,
		Altitude:       90 - zenith,
		LightPotential: heliocore.LightPotential(zenith),
		Daylight:       zenith < 90,
	}, nil
}

// Publish sends the state at t as a retained message
func (p *Publisher) Publish(t time.Time) error {
	state, err := p.State(t)
	if err != nil {
		return fmt.Errorf("sun state: %w", err)
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	token := p.client.Publish(p.topic, 0, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s: timed out", p.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", p.topic, err)
	}

	return nil
}

func (p *Publisher) Run() {
	err := p.Publish(p.now())
	if err != nil {
		log.Printf("ERR: mqtt: %s", err)
	}
}

// Close disconnects from the broker, waiting briefly for in-flight
// messages
func (p *Publisher) Close() {
	p.client.Disconnect(disconnectWait)
}
