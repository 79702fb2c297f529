package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/subtlepseudonym/heliocore"
	"github.com/subtlepseudonym/heliocore/api"
	"github.com/subtlepseudonym/heliocore/config"
	"github.com/subtlepseudonym/heliocore/device"
	"github.com/subtlepseudonym/heliocore/ephemeris"
	"github.com/subtlepseudonym/heliocore/lamplighter"
	"github.com/subtlepseudonym/heliocore/publish"
)

const (
	defaultConfigFile = "secrets/heliocore.yaml"
	shutdownTimeout   = 10 * time.Second
)

var serveConfig string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Schedule lights and serve the HTTP API",
	Long: `Connects to the configured devices, schedules their jobs around the
sun, and serves solar angles and device controls over HTTP.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", defaultConfigFile, "path to YAML or TOML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// manually set local timezone for docker container
	if tz := os.Getenv("TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("load tz location: %w", err)
		}
		time.Local = loc
	}

	cfg, err := config.Open(serveConfig)
	if err != nil {
		return err
	}

	err = cfg.Validate()
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	eph, err := ephemeris.ByName(cfg.Ephemeris)
	if err != nil {
		return err
	}
	calc := heliocore.New(eph)

	lamps := setup(cfg, calc)

	var pub *publish.Publisher
	if cfg.MQTT.Broker != "" {
		pub, err = schedulePublisher(lamps, cfg, calc)
		if err != nil {
			log.Printf("ERR: mqtt: %s", err)
		}
	}

	srv := api.NewServer(cfg.Listen, calc, cfg.Location, lamps.Devices)
	srv.SetRateLimit(cfg.RateLimit)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lamps.Start()
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err = <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Printf("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("ERR: shutdown server: %s", err)
	}
	err = lamps.Stop(shutdownCtx)
	if pub != nil {
		pub.Close()
	}
	return err
}

// setup connects to each configured device and schedules the jobs of
// those that respond. Failures are logged and skipped so that one
// unreachable bulb does not take down the rest.
func setup(cfg *config.Config, calc *heliocore.Calculator) *lamplighter.Lamplighter {
	lamps := lamplighter.New(cfg.Location, calc, time.Local)

	for label, dev := range cfg.Devices {
		d, err := device.Connect(label, device.Type(dev.Type), dev.Host, dev.MAC)
		if err != nil {
			log.Printf("ERR: connect device: %s", err)
			continue
		}
		lamps.AddDevice(d)
		log.Printf("registered device: %q %s", d.Label(), d)
	}

	for _, job := range cfg.Jobs {
		if _, ok := lamps.Devices[job.Device]; !ok {
			log.Printf("ERR: %s: device not connected, skipping %q", job.Device, job.Schedule)
			continue
		}

		transition, err := job.TransitionDuration()
		if err != nil {
			log.Printf("ERR: parse job transition: %s", err)
			continue
		}

		track, err := lamplighter.ParseTrack(job.Track)
		if err != nil {
			log.Printf("ERR: parse job track: %s", err)
			continue
		}

		next, err := lamps.Schedule(job.Schedule, job.Device, job.Color(), transition, track)
		if err != nil {
			log.Printf("ERR: schedule job: %s", err)
			continue
		}

		log.Printf("job: %s (%s): %s", next.Local().Format(time.RFC3339), humanize.Time(next), job.Device)
	}

	return lamps
}

// schedulePublisher connects to the configured broker and publishes the
// sun's state on every interval
func schedulePublisher(lamps *lamplighter.Lamplighter, cfg *config.Config, calc *heliocore.Calculator) (*publish.Publisher, error) {
	interval, err := cfg.MQTT.IntervalDuration()
	if err != nil {
		return nil, fmt.Errorf("parse interval: %w", err)
	}

	pub, err := publish.Dial(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic, cfg.Location, calc)
	if err != nil {
		return nil, err
	}

	lamps.Every(interval, pub)
	log.Printf("publishing to %s every %s", cfg.MQTT.Topic, interval)
	return pub, nil
}
