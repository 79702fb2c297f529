package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/subtlepseudonym/heliocore"
)

const dateFormat = "2006-01-02"

var (
	eventsLat  float64
	eventsLon  float64
	eventsDate string
	eventsJSON bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print sunrise, solar noon, and sunset for a date",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().Float64Var(&eventsLat, "lat", 0, "observer latitude in degrees, north positive")
	eventsCmd.Flags().Float64Var(&eventsLon, "lon", 0, "observer longitude in degrees, east positive")
	eventsCmd.Flags().StringVar(&eventsDate, "date", "", "date as YYYY-MM-DD (default today)")
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "output as JSON")
	eventsCmd.MarkFlagRequired("lat")
	eventsCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	date := time.Now()
	if eventsDate != "" {
		parsed, err := time.Parse(dateFormat, eventsDate)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
		date = parsed
	}

	calc, err := calculator()
	if err != nil {
		return err
	}

	loc := heliocore.Location{Latitude: eventsLat, Longitude: eventsLon}
	events, err := calc.SolarEvents(loc, date)
	if errors.Is(err, heliocore.ErrNoSunriseSunset) {
		state := "polar night"
		if events.PolarDay {
			state = "polar day"
		}

		if eventsJSON {
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"date":      events.Date.Format(dateFormat),
				"noon":      events.Noon,
				"polar_day": events.PolarDay,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, noon %s (%s)\n", events.Date.Format(dateFormat), state, events.Noon.Local().Format(time.RFC3339), humanize.Time(events.Noon))
		return nil
	} else if err != nil {
		return fmt.Errorf("solar events: %w", err)
	}

	if eventsJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"date":     events.Date.Format(dateFormat),
			"sunrise":  events.Sunrise,
			"noon":     events.Noon,
			"sunset":   events.Sunset,
			"daylight": events.Daylight.String(),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sunrise:  %s (%s)\n", events.Sunrise.Local().Format(time.RFC3339), humanize.Time(events.Sunrise))
	fmt.Fprintf(out, "noon:     %s (%s)\n", events.Noon.Local().Format(time.RFC3339), humanize.Time(events.Noon))
	fmt.Fprintf(out, "sunset:   %s (%s)\n", events.Sunset.Local().Format(time.RFC3339), humanize.Time(events.Sunset))
	fmt.Fprintf(out, "daylight: %s\n", events.Daylight.Round(time.Second))
	return nil
}
