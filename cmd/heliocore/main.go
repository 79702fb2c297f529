package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/subtlepseudonym/heliocore"
	"github.com/subtlepseudonym/heliocore/ephemeris"
)

var ephemerisName string

var rootCmd = &cobra.Command{
	Use:   "heliocore",
	Short: "Calculate the sun's orbital degree and zenith angle",
	Long: `heliocore calculates the sun's apparent ecliptic longitude and its
zenith angle for an observer, and schedules lights around the sun.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ephemerisName, "ephemeris", ephemeris.NameClassical, fmt.Sprintf("solar ephemeris, one of %v", ephemeris.Names()))
}

func calculator() (*heliocore.Calculator, error) {
	eph, err := ephemeris.ByName(ephemerisName)
	if err != nil {
		return nil, err
	}
	return heliocore.New(eph), nil
}

// addTimeFlags registers the flags read by timestampFlag
func addTimeFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("timestamp", 0, "unix timestamp in milliseconds (default now)")
	cmd.Flags().String("time", "", "RFC3339 time, used when --timestamp is not set")
}

// timestampFlag resolves --timestamp, then --time, then the current time
// into milliseconds since the unix epoch
func timestampFlag(cmd *cobra.Command) (int64, error) {
	if cmd.Flags().Changed("timestamp") {
		return cmd.Flags().GetInt64("timestamp")
	}

	value, err := cmd.Flags().GetString("time")
	if err != nil {
		return 0, err
	}
	if value == "" {
		return time.Now().UnixMilli(), nil
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return 0, fmt.Errorf("parse time: %w", err)
	}
	return t.UnixMilli(), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatalf("ERR: %s", err)
	}
}
