package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subtlepseudonym/heliocore"
)

var (
	zenithLat  float64
	zenithLon  float64
	zenithJSON bool
)

var zenithCmd = &cobra.Command{
	Use:   "zenith",
	Short: "Print the sun's zenith angle for an observer",
	Long: `Prints the angle between the observer's vertical and the sun in
degrees. Values above 90 mean the sun is below the horizon.`,
	Args: cobra.NoArgs,
	RunE: runZenith,
}

func init() {
	addTimeFlags(zenithCmd)
	zenithCmd.Flags().Float64Var(&zenithLat, "lat", 0, "observer latitude in degrees, north positive")
	zenithCmd.Flags().Float64Var(&zenithLon, "lon", 0, "observer longitude in degrees, east positive")
	zenithCmd.Flags().BoolVar(&zenithJSON, "json", false, "output as JSON")
	zenithCmd.MarkFlagRequired("lat")
	zenithCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(zenithCmd)
}

func runZenith(cmd *cobra.Command, args []string) error {
	calc, err := calculator()
	if err != nil {
		return err
	}

	timestamp, err := timestampFlag(cmd)
	if err != nil {
		return err
	}

	zenith, err := calc.ZenithAngle(zenithLat, zenithLon, timestamp)
	if err != nil {
		return fmt.Errorf("zenith angle: %w", err)
	}

	if zenithJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"timestamp":       timestamp,
			"latitude":        zenithLat,
			"longitude":       zenithLon,
			"zenith_angle":    zenith,
			"altitude":        90 - zenith,
			"light_potential": heliocore.LightPotential(zenith),
			"ephemeris":       calc.Ephemeris().Name(),
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", zenith)
	return nil
}
