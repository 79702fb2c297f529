package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var degreeJSON bool

var degreeCmd = &cobra.Command{
	Use:   "degree",
	Short: "Print the sun's orbital degree",
	Long: `Prints the sun's apparent geocentric ecliptic longitude in degrees,
0 at the march equinox and 90 at the june solstice.`,
	Args: cobra.NoArgs,
	RunE: runDegree,
}

func init() {
	addTimeFlags(degreeCmd)
	degreeCmd.Flags().BoolVar(&degreeJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(degreeCmd)
}

func runDegree(cmd *cobra.Command, args []string) error {
	calc, err := calculator()
	if err != nil {
		return err
	}

	timestamp, err := timestampFlag(cmd)
	if err != nil {
		return err
	}

	deg, err := calc.OrbitalDegree(timestamp)
	if err != nil {
		return fmt.Errorf("orbital degree: %w", err)
	}

	if degreeJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"timestamp":      timestamp,
			"orbital_degree": deg,
			"ephemeris":      calc.Ephemeris().Name(),
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", deg)
	return nil
}
