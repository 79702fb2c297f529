package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/heliocore/config"
	"github.com/subtlepseudonym/heliocore/device"
	"github.com/subtlepseudonym/heliocore/ephemeris"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestDegreeCmd(t *testing.T) {
	out, err := execute(t, "degree", "--ephemeris", "classical", "--timestamp", "1718539200000")
	require.NoError(t, err)

	deg, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	require.NoError(t, err)
	assert.InDelta(t, 85.83, deg, 0.05)
}

func TestDegreeCmd_JSON(t *testing.T) {
	out, err := execute(t, "degree", "--ephemeris", "meeus", "--timestamp", "1710936000000", "--json")
	require.NoError(t, err)
	t.Cleanup(func() { degreeJSON = false })

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, ephemeris.NameMeeus, res["ephemeris"])
	assert.InDelta(t, 0.37, res["orbital_degree"], 0.05)
}

func TestDegreeCmd_Errors(t *testing.T) {
	_, err := execute(t, "degree", "--ephemeris", "vsop87", "--timestamp", "0")
	assert.ErrorIs(t, err, ephemeris.ErrUnknownEphemeris)

	_, err = execute(t, "degree", "--ephemeris", "classical", "--timestamp", "9223372036854775807")
	assert.Error(t, err)
}

func TestZenithCmd(t *testing.T) {
	out, err := execute(t, "zenith", "--ephemeris", "classical", "--lat", "0", "--lon", "0", "--timestamp", "1710936420000")
	require.NoError(t, err)

	zenith, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	require.NoError(t, err)
	assert.Less(t, zenith, 0.5)

	_, err = execute(t, "zenith", "--ephemeris", "classical", "--lat", "100", "--lon", "0", "--timestamp", "0")
	assert.Error(t, err)
}

func TestEventsCmd(t *testing.T) {
	out, err := execute(t, "events", "--ephemeris", "classical", "--lat", "40.7128", "--lon", "-74.006", "--date", "2024-06-20")
	require.NoError(t, err)
	assert.Contains(t, out, "sunrise:")
	assert.Contains(t, out, "daylight: 15h")

	out, err = execute(t, "events", "--ephemeris", "classical", "--lat", "89", "--lon", "0", "--date", "2024-06-20")
	require.NoError(t, err)
	assert.Contains(t, out, "polar day")

	_, err = execute(t, "events", "--ephemeris", "classical", "--lat", "40", "--lon", "0", "--date", "june")
	assert.Error(t, err)
}

func TestTimestampFlag(t *testing.T) {
	newCmd := func(args ...string) *cobra.Command {
		cmd := &cobra.Command{}
		addTimeFlags(cmd)
		require.NoError(t, cmd.ParseFlags(args))
		return cmd
	}

	timestamp, err := timestampFlag(newCmd("--timestamp=-1000"))
	require.NoError(t, err)
	assert.Equal(t, int64(-1000), timestamp)

	timestamp, err = timestampFlag(newCmd("--time", "2024-06-16T12:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, int64(1718539200000), timestamp)

	timestamp, err = timestampFlag(newCmd("--time", "2024-06-16T08:00:00-04:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1718539200000), timestamp)

	before := time.Now().UnixMilli()
	timestamp, err = timestampFlag(newCmd())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, timestamp, before)

	_, err = timestampFlag(newCmd("--time", "yesterday"))
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "heliocore.yaml")
	err := os.WriteFile(filename, []byte(`
location:
  latitude: 40.7128
  longitude: -74.006
devices:
  desk:
    type: virtual
jobs:
  - schedule: "@sunset"
    device: desk
    brightness: 100
  - schedule: "@noon 1h"
    device: desk
    brightness: 50
    track: shade
`), 0o644)
	require.NoError(t, err)

	cfg, err := config.Open(filename)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	ephemerisName = ephemeris.NameClassical
	calc, err := calculator()
	require.NoError(t, err)

	lamps := setup(cfg, calc)
	require.Contains(t, lamps.Devices, "desk")
	assert.IsType(t, &device.Virtual{}, lamps.Devices["desk"])
	assert.Len(t, lamps.Entries(), 2)
}
