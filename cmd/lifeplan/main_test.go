package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lifeplan/cashflow-simulator/internal/config"
	"github.com/lifeplan/cashflow-simulator/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleInput = "../../internal/config/testdata/example_input.yaml"

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(envFormat, "")
	t.Setenv(envLogLevel, "")

	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSimulateConsole(t *testing.T) {
	stdout, _, err := execute(t, "simulate", "-i", exampleInput, "--start-year", "2025")
	require.NoError(t, err)
	assert.Contains(t, stdout, "HOUSEHOLD CASH FLOW PROJECTION")
	assert.Contains(t, stdout, "seed 42")
}

func TestSimulateCSVOverrides(t *testing.T) {
	stdout, _, err := execute(t, "simulate", "-i", exampleInput,
		"--scenario", "fixed", "--start-year", "2030", "-f", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 62)
	assert.True(t, strings.HasPrefix(lines[0], "Age,Year,Income"))
	assert.True(t, strings.HasPrefix(lines[1], "30,2030,"))
	assert.True(t, strings.HasPrefix(lines[61], "90,2090,"))
	// fixed scenario realizes the expected return every year
	assert.Contains(t, lines[1], ",0.040000,")
}

func TestSimulateJSONToFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "run.json")

	stdout, _, err := execute(t, "simulate", "-i", exampleInput, "-f", "json", "--seed", "99", "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var decoded struct {
		Run struct {
			Seed    int64             `json:"seed"`
			Records []json.RawMessage `json:"records"`
		} `json:"run"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(99), decoded.Run.Seed)
	assert.Len(t, decoded.Run.Records, 61)
}

func TestSimulateSave(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "simulate", "-i", exampleInput, "-f", "detailed-csv", "--save", dir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "lifeplan_report_*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSimulateErrors(t *testing.T) {
	_, _, err := execute(t, "simulate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input")

	_, _, err = execute(t, "simulate", "-i", exampleInput, "-f", "pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	_, _, err = execute(t, "simulate", "-i", exampleInput, "--scenario", "lottery")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown interest scenario")

	_, _, err = execute(t, "simulate", "-i", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestEnvFileDefaults(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "lifeplan.env")
	require.NoError(t, os.WriteFile(envFile, []byte("LIFEPLAN_FORMAT=console-lite\nLIFEPLAN_LOG_LEVEL=debug\n"), 0o600))

	stdout, stderr, err := execute(t, "--env-file", envFile, "simulate", "-i", exampleInput)
	require.NoError(t, err)
	assert.Contains(t, stdout, "HOUSEHOLD PROJECTION SUMMARY")
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "component=engine")

	// the flag wins over the env file
	stdout, _, err = execute(t, "--env-file", envFile, "--log-level", "error", "simulate", "-i", exampleInput, "-f", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Age,Year,Income"))

	_, _, err = execute(t, "--env-file", filepath.Join(t.TempDir(), "missing.env"), "validate", "-i", exampleInput)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read env file")
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "--log-level", "chatty", "validate", "-i", exampleInput)
	require.Error(t, err)
}

func TestMonteCarloCommand(t *testing.T) {
	csvDir := t.TempDir()
	stdout, _, err := execute(t, "montecarlo", "-i", exampleInput, "--runs", "6", "--concurrency", "3", "-f", "json", "--csv-dir", csvDir)
	require.NoError(t, err)

	var decoded struct {
		MonteCarlo struct {
			NumSimulations int               `json:"num_simulations"`
			BaseSeed       int64             `json:"base_seed"`
			Simulations    []json.RawMessage `json:"simulations"`
		} `json:"monte_carlo"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, 6, decoded.MonteCarlo.NumSimulations)
	assert.Len(t, decoded.MonteCarlo.Simulations, 6)

	entries, err := os.ReadDir(csvDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	_, _, err = execute(t, "mc", "-i", exampleInput, "--runs", "0")
	require.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	stdout, _, err := execute(t, "validate", "-i", exampleInput)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid: ages 30-90 (61 years)")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("initialAge: 50\nendAge: 40\n"), 0o600))
	_, _, err = execute(t, "validate", "-i", bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidDocument)
}

func TestExampleCommand(t *testing.T) {
	stdout, _, err := execute(t, "example")
	require.NoError(t, err)
	assert.Contains(t, stdout, "initialAge: 30")

	path := filepath.Join(t.TempDir(), "example.yaml")
	_, _, err = execute(t, "example", "-o", path)
	require.NoError(t, err)

	stdout, _, err = execute(t, "validate", "-i", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
}
