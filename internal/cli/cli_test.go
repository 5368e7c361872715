package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_RejectsInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestScenarios_ListsBuiltins(t *testing.T) {
	out, err := execute(t, "scenarios")
	require.NoError(t, err)
	for _, name := range []string{"normal-ops", "peak-season", "outage", "rapid-growth", "data-quality-audit"} {
		assert.Contains(t, out, name)
	}
}

func TestScenarios_ListJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "scenarios")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestScenarios_ShowUnknown(t *testing.T) {
	_, err := execute(t, "scenarios", "show", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestScenarios_ShowEmitsJSON(t *testing.T) {
	out, err := execute(t, "scenarios", "show", "outage")
	require.NoError(t, err)

	var profile map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.Equal(t, "outage", profile["name"])
}

func TestValidate_AcceptsGoodProfile(t *testing.T) {
	out, err := execute(t, "validate", filepath.Join("testdata", "black-friday.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "valid")
}

func TestValidate_RejectsBrokenSums(t *testing.T) {
	out, err := execute(t, "validate", filepath.Join("testdata", "broken-sums.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "orderStatus")
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := execute(t, "validate", "testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGenerate_RequiresDates(t *testing.T) {
	_, err := execute(t, "generate", "--scenario", "normal-ops")
	require.Error(t, err)
}

func TestGenerate_RequiresDatabaseUnlessDryRun(t *testing.T) {
	_, err := execute(t, "generate",
		"--scenario", "normal-ops",
		"--start", "2024-01-01", "--end", "2024-01-08",
		"--env", "test")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--db")
}

func TestGenerate_DryRun(t *testing.T) {
	out, err := execute(t, "generate",
		"--scenario", "normal-ops",
		"--seed", "42",
		"--start", "2024-01-01", "--end", "2024-01-08",
		"--multiplier", "0.1",
		"--dry-run",
		"--env", "test")
	require.NoError(t, err)
	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "orders")
}

func TestGenerate_DryRunJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "generate",
		"--scenario", "normal-ops",
		"--seed", "42",
		"--start", "2024-01-01", "--end", "2024-01-08",
		"--multiplier", "0.1",
		"--dry-run",
		"--env", "test")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Scenario string         `json:"scenario"`
			DryRun   bool           `json:"dryRun"`
			Counts   map[string]int `json:"recordCounts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.DryRun)
	assert.Equal(t, 2, resp.Data.Counts["users"])
	assert.Equal(t, 10, resp.Data.Counts["companies"])
	assert.Equal(t, 35, resp.Data.Counts["orders"])
}

func TestGenerate_UnknownScenario(t *testing.T) {
	_, err := execute(t, "generate",
		"--scenario", "nonexistent",
		"--start", "2024-01-01", "--end", "2024-01-08",
		"--dry-run",
		"--env", "test")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGenerate_BlockedEnvironment(t *testing.T) {
	_, err := execute(t, "generate",
		"--scenario", "normal-ops",
		"--start", "2024-01-01", "--end", "2024-01-08",
		"--dry-run",
		"--env", "production")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, strings.ToLower(err.Error()), "safety")
}

func TestGenerate_WritesToDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	out, err := execute(t, "generate",
		"--scenario", "normal-ops",
		"--seed", "7",
		"--start", "2024-01-01", "--end", "2024-01-08",
		"--multiplier", "0.1",
		"--db", db,
		"--env", "test")
	require.NoError(t, err)
	assert.Contains(t, out, "total")
	assert.NotContains(t, out, "dry run")
}
