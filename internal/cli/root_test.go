package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with the given args and returns
// captured stdout, stderr, and the execution error.
func executeCommand(t *testing.T, args []string, stdin string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	_, _, err := executeCommand(t, []string{"--format", "xml", "validate", "-"}, "{}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootHasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["build"])
	assert.True(t, names["validate"])
	assert.True(t, names["show"])
}

func TestRootFlagDefaultsFromEnvironment(t *testing.T) {
	t.Setenv("ASTRODIGEST_FORMAT", "json")
	t.Setenv("ASTRODIGEST_DB", "/tmp/env-configured.db")

	cmd := NewRootCommand()
	assert.Equal(t, "json", cmd.PersistentFlags().Lookup("format").DefValue)
	assert.Equal(t, "/tmp/env-configured.db", cmd.PersistentFlags().Lookup("db").DefValue)
}

func TestLoadConfigBuiltinDefaults(t *testing.T) {
	// t.Setenv registers cleanup; unset after to exercise the defaults.
	t.Setenv("ASTRODIGEST_FORMAT", "placeholder")
	t.Setenv("ASTRODIGEST_DB", "placeholder")
	os.Unsetenv("ASTRODIGEST_FORMAT")
	os.Unsetenv("ASTRODIGEST_DB")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "astrodigest.db", cfg.DB)
	assert.False(t, cfg.Verbose)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "boom")))
}
