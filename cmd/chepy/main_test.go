package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chepyshell/internal/version"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd(viper.New())
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Current().Short()+"\n", out)
}

func TestVersionCommandDetailed(t *testing.T) {
	out, err := execute(t, "version", "--detailed")
	require.NoError(t, err)
	assert.Equal(t, version.Current().Detailed()+"\n", out)
	assert.Contains(t, out, "Go Version:")
}

func TestUnknownOutputMode(t *testing.T) {
	_, err := execute(t, "--output", "xml", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output mode")
}

func TestRootRequiresData(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)

	_, err = execute(t, "a", "b")
	assert.Error(t, err)
}

func TestMissingDataFile(t *testing.T) {
	_, err := execute(t, "--file", filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open data file")
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
