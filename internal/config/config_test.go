package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG and HOME lookup at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"TADA_DATA_FILE", "TADA_THEME", "TADA_LOG_LEVEL", "TADA_LOG_FORMAT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", AppName, DataFile), cfg.DataFile)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestDefaultPathsWithoutXDG(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv("XDG_CONFIG_HOME")
	os.Unsetenv("XDG_DATA_HOME")

	assert.Equal(t, filepath.Join(dir, ".config", AppName), DefaultConfigDir())
	assert.Equal(t, filepath.Join(dir, ".local", "share", AppName, DataFile), DefaultDataFile())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: neon\nlog:\n  level: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep defaults")
}

func TestLoadDefaultPathFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(DefaultConfigDir(), 0o700))
	require.NoError(t, os.WriteFile(DefaultConfigPath(), []byte("theme: mono\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: neon\ndata_file: /from/file.json\n"), 0o600))
	t.Setenv("TADA_THEME", "mono")
	t.Setenv("TADA_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/from/file.json", cfg.DataFile)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadExpandsHome(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TADA_DATA_FILE", "~/tasks.json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tasks.json"), cfg.DataFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data file", func(c *Config) { c.DataFile = " " }},
		{"unknown theme", func(c *Config) { c.Theme = "disco" }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestWriteDefault(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cfg", ConfigFile)

	require.NoError(t, WriteDefault(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = WriteDefault(path, false)
	assert.ErrorContains(t, err, "already exists")

	assert.NoError(t, WriteDefault(path, true))
}
