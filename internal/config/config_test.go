package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Input.Root = "/data/statements"
	cfg.Batch.FileTimeout = 90 * time.Second
	cfg.Batch.Persist = true
	cfg.Server.Schedule = "0 2 * * *"
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "raw_pdfs", cfg.Input.Root)
	assert.Equal(t, "extracted_json", cfg.Output.ExtractedDir)
	assert.Equal(t, "normalized_json", cfg.Output.NormalizedDir)
	assert.Equal(t, "exports", cfg.Output.CSVDir)
	assert.Equal(t, "logs", cfg.Output.LogDir)
	assert.Equal(t, 60*time.Second, cfg.Batch.FileTimeout)
	assert.False(t, cfg.Batch.Persist)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Empty(t, cfg.Server.Schedule)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("input:\n  root: pdfs\nbatch:\n  file_timeout: 5s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pdfs", cfg.Input.Root)
	assert.Equal(t, 5*time.Second, cfg.Batch.FileTimeout)
	assert.Equal(t, "normalized_json", cfg.Output.NormalizedDir)
	assert.Equal(t, ":8000", cfg.Server.Addr)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadOrDefault_Missing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  :\n    - [invalid"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")

	_, err = LoadOrDefault(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvInputRoot, "/srv/pdfs")
	t.Setenv(EnvAddr, ":9000")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvSchedule, "@hourly")
	t.Setenv(EnvFileTimeout, "2m")
	t.Setenv(EnvPersist, "true")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, "/srv/pdfs", cfg.Input.Root)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "@hourly", cfg.Server.Schedule)
	assert.Equal(t, 2*time.Minute, cfg.Batch.FileTimeout)
	assert.True(t, cfg.Batch.Persist)
}

func TestApplyEnv_EmptyValuesIgnored(t *testing.T) {
	t.Setenv(EnvAddr, "  ")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, ":8000", cfg.Server.Addr)
}

func TestApplyEnv_BadValues(t *testing.T) {
	t.Setenv(EnvFileTimeout, "soon")
	require.Error(t, ApplyEnv(Default()))

	t.Setenv(EnvFileTimeout, "")
	t.Setenv(EnvPersist, "maybe")
	require.Error(t, ApplyEnv(Default()))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvAddr+"=:7070\n"), 0o644))

	// Register cleanup for the variable godotenv is about to set.
	t.Setenv(EnvAddr, "")
	require.NoError(t, os.Unsetenv(EnvAddr))

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, ":7070", os.Getenv(EnvAddr))

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, ":7070", cfg.Server.Addr)
}
