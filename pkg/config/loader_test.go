package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
log_level: debug
game_id: solitaire
redis:
  addr: localhost:6379
store:
  namespace: qp
cache:
  dir: /tmp/sessiond-cache
auth:
  id_token_path: /tmp/id_token
jobs:
  blitz_refresh_spec: "*/30 * * * *"
  concurrency: 2
`

func writeConfig(t *testing.T, env, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", env+".yaml"), []byte(content), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("APP_ENV", env)
}

func TestLoad(t *testing.T) {
	writeConfig(t, "test", validYAML)

	cfg, v, err := Load()
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, "test", cfg.AppEnv)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "solitaire", cfg.GameID)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "qp", cfg.Store.Namespace)
	assert.Equal(t, "/tmp/sessiond-cache", cfg.Cache.Dir)
	assert.Equal(t, "/tmp/id_token", cfg.Auth.IDTokenPath)
	assert.Equal(t, "*/30 * * * *", cfg.Jobs.BlitzRefreshSpec)
	assert.Equal(t, 2, cfg.Jobs.Concurrency)
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("APP_ENV", "nowhere")

	_, _, err = Load()
	assert.Error(t, err)
}

func TestLoad_ValidationFailure(t *testing.T) {
	// game_id is required.
	writeConfig(t, "test", `
redis:
  addr: localhost:6379
store:
  namespace: qp
cache:
  dir: /tmp/sessiond-cache
auth:
  id_token_path: /tmp/id_token
`)

	_, _, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	writeConfig(t, "test", `
log_level: verbose
game_id: solitaire
redis:
  addr: localhost:6379
store:
  namespace: qp
cache:
  dir: /tmp/sessiond-cache
auth:
  id_token_path: /tmp/id_token
`)

	_, _, err := Load()
	assert.Error(t, err)
}
