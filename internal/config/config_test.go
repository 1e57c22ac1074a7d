package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
development: true
seed_file: data.json
server:
  port: 8181
  allowed_origins:
    - http://localhost:5173
database:
  driver: postgres
  dsn: host=localhost user=buffet dbname=buffet sslmode=disable
metrics:
  enabled: true
  port: 9191
  path: /metrics
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Development)
	assert.Equal(t, "data.json", cfg.SeedFile)
	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 9191, cfg.MetricsConfig.Port)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "log_level: warn\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "buffet.db", cfg.Database.DSN)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/metrics", cfg.MetricsConfig.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BUFFET_DB_DRIVER", "postgres")
	t.Setenv("BUFFET_DB_DSN", "postgres://buffet@db/buffet")
	t.Setenv("BUFFET_PORT", "8282")
	t.Setenv("BUFFET_LOG_LEVEL", "error")
	t.Setenv("BUFFET_SEED_FILE", "/srv/data.json")

	cfg, err := Load(writeConfig(t, "server:\n  port: 8181\n"))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://buffet@db/buffet", cfg.Database.DSN)
	assert.Equal(t, 8282, cfg.Server.Port)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "/srv/data.json", cfg.SeedFile)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [\n"))
	assert.Error(t, err)

	t.Setenv("BUFFET_PORT", "eighty")
	_, err = Load("")
	assert.ErrorContains(t, err, "BUFFET_PORT")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.MetricsConfig.Port = cfg.Server.Port
	assert.Error(t, cfg.Validate())

	cfg.MetricsConfig.Enabled = false
	assert.NoError(t, cfg.Validate())

	cfg.Database.DSN = ""
	assert.EqualError(t, cfg.Validate(), "database dsn must be set")
}
