package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with every key cleared.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{
		"ADDR", "DATABASE_URL", "STORAGE_DRIVER", "SQLITE_PATH", "WEB_DIR", "LOG_LEVEL",
		"CORS_ORIGIN", "KAFKA_BROKERS", "KAFKA_TOPIC", "SHUTDOWN_TIMEOUT",
		"OIDC_ISSUER", "OIDC_CLIENT_ID", "OIDC_CLIENT_SECRET", "OIDC_REDIRECT_URL",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "stride.activities", cfg.KafkaTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.OIDC.Enabled())
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/stride")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OIDC_ISSUER", "https://id.example.com")
	t.Setenv("OIDC_CLIENT_ID", "stride")
	t.Setenv("OIDC_REDIRECT_URL", "http://localhost:8080/api/sso/callback")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver, "a database URL selects postgres")
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.OIDC.Enabled())
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("STORAGE_DRIVER=sqlite\nSQLITE_PATH=/tmp/from-dotenv.db\nADDR=:9000\n"), 0o600))
	t.Setenv("ADDR", ":7000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "/tmp/from-dotenv.db", cfg.SQLitePath)
	assert.Equal(t, ":7000", cfg.Addr)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "stride.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"addr": ":6000", "cors_origin": "https://app.example.com"}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":6000", cfg.Addr)
	assert.Equal(t, "https://app.example.com", cfg.CORSOrigin)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{StorageDriver: DriverMemory, KafkaTopic: "t", ShutdownTimeout: time.Second}
	}
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"postgres without url", func(c *Config) { c.StorageDriver = DriverPostgres }},
		{"sqlite without path", func(c *Config) { c.StorageDriver = DriverSQLite }},
		{"unknown driver", func(c *Config) { c.StorageDriver = "mysql" }},
		{"brokers without topic", func(c *Config) { c.KafkaBrokers = []string{"k:9092"}; c.KafkaTopic = "" }},
		{"sso without redirect", func(c *Config) { c.OIDC = OIDC{Issuer: "https://id", ClientID: "x"} }},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }},
	}

	base := valid()
	require.NoError(t, base.Validate())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
