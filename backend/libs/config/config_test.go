package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	HTTP struct {
		Port string `yaml:"port" env:"SAMPLE_HTTP_PORT"`
	} `yaml:"http"`
	Redis struct {
		TTL time.Duration `yaml:"ttl" env:"SAMPLE_REDIS_TTL"`
		DB  int           `yaml:"db"`
	} `yaml:"redis"`
	Debug bool `yaml:"debug" env:"SAMPLE_DEBUG"`
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: \"9000\"\nredis:\n  db: 2\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ENV_FILE", "")
	t.Setenv("SAMPLE_HTTP_PORT", "9100")
	t.Setenv("SAMPLE_REDIS_TTL", "90s")
	t.Setenv("REDIS_DB", "4")

	var cfg sampleConfig
	require.NoError(t, LoadConfig(&cfg))

	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 4, cfg.Redis.DB)
}

func TestLoadConfig_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("SAMPLE_HTTP_PORT=7000\nSAMPLE_DEBUG=true\n"), 0o600))

	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV_FILE", envPath)
	t.Setenv("SAMPLE_HTTP_PORT", "7100")
	os.Unsetenv("SAMPLE_DEBUG")
	t.Cleanup(func() { os.Unsetenv("SAMPLE_DEBUG") })

	var cfg sampleConfig
	require.NoError(t, LoadConfig(&cfg))

	assert.Equal(t, "7100", cfg.HTTP.Port)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_RejectsNonPointer(t *testing.T) {
	assert.Error(t, LoadConfig(sampleConfig{}))
	assert.Error(t, LoadConfig(nil))
}

func TestLoadConfig_BadValue(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV_FILE", "")
	t.Setenv("SAMPLE_REDIS_TTL", "forever")

	var cfg sampleConfig
	err := LoadConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAMPLE_REDIS_TTL")
}

func TestHTTPAddress(t *testing.T) {
	assert.Equal(t, ":8082", HTTPAddress("", "8082"))
	assert.Equal(t, ":9000", HTTPAddress(" 9000 ", "8082"))
	assert.Equal(t, ":9000", HTTPAddress(":9000", "8082"))
}
