package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV_FILE", "")
	t.Setenv("API_GATEWAY_JWT_SECRET", "s3cret")
	t.Setenv("API_GATEWAY_HTTP_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout())
	u, err := cfg.SessionsURL()
	require.NoError(t, err)
	assert.Equal(t, "localhost:8082", u.Host)
}

func TestLoad_RejectsRelativeServiceURL(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV_FILE", "")
	t.Setenv("API_GATEWAY_JWT_SECRET", "s3cret")
	t.Setenv("BILLING_SERVICE_URL", "billing:8083")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV_FILE", "")
	t.Setenv("API_GATEWAY_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}
