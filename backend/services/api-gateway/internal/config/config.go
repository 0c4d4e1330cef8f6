package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	libconfig "billiardsone/backend/libs/config"
)

const defaultPort = "8080"

// Config defines gateway configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"API_GATEWAY_HTTP_PORT"`
	} `yaml:"http"`
	JWT struct {
		Secret string `yaml:"secret" env:"API_GATEWAY_JWT_SECRET"`
	} `yaml:"jwt"`
	Services struct {
		AuthURL     string `yaml:"authUrl" env:"AUTH_SERVICE_URL"`
		SessionsURL string `yaml:"sessionsUrl" env:"SESSIONS_SERVICE_URL"`
		BillingURL  string `yaml:"billingUrl" env:"BILLING_SERVICE_URL"`
	} `yaml:"services"`
	HTTPClient struct {
		Timeout time.Duration `yaml:"timeout" env:"API_GATEWAY_HTTP_TIMEOUT"`
	} `yaml:"httpClient"`
}

// Load configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = defaultPort
	cfg.Services.AuthURL = "http://localhost:8081"
	cfg.Services.SessionsURL = "http://localhost:8082"
	cfg.Services.BillingURL = "http://localhost:8083"
	cfg.HTTPClient.Timeout = 5 * time.Second

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	for name, raw := range map[string]string{
		"auth":     cfg.Services.AuthURL,
		"sessions": cfg.Services.SessionsURL,
		"billing":  cfg.Services.BillingURL,
	} {
		if _, err := parseServiceURL(raw); err != nil {
			return nil, fmt.Errorf("config: %s service url: %w", name, err)
		}
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	return libconfig.HTTPAddress(c.HTTP.Port, defaultPort)
}

// HTTPTimeout returns http client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPClient.Timeout <= 0 {
		return 5 * time.Second
	}
	return c.HTTPClient.Timeout
}

// SessionsURL returns the parsed sessions-service base URL.
func (c *Config) SessionsURL() (*url.URL, error) {
	return parseServiceURL(c.Services.SessionsURL)
}

func parseServiceURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute http url", raw)
	}
	return u, nil
}
