package config

import (
	"errors"
	"strings"
	"time"

	libconfig "billiardsone/backend/libs/config"
)

const defaultPort = "8082"

// HTTPConfig is the listener setting.
type HTTPConfig struct {
	Port string `yaml:"port" env:"SESSIONS_HTTP_PORT"`
}

// DatabaseConfig is the Postgres connection.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"SESSIONS_POSTGRES_DSN"`
}

// RedisConfig is the active-session cache connection.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"SESSIONS_REDIS_ADDR"`
	Password string        `yaml:"password" env:"SESSIONS_REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"SESSIONS_REDIS_DB"`
	TTL      time.Duration `yaml:"ttl" env:"SESSIONS_REDIS_TTL"`
}

// WebsocketConfig tunes the live table feed.
type WebsocketConfig struct {
	WriteTimeout time.Duration `yaml:"writeTimeout" env:"SESSIONS_WS_WRITE_TIMEOUT"`
	PingInterval time.Duration `yaml:"pingInterval" env:"SESSIONS_WS_PING_INTERVAL"`
}

// Config defines sessions service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Websocket WebsocketConfig `yaml:"websocket"`
}

// Load reads configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP:  HTTPConfig{Port: defaultPort},
		Redis: RedisConfig{Addr: "localhost:6379", TTL: 24 * time.Hour},
		Websocket: WebsocketConfig{
			WriteTimeout: 5 * time.Second,
			PingInterval: 30 * time.Second,
		},
	}

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		return nil, errors.New("config: redis addr required")
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = 24 * time.Hour
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	return libconfig.HTTPAddress(c.HTTP.Port, defaultPort)
}
