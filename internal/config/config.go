// Package config loads skydeck configuration from TOML or YAML files,
// selected by extension. Every field has a sensible default, so the server
// runs with no config file at all.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds all skydeck configuration.
type Config struct {
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Providers ProvidersConfig `toml:"providers" yaml:"providers"`
	MQTT      MQTTConfig      `toml:"mqtt" yaml:"mqtt"`
}

// ServerConfig holds transport and logging settings.
type ServerConfig struct {
	Name       string `toml:"name" yaml:"name"`
	ListenAddr string `toml:"listen_addr" yaml:"listen_addr"` // WebSocket listen address
	LogLevel   string `toml:"log_level" yaml:"log_level"`
}

// ProvidersConfig holds upstream endpoints and client knobs. Empty URLs fall
// back to the public provider endpoints; tests point them at local fakes.
type ProvidersConfig struct {
	GeocodingURL   string `toml:"geocoding_url" yaml:"geocoding_url"`
	WeatherURL     string `toml:"weather_url" yaml:"weather_url"`
	AviationURL    string `toml:"aviation_url" yaml:"aviation_url"`
	CredentialEnv  string `toml:"credential_env" yaml:"credential_env"`
	TimeoutSecs    int    `toml:"timeout_secs" yaml:"timeout_secs"`
	CallsPerMinute int    `toml:"calls_per_minute" yaml:"calls_per_minute"` // aviation free-tier pacing
	Burst          int    `toml:"burst" yaml:"burst"`
}

// MQTTConfig enables the MQTT channel.
type MQTTConfig struct {
	Enabled  bool   `toml:"enabled" yaml:"enabled"`
	Broker   string `toml:"broker" yaml:"broker"`
	Port     int    `toml:"port" yaml:"port"`
	Username string `toml:"username" yaml:"username"`
	Password string `toml:"password" yaml:"password"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:       "skydeck",
			ListenAddr: "127.0.0.1:8799",
			LogLevel:   "info",
		},
		Providers: ProvidersConfig{
			TimeoutSecs:    30,
			CallsPerMinute: 30,
			Burst:          5,
		},
		MQTT: MQTTConfig{
			Broker: "127.0.0.1",
			Port:   1883,
		},
	}
}

// Load reads a config file. The format is chosen by extension: .toml, .yaml,
// or .yml. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .toml, .yaml, or .yml)", ext)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero-valued fields after a partial file load.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Server.Name == "" {
		c.Server.Name = def.Server.Name
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = def.Server.ListenAddr
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = def.Server.LogLevel
	}
	if c.Providers.TimeoutSecs == 0 {
		c.Providers.TimeoutSecs = def.Providers.TimeoutSecs
	}
	if c.Providers.CallsPerMinute == 0 {
		c.Providers.CallsPerMinute = def.Providers.CallsPerMinute
	}
	if c.Providers.Burst == 0 {
		c.Providers.Burst = def.Providers.Burst
	}
	if c.MQTT.Broker == "" {
		c.MQTT.Broker = def.MQTT.Broker
	}
	if c.MQTT.Port == 0 {
		c.MQTT.Port = def.MQTT.Port
	}
}

// Timeout returns the provider HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Providers.TimeoutSecs) * time.Second
}

// SlogLevel maps the configured log level to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Server.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
