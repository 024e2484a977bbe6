package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds server settings loaded from YAML with env overrides.
// Secrets come from the environment, not the file.
type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Nats struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`
	Auth struct {
		// Durations as strings, e.g. "15m", "168h"
		AccessTTL  string `yaml:"access_ttl"`
		RefreshTTL string `yaml:"refresh_ttl"`
	} `yaml:"auth"`

	JWTSecret string `yaml:"-"`
}

// AccessTTLDuration parses the configured access token lifetime, zero when
// unset or malformed so the default applies
func (c *Config) AccessTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.Auth.AccessTTL)
	return d
}

// RefreshTTLDuration parses the configured refresh token lifetime
func (c *Config) RefreshTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.Auth.RefreshTTL)
	return d
}

func loadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if config.Server.Port == "" {
		config.Server.Port = getEnv("PORT", "8080")
	}
	if len(config.Server.AllowedOrigins) == 0 {
		// The server runs credentialed CORS for the refresh cookie and
		// browsers reject Access-Control-Allow-Origin: * on credentialed
		// responses, so the fallback must name the dev origins explicitly
		config.Server.AllowedOrigins = []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}
	}
	if config.Nats.URL == "" {
		config.Nats.URL = os.Getenv("NATS_URL")
	}

	config.JWTSecret = os.Getenv("JWT_SECRET")
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return &config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
