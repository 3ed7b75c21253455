// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

// Package config loads and validates service configuration from three
// layered sources: built-in defaults, an optional YAML file, and
// environment variables. Later layers override earlier ones.
package config

import "time"

// Config is the root configuration for the service.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Geocode  GeocodeConfig  `koanf:"geocode"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	API      APIConfig      `koanf:"api"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StoreConfig holds settings for the PostgREST-backed event store.
type StoreConfig struct {
	// URL is the base URL of the PostgREST endpoint, e.g.
	// https://abc.supabase.co/rest/v1
	URL string `koanf:"url"`

	// APIKey is sent as both the apikey header and the bearer token.
	APIKey string `koanf:"api_key"`

	Timeout time.Duration `koanf:"timeout"`
}

// GeocodeConfig holds settings for the reverse-geocoding adapter.
type GeocodeConfig struct {
	Enabled bool `koanf:"enabled"`

	// BaseURL of the Nominatim-compatible endpoint.
	BaseURL string `koanf:"base_url"`

	// UserAgent identifies this deployment to the geocode provider.
	// Nominatim's usage policy requires a distinctive value.
	UserAgent string `koanf:"user_agent"`

	Timeout time.Duration `koanf:"timeout"`

	// SnapStep is the privacy grid size in degrees. Coordinates are
	// snapped to this grid before leaving the process.
	SnapStep float64 `koanf:"snap_step"`

	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`

	// RatePerSecond caps outbound provider requests. Nominatim's
	// public instance allows at most 1 req/s.
	RatePerSecond float64 `koanf:"rate_per_second"`
	RateBurst     int     `koanf:"rate_burst"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitEnabled  bool          `koanf:"rate_limit_enabled"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	CORSEnabled        bool     `koanf:"cors_enabled"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	// MaxBodyBytes caps request body size on write endpoints.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			URL:     "",
			APIKey:  "",
			Timeout: 10 * time.Second,
		},
		Geocode: GeocodeConfig{
			Enabled:         true,
			BaseURL:         "https://nominatim.openstreetmap.org",
			UserAgent:       "wheres-my-lighter/1.0",
			Timeout:         2500 * time.Millisecond,
			SnapStep:        0.01,
			CacheTTL:        24 * time.Hour,
			CacheMaxEntries: 4096,
			RatePerSecond:   1.0,
			RateBurst:       1,
		},
		Security: SecurityConfig{
			RateLimitEnabled:  true,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			CORSEnabled:       true,
			CORSAllowedOrigins: []string{
				"http://localhost:3000",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		API: APIConfig{
			MaxBodyBytes: 1 << 20, // 1MB
		},
	}
}
