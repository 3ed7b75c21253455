// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns defaults with the required store settings
// filled in.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Store.URL = "https://abc.supabase.co/rest/v1"
	cfg.Store.APIKey = "secret"
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Geocode.SnapStep != 0.01 {
		t.Errorf("Geocode.SnapStep = %v, want 0.01", cfg.Geocode.SnapStep)
	}
	if cfg.Geocode.Timeout != 2500*time.Millisecond {
		t.Errorf("Geocode.Timeout = %v, want 2.5s", cfg.Geocode.Timeout)
	}
	if cfg.Geocode.CacheTTL != 24*time.Hour {
		t.Errorf("Geocode.CacheTTL = %v, want 24h", cfg.Geocode.CacheTTL)
	}
	if cfg.Geocode.RatePerSecond != 1.0 {
		t.Errorf("Geocode.RatePerSecond = %v, want 1", cfg.Geocode.RatePerSecond)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing store url",
			mutate:  func(c *Config) { c.Store.URL = "" },
			wantErr: "SUPABASE_URL",
		},
		{
			name:    "store url without scheme",
			mutate:  func(c *Config) { c.Store.URL = "abc.supabase.co" },
			wantErr: "SUPABASE_URL",
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.Store.APIKey = "" },
			wantErr: "SUPABASE_API_KEY",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "snap step too large",
			mutate:  func(c *Config) { c.Geocode.SnapStep = 2 },
			wantErr: "GEOCODE_SNAP_STEP",
		},
		{
			name:    "snap step zero",
			mutate:  func(c *Config) { c.Geocode.SnapStep = 0 },
			wantErr: "GEOCODE_SNAP_STEP",
		},
		{
			name:    "geocode user agent required when enabled",
			mutate:  func(c *Config) { c.Geocode.UserAgent = "" },
			wantErr: "GEOCODE_USER_AGENT",
		},
		{
			name: "geocode settings ignored when disabled",
			mutate: func(c *Config) {
				c.Geocode.Enabled = false
				c.Geocode.UserAgent = ""
				c.Geocode.SnapStep = 0
			},
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
		{
			name:    "rate limit window",
			mutate:  func(c *Config) { c.Security.RateLimitWindow = 0 },
			wantErr: "RATE_LIMIT_WINDOW",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() passed, want error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"SUPABASE_URL", "store.url"},
		{"supabase_api_key", "store.api_key"},
		{"GEOCODE_SNAP_STEP", "geocode.snap_step"},
		{"LOG_LEVEL", "logging.level"},
		{"HTTP_PORT", "server.port"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}
