// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.validateGeocode(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.URL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if err := validateHTTPURL(c.Store.URL, "SUPABASE_URL"); err != nil {
		return err
	}
	if c.Store.APIKey == "" {
		return fmt.Errorf("SUPABASE_API_KEY is required")
	}
	if c.Store.Timeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateGeocode() error {
	if !c.Geocode.Enabled {
		return nil
	}

	if err := validateHTTPURL(c.Geocode.BaseURL, "GEOCODE_BASE_URL"); err != nil {
		return err
	}
	if c.Geocode.UserAgent == "" {
		return fmt.Errorf("GEOCODE_USER_AGENT is required when GEOCODE_ENABLED=true")
	}
	if c.Geocode.Timeout <= 0 {
		return fmt.Errorf("GEOCODE_TIMEOUT must be positive")
	}
	if c.Geocode.SnapStep <= 0 || c.Geocode.SnapStep > 1 {
		return fmt.Errorf("GEOCODE_SNAP_STEP must be in (0, 1], got %g", c.Geocode.SnapStep)
	}
	if c.Geocode.CacheMaxEntries < 0 {
		return fmt.Errorf("GEOCODE_CACHE_MAX_ENTRIES must not be negative")
	}
	if c.Geocode.RatePerSecond <= 0 {
		return fmt.Errorf("GEOCODE_RATE_PER_SECOND must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitEnabled {
		if c.Security.RateLimitRequests < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.MaxBodyBytes < 1 {
		return fmt.Errorf("API_MAX_BODY_BYTES must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, disabled; got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// validateHTTPURL checks that s is an absolute http(s) URL.
func validateHTTPURL(s, name string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", name)
	}
	return nil
}
