// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in
// priority order. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/wheres-my-lighter/config.yaml",
	"/etc/wheres-my-lighter/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from three layers, in ascending
// priority:
//
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables
//
// The result is validated before being returned; an invalid
// configuration fails the process at startup rather than at first use.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps environment variable names (lowercased) to koanf
// config paths. Only listed variables are read; everything else in the
// environment is ignored so unrelated variables cannot pollute config.
var envMappings = map[string]string{
	// Server
	"http_host":               "server.host",
	"http_port":               "server.port",
	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_idle_timeout":     "server.idle_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",

	// Event store (Supabase / PostgREST)
	"supabase_url":     "store.url",
	"supabase_api_key": "store.api_key",
	"store_timeout":    "store.timeout",

	// Reverse geocoding
	"geocode_enabled":           "geocode.enabled",
	"geocode_base_url":          "geocode.base_url",
	"geocode_user_agent":        "geocode.user_agent",
	"geocode_timeout":           "geocode.timeout",
	"geocode_snap_step":         "geocode.snap_step",
	"geocode_cache_ttl":         "geocode.cache_ttl",
	"geocode_cache_max_entries": "geocode.cache_max_entries",
	"geocode_rate_per_second":   "geocode.rate_per_second",
	"geocode_rate_burst":        "geocode.rate_burst",

	// Security
	"rate_limit_enabled":   "security.rate_limit_enabled",
	"rate_limit_requests":  "security.rate_limit_requests",
	"rate_limit_window":    "security.rate_limit_window",
	"cors_enabled":         "security.cors_enabled",
	"cors_allowed_origins": "security.cors_allowed_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// API behavior
	"api_max_body_bytes": "api.max_body_bytes",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped keys return "" and are skipped.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

// sliceFields lists config paths that hold string slices. Environment
// variables supply them as comma-separated values.
var sliceFields = []string{
	"security.cors_allowed_origins",
}

// processSliceFields converts comma-separated env strings into slices
// so they unmarshal into []string fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceFields {
		raw := k.Get(path)
		s, ok := raw.(string)
		if !ok {
			continue
		}

		parts := strings.Split(s, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				values = append(values, trimmed)
			}
		}

		if err := k.Set(path, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
