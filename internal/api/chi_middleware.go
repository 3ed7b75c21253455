// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/Shane-Breen/wheres-my-lighter/internal/config"
	"github.com/Shane-Breen/wheres-my-lighter/internal/metrics"
)

// healthRateLimit is the per-IP request budget for health endpoints,
// deliberately generous for monitoring probes.
const healthRateLimit = 1000

// ChiMiddlewareConfig holds configuration for the middleware
// factories.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSEnabled        bool

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// ChiMiddlewareConfigFromSecurity maps the security config section
// onto middleware settings.
func ChiMiddlewareConfigFromSecurity(sec config.SecurityConfig) *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: sec.CORSAllowedOrigins,
		CORSEnabled:        sec.CORSEnabled,
		RateLimitRequests:  sec.RateLimitRequests,
		RateLimitWindow:    sec.RateLimitWindow,
		RateLimitDisabled:  !sec.RateLimitEnabled,
	}
}

// ChiMiddleware provides chi-compatible middleware built on the
// go-chi/cors and go-chi/httprate packages.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory.
func NewChiMiddleware(cfg *ChiMiddlewareConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	})

	return &ChiMiddleware{
		config: cfg,
		cors:   corsHandler,
	}
}

// CORS returns the CORS middleware; a no-op when CORS is disabled.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	if !m.config.CORSEnabled {
		return passthrough
	}
	return m.cors
}

// RateLimit returns IP-keyed rate limiting for the API routes.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return passthrough
	}

	return httprate.Limit(
		m.config.RateLimitRequests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitExceeded),
	)
}

// RateLimitHealth returns the permissive limiter for health probes.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return passthrough
	}

	return httprate.Limit(
		healthRateLimit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitExceeded),
	)
}

func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
	NewResponseWriter(w, r).Error(http.StatusTooManyRequests,
		ErrCodeTooManyRequests, "Rate limit exceeded, slow down")
}

func passthrough(next http.Handler) http.Handler {
	return next
}
