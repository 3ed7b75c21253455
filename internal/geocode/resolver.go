// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

// Package geocode turns raw tap coordinates into coarse,
// privacy-preserving place labels. Coordinates are snapped to a grid
// before any lookup, results are cached per grid cell, and the
// external provider sits behind a rate limiter and a circuit breaker.
// Lookups degrade to an empty result instead of failing the caller.
package geocode

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/Shane-Breen/wheres-my-lighter/internal/cache"
	"github.com/Shane-Breen/wheres-my-lighter/internal/config"
	"github.com/Shane-Breen/wheres-my-lighter/internal/logging"
	"github.com/Shane-Breen/wheres-my-lighter/internal/metrics"
)

// Result is the outcome of one reverse-geocode resolution. When OK is
// false every label field is nil and the caller proceeds without a
// place label; a failed lookup never blocks the underlying write.
type Result struct {
	City       *string
	Country    *string
	PlaceLabel *string
	OK         bool
}

// Resolver coordinates snapping, caching, rate limiting, and the
// circuit-broken provider call.
type Resolver struct {
	provider Provider
	cache    *cache.Cache
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[*PlaceLabels]
	snapStep float64
	timeout  time.Duration
}

// NewResolver builds a Resolver from configuration. Circuit breaker
// behavior: opens after 60% failures over at least 10 requests, waits
// 2 minutes before probing, allows 3 requests half-open.
func NewResolver(provider Provider, cfg config.GeocodeConfig) *Resolver {
	cbName := provider.Name()
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[*PlaceLabels](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("geocode circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Resolver{
		provider: provider,
		cache:    cache.New(cfg.CacheTTL, cfg.CacheMaxEntries),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		breaker:  cb,
		snapStep: cfg.SnapStep,
		timeout:  cfg.Timeout,
	}
}

// Resolve returns coarse place labels for a raw coordinate pair. The
// coordinates are snapped before the cell key is computed, so two raw
// positions in the same grid cell share one cache entry and at most
// one provider call. Any failure returns Result{OK: false}.
func (r *Resolver) Resolve(ctx context.Context, lat, lon float64) Result {
	snappedLat, snappedLon := SnapPoint(lat, lon, r.snapStep)
	key := CellKey(snappedLat, snappedLon)

	if cached, ok := r.cache.Get(key); ok {
		metrics.GeocodeCacheHits.Inc()
		if result, ok := cached.(Result); ok {
			return result
		}
	}
	metrics.GeocodeCacheMisses.Inc()

	if !r.limiter.Allow() {
		metrics.GeocodeRequests.WithLabelValues("rejected").Inc()
		logging.Debug().
			Float64("lat", snappedLat).
			Float64("lon", snappedLon).
			Msg("geocode lookup skipped, rate limit exhausted")
		return Result{}
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	labels, err := r.breaker.Execute(func() (*PlaceLabels, error) {
		return r.provider.Reverse(callCtx, snappedLat, snappedLon)
	})
	metrics.GeocodeRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.GeocodeRequests.WithLabelValues("rejected").Inc()
			metrics.CircuitBreakerRequests.WithLabelValues(r.provider.Name(), "rejected").Inc()
		} else {
			metrics.GeocodeRequests.WithLabelValues("failure").Inc()
			metrics.CircuitBreakerRequests.WithLabelValues(r.provider.Name(), "failure").Inc()
		}
		logging.Warn().Err(err).
			Float64("lat", snappedLat).
			Float64("lon", snappedLon).
			Msg("geocode lookup failed")
		return Result{}
	}
	metrics.GeocodeRequests.WithLabelValues("success").Inc()
	metrics.CircuitBreakerRequests.WithLabelValues(r.provider.Name(), "success").Inc()

	result := composeResult(labels)
	r.cache.Set(key, result)
	metrics.GeocodeCacheSize.Set(float64(r.cache.Len()))

	return result
}

// composeResult builds the public Result from raw labels. The display
// label is "city, country" when both are present and distinct, else
// whichever is present, else nil.
func composeResult(labels *PlaceLabels) Result {
	result := Result{OK: true}

	if labels.City != "" {
		city := labels.City
		result.City = &city
	}
	if labels.Country != "" {
		country := labels.Country
		result.Country = &country
	}

	switch {
	case labels.City != "" && labels.Country != "" && labels.City != labels.Country:
		label := labels.City + ", " + labels.Country
		result.PlaceLabel = &label
	case labels.City != "":
		label := labels.City
		result.PlaceLabel = &label
	case labels.Country != "":
		label := labels.Country
		result.PlaceLabel = &label
	}

	return result
}

// CacheLen reports the current number of cached cells.
func (r *Resolver) CacheLen() int {
	return r.cache.Len()
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
