// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Shane-Breen/wheres-my-lighter/internal/config"
	"github.com/Shane-Breen/wheres-my-lighter/internal/middleware"
	"github.com/Shane-Breen/wheres-my-lighter/internal/store"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	store        store.Store
	geocoder     Geocoder
	chiMw        *ChiMiddleware
	maxBodyBytes int64
	version      string
}

// NewServer creates the API server. geocoder may be nil, in which
// case taps are recorded without place labels.
func NewServer(st store.Store, geocoder Geocoder, cfg *config.Config, version string) *Server {
	return &Server{
		store:        st,
		geocoder:     geocoder,
		chiMw:        NewChiMiddleware(ChiMiddlewareConfigFromSecurity(cfg.Security)),
		maxBodyBytes: cfg.API.MaxBodyBytes,
		version:      version,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.chiMw.CORS())

	// Health endpoints get a permissive limit so monitoring polls
	// never starve real traffic protection.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(s.chiMw.RateLimitHealth())
		r.Get("/", s.handleHealth)
		r.Get("/live", s.handleHealthLive)
		r.Get("/ready", s.handleHealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.chiMw.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/taps", s.handleRecordTap)
		r.Get("/objects/{id}/summary", s.handleObjectSummary)
		r.Get("/objects/{id}/archetype", s.handleObjectArchetype)
		r.Post("/follows", s.handleUpsertFollow)
		r.Post("/profiles", s.handleUpsertProfile)
		r.Get("/holders/{id}/objects", s.handleHolderObjects)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
