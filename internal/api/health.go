// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package api

import (
	"net/http"
	"time"
)

var startTime = time.Now()

// healthStatus is the payload of the health endpoints.
type healthStatus struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Geocoding     string `json:"geocoding"`
}

// handleHealth implements GET /api/v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	geocoding := "disabled"
	if s.geocoder != nil {
		geocoding = "enabled"
	}

	NewResponseWriter(w, r).Success(healthStatus{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Geocoding:     geocoding,
	})
}

// handleHealthLive implements GET /api/v1/health/live. Liveness means
// the process is serving requests; it never checks dependencies.
func (s *Server) handleHealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// handleHealthReady implements GET /api/v1/health/ready. The event
// store is external and stateless from this process's perspective, so
// readiness is configuration-level: the handler set is wired and the
// process can accept traffic.
func (s *Server) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		NewResponseWriter(w, r).Error(http.StatusServiceUnavailable,
			ErrCodeServiceUnavailable, "event store not configured")
		return
	}
	NewResponseWriter(w, r).Success(map[string]string{"status": "ready"})
}
