// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Shane-Breen/wheres-my-lighter/internal/archetype"
	"github.com/Shane-Breen/wheres-my-lighter/internal/geocode"
	"github.com/Shane-Breen/wheres-my-lighter/internal/journey"
	"github.com/Shane-Breen/wheres-my-lighter/internal/logging"
	"github.com/Shane-Breen/wheres-my-lighter/internal/metrics"
	"github.com/Shane-Breen/wheres-my-lighter/internal/models"
)

// Geocoder is the reverse-geocoding dependency of the tap handler.
// Satisfied by *geocode.Resolver; nil disables geocoding entirely.
type Geocoder interface {
	Resolve(ctx context.Context, lat, lon float64) geocode.Result
}

// handleRecordTap implements POST /api/v1/taps.
//
// Geocoding is best effort: a failed or skipped lookup records the tap
// with raw coordinates and no place label rather than failing the
// request.
func (s *Server) handleRecordTap(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req TapRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(rw, err)
		return
	}

	// Coordinates come as a pair or not at all.
	if (req.Latitude == nil) != (req.Longitude == nil) {
		rw.BadRequest("latitude and longitude must be provided together")
		return
	}

	event := &models.TapEvent{
		ID:         uuid.New().String(),
		ObjectID:   req.ObjectID,
		HolderID:   req.HolderID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		AccuracyM:  req.AccuracyM,
		ObservedAt: time.Now().UTC(),
	}

	geocoded := "skipped"
	if event.HasCoordinates() && s.geocoder != nil {
		result := s.geocoder.Resolve(r.Context(), *event.Latitude, *event.Longitude)
		if result.OK {
			geocoded = "true"
			event.CoarseCity = result.City
			event.CoarseCountry = result.Country
			event.PlaceLabel = result.PlaceLabel
		} else {
			geocoded = "false"
		}
	}

	if err := s.store.InsertTap(r.Context(), event); err != nil {
		rw.StoreError(err)
		return
	}
	metrics.TapsRecorded.WithLabelValues(geocoded).Inc()

	logger := logging.FromContext(r.Context())
	logger.Info().
		Str("object_id", event.ObjectID).
		Bool("has_coordinates", event.HasCoordinates()).
		Str("geocoded", geocoded).
		Msg("tap recorded")

	rw.Created(event)
}

// summaryResponse is the payload of the object summary endpoint. Taps
// are included only when requested, as coarse views without raw
// coordinates.
type summaryResponse struct {
	*models.JourneySummary
	Taps []models.TapView `json:"taps,omitempty"`
}

// handleObjectSummary implements GET /api/v1/objects/{id}/summary.
func (s *Server) handleObjectSummary(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	objectID := chi.URLParam(r, "id")

	events, err := s.store.TapsByObject(r.Context(), objectID)
	if err != nil {
		rw.StoreError(err)
		return
	}

	summary := journey.Summarize(objectID, events)
	summary.TotalDistanceKm = journey.RoundKm(summary.TotalDistanceKm)

	resp := summaryResponse{JourneySummary: summary}

	if r.URL.Query().Get("include_taps") == "true" {
		views := make([]models.TapView, 0, len(events))
		for i := range events {
			views = append(views, *events[i].View())
		}
		resp.Taps = views
	}

	rw.Success(resp)
}

// archetypeResponse is the payload of the archetype endpoint.
type archetypeResponse struct {
	ObjectID string           `json:"object_id"`
	Name     string           `json:"name"`
	Lines    []string         `json:"lines"`
	Rule     archetype.RuleID `json:"rule"`
}

// handleObjectArchetype implements GET /api/v1/objects/{id}/archetype.
// An object with no taps still classifies (to the default archetype).
func (s *Server) handleObjectArchetype(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	objectID := chi.URLParam(r, "id")

	events, err := s.store.TapsByObject(r.Context(), objectID)
	if err != nil {
		rw.StoreError(err)
		return
	}

	result := archetype.Classify(journey.ComputeSignals(events, nil))

	rw.Success(archetypeResponse{
		ObjectID: objectID,
		Name:     result.Name,
		Lines:    result.Lines,
		Rule:     result.Rule,
	})
}

// handleUpsertFollow implements POST /api/v1/follows. Subscribing
// twice with the same (object_id, email) pair updates the frequency
// instead of creating a second subscription.
func (s *Server) handleUpsertFollow(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req FollowRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(rw, err)
		return
	}

	frequency := models.FollowFrequency(req.Frequency)
	if frequency == "" {
		frequency = models.FrequencyMoves
	}

	follow := &models.FollowSubscription{
		ObjectID:  req.ObjectID,
		Email:     req.Email,
		Frequency: frequency,
	}

	if err := s.store.UpsertFollow(r.Context(), follow); err != nil {
		rw.StoreError(err)
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Info().
		Str("object_id", follow.ObjectID).
		Str("frequency", string(follow.Frequency)).
		Msg("follow subscription saved")

	rw.Created(follow)
}

// handleUpsertProfile implements POST /api/v1/profiles.
func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ProfileRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(rw, err)
		return
	}

	profile := &models.Profile{
		HolderID:    req.HolderID,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	}

	if err := s.store.UpsertProfile(r.Context(), profile); err != nil {
		rw.StoreError(err)
		return
	}

	rw.Created(profile)
}

// handleHolderObjects implements GET /api/v1/holders/{id}/objects.
// The holder's own tap history supplies only the reverse index (which
// objects they have touched); each row is then summarized from the
// object's full journey, so unique_holders and distance reflect every
// holder, not just the one asking. Objects are ordered by most recent
// activity.
func (s *Server) handleHolderObjects(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	holderID := chi.URLParam(r, "id")

	holderTaps, err := s.store.TapsByHolder(r.Context(), holderID)
	if err != nil {
		rw.StoreError(err)
		return
	}

	seen := make(map[string]struct{}, len(holderTaps))
	objectIDs := make([]string, 0, len(holderTaps))
	for i := range holderTaps {
		if _, ok := seen[holderTaps[i].ObjectID]; ok {
			continue
		}
		seen[holderTaps[i].ObjectID] = struct{}{}
		objectIDs = append(objectIDs, holderTaps[i].ObjectID)
	}

	activities := make([]*models.ObjectActivity, 0, len(objectIDs))
	for _, objectID := range objectIDs {
		events, err := s.store.TapsByObject(r.Context(), objectID)
		if err != nil {
			rw.StoreError(err)
			return
		}
		activity := journey.Activity(objectID, events)
		activity.TotalDistanceKm = journey.RoundKm(activity.TotalDistanceKm)
		activities = append(activities, activity)
	}

	sort.Slice(activities, func(i, j int) bool {
		a, b := activities[i].LastTap, activities[j].LastTap
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.ObservedAt.After(b.ObservedAt)
	})

	rw.Success(activities)
}
