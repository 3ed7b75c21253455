// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/Shane-Breen/wheres-my-lighter/internal/models"
)

// Store is the persistence interface the API handlers depend on.
// Implemented by *Client for production and by fakes in tests.
type Store interface {
	InsertTap(ctx context.Context, event *models.TapEvent) error
	TapsByObject(ctx context.Context, objectID string) ([]models.TapEvent, error)
	TapsByHolder(ctx context.Context, holderID string) ([]models.TapEvent, error)
	UpsertFollow(ctx context.Context, follow *models.FollowSubscription) error
	UpsertProfile(ctx context.Context, profile *models.Profile) error
}

var _ Store = (*Client)(nil)

// InsertTap appends one tap event. Duplicate taps are distinct
// observations, so this is a plain insert with no conflict handling.
func (c *Client) InsertTap(ctx context.Context, event *models.TapEvent) error {
	_, err := c.record(ctx, "insert", "taps",
		http.MethodPost, "/taps", "return=minimal", event)
	return err
}

// TapsByObject returns every tap for an object, ordered ascending by
// observed_at.
func (c *Client) TapsByObject(ctx context.Context, objectID string) ([]models.TapEvent, error) {
	path := fmt.Sprintf("/taps?object_id=%s&order=observed_at.asc&select=*", eqFilter(objectID))
	return c.fetchTaps(ctx, "select_by_object", path)
}

// TapsByHolder returns every tap recorded by a holder across all
// objects, ordered ascending by observed_at. Used to derive the
// reverse index of which objects a holder has touched.
func (c *Client) TapsByHolder(ctx context.Context, holderID string) ([]models.TapEvent, error) {
	path := fmt.Sprintf("/taps?holder_id=%s&order=observed_at.asc&select=*", eqFilter(holderID))
	return c.fetchTaps(ctx, "select_by_holder", path)
}

func (c *Client) fetchTaps(ctx context.Context, operation, path string) ([]models.TapEvent, error) {
	body, err := c.record(ctx, operation, "taps", http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var events []models.TapEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to decode tap events: %w", err)
	}
	return events, nil
}

// UpsertFollow creates or updates a follow subscription. The
// (object_id, email) pair is unique; resubscribing updates the
// frequency in place via merge-on-conflict.
func (c *Client) UpsertFollow(ctx context.Context, follow *models.FollowSubscription) error {
	_, err := c.record(ctx, "upsert", "follows",
		http.MethodPost, "/follows?on_conflict=object_id,email",
		"resolution=merge-duplicates,return=minimal", follow)
	return err
}

// UpsertProfile creates or updates a holder profile keyed by
// holder_id.
func (c *Client) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	_, err := c.record(ctx, "upsert", "profiles",
		http.MethodPost, "/profiles?on_conflict=holder_id",
		"resolution=merge-duplicates,return=minimal", profile)
	return err
}
