// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package models

// JourneySummary is the aggregated travel history for one object.
// It is derived fresh on every read from the full ordered tap set and
// is never persisted.
//
// TotalDistanceKm carries full precision; the API layer rounds it to
// one decimal place for display.
type JourneySummary struct {
	ObjectID        string   `json:"object_id"`
	TotalTaps       int      `json:"total_taps"`
	UniqueHolders   int      `json:"unique_holders"`
	TotalDistanceKm float64  `json:"total_distance_km"`
	FirstTap        *TapView `json:"first_tap"`
	LastTap         *TapView `json:"last_tap"`
}

// ObjectActivity is one row of the "my objects" view: the journey
// summary for an object a given holder has tapped, keyed for sorting
// by most recent activity.
type ObjectActivity struct {
	ObjectID        string   `json:"object_id"`
	TotalTaps       int      `json:"total_taps"`
	UniqueHolders   int      `json:"unique_holders"`
	TotalDistanceKm float64  `json:"total_distance_km"`
	LastTap         *TapView `json:"last_tap"`
}
