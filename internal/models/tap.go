// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

// Package models defines the core domain types shared across the
// store adapter, aggregation logic, and API layer.
package models

import (
	"math"
	"time"
)

// TapEvent is one observation of a tracked object at a point in time.
// Rows are append-only; duplicate taps are distinct observations.
//
// Coordinates are pointers because taps submitted without location
// permission still count toward tap and holder totals. Coarse labels
// are derived at write time from a privacy-snapped coordinate and are
// the only location detail ever exposed publicly.
type TapEvent struct {
	ID            string    `json:"id,omitempty"`
	ObjectID      string    `json:"object_id"`
	HolderID      *string   `json:"holder_id,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	AccuracyM     *float64  `json:"accuracy_m,omitempty"`
	CoarseCity    *string   `json:"coarse_city,omitempty"`
	CoarseCountry *string   `json:"coarse_country,omitempty"`
	PlaceLabel    *string   `json:"place_label,omitempty"`
	ObservedAt    time.Time `json:"observed_at"`
}

// HasCoordinates reports whether the event carries a usable coordinate
// pair. Non-finite values are treated as absent so they never reach
// the distance aggregator.
func (e *TapEvent) HasCoordinates() bool {
	if e.Latitude == nil || e.Longitude == nil {
		return false
	}
	if math.IsNaN(*e.Latitude) || math.IsInf(*e.Latitude, 0) {
		return false
	}
	if math.IsNaN(*e.Longitude) || math.IsInf(*e.Longitude, 0) {
		return false
	}
	return true
}

// DisplayLabel returns the public place label for the event.
// Precedence: stored place_label, then "city, country" composed from
// the coarse fields, then whichever coarse field is present, else nil.
func (e *TapEvent) DisplayLabel() *string {
	if e.PlaceLabel != nil && *e.PlaceLabel != "" {
		return e.PlaceLabel
	}

	city := ""
	if e.CoarseCity != nil {
		city = *e.CoarseCity
	}
	country := ""
	if e.CoarseCountry != nil {
		country = *e.CoarseCountry
	}

	switch {
	case city != "" && country != "" && city != country:
		label := city + ", " + country
		return &label
	case city != "":
		return &city
	case country != "":
		return &country
	default:
		return nil
	}
}

// TapView is the reduced representation of a tap exposed in summaries:
// when it happened and the coarse label of where.
type TapView struct {
	ObservedAt time.Time `json:"observed_at"`
	PlaceLabel *string   `json:"place_label"`
}

// View projects the event into its summary representation.
func (e *TapEvent) View() *TapView {
	return &TapView{
		ObservedAt: e.ObservedAt,
		PlaceLabel: e.DisplayLabel(),
	}
}
