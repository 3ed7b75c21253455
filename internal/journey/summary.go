// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package journey

import (
	"sort"
	"time"

	"github.com/Shane-Breen/wheres-my-lighter/internal/models"
)

// Summarize computes the JourneySummary for one object from its
// complete tap set. The store returns events ordered ascending by
// observed_at, but Summarize sorts defensively so the first/last
// fields never depend on transport ordering.
//
// An empty event set is not an error: all counts are zero and the
// first/last views are nil.
func Summarize(objectID string, events []models.TapEvent) *models.JourneySummary {
	summary := &models.JourneySummary{ObjectID: objectID}
	if len(events) == 0 {
		return summary
	}

	sorted := sortedByObservedAt(events)

	summary.TotalTaps = len(sorted)
	summary.UniqueHolders = uniqueHolders(sorted)
	summary.TotalDistanceKm = TotalDistanceKm(coordinatePoints(sorted))
	summary.FirstTap = sorted[0].View()
	summary.LastTap = sorted[len(sorted)-1].View()

	return summary
}

// Activity projects a summary into the per-object row of the
// "my objects" view.
func Activity(objectID string, events []models.TapEvent) *models.ObjectActivity {
	s := Summarize(objectID, events)
	return &models.ObjectActivity{
		ObjectID:        s.ObjectID,
		TotalTaps:       s.TotalTaps,
		UniqueHolders:   s.UniqueHolders,
		TotalDistanceKm: s.TotalDistanceKm,
		LastTap:         s.LastTap,
	}
}

// Signals are the aggregate behavioral inputs to the archetype
// classifier, derived from the same tap set as the summary.
type Signals struct {
	// NightRatio is the fraction of taps whose local hour falls in
	// [21:00, 06:00).
	NightRatio float64
	// Countries is the count of distinct non-empty coarse country labels.
	Countries int
	// Cities is the count of distinct non-empty coarse city labels.
	Cities int
	// TotalTaps is the full event count, with or without coordinates.
	TotalTaps int
}

// ComputeSignals derives classifier inputs from the tap set. Hours are
// evaluated in loc; pass nil for UTC.
func ComputeSignals(events []models.TapEvent, loc *time.Location) Signals {
	if loc == nil {
		loc = time.UTC
	}

	sig := Signals{TotalTaps: len(events)}
	if len(events) == 0 {
		return sig
	}

	countries := make(map[string]struct{})
	cities := make(map[string]struct{})
	night := 0

	for i := range events {
		e := &events[i]
		hour := e.ObservedAt.In(loc).Hour()
		if hour >= 21 || hour < 6 {
			night++
		}
		if e.CoarseCountry != nil && *e.CoarseCountry != "" {
			countries[*e.CoarseCountry] = struct{}{}
		}
		if e.CoarseCity != nil && *e.CoarseCity != "" {
			cities[*e.CoarseCity] = struct{}{}
		}
	}

	sig.NightRatio = float64(night) / float64(len(events))
	sig.Countries = len(countries)
	sig.Cities = len(cities)
	return sig
}

// sortedByObservedAt returns a copy ordered ascending by observed_at.
// The sort is stable so same-timestamp taps keep their stored order.
func sortedByObservedAt(events []models.TapEvent) []models.TapEvent {
	sorted := make([]models.TapEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ObservedAt.Before(sorted[j].ObservedAt)
	})
	return sorted
}

// uniqueHolders counts distinct non-empty holder ids. Anonymous taps
// (nil holder) contribute to TotalTaps only.
func uniqueHolders(events []models.TapEvent) int {
	holders := make(map[string]struct{})
	for i := range events {
		if h := events[i].HolderID; h != nil && *h != "" {
			holders[*h] = struct{}{}
		}
	}
	return len(holders)
}

// coordinatePoints filters to events with usable coordinates,
// preserving chronological order for the distance aggregator.
func coordinatePoints(events []models.TapEvent) []Point {
	points := make([]Point, 0, len(events))
	for i := range events {
		if events[i].HasCoordinates() {
			points = append(points, Point{
				Lat: *events[i].Latitude,
				Lon: *events[i].Longitude,
			})
		}
	}
	return points
}
