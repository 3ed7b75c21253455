// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package journey

import (
	"math"
	"testing"
	"time"

	"github.com/Shane-Breen/wheres-my-lighter/internal/models"
)

func strPtr(s string) *string       { return &s }
func f64Ptr(f float64) *float64     { return &f }
func at(hour int) time.Time         { return time.Date(2026, 8, 20, hour, 0, 0, 0, time.UTC) }
func atDay(day, hour int) time.Time { return time.Date(2026, 8, day, hour, 0, 0, 0, time.UTC) }

func tap(objectID string, holder *string, lat, lon *float64, observed time.Time) models.TapEvent {
	return models.TapEvent{
		ObjectID:   objectID,
		HolderID:   holder,
		Latitude:   lat,
		Longitude:  lon,
		ObservedAt: observed,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("obj-1", nil)

	if s.ObjectID != "obj-1" {
		t.Errorf("ObjectID = %q, want obj-1", s.ObjectID)
	}
	if s.TotalTaps != 0 || s.UniqueHolders != 0 || s.TotalDistanceKm != 0 {
		t.Errorf("empty summary has nonzero counts: %+v", s)
	}
	if s.FirstTap != nil || s.LastTap != nil {
		t.Errorf("empty summary has first/last views: %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	events := []models.TapEvent{
		tap("obj-1", strPtr("alice"), f64Ptr(51.8985), f64Ptr(-8.4756), atDay(1, 10)),
		tap("obj-1", strPtr("bob"), f64Ptr(53.3498), f64Ptr(-6.2603), atDay(2, 11)),
		tap("obj-1", strPtr("alice"), nil, nil, atDay(3, 12)),
		tap("obj-1", nil, f64Ptr(53.3498), f64Ptr(-6.2603), atDay(4, 13)),
	}
	events[0].PlaceLabel = strPtr("Cork, Ireland")
	events[3].PlaceLabel = strPtr("Dublin, Ireland")

	s := Summarize("obj-1", events)

	if s.TotalTaps != 4 {
		t.Errorf("TotalTaps = %d, want 4 (coordinate-less taps still count)", s.TotalTaps)
	}
	if s.UniqueHolders != 2 {
		t.Errorf("UniqueHolders = %d, want 2 (anonymous tap excluded)", s.UniqueHolders)
	}
	// One leg Cork->Dublin; the gap event has no coordinates and the
	// final leg is zero length.
	if math.Abs(s.TotalDistanceKm-219.7) > 2.0 {
		t.Errorf("TotalDistanceKm = %v, want ~219.7", s.TotalDistanceKm)
	}
	if s.FirstTap == nil || s.FirstTap.PlaceLabel == nil || *s.FirstTap.PlaceLabel != "Cork, Ireland" {
		t.Errorf("FirstTap = %+v, want Cork label", s.FirstTap)
	}
	if s.LastTap == nil || s.LastTap.PlaceLabel == nil || *s.LastTap.PlaceLabel != "Dublin, Ireland" {
		t.Errorf("LastTap = %+v, want Dublin label", s.LastTap)
	}
}

func TestSummarizeOrderInvariance(t *testing.T) {
	ordered := []models.TapEvent{
		tap("obj-1", strPtr("alice"), f64Ptr(51.8985), f64Ptr(-8.4756), atDay(1, 10)),
		tap("obj-1", strPtr("bob"), f64Ptr(53.3498), f64Ptr(-6.2603), atDay(2, 11)),
		tap("obj-1", strPtr("carol"), f64Ptr(51.8985), f64Ptr(-8.4756), atDay(3, 12)),
	}
	shuffled := []models.TapEvent{ordered[2], ordered[0], ordered[1]}

	a := Summarize("obj-1", ordered)
	b := Summarize("obj-1", shuffled)

	if math.Abs(a.TotalDistanceKm-b.TotalDistanceKm) > 1e-9 {
		t.Errorf("distance depends on input order: %v vs %v", a.TotalDistanceKm, b.TotalDistanceKm)
	}
	if !a.FirstTap.ObservedAt.Equal(b.FirstTap.ObservedAt) {
		t.Errorf("first tap depends on input order")
	}
	if !a.LastTap.ObservedAt.Equal(b.LastTap.ObservedAt) {
		t.Errorf("last tap depends on input order")
	}
}

func TestComputeSignals(t *testing.T) {
	mk := func(hour int, city, country string) models.TapEvent {
		e := tap("obj-1", nil, nil, nil, at(hour))
		if city != "" {
			e.CoarseCity = strPtr(city)
		}
		if country != "" {
			e.CoarseCountry = strPtr(country)
		}
		return e
	}

	tests := []struct {
		name          string
		events        []models.TapEvent
		wantNight     float64
		wantCountries int
		wantCities    int
	}{
		{
			name:   "empty",
			events: nil,
		},
		{
			name: "night window is [21,06)",
			events: []models.TapEvent{
				mk(20, "", ""), // day
				mk(21, "", ""), // night
				mk(23, "", ""), // night
				mk(0, "", ""),  // night
				mk(5, "", ""),  // night
				mk(6, "", ""),  // day
			},
			wantNight: 4.0 / 6.0,
		},
		{
			name: "distinct labels counted once",
			events: []models.TapEvent{
				mk(12, "Cork", "Ireland"),
				mk(12, "Cork", "Ireland"),
				mk(12, "Dublin", "Ireland"),
				mk(12, "Paris", "France"),
				mk(12, "", ""),
			},
			wantCountries: 2,
			wantCities:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := ComputeSignals(tt.events, nil)

			if sig.TotalTaps != len(tt.events) {
				t.Errorf("TotalTaps = %d, want %d", sig.TotalTaps, len(tt.events))
			}
			if math.Abs(sig.NightRatio-tt.wantNight) > 1e-9 {
				t.Errorf("NightRatio = %v, want %v", sig.NightRatio, tt.wantNight)
			}
			if sig.Countries != tt.wantCountries {
				t.Errorf("Countries = %d, want %d", sig.Countries, tt.wantCountries)
			}
			if sig.Cities != tt.wantCities {
				t.Errorf("Cities = %d, want %d", sig.Cities, tt.wantCities)
			}
		})
	}
}

func TestActivity(t *testing.T) {
	events := []models.TapEvent{
		tap("obj-1", strPtr("alice"), f64Ptr(51.8985), f64Ptr(-8.4756), atDay(1, 10)),
		tap("obj-1", strPtr("bob"), f64Ptr(53.3498), f64Ptr(-6.2603), atDay(2, 11)),
	}

	a := Activity("obj-1", events)

	if a.TotalTaps != 2 || a.UniqueHolders != 2 {
		t.Errorf("Activity counts wrong: %+v", a)
	}
	if a.LastTap == nil || !a.LastTap.ObservedAt.Equal(atDay(2, 11)) {
		t.Errorf("Activity LastTap = %+v", a.LastTap)
	}
}
