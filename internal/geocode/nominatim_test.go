// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNominatimReverse(t *testing.T) {
	var gotUA string
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = map[string]string{
			"format":         r.URL.Query().Get("format"),
			"zoom":           r.URL.Query().Get("zoom"),
			"addressdetails": r.URL.Query().Get("addressdetails"),
			"lat":            r.URL.Query().Get("lat"),
			"lon":            r.URL.Query().Get("lon"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"address":{"town":"Midleton","county":"County Cork","country":"Ireland"}}`))
	}))
	defer srv.Close()

	p := NewNominatimProvider(srv.URL, "test-agent/1.0", time.Second)

	labels, err := p.Reverse(context.Background(), 52.12, -8.57)
	if err != nil {
		t.Fatalf("Reverse() error: %v", err)
	}

	if gotUA != "test-agent/1.0" {
		t.Errorf("User-Agent = %q, want test-agent/1.0", gotUA)
	}
	if gotQuery["format"] != "jsonv2" || gotQuery["zoom"] != "14" || gotQuery["addressdetails"] != "1" {
		t.Errorf("query params = %v", gotQuery)
	}
	if gotQuery["lat"] != "52.12" || gotQuery["lon"] != "-8.57" {
		t.Errorf("coordinates sent as (%s, %s), want snapped values", gotQuery["lat"], gotQuery["lon"])
	}

	if labels.City != "Midleton" {
		t.Errorf("City = %q, want Midleton (town outranks county)", labels.City)
	}
	if labels.Country != "Ireland" {
		t.Errorf("Country = %q, want Ireland", labels.Country)
	}
}

func TestNominatimLabelPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCity string
	}{
		{
			name:     "village outranks city",
			body:     `{"address":{"village":"Ballycotton","city":"Cork","country":"Ireland"}}`,
			wantCity: "Ballycotton",
		},
		{
			name:     "suburb used when no settlement name",
			body:     `{"address":{"suburb":"Blackrock","country":"Ireland"}}`,
			wantCity: "Blackrock",
		},
		{
			name:     "county fallback",
			body:     `{"address":{"county":"County Cork","country":"Ireland"}}`,
			wantCity: "County Cork",
		},
		{
			name:     "state fallback after county",
			body:     `{"address":{"state":"Munster","country":"Ireland"}}`,
			wantCity: "Munster",
		},
		{
			name:     "country only",
			body:     `{"address":{"country":"Ireland"}}`,
			wantCity: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewNominatimProvider(srv.URL, "test-agent/1.0", time.Second)
			labels, err := p.Reverse(context.Background(), 52.12, -8.57)
			if err != nil {
				t.Fatalf("Reverse() error: %v", err)
			}
			if labels.City != tt.wantCity {
				t.Errorf("City = %q, want %q", labels.City, tt.wantCity)
			}
		})
	}
}

func TestNominatimErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"server error", http.StatusInternalServerError, "", true},
		{"rate limited", http.StatusTooManyRequests, "", true},
		{"unable to geocode", http.StatusOK, `{"error":"Unable to geocode"}`, true},
		{"ok", http.StatusOK, `{"address":{"country":"Ireland"}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewNominatimProvider(srv.URL, "test-agent/1.0", time.Second)
			_, err := p.Reverse(context.Background(), 52.12, -8.57)

			if tt.wantErr && err == nil {
				t.Errorf("Reverse() succeeded, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Reverse() error: %v", err)
			}
		})
	}
}

func TestNominatimTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"address":{"country":"Ireland"}}`))
	}))
	defer srv.Close()

	p := NewNominatimProvider(srv.URL, "test-agent/1.0", 20*time.Millisecond)
	if _, err := p.Reverse(context.Background(), 52.12, -8.57); err == nil {
		t.Errorf("Reverse() succeeded, want timeout error")
	}
}
