// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Provider resolves a snapped coordinate pair to coarse place labels.
type Provider interface {
	Name() string
	Reverse(ctx context.Context, lat, lon float64) (*PlaceLabels, error)
}

// PlaceLabels is the raw label set extracted from one provider
// response.
type PlaceLabels struct {
	City    string
	Country string
}

// NominatimProvider implements Provider against a Nominatim-compatible
// reverse-geocoding endpoint. The public instance at
// nominatim.openstreetmap.org requires a distinctive User-Agent and
// allows at most one request per second; rate limiting is the
// Resolver's responsibility.
type NominatimProvider struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// nominatimResponse covers the subset of the reverse response this
// service reads. Address keys vary by place type, so every candidate
// field is declared and precedence is applied after decoding.
type nominatimResponse struct {
	Address struct {
		Town         string `json:"town"`
		Village      string `json:"village"`
		City         string `json:"city"`
		Hamlet       string `json:"hamlet"`
		Locality     string `json:"locality"`
		Municipality string `json:"municipality"`
		Suburb       string `json:"suburb"`
		County       string `json:"county"`
		State        string `json:"state"`
		Region       string `json:"region"`
		Country      string `json:"country"`
	} `json:"address"`
	Error string `json:"error"`
}

// NewNominatimProvider creates a provider for the given endpoint. The
// timeout bounds the full request; a slow provider fails the lookup
// rather than stalling the caller.
func NewNominatimProvider(baseURL, userAgent string, timeout time.Duration) *NominatimProvider {
	return &NominatimProvider{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// Name returns the provider name.
func (p *NominatimProvider) Name() string {
	return "nominatim"
}

// Reverse performs a reverse geocode lookup. The coordinates must
// already be snapped; this method sends them as given.
func (p *NominatimProvider) Reverse(ctx context.Context, lat, lon float64) (*PlaceLabels, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("zoom", "14")
	q.Set("addressdetails", "1")

	reqURL := fmt.Sprintf("%s/reverse?%s", p.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	// Nominatim reports "Unable to geocode" as 200 with an error key.
	if result.Error != "" {
		return nil, fmt.Errorf("nominatim error: %s", result.Error)
	}

	return extractLabels(&result), nil
}

// extractLabels applies the label precedence: settlement-level names
// first, then county/state/region, with country carried separately.
func extractLabels(result *nominatimResponse) *PlaceLabels {
	addr := &result.Address

	city := firstNonEmpty(
		addr.Town,
		addr.Village,
		addr.City,
		addr.Hamlet,
		addr.Locality,
		addr.Municipality,
		addr.Suburb,
	)
	if city == "" {
		city = firstNonEmpty(addr.County, addr.State, addr.Region)
	}

	return &PlaceLabels{
		City:    city,
		Country: addr.Country,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
