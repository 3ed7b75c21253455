// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

// Package store persists tap events, follow subscriptions, and holder
// profiles through a PostgREST endpoint (Supabase). Each operation is
// a single-row call with no retry policy; failures surface as
// *StoreError carrying the upstream status code.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/Shane-Breen/wheres-my-lighter/internal/config"
	"github.com/Shane-Breen/wheres-my-lighter/internal/metrics"
)

// maxErrorBodySize caps how much of an error response body is read
// for diagnostics.
const maxErrorBodySize = 64 * 1024

// StoreError is a structured failure from the event store.
type StoreError struct {
	StatusCode int
	Message    string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error (status %d): %s", e.StatusCode, e.Message)
}

// Client is a PostgREST client for the service's three tables. All
// methods are safe for concurrent use.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a Client from store configuration. The timeout
// bounds each round trip; there is no retry.
func NewClient(cfg config.StoreConfig) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// do issues one request with PostgREST auth headers and returns the
// response body on 2xx. prefer sets the Prefer header when non-empty.
func (c *Client) do(ctx context.Context, method, path, prefer string, body interface{}) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &StoreError{
			StatusCode: 0,
			Message:    fmt.Sprintf("request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StoreError{
			StatusCode: resp.StatusCode,
			Message:    string(readBodyForError(resp.Body)),
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return respBody, nil
}

// record wraps do with per-operation metrics.
func (c *Client) record(ctx context.Context, operation, table, method, path, prefer string, body interface{}) ([]byte, error) {
	start := time.Now()
	respBody, err := c.do(ctx, method, path, prefer, body)

	status := 0
	var storeErr *StoreError
	if err != nil {
		if se, ok := err.(*StoreError); ok {
			storeErr = se
			status = se.StatusCode
		}
	}
	metrics.RecordStoreRequest(operation, table, time.Since(start), err, status)

	if storeErr != nil {
		return nil, storeErr
	}
	return respBody, err
}

// readBodyForError reads at most maxErrorBodySize bytes for error
// reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}

// eqFilter builds a PostgREST equality filter value for a query param.
func eqFilter(value string) string {
	return "eq." + url.QueryEscape(value)
}
