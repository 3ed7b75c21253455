// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package api

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/Shane-Breen/wheres-my-lighter/internal/validation"
)

// TapRequest is the body for POST /api/v1/taps. Coordinates arrive as
// short "lat"/"lng" keys and are optional, but must be supplied as a
// pair; timestamps are assigned server-side.
type TapRequest struct {
	ObjectID  string   `json:"object_id" validate:"required,min=1,max=128"`
	HolderID  *string  `json:"holder_id" validate:"omitempty,min=1,max=128"`
	Latitude  *float64 `json:"lat" validate:"omitempty,latitude"`
	Longitude *float64 `json:"lng" validate:"omitempty,longitude"`
	AccuracyM *float64 `json:"accuracy_m" validate:"omitempty,gte=0"`
}

// FollowRequest is the body for POST /api/v1/follows. Frequency
// defaults to "moves" when omitted.
type FollowRequest struct {
	ObjectID  string `json:"object_id" validate:"required,min=1,max=128"`
	Email     string `json:"email" validate:"required,email"`
	Frequency string `json:"frequency" validate:"omitempty,oneof=all milestones moves"`
}

// ProfileRequest is the body for POST /api/v1/profiles.
type ProfileRequest struct {
	HolderID    string  `json:"holder_id" validate:"required,min=1,max=128"`
	DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=80"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,url,max=2048"`
}

// decodeAndValidate decodes a JSON request body into dst and runs
// struct validation. The body size is capped before decoding; unknown
// fields are rejected so typos fail loudly instead of silently
// dropping data.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		return verr
	}

	return nil
}

// writeDecodeError maps a decode/validation failure onto the right
// error response.
func writeDecodeError(rw *ResponseWriter, err error) {
	if verr, ok := err.(*validation.RequestValidationError); ok {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	rw.BadRequest(err.Error())
}
