// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package models

// FollowFrequency is the notification cadence for a follow
// subscription. The set is closed; anything else is rejected at the
// API boundary.
type FollowFrequency string

const (
	// FrequencyAll notifies on every new tap.
	FrequencyAll FollowFrequency = "all"
	// FrequencyMilestones notifies on holder-count and distance milestones.
	FrequencyMilestones FollowFrequency = "milestones"
	// FrequencyMoves notifies when the object changes city. Default.
	FrequencyMoves FollowFrequency = "moves"
)

// Valid reports whether f is a member of the closed frequency set.
func (f FollowFrequency) Valid() bool {
	switch f {
	case FrequencyAll, FrequencyMilestones, FrequencyMoves:
		return true
	}
	return false
}

// FollowSubscription is keyed by the unique (object_id, email) pair.
// A repeat subscription for the same pair overwrites the frequency
// rather than creating a duplicate row.
type FollowSubscription struct {
	ObjectID  string          `json:"object_id"`
	Email     string          `json:"email"`
	Frequency FollowFrequency `json:"frequency"`
}

// Profile is the optional social identity attached to a holder.
// Upserted by holder_id; never deleted by this service.
type Profile struct {
	HolderID    string  `json:"holder_id"`
	DisplayName *string `json:"display_name,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}
