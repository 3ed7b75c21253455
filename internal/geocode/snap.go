// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

package geocode

import (
	"fmt"
	"math"
)

// Snap rounds a coordinate to the nearest multiple of step. With the
// default 0.01 step this collapses positions into roughly 1.1 km grid
// cells, so exact locations never reach the provider or the cache.
func Snap(value, step float64) float64 {
	if step <= 0 {
		return value
	}
	return math.Round(value/step) * step
}

// SnapPoint snaps both coordinates of a position.
func SnapPoint(lat, lon, step float64) (float64, float64) {
	return Snap(lat, step), Snap(lon, step)
}

// CellKey returns the cache key for a snapped coordinate pair. Keys are
// formatted at 2-decimal precision so coordinates in the same grid cell
// always collide onto one entry.
func CellKey(lat, lon float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}
