// Where's My Lighter - NFC Object Tracking and Journey Analytics
// Copyright 2026 Shane Breen
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shane-Breen/wheres-my-lighter

// Package journey computes per-object travel aggregates from the
// ordered tap event stream: total great-circle distance, unique holder
// counts, first/last sightings, and the behavioral signals fed to the
// archetype classifier.
package journey

import "math"

// Point is a coordinate pair in degrees. Callers filter out events
// with missing or non-finite coordinates before building points; the
// aggregator does not defend against them.
type Point struct {
	Lat float64
	Lon float64
}

// HaversineKm calculates the great-circle distance between two points
// on Earth using the Haversine formula. Result is in kilometers.
func HaversineKm(a, b Point) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := a.Lat * math.Pi / 180.0
	lon1Rad := a.Lon * math.Pi / 180.0
	lat2Rad := b.Lat * math.Pi / 180.0
	lon2Rad := b.Lon * math.Pi / 180.0

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// TotalDistanceKm sums the great-circle distance between each
// consecutive pair of points, in order. Zero or one point yields 0.
// Full precision is returned; display rounding is the caller's job.
func TotalDistanceKm(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	total := 0.0
	for i := 1; i < len(points); i++ {
		total += HaversineKm(points[i-1], points[i])
	}
	return total
}

// RoundKm rounds a distance to one decimal place for display.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}
