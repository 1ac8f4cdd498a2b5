package utils

import (
	"math"
	"testing"
)

func TestCalculateHaversineDistance(t *testing.T) {
	// Same point.
	if d := CalculateHaversineDistance(17.677607, 83.198662, 17.677607, 83.198662); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}

	// Visakhapatnam to Bengaluru, roughly 800 km.
	d := CalculateHaversineDistance(17.677607, 83.198662, 12.9716, 77.5946)
	if math.Abs(d-800000) > 250000 {
		t.Errorf("distance out of plausible range: %f", d)
	}
}

func TestWithinRadius(t *testing.T) {
	const refLat, refLon = 17.677607, 83.198662

	cases := []struct {
		name     string
		lat, lon float64
		radius   float64
		want     bool
	}{
		{"same point", refLat, refLon, 1000, true},
		{"a few hundred meters away", 17.6800, 83.2000, 1000, true},
		{"another city", 12.9716, 77.5946, 1000, false},
		{"zero radius excludes everything but the point", 17.6800, 83.2000, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WithinRadius(tc.lat, tc.lon, refLat, refLon, tc.radius); got != tc.want {
				t.Errorf("WithinRadius() = %v, want %v", got, tc.want)
			}
		})
	}
}
