package geo

import (
	"math"
	"testing"
)

type testSpot struct {
	name string
	lat  float64
	lon  float64
}

func (s testSpot) Coordinates() (float64, float64) {
	return s.lat, s.lon
}

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{
			name: "identical points",
			lat1: 13.7563, lon1: 100.5018,
			lat2: 13.7563, lon2: 100.5018,
			want:      0,
			tolerance: 1e-9,
		},
		{
			name: "bangkok to chiang mai",
			lat1: 13.7563, lon1: 100.5018,
			lat2: 18.7883, lon2: 98.9853,
			want:      580,
			tolerance: 10,
		},
		{
			name: "short hop within a city",
			lat1: 13.7563, lon1: 100.5018,
			lat2: 13.7306, lon2: 100.5782,
			want:      8.7,
			tolerance: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("DistanceKm() = %v, want %v (±%v)", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	d1 := DistanceKm(13.7563, 100.5018, 18.7883, 98.9853)
	d2 := DistanceKm(18.7883, 98.9853, 13.7563, 100.5018)

	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestNearest(t *testing.T) {
	center := Point{Latitude: 13.7563, Longitude: 100.5018}
	spots := []testSpot{
		{name: "far", lat: 18.7883, lon: 98.9853},     // ~580 km
		{name: "near", lat: 13.7306, lon: 100.5782},   // ~9 km
		{name: "center", lat: 13.7563, lon: 100.5018}, // 0 km
		{name: "edge", lat: 13.8000, lon: 100.5018},   // ~5 km
	}

	results := Nearest(spots, center, 10, 0)

	if len(results) != 3 {
		t.Fatalf("expected 3 results within 10km, got %d", len(results))
	}

	wantOrder := []string{"center", "edge", "near"}
	for i, want := range wantOrder {
		if results[i].Item.name != want {
			t.Errorf("result[%d] = %s, want %s", i, results[i].Item.name, want)
		}
	}

	for i := 1; i < len(results); i++ {
		if results[i].DistanceKm < results[i-1].DistanceKm {
			t.Errorf("results not sorted ascending at index %d", i)
		}
	}
}

func TestNearestLimit(t *testing.T) {
	center := Point{Latitude: 0, Longitude: 0}
	spots := []testSpot{
		{name: "a", lat: 0.01, lon: 0},
		{name: "b", lat: 0.02, lon: 0},
		{name: "c", lat: 0.03, lon: 0},
	}

	results := Nearest(spots, center, 100, 2)
	if len(results) != 2 {
		t.Fatalf("expected limit of 2 results, got %d", len(results))
	}
	if results[0].Item.name != "a" || results[1].Item.name != "b" {
		t.Errorf("limit kept wrong candidates: %s, %s", results[0].Item.name, results[1].Item.name)
	}
}

func TestNearestStableTies(t *testing.T) {
	center := Point{Latitude: 0, Longitude: 0}
	// Same distance from the center, so input order decides.
	spots := []testSpot{
		{name: "first", lat: 0.01, lon: 0},
		{name: "second", lat: -0.01, lon: 0},
		{name: "third", lat: 0, lon: 0.01},
	}

	results := Nearest(spots, center, 100, 0)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if results[i].Item.name != want {
			t.Errorf("tie order broken at %d: got %s, want %s", i, results[i].Item.name, want)
		}
	}
}

func TestNearestEmpty(t *testing.T) {
	center := Point{Latitude: 0, Longitude: 0}

	if results := Nearest([]testSpot{}, center, 10, 0); len(results) != 0 {
		t.Errorf("expected empty result for no candidates, got %d", len(results))
	}

	spots := []testSpot{{name: "far", lat: 50, lon: 50}}
	if results := Nearest(spots, center, 10, 0); len(results) != 0 {
		t.Errorf("expected empty result when nothing is in radius, got %d", len(results))
	}
}
