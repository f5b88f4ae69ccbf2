package geo

import (
	"math"
	"sort"
)

const earthRadiusKm = 6371

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locatable is anything that carries coordinates.
type Locatable interface {
	Coordinates() (lat, lon float64)
}

// Result pairs a candidate with its computed distance from the query point.
type Result[T Locatable] struct {
	Item       T       `json:"item"`
	DistanceKm float64 `json:"distance_km"`
}

// DistanceKm computes the great-circle distance between two coordinates
// using the haversine formula. Symmetric and deterministic; inputs are
// assumed validated (lat in [-90,90], lon in [-180,180]).
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Nearest filters candidates to those within radiusKm of center, sorted by
// ascending distance. Ties keep the original candidate order. A limit <= 0
// means no truncation. An empty result is valid, not an error.
func Nearest[T Locatable](candidates []T, center Point, radiusKm float64, limit int) []Result[T] {
	results := make([]Result[T], 0, len(candidates))
	for _, c := range candidates {
		lat, lon := c.Coordinates()
		d := DistanceKm(center.Latitude, center.Longitude, lat, lon)
		if d <= radiusKm {
			results = append(results, Result[T]{Item: c, DistanceKm: d})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
