package service

import (
	"context"

	"padel-api/internal/domain"
	"padel-api/internal/geo"
	"padel-api/internal/repository"
	"padel-api/pkg/errors"
	"padel-api/pkg/logger"
	"padel-api/pkg/redis"
)

type locationService struct {
	locations repository.LocationRepository
	cache     *CacheService
	logger    *logger.Logger
}

// NewLocationService creates a partner location service
func NewLocationService(locations repository.LocationRepository, cache *CacheService, log *logger.Logger) LocationService {
	return &locationService{locations: locations, cache: cache, logger: log}
}

// ListLocations lists active locations of active partners
func (s *locationService) ListLocations(ctx context.Context) ([]*domain.PartnerLocation, error) {
	locations, err := s.locations.ListActive(ctx)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list locations", err)
	}
	return locations, nil
}

// GetLocation loads a location with its active courts
func (s *locationService) GetLocation(ctx context.Context, locationID int64) (*domain.PartnerLocation, error) {
	var cacheKey string
	if s.cache.Enabled() {
		cacheKey = s.cache.Keys().KeyLocationByID(locationID)
		var cached domain.PartnerLocation
		if s.cache.GetJSON(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	location, err := s.locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get location", err)
	}
	if location == nil {
		return nil, errors.NewNotFoundError("Location not found")
	}

	if cacheKey != "" {
		s.cache.SetJSON(ctx, cacheKey, location, redis.TTLLocationByID)
	}

	return location, nil
}

// SearchByCity lists active locations whose city matches
func (s *locationService) SearchByCity(ctx context.Context, city string) ([]*domain.PartnerLocation, error) {
	if city == "" {
		return nil, errors.NewValidationError("The given data was invalid", map[string]interface{}{
			"city": "The city field is required",
		})
	}

	locations, err := s.locations.SearchByCity(ctx, city)
	if err != nil {
		return nil, errors.NewInternalError("Failed to search locations", err)
	}
	return locations, nil
}

// Nearest finds active locations within radiusKm of the center, nearest
// first, capped at limit when positive
func (s *locationService) Nearest(ctx context.Context, center geo.Point, radiusKm float64, limit int) ([]geo.Result[domain.PartnerLocation], error) {
	var cacheKey string
	if s.cache.Enabled() {
		cacheKey = s.cache.Keys().KeyLocationsNearby(QueryHash(center.Latitude, center.Longitude, radiusKm, limit))
		var cached []geo.Result[domain.PartnerLocation]
		if s.cache.GetJSON(ctx, cacheKey, &cached) {
			return cached, nil
		}
	}

	locations, err := s.locations.ListActive(ctx)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list locations", err)
	}

	candidates := make([]domain.PartnerLocation, 0, len(locations))
	for _, l := range locations {
		candidates = append(candidates, *l)
	}
	results := geo.Nearest(candidates, center, radiusKm, limit)

	if cacheKey != "" {
		s.cache.SetJSON(ctx, cacheKey, results, redis.TTLNearby)
	}

	return results, nil
}
