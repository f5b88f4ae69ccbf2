package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"padel-api/internal/domain"
	"padel-api/internal/geo"
	"padel-api/internal/repository"
	"padel-api/pkg/errors"
	"padel-api/pkg/logger"
	"padel-api/pkg/redis"
)

type courtService struct {
	courts repository.CourtRepository
	cache  *CacheService
	logger *logger.Logger
}

// NewCourtService creates a court service
func NewCourtService(courts repository.CourtRepository, cache *CacheService, log *logger.Logger) CourtService {
	return &courtService{courts: courts, cache: cache, logger: log}
}

// ListCourts lists active courts, optionally by city
func (s *courtService) ListCourts(ctx context.Context, city string) ([]*domain.Court, error) {
	courts, err := s.courts.ListActive(ctx, city)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list courts", err)
	}
	return courts, nil
}

// GetCourt loads an active court
func (s *courtService) GetCourt(ctx context.Context, courtID int64) (*domain.Court, error) {
	var cacheKey string
	if s.cache.Enabled() {
		cacheKey = s.cache.Keys().KeyCourtByID(courtID)
		var cached domain.Court
		if s.cache.GetJSON(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	court, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to get court", err)
	}
	if court == nil {
		return nil, errors.NewNotFoundError("Court not found")
	}

	if cacheKey != "" {
		s.cache.SetJSON(ctx, cacheKey, court, redis.TTLCourtByID)
	}

	return court, nil
}

// CreateCourt registers a court
func (s *courtService) CreateCourt(ctx context.Context, req *domain.CreateCourtRequest) (*domain.Court, error) {
	if err := validateCreateCourt(req); err != nil {
		return nil, err
	}

	court := &domain.Court{
		PartnerID:   req.PartnerID,
		LocationID:  req.LocationID,
		AdminUserID: req.AdminUserID,
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Phone:       req.Phone,
		Facilities:  req.Facilities,
		Description: req.Description,
	}
	if err := s.courts.Create(ctx, court); err != nil {
		return nil, errors.NewInternalError("Failed to create court", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"court_id": court.ID,
		"city":     court.City,
	}).Info("Court created")
	s.cache.InvalidateCourts(ctx, court.ID)

	return court, nil
}

// UpdateCourt updates a court; admins or the court's own admin
func (s *courtService) UpdateCourt(ctx context.Context, caller *domain.User, courtID int64, req *domain.UpdateCourtRequest) (*domain.Court, error) {
	court, err := s.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if err := authorizeCourtManage(caller, court); err != nil {
		return nil, err
	}
	if err := applyCourtUpdate(court, req); err != nil {
		return nil, err
	}

	if err := s.courts.Update(ctx, court); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.NewNotFoundError("Court not found")
		}
		return nil, errors.NewInternalError("Failed to update court", err)
	}
	s.cache.InvalidateCourts(ctx, courtID)

	return court, nil
}

// DeleteCourt removes a court; admins or the court's own admin
func (s *courtService) DeleteCourt(ctx context.Context, caller *domain.User, courtID int64) error {
	court, err := s.GetCourt(ctx, courtID)
	if err != nil {
		return err
	}
	if err := authorizeCourtManage(caller, court); err != nil {
		return err
	}

	if err := s.courts.Delete(ctx, courtID); err != nil {
		if err == pgx.ErrNoRows {
			return errors.NewNotFoundError("Court not found")
		}
		return errors.NewInternalError("Failed to delete court", err)
	}
	s.cache.InvalidateCourts(ctx, courtID)

	return nil
}

// Nearby finds active courts within radiusKm of the center, nearest first
func (s *courtService) Nearby(ctx context.Context, center geo.Point, radiusKm float64) ([]geo.Result[domain.Court], error) {
	var cacheKey string
	if s.cache.Enabled() {
		cacheKey = s.cache.Keys().KeyCourtsNearby(QueryHash(center.Latitude, center.Longitude, radiusKm))
		var cached []geo.Result[domain.Court]
		if s.cache.GetJSON(ctx, cacheKey, &cached) {
			return cached, nil
		}
	}

	courts, err := s.courts.ListActive(ctx, "")
	if err != nil {
		return nil, errors.NewInternalError("Failed to list courts", err)
	}

	candidates := make([]domain.Court, 0, len(courts))
	for _, c := range courts {
		candidates = append(candidates, *c)
	}
	results := geo.Nearest(candidates, center, radiusKm, 0)

	if cacheKey != "" {
		s.cache.SetJSON(ctx, cacheKey, results, redis.TTLNearby)
	}

	return results, nil
}

func authorizeCourtManage(caller *domain.User, court *domain.Court) error {
	if caller.Role == domain.RoleSuperAdmin {
		return nil
	}
	if caller.Role == domain.RoleCourtAdmin && court.AdminUserID != nil && *court.AdminUserID == caller.ID {
		return nil
	}
	return errors.NewAuthorizationError("You are not allowed to manage this court")
}

func validateCreateCourt(req *domain.CreateCourtRequest) error {
	details := map[string]interface{}{}

	if req.PartnerID <= 0 {
		details["partner_id"] = "The partner id field is required"
	}
	if req.LocationID <= 0 {
		details["location_id"] = "The location id field is required"
	}
	if req.Name == "" {
		details["name"] = "The name field is required"
	}
	if req.Address == "" {
		details["address"] = "The address field is required"
	}
	if req.City == "" {
		details["city"] = "The city field is required"
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		details["latitude"] = "The latitude must be between -90 and 90"
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		details["longitude"] = "The longitude must be between -180 and 180"
	}

	if len(details) > 0 {
		return errors.NewValidationError("The given data was invalid", details)
	}
	return nil
}

func applyCourtUpdate(court *domain.Court, req *domain.UpdateCourtRequest) error {
	details := map[string]interface{}{}

	if req.Name != nil {
		if *req.Name == "" {
			details["name"] = "The name field is required"
		} else {
			court.Name = *req.Name
		}
	}
	if req.Address != nil {
		court.Address = *req.Address
	}
	if req.City != nil {
		court.City = *req.City
	}
	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 {
			details["latitude"] = "The latitude must be between -90 and 90"
		} else {
			court.Latitude = *req.Latitude
		}
	}
	if req.Longitude != nil {
		if *req.Longitude < -180 || *req.Longitude > 180 {
			details["longitude"] = "The longitude must be between -180 and 180"
		} else {
			court.Longitude = *req.Longitude
		}
	}
	if req.Phone != nil {
		court.Phone = *req.Phone
	}
	if req.Facilities != nil {
		court.Facilities = *req.Facilities
	}
	if req.Description != nil {
		court.Description = *req.Description
	}
	if req.IsActive != nil {
		court.IsActive = *req.IsActive
	}

	if len(details) > 0 {
		return errors.NewValidationError("The given data was invalid", details)
	}
	return nil
}
