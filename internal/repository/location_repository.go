package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"padel-api/internal/domain"
	"padel-api/pkg/database"
)

type PostgresLocationRepository struct {
	db *database.PostgresDB
}

func NewLocationRepository(db *database.PostgresDB) *PostgresLocationRepository {
	return &PostgresLocationRepository{db: db}
}

const locationColumns = `
	pl.id, pl.partner_id, pl.name, pl.address, pl.city,
	COALESCE(pl.province, ''), COALESCE(pl.postal_code, ''),
	pl.latitude, pl.longitude, COALESCE(pl.phone, ''),
	COALESCE(pl.email, ''), pl.is_active, pl.created_at, pl.updated_at,
	p.id, p.name, p.is_active
`

func scanLocation(row pgx.Row) (*domain.PartnerLocation, error) {
	var l domain.PartnerLocation
	var p domain.Partner
	err := row.Scan(
		&l.ID,
		&l.PartnerID,
		&l.Name,
		&l.Address,
		&l.City,
		&l.Province,
		&l.PostalCode,
		&l.Latitude,
		&l.Longitude,
		&l.Phone,
		&l.Email,
		&l.IsActive,
		&l.CreatedAt,
		&l.UpdatedAt,
		&p.ID,
		&p.Name,
		&p.IsActive,
	)
	if err != nil {
		return nil, err
	}
	l.Partner = &p
	return &l, nil
}

// GetByID retrieves an active location with its active courts
func (r *PostgresLocationRepository) GetByID(ctx context.Context, id int64) (*domain.PartnerLocation, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM partner_locations pl
		JOIN partners p ON p.id = pl.partner_id AND p.is_active = true
		WHERE pl.id = $1 AND pl.is_active = true
	`

	location, err := scanLocation(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	courts, err := r.activeCourts(ctx, id)
	if err != nil {
		return nil, err
	}
	location.Courts = courts

	return location, nil
}

// ListActive retrieves active locations of active partners
func (r *PostgresLocationRepository) ListActive(ctx context.Context) ([]*domain.PartnerLocation, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM partner_locations pl
		JOIN partners p ON p.id = pl.partner_id AND p.is_active = true
		WHERE pl.is_active = true
		ORDER BY pl.name ASC
	`

	return r.queryLocations(ctx, query)
}

// SearchByCity retrieves active locations whose city matches
func (r *PostgresLocationRepository) SearchByCity(ctx context.Context, city string) ([]*domain.PartnerLocation, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM partner_locations pl
		JOIN partners p ON p.id = pl.partner_id AND p.is_active = true
		WHERE pl.is_active = true AND pl.city ILIKE $1
		ORDER BY pl.city ASC, pl.name ASC
	`

	return r.queryLocations(ctx, query, "%"+city+"%")
}

func (r *PostgresLocationRepository) queryLocations(ctx context.Context, query string, args ...interface{}) ([]*domain.PartnerLocation, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []*domain.PartnerLocation
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}

	return locations, rows.Err()
}

func (r *PostgresLocationRepository) activeCourts(ctx context.Context, locationID int64) ([]domain.Court, error) {
	query := `
		SELECT id, partner_id, location_id, admin_user_id, name, address, city,
		       latitude, longitude, COALESCE(phone, ''), facilities,
		       COALESCE(description, ''), is_active, created_at, updated_at
		FROM courts
		WHERE location_id = $1 AND is_active = true AND deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list location courts: %w", err)
	}
	defer rows.Close()

	var courts []domain.Court
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan court: %w", err)
		}
		courts = append(courts, *c)
	}

	return courts, rows.Err()
}
