package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"padel-api/internal/domain"
	"padel-api/pkg/database"
)

type PostgresCourtRepository struct {
	db *database.PostgresDB
}

func NewCourtRepository(db *database.PostgresDB) *PostgresCourtRepository {
	return &PostgresCourtRepository{db: db}
}

const courtColumns = `
	id, partner_id, location_id, admin_user_id, name, address, city,
	latitude, longitude, COALESCE(phone, ''), facilities,
	COALESCE(description, ''), is_active, created_at, updated_at
`

func scanCourt(row pgx.Row) (*domain.Court, error) {
	var c domain.Court
	err := row.Scan(
		&c.ID,
		&c.PartnerID,
		&c.LocationID,
		&c.AdminUserID,
		&c.Name,
		&c.Address,
		&c.City,
		&c.Latitude,
		&c.Longitude,
		&c.Phone,
		&c.Facilities,
		&c.Description,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves an active court by ID
func (r *PostgresCourtRepository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE id = $1 AND is_active = true AND deleted_at IS NULL`

	court, err := scanCourt(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get court: %w", err)
	}

	return court, nil
}

// ListActive retrieves active courts, optionally filtered by city
func (r *PostgresCourtRepository) ListActive(ctx context.Context, city string) ([]*domain.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE is_active = true AND deleted_at IS NULL`
	args := []interface{}{}

	if city != "" {
		args = append(args, "%"+city+"%")
		query += fmt.Sprintf(" AND city ILIKE $%d", len(args))
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	defer rows.Close()

	var courts []*domain.Court
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan court: %w", err)
		}
		courts = append(courts, c)
	}

	return courts, rows.Err()
}

// Create creates a new court
func (r *PostgresCourtRepository) Create(ctx context.Context, court *domain.Court) error {
	query := `
		INSERT INTO courts (
			partner_id, location_id, admin_user_id, name, address, city,
			latitude, longitude, phone, facilities, description, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, NULLIF($11, ''), true)
		RETURNING id, is_active, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		court.PartnerID,
		court.LocationID,
		court.AdminUserID,
		court.Name,
		court.Address,
		court.City,
		court.Latitude,
		court.Longitude,
		court.Phone,
		court.Facilities,
		court.Description,
	).Scan(&court.ID, &court.IsActive, &court.CreatedAt, &court.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create court: %w", err)
	}

	return nil
}

// Update persists mutable court fields
func (r *PostgresCourtRepository) Update(ctx context.Context, court *domain.Court) error {
	query := `
		UPDATE courts
		SET name = $2, address = $3, city = $4, latitude = $5, longitude = $6,
		    phone = NULLIF($7, ''), facilities = $8, description = NULLIF($9, ''),
		    is_active = $10, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		court.ID,
		court.Name,
		court.Address,
		court.City,
		court.Latitude,
		court.Longitude,
		court.Phone,
		court.Facilities,
		court.Description,
		court.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update court: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete soft-deletes a court
func (r *PostgresCourtRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE courts SET deleted_at = NOW(), is_active = false WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete court: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
