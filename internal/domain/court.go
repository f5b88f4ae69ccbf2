package domain

import "time"

// Partner represents a business that owns locations and courts
type Partner struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartnerLocation represents a venue owned by a partner
type PartnerLocation struct {
	ID         int64     `json:"id"`
	PartnerID  int64     `json:"partner_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Province   string    `json:"province,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Partner *Partner `json:"partner,omitempty"`
	Courts  []Court  `json:"courts,omitempty"`
}

// Coordinates implements geo.Locatable
func (l PartnerLocation) Coordinates() (float64, float64) {
	return l.Latitude, l.Longitude
}

// Court represents a playable court at a partner location
type Court struct {
	ID          int64     `json:"id"`
	PartnerID   int64     `json:"partner_id"`
	LocationID  int64     `json:"location_id"`
	AdminUserID *int64    `json:"admin_user_id,omitempty"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Phone       string    `json:"phone,omitempty"`
	Facilities  []string  `json:"facilities,omitempty"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Coordinates implements geo.Locatable
func (c Court) Coordinates() (float64, float64) {
	return c.Latitude, c.Longitude
}

// CreateCourtRequest represents court creation data
type CreateCourtRequest struct {
	PartnerID   int64    `json:"partner_id"`
	LocationID  int64    `json:"location_id"`
	AdminUserID *int64   `json:"admin_user_id,omitempty"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Phone       string   `json:"phone,omitempty"`
	Facilities  []string `json:"facilities,omitempty"`
	Description string   `json:"description,omitempty"`
}

// UpdateCourtRequest represents court update data; nil fields are left unchanged
type UpdateCourtRequest struct {
	Name        *string   `json:"name,omitempty"`
	Address     *string   `json:"address,omitempty"`
	City        *string   `json:"city,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Facilities  *[]string `json:"facilities,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
}
