package domain

import "time"

// UserRole represents a user's platform role
type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleCourtAdmin UserRole = "court_admin"
	RoleSuperAdmin UserRole = "super_admin"
)

// IsAdmin reports whether the role grants admin privileges
func (r UserRole) IsAdmin() bool {
	return r == RoleCourtAdmin || r == RoleSuperAdmin
}

// Valid reports whether the role is a known value
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleCourtAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User represents a registered user
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user has an admin role
func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}

// RegisterRequest represents a registration submission
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// LoginRequest represents a login submission
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after successful register/login
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
