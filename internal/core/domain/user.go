package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Role is the access level granted to a user.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// UserStatus marks whether an account may sign in.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// Valid reports whether s is active or inactive.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User models an account managed through the dashboard.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Image        string     `json:"image,omitempty"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// UserPatch carries a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Name   *string
	Email  *string
	Image  *string
	Status *UserStatus
	Role   *Role
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Image == nil && p.Status == nil && p.Role == nil
}

// Validate checks every present field. The email, when present, is normalized in place.
func (p *UserPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return NewValidationError("name cannot be empty")
	}
	if p.Email != nil {
		normalized := NormalizeEmail(*p.Email)
		if !ValidEmail(normalized) {
			return NewValidationError("email must be a valid email address")
		}
		p.Email = &normalized
	}
	if p.Status != nil && !p.Status.Valid() {
		return NewValidationError(`invalid status value. Must be "active" or "inactive"`)
	}
	if p.Role != nil && !p.Role.Valid() {
		return NewValidationError("invalid role value. Must be ADMIN, MANAGER or USER")
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email is a bare address such as alice@example.com.
func ValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}
