package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a user in the system
type User struct {
	ID    uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name  string    `json:"name" gorm:"type:varchar(255);not null"`
	Role  UserRole  `json:"role" gorm:"type:varchar(50);default:'candidate';not null"`

	PasswordHash string `json:"-" gorm:"column:password_hash;type:text;not null"` // Never expose in JSON

	// Profile
	ProfileImageKey *string `json:"-" gorm:"type:varchar(500)"`
	ProfileImageURL *string `json:"profile_image_url,omitempty" gorm:"-"`

	// Guest accounts are auto-provisioned from HR invitations and carry a
	// random password the candidate never sees.
	IsGuest bool `json:"is_guest" gorm:"default:false;not null"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty" gorm:"type:timestamp"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserRole defines user roles
type UserRole string

const (
	RoleCandidate UserRole = "candidate"
	RoleHR        UserRole = "hr"
	RoleAdmin     UserRole = "admin"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleCandidate, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// NewUser creates a new user with default values. Emails are stored
// lowercased so lookups and invitation matching are case-insensitive.
func NewUser(email, name string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Name:      name,
		Role:      RoleCandidate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewGuestUser creates a user auto-provisioned from an interview invitation.
func NewGuestUser(email, name string) *User {
	user := NewUser(email, name)
	user.IsGuest = true
	return user
}

// UpdateLastLogin updates the last login timestamp
func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// IsHR checks if user can schedule interviews for candidates
func (u *User) IsHR() bool {
	return u.Role == RoleHR || u.Role == RoleAdmin
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.Name == "" {
		return ErrInvalidName
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	return nil
}

// PublicUser returns a user with sensitive fields removed
type PublicUser struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            UserRole  `json:"role"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	IsGuest         bool      `json:"is_guest"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToPublic converts User to PublicUser
func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.Role,
		ProfileImageURL: u.ProfileImageURL,
		IsGuest:         u.IsGuest,
		CreatedAt:       u.CreatedAt,
	}
}
