package auth

import (
	"time"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

// UserResponse represents user information in responses
type UserResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Role            string     `json:"role"`
	ProfileImageURL string     `json:"profile_image_url,omitempty"`
	IsGuest         bool       `json:"is_guest"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int64         `json:"expires_in"` // seconds
	TokenType   string        `json:"token_type"` // "Bearer"
	User        *UserResponse `json:"user"`
}

// ToUserResponse converts a public user to its response shape
func ToUserResponse(u *entities.PublicUser) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		IsGuest:   u.IsGuest,
		CreatedAt: u.CreatedAt,
	}
	if u.ProfileImageURL != nil {
		resp.ProfileImageURL = *u.ProfileImageURL
	}
	return resp
}
