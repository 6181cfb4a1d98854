package auth

import (
	"time"

	"github.com/google/uuid"
)

// Staff represents a dashboard operator account.
type Staff struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  *string   `json:"display_name,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Safe strips credential material for response payloads.
func (s Staff) Safe() Staff {
	s.PasswordHash = ""
	return s
}

// TokenPair bundles access and refresh tokens.
type TokenPair struct {
	AccessToken        string    `json:"access_token"`
	AccessTokenExpiry  time.Time `json:"access_token_expiry"`
	RefreshToken       string    `json:"refresh_token"`
	RefreshTokenExpiry time.Time `json:"refresh_token_expiry"`
}
