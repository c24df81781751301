package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminDTO struct {
	ID           uint64     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	LastSignedIn *time.Time `json:"last_signed_in,omitempty"`
}

type LoginResult struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Admin     AdminDTO  `json:"admin"`
}

// Claims is the admin session payload.
type Claims struct {
	AdminID uint64 `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}
