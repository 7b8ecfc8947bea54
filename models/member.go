package models

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a logged-in association member.
// Verified is false when the record was fabricated client-side; such a
// record also carries a nil ID and a zero CreatedAt.
type Member struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=120"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// AuthResponse carries an issued token and the member it belongs to.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Member    Member    `json:"member"`
}

// MemberResponse is the body of GET /api/auth/me.
type MemberResponse struct {
	Member Member `json:"member"`
}
