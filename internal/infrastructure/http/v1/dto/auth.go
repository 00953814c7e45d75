package dto

import (
	"time"

	"valora/internal/domain/auth"
)

// --- Request DTOs ---

// LoginRequest for user login. Fields are deliberately unvalidated here so
// missing credentials surface as the dedicated MISSING_CREDENTIALS error
// from the auth service rather than a generic binding failure.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Redirect string `json:"redirect,omitempty"`
}

// --- Response DTOs ---

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// LoginResponse confirms a login. The token also travels in the session
// cookie; it is echoed here for non-browser clients.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
	Redirect  string       `json:"redirect"`
}

// FromSession creates a login response from an established session.
func FromSession(s *auth.Session, redirect string) *LoginResponse {
	return &LoginResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User: UserResponse{
			ID:       s.UserID,
			Username: s.Username,
		},
		Redirect: redirect,
	}
}
