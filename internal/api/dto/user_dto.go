package dto

import (
	"github.com/gigit/web/internal/domain"
	"github.com/gigit/web/internal/session"
)

// ForgotPasswordRequest payload for requesting a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest payload for setting a new password.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// SessionResponse is the client-facing view of the auth state.
type SessionResponse struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsInitialized   bool         `json:"isInitialized"`
}

// NewSessionResponse converts a session state.
func NewSessionResponse(s session.State) SessionResponse {
	return SessionResponse{User: s.User, IsAuthenticated: s.IsAuthenticated, IsInitialized: s.IsInitialized}
}

// LoginResponse answers a successful login or sign-up.
type LoginResponse struct {
	Session  SessionResponse `json:"session"`
	Redirect string          `json:"redirect"`
}
