package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gigit/web/internal/domain"
)

// AccountBackend is the part of the REST API that needs no session.
type AccountBackend interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, password string) error
	AdminLogin(ctx context.Context, creds domain.LoginData) error
}

// AccountService handles password recovery and admin sign-in.
type AccountService struct {
	backend AccountBackend
	logger  *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(backend AccountBackend, logger *zap.Logger) *AccountService {
	return &AccountService{backend: backend, logger: logger}
}

// RequestPasswordReset asks the backend to email a reset link.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := s.backend.ForgotPassword(ctx, email); err != nil {
		s.logger.Warn("password reset request failed", zap.Error(err))
		return err
	}
	return nil
}

// ResetPassword sets a new password with an emailed token.
func (s *AccountService) ResetPassword(ctx context.Context, resetToken, password string) error {
	if err := s.backend.ResetPassword(ctx, resetToken, password); err != nil {
		s.logger.Warn("password reset failed", zap.Error(err))
		return err
	}
	return nil
}

// AdminLogin checks administrator credentials.
func (s *AccountService) AdminLogin(ctx context.Context, creds domain.LoginData) error {
	if err := s.backend.AdminLogin(ctx, creds); err != nil {
		s.logger.Warn("admin login failed", zap.String("email", creds.Email), zap.Error(err))
		return err
	}
	s.logger.Info("admin signed in", zap.String("email", creds.Email))
	return nil
}
