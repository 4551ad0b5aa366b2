package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gigit/web/internal/api/dto"
	"github.com/gigit/web/internal/backend"
	"github.com/gigit/web/internal/domain"
	"github.com/gigit/web/internal/service"
	"github.com/gigit/web/internal/validation"
	apperrors "github.com/gigit/web/pkg/util/errorutil"
)

const invalidCredentials = "Invalid email or password"

// AuthHandler exposes sign-in, sign-up and password recovery.
type AuthHandler struct {
	accounts  *service.AccountService
	validator *validation.Validator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accounts *service.AccountService, v *validation.Validator) *AuthHandler {
	return &AuthHandler{accounts: accounts, validator: v}
}

// Session handles GET /session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	mgr, err := managerFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(mgr.State())})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginData
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	mgr, err := managerFrom(c)
	if err != nil {
		return err
	}

	if err := mgr.Login(c.UserContext(), req); err != nil {
		if backend.IsUnauthorized(err) || backend.IsNotFound(err) {
			return apperrors.NewUnauthorized(invalidCredentials)
		}
		return err
	}

	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Session:  dto.NewSessionResponse(mgr.State()),
		Redirect: safeRedirect(c.Query("redirect")),
	}})
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req domain.SignUpData
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	mgr, err := managerFrom(c)
	if err != nil {
		return err
	}

	if err := mgr.SignUp(c.UserContext(), req); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.LoginResponse{
		Session:  dto.NewSessionResponse(mgr.State()),
		Redirect: safeRedirect(c.Query("redirect")),
	}})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	mgr, err := managerFrom(c)
	if err != nil {
		return err
	}
	if err := mgr.Logout(c.UserContext()); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(mgr.State())})
}

// VerifyEmail handles GET /auth/verify-email?token=.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return apperrors.NewValidationError("validation failed", map[string]any{"token": "This field is required"})
	}
	mgr, err := managerFrom(c)
	if err != nil {
		return err
	}
	if err := mgr.VerifyEmail(c.UserContext(), token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(mgr.State())})
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	if err := h.accounts.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"data": fiber.Map{"message": "Reset link sent successfully!", "redirect": "/"},
	})
}

// ResetPassword handles POST /auth/reset-password/:token.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return apperrors.NewValidationError("Invalid or missing token", nil)
	}
	var req dto.ResetPasswordRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	if err := h.accounts.ResetPassword(c.UserContext(), token, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "Password reset successfully!", "redirect": "/auth/login"},
	})
}
