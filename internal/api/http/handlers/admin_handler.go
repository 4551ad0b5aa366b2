package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gigit/web/internal/backend"
	"github.com/gigit/web/internal/domain"
	"github.com/gigit/web/internal/service"
	"github.com/gigit/web/internal/validation"
	apperrors "github.com/gigit/web/pkg/util/errorutil"
)

// AdminHandler exposes administrator sign-in.
type AdminHandler struct {
	accounts  *service.AccountService
	validator *validation.Validator
}

// NewAdminHandler constructs handler.
func NewAdminHandler(accounts *service.AccountService, v *validation.Validator) *AdminHandler {
	return &AdminHandler{accounts: accounts, validator: v}
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginData
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}
	if err := h.accounts.AdminLogin(c.UserContext(), req); err != nil {
		if backend.IsUnauthorized(err) {
			return apperrors.NewUnauthorized("Login failed")
		}
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"redirect": "/connect"}})
}
