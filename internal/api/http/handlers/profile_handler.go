package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gigit/web/internal/api/dto"
	"github.com/gigit/web/internal/domain"
	"github.com/gigit/web/internal/service"
	"github.com/gigit/web/internal/validation"
	apperrors "github.com/gigit/web/pkg/util/errorutil"
)

// ProfileHandler serves developer profiles and the signed-in user's own
// profile.
type ProfileHandler struct {
	directory *service.DirectoryService
	validator *validation.Validator
}

// NewProfileHandler constructs handler.
func NewProfileHandler(directory *service.DirectoryService, v *validation.Validator) *ProfileHandler {
	return &ProfileHandler{directory: directory, validator: v}
}

// Developer handles GET /profile/:id.
func (h *ProfileHandler) Developer(c *fiber.Ctx) error {
	user, err := h.directory.Developer(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Me handles GET /me.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	mgr, err := managerFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mgr.State().User})
}

// UpdateMe handles PUT /me with the changed fields only.
func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	var patch domain.ProfilePatch
	if err := bindAndValidate(c, h.validator, &patch); err != nil {
		return err
	}
	if patch.Empty() {
		return apperrors.NewValidationError("no profile fields to update", nil)
	}
	mgr, err := managerFrom(c)
	if err != nil {
		return err
	}
	if err := mgr.UpdateProfile(c.UserContext(), patch); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mgr.State().User})
}

// DeleteMe handles DELETE /me.
func (h *ProfileHandler) DeleteMe(c *fiber.Ctx) error {
	mgr, err := managerFrom(c)
	if err != nil {
		return err
	}
	user := mgr.State().User
	if user == nil {
		return apperrors.NewNotFound("profile", nil)
	}
	if err := mgr.DeleteProfile(c.UserContext(), user.ID); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"data": dto.NewSessionResponse(mgr.State())})
}
