package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gigit/web/internal/auth"
	"github.com/gigit/web/internal/session"
	"github.com/gigit/web/internal/validation"
	apperrors "github.com/gigit/web/pkg/util/errorutil"
)

func bindAndValidate(c *fiber.Ctx, v *validation.Validator, obj interface{}) error {
	if err := c.BodyParser(obj); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return v.Validate(obj)
}

func managerFrom(c *fiber.Ctx) (*session.Manager, error) {
	mgr, ok := auth.ManagerFromContext(c)
	if !ok {
		return nil, apperrors.NewInternalError(nil)
	}
	return mgr, nil
}

// safeRedirect keeps post-login redirects on this site.
func safeRedirect(target string) string {
	target = strings.TrimSpace(target)
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}
