package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gigit/web/internal/session"
	apperrors "github.com/gigit/web/pkg/util/errorutil"
)

const (
	LoginPath       = "/auth/login"
	VerifyEmailPath = "/auth/verify-email"
	authPrefix      = "/auth"
)

// Outcome is what the guard does with a request.
type Outcome int

const (
	OutcomeAllow Outcome = iota
	OutcomeLoading
	OutcomeRedirect
)

// Decision is the result of evaluating the guard.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Decide evaluates the guard for a session state and the requested path.
// An uninitialized session yields a loading placeholder so callers never
// redirect before hydration has finished.
func Decide(state session.State, requestedPath string) Decision {
	if !state.IsInitialized {
		return Decision{Outcome: OutcomeLoading}
	}
	if !state.IsAuthenticated {
		return Decision{Outcome: OutcomeRedirect, Location: LoginRedirect(requestedPath)}
	}
	if state.User != nil && state.User.Unverified() && !strings.HasPrefix(requestedPath, VerifyEmailPath) {
		return Decision{Outcome: OutcomeRedirect, Location: VerifyEmailPath}
	}
	return Decision{Outcome: OutcomeAllow}
}

// LoginRedirect builds the login location, carrying the requested path so
// the login form can send the user back afterwards.
func LoginRedirect(requestedPath string) string {
	if requestedPath == "" || strings.HasPrefix(requestedPath, authPrefix) {
		return LoginPath
	}
	return LoginPath + "?redirect=" + url.QueryEscape(requestedPath)
}

// Guard protects authenticated-only routes. It must run after
// SessionMiddleware.
func Guard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		mgr, ok := ManagerFromContext(c)
		if !ok {
			return apperrors.NewInternalError(errMissingSession)
		}

		decision := Decide(mgr.State(), requestedPath(c))
		switch decision.Outcome {
		case OutcomeLoading:
			return c.Status(http.StatusAccepted).JSON(fiber.Map{
				"data": fiber.Map{"status": "loading"},
			})
		case OutcomeRedirect:
			return c.Redirect(decision.Location, http.StatusFound)
		default:
			return c.Next()
		}
	}
}

// RequireProfile rejects requests whose session has no user loaded, which
// happens after the profile was deleted.
func RequireProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		mgr, ok := ManagerFromContext(c)
		if !ok || mgr.State().User == nil {
			return apperrors.NewNotFound("profile", nil)
		}
		return c.Next()
	}
}

func requestedPath(c *fiber.Ctx) string {
	path := c.Path()
	if q := string(c.Request().URI().QueryString()); q != "" {
		path += "?" + q
	}
	return path
}
