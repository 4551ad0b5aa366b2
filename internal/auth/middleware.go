package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gigit/web/internal/observability"
	"github.com/gigit/web/internal/session"
)

const managerKey = "session_manager"

var errMissingSession = errors.New("session middleware not installed")

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// SessionMiddleware binds every request to a browser session: it issues the
// session cookie when missing, builds the session Manager, hydrates it from
// the persisted token and stores it in the request locals.
type SessionMiddleware struct {
	cfg  SessionConfig
	deps session.Dependencies
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(cfg SessionConfig, deps session.Dependencies) *SessionMiddleware {
	if cfg.CookieName == "" {
		cfg.CookieName = "gigit_sid"
	}
	return &SessionMiddleware{cfg: cfg, deps: deps}
}

// Handle runs on every route.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	sid := c.Cookies(m.cfg.CookieName)
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
	}
	m.setCookie(c, sid)

	mgr := session.NewManager(sid, m.deps)
	mgr.Initialize(c.UserContext())

	c.Locals(managerKey, mgr)
	c.Locals(observability.SessionIDLocal, sid)
	return c.Next()
}

func (m *SessionMiddleware) setCookie(c *fiber.Ctx, sid string) {
	cookie := &fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if m.cfg.TTL > 0 {
		cookie.Expires = time.Now().Add(m.cfg.TTL)
	}
	c.Cookie(cookie)
}

// ManagerFromContext retrieves the session manager of the request.
func ManagerFromContext(c *fiber.Ctx) (*session.Manager, bool) {
	val := c.Locals(managerKey)
	if val == nil {
		return nil, false
	}
	mgr, ok := val.(*session.Manager)
	return mgr, ok
}
