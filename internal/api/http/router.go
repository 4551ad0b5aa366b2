package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/gigit/web/internal/api/http/handlers"
	"github.com/gigit/web/internal/auth"
	"github.com/gigit/web/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Admin   *handlers.AdminHandler
	Profile *handlers.ProfileHandler
	Connect *handlers.ConnectHandler
	Pages   *handlers.PagesHandler
	Session *auth.SessionMiddleware
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	app.Get("/faq", cfg.Pages.FAQ)
	app.Get("/terms", cfg.Pages.Terms)
	app.Get("/terms.txt", cfg.Pages.TermsText)

	site := app.Group("", cfg.Session.Handle)
	site.Get("/", cfg.Connect.Landing)
	site.Get("/session", cfg.Auth.Session)
	site.Get("/connect", cfg.Connect.Search)
	site.Get("/connect/specializations", cfg.Connect.Specializations)
	site.Get("/profile/:id", cfg.Profile.Developer)

	authGroup := site.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/signup", cfg.Auth.SignUp)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/verify-email", cfg.Auth.VerifyEmail)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password/:token", cfg.Auth.ResetPassword)

	site.Post("/admin/login", cfg.Admin.Login)

	me := site.Group("/me", auth.Guard(), auth.RequireProfile())
	me.Get("", cfg.Profile.Me)
	me.Put("", cfg.Profile.UpdateMe)
	me.Delete("", cfg.Profile.DeleteMe)
}
