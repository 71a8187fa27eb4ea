package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-portal/internal/api/http/handlers"
	"github.com/spec-kit/lead-portal/internal/auth"
	"github.com/spec-kit/lead-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Applications   *handlers.ApplicationsHandler
	Visits         *handlers.VisitsHandler
	Payments       *handlers.PaymentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	authProtected.Post("/password/change", cfg.Users.ChangePassword)
	authProtected.Get("/me", cfg.Users.Me)

	// Public endpoints backing the marketing pages.
	app.Post("/applications", cfg.Applications.Submit)
	app.Post("/visits", cfg.Visits.Record)
	app.Get("/visits", cfg.Visits.Counts)

	apps := app.Group("/applications", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	apps.Get("", cfg.Applications.List)
	apps.Get("/stats", cfg.Applications.Stats)
	apps.Put("/status", auth.RequireStaff(), cfg.Applications.UpdateStatus)
	apps.Get("/export", auth.RequireStaff(), cfg.Applications.Export)
	// Parameterized route last so /stats and /export match their own handlers.
	apps.Get("/:id", cfg.Applications.Get)

	app.Post("/support/callback", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleClient), cfg.Applications.RequestCallback)
	app.Post("/payments", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleClient), cfg.Payments.Submit)
}
