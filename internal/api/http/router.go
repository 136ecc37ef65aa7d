package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qwego/maintenance-service/internal/api/http/handlers"
	"github.com/qwego/maintenance-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Announcements  *handlers.AnnouncementsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/password/forgot", cfg.Auth.ForgotPassword)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/dashboard", cfg.Dashboard.Get)

	protected.Post("/tickets", cfg.Tickets.Create)
	protected.Get("/tickets/:id", cfg.Tickets.Get)
	protected.Post("/tickets/:id/assign", cfg.Tickets.Assign)
	protected.Post("/tickets/:id/status", cfg.Tickets.UpdateStatus)

	protected.Post("/users/:id/approve", cfg.Users.Approve)

	protected.Post("/announcements", cfg.Announcements.Post)
	protected.Get("/announcements", cfg.Announcements.List)
}
