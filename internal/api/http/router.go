package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/consulting-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/consulting-marketplace/internal/auth"
	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Projects       *handlers.ProjectsHandler
	Quotations     *handlers.QuotationsHandler
	Contracts      *handlers.ContractsHandler
	Payments       *handlers.PaymentsHandler
	Dashboard      *handlers.DashboardHandler
	Notifications  *handlers.NotificationsHandler
	Chat           *handlers.ChatHandler
	Boards         *handlers.BoardsHandler
	Providers      *handlers.ProvidersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/config", cfg.Health.Config)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.Me)

	// Public browse surface, no session required.
	app.Get("/projects/public", cfg.Projects.ListPublic)
	app.Get("/providers/:id/profile", cfg.Providers.PublicProfile)

	session := cfg.AuthMiddleware.Handle

	projects := app.Group("/projects", session, auth.RequireAuthenticated())
	projects.Post("", auth.RequireRole(domain.RoleClient), cfg.Projects.Create)
	projects.Get("", cfg.Projects.ListOwn)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Patch("/:id", auth.RequireRole(domain.RoleClient), cfg.Projects.Update)
	projects.Post("/:id/publish", auth.RequireRole(domain.RoleClient), cfg.Projects.Publish)
	projects.Post("/:id/cancel", auth.RequireRole(domain.RoleClient), cfg.Projects.Cancel)
	projects.Get("/:id/quotations", cfg.Quotations.ListForProject)
	projects.Post("/:id/quotations", auth.RequireRole(domain.RoleProvider), auth.RequireVerified(), cfg.Quotations.Submit)

	quotations := app.Group("/quotations", session, auth.RequireAuthenticated())
	quotations.Get("", auth.RequireRole(domain.RoleProvider), cfg.Quotations.ListOwn)
	quotations.Post("/:id/accept", auth.RequireRole(domain.RoleClient), cfg.Quotations.Accept)
	quotations.Post("/:id/reject", auth.RequireRole(domain.RoleClient), cfg.Quotations.Reject)
	quotations.Post("/:id/withdraw", auth.RequireRole(domain.RoleProvider), cfg.Quotations.Withdraw)

	contracts := app.Group("/contracts", session, auth.RequireAuthenticated())
	contracts.Get("", cfg.Contracts.ListMine)
	contracts.Get("/:id", cfg.Contracts.Get)
	contracts.Post("/:id/complete", auth.RequireRole(domain.RoleClient), cfg.Contracts.Complete)
	contracts.Post("/:id/review", auth.RequireRole(domain.RoleClient), cfg.Contracts.SubmitReview)
	contracts.Get("/:id/payments", cfg.Payments.ListPayments)
	contracts.Post("/:id/charge", auth.RequireRole(domain.RoleClient), cfg.Payments.Charge)

	payments := app.Group("/payments", session, auth.RequireAuthenticated())
	payments.Get("/methods", cfg.Payments.ListMethods)
	payments.Post("/methods", cfg.Payments.AddMethod)
	payments.Patch("/methods/:id/default", cfg.Payments.SetDefault)
	payments.Delete("/methods/:id", cfg.Payments.DeleteMethod)

	dashboard := app.Group("/dashboard", session, auth.RequireAuthenticated())
	dashboard.Get("/client-stats", auth.RequireRole(domain.RoleClient), cfg.Dashboard.ClientStats)
	dashboard.Get("/provider-stats", auth.RequireRole(domain.RoleProvider), cfg.Dashboard.ProviderStats)

	notifications := app.Group("/notifications", session, auth.RequireAuthenticated())
	notifications.Get("", cfg.Notifications.List)
	notifications.Patch("/:id/read", cfg.Notifications.MarkRead)
	notifications.Patch("/mark-all-read", cfg.Notifications.MarkAllRead)

	chat := app.Group("/chat", session, auth.RequireAuthenticated())
	chat.Post("/session", cfg.Chat.OpenSession)
	chat.Get("/sessions", cfg.Chat.ListSessions)
	chat.Get("/sessions/:id/messages", cfg.Chat.ListMessages)
	chat.Post("/sessions/:id/messages", cfg.Chat.SendMessage)

	boards := app.Group("/boards", session, auth.RequireAuthenticated())
	boards.Get("/:id", cfg.Boards.Get)
	boards.Post("/:id/comments", cfg.Boards.AddComment)
	boards.Patch("/comments/:id", cfg.Boards.UpdateComment)
	boards.Delete("/comments/:id", cfg.Boards.DeleteComment)

	portfolio := app.Group("/providers/portfolio", session, auth.RequireAuthenticated(), auth.RequireRole(domain.RoleProvider))
	portfolio.Get("", cfg.Providers.ListPortfolio)
	portfolio.Post("", cfg.Providers.AddPortfolioItem)
	portfolio.Delete("/:id", cfg.Providers.DeletePortfolioItem)
}
