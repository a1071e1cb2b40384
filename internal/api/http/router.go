package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zayanservices/crm-service/internal/api/http/handlers"
	"github.com/zayanservices/crm-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health             *handlers.HealthHandler
	Assignments        *handlers.AssignmentsHandler
	Customers          *handlers.CustomersHandler
	Catalog            *handlers.CatalogHandler
	Communications     *handlers.CommunicationsHandler
	Automation         *handlers.AutomationHandler
	Settings           *handlers.SettingsHandler
	Dashboard          *handlers.DashboardHandler
	Portal             *handlers.PortalHandler
	IdentityMiddleware *auth.IdentityMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1", cfg.IdentityMiddleware.Handle)

	api.Post("/customers", cfg.Customers.Create)
	api.Get("/customers", cfg.Customers.List)
	api.Get("/customers/:id", cfg.Customers.Get)
	api.Put("/customers/:id", cfg.Customers.Update)
	api.Delete("/customers/:id", cfg.Customers.Delete)
	api.Get("/customers/:id/communications", cfg.Customers.Communications)

	api.Post("/services", cfg.Catalog.CreateService)
	api.Get("/services", cfg.Catalog.ListServices)
	api.Put("/services/:id", cfg.Catalog.UpdateService)
	api.Delete("/services/:id", cfg.Catalog.DeleteService)

	api.Post("/groups", cfg.Catalog.CreateGroup)
	api.Get("/groups", cfg.Catalog.ListGroups)
	api.Put("/groups/:id", cfg.Catalog.UpdateGroup)
	api.Delete("/groups/:id", cfg.Catalog.DeleteGroup)

	api.Post("/assignments", cfg.Assignments.Create)
	api.Get("/assignments", cfg.Assignments.List)
	api.Get("/assignments/:id", cfg.Assignments.Get)
	api.Patch("/assignments/:id", cfg.Assignments.Update)
	api.Delete("/assignments/:id", cfg.Assignments.Delete)
	api.Post("/assignments/:id/status", cfg.Assignments.ChangeStatus)
	api.Get("/assignments/:id/history", cfg.Assignments.History)
	api.Get("/assignments/:id/progress", cfg.Assignments.Progress)

	api.Post("/communications", cfg.Communications.Send)
	api.Get("/communications", cfg.Communications.List)
	api.Post("/templates", cfg.Communications.CreateTemplate)
	api.Get("/templates", cfg.Communications.ListTemplates)
	api.Delete("/templates/:id", cfg.Communications.DeleteTemplate)

	api.Post("/automation-rules", cfg.Automation.Create)
	api.Get("/automation-rules", cfg.Automation.List)
	api.Put("/automation-rules/:id", cfg.Automation.Update)
	api.Patch("/automation-rules/:id/toggle", cfg.Automation.Toggle)
	api.Delete("/automation-rules/:id", cfg.Automation.Delete)

	api.Get("/settings", cfg.Settings.Get)
	api.Put("/settings", cfg.Settings.Update)
	api.Get("/users", cfg.Settings.ListUsers)
	api.Post("/users/invite", cfg.Settings.InviteUser)

	api.Get("/dashboard/stats", cfg.Dashboard.Stats)

	portal := api.Group("/portal", auth.RequireIdentity())
	portal.Get("/me", cfg.Portal.Me)
}
