package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sitebuilder-api/internal/application/admin"
	"github.com/jhoicas/sitebuilder-api/internal/application/auth"
	"github.com/jhoicas/sitebuilder-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	SiteUC         *usecase.SiteUseCase
	AdminUC        *admin.AdminUseCase
	UserJWTSecret  string
	AdminJWTSecret string
}

// Router registra las rutas de la API. Dos dominios de confianza: las rutas de
// usuario validan con el secreto user y las de admin con el secreto admin.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth pública + perfil propio
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.UserJWTSecret), authHandler.Me)

	// Sitios del usuario (protegido, dominio user)
	siteHandler := NewSiteHandler(deps.SiteUC)
	sites := app.Group("/sites", AuthMiddleware(deps.UserJWTSecret))
	sites.Post("/", siteHandler.Create)
	sites.Get("/", siteHandler.List)
	sites.Get("/:id", siteHandler.Get)
	sites.Put("/:id", siteHandler.Update)
	sites.Delete("/:id", siteHandler.Delete)
	sites.Post("/:id/publish", siteHandler.Publish)

	// Consola de administración (login público; el resto exige token admin)
	adminGroup := app.Group("/admin")
	adminAuthHandler := NewAdminAuthHandler(deps.AdminUC)
	adminGroup.Post("/login", adminAuthHandler.Login)

	protected := adminGroup.Group("/", AdminMiddleware(deps.AdminJWTSecret))

	dashboardHandler := NewAdminDashboardHandler(deps.AdminUC)
	protected.Get("/dashboard", dashboardHandler.Dashboard)
	protected.Get("/stats/users", dashboardHandler.UserStats)
	protected.Get("/stats/sites", dashboardHandler.SiteStats)
	protected.Get("/stats/publishing", dashboardHandler.PublishingStats)

	userHandler := NewAdminUserHandler(deps.AdminUC)
	protected.Get("/users", userHandler.List)
	protected.Post("/users", userHandler.Create)
	protected.Get("/users/:id", userHandler.Get)
	protected.Put("/users/:id", userHandler.Update)
	protected.Delete("/users/:id", userHandler.Delete)
	protected.Post("/users/:id/reset-password", userHandler.ResetPassword)

	adminSiteHandler := NewAdminSiteHandler(deps.AdminUC)
	protected.Get("/sites", adminSiteHandler.List)
	protected.Get("/sites/:id", adminSiteHandler.Get)
	protected.Put("/sites/:id", adminSiteHandler.Update)
	protected.Delete("/sites/:id", adminSiteHandler.Delete)
	protected.Post("/sites/:id/transfer", adminSiteHandler.Transfer)
	protected.Post("/sites/:id/suspend", adminSiteHandler.Suspend)
}
