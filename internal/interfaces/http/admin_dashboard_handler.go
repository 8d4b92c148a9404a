package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sitebuilder-api/internal/application/admin"
)

// AdminDashboardHandler dashboard y series de estadísticas de la consola.
type AdminDashboardHandler struct {
	uc *admin.AdminUseCase
}

// NewAdminDashboardHandler construye el handler de dashboard/estadísticas.
func NewAdminDashboardHandler(uc *admin.AdminUseCase) *AdminDashboardHandler {
	return &AdminDashboardHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Conteos globales de la plataforma
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardResponse
// @Router       /admin/dashboard [get]
func (h *AdminDashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// UserStats godoc
// @Summary      Serie diaria de registros de usuarios
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        days  query  int  false  "Días hacia atrás (default 30, máx 365)"
// @Success      200   {object}  dto.UserStatsResponse
// @Router       /admin/stats/users [get]
func (h *AdminDashboardHandler) UserStats(c *fiber.Ctx) error {
	out, err := h.uc.UserSignupStats(c.Context(), c.QueryInt("days"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// SiteStats godoc
// @Summary      Serie diaria de creaciones de sitios por plan
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        days  query  int  false  "Días hacia atrás (default 30, máx 365)"
// @Success      200   {object}  dto.SiteStatsSeriesResponse
// @Router       /admin/stats/sites [get]
func (h *AdminDashboardHandler) SiteStats(c *fiber.Ctx) error {
	out, err := h.uc.SiteCreationStats(c.Context(), c.QueryInt("days"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// PublishingStats godoc
// @Summary      Serie diaria de publish jobs por scope y status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        days  query  int  false  "Días hacia atrás (default 30, máx 365)"
// @Success      200   {object}  dto.PublishStatsResponse
// @Router       /admin/stats/publishing [get]
func (h *AdminDashboardHandler) PublishingStats(c *fiber.Ctx) error {
	out, err := h.uc.PublishingStats(c.Context(), c.QueryInt("days"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
