package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sitebuilder-api/internal/application/admin"
	"github.com/jhoicas/sitebuilder-api/internal/application/dto"
	"github.com/jhoicas/sitebuilder-api/internal/domain"
)

// AdminSiteHandler gestión cross-tenant de sitios desde la consola.
type AdminSiteHandler struct {
	uc *admin.AdminUseCase
}

// NewAdminSiteHandler construye el handler admin de sitios.
func NewAdminSiteHandler(uc *admin.AdminUseCase) *AdminSiteHandler {
	return &AdminSiteHandler{uc: uc}
}

// List godoc
// @Summary      Listar sitios con owner y agregados
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "Página (default 1)"
// @Param        limit      query  int     false  "Tamaño de página (default 20, máx 100)"
// @Param        search     query  string  false  "Busca en name, subdomain y email del owner"
// @Param        plan       query  string  false  "free | pro | enterprise"
// @Param        sortBy     query  string  false  "created_at | name | subdomain | plan | owner_email"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Success      200  {object}  dto.AdminSiteListResponse
// @Router       /admin/sites [get]
func (h *AdminSiteHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid query parameters"})
	}
	out, err := h.uc.ListSites(c.Context(), q, c.Query("plan"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de un sitio con miembros y actividad
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Site ID"
// @Success      200  {object}  dto.AdminSiteDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/sites/{id} [get]
func (h *AdminSiteHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetSite(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapSiteError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar name/plan/status/cuotas de cualquier sitio
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                      true  "Site ID"
// @Param        body  body  dto.AdminUpdateSiteRequest  true  "name, plan, status, quota_pages, quota_assets_mb"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /admin/sites/{id} [put]
func (h *AdminSiteHandler) Update(c *fiber.Ctx) error {
	var in dto.AdminUpdateSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if msg, ok := validateStruct(in); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
	}
	if err := h.uc.UpdateSite(c.Context(), c.Params("id"), in); err != nil {
		return h.mapSiteError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Site updated successfully"})
}

// Transfer godoc
// @Summary      Transferir el ownership de un sitio
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "Site ID"
// @Param        body  body  dto.TransferSiteRequest  true  "newOwnerId, transferReason"
// @Success      200   {object}  dto.TransferSiteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /admin/sites/{id}/transfer [post]
func (h *AdminSiteHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if msg, ok := validateStruct(in); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
	}
	out, err := h.uc.TransferSite(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrOwnerNotActive) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "New owner not found or inactive"})
		}
		return h.mapSiteError(c, err)
	}
	return c.JSON(out)
}

// Suspend godoc
// @Summary      Suspender un sitio
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true   "Site ID"
// @Param        body  body  dto.SuspendSiteRequest  false  "reason"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /admin/sites/{id}/suspend [post]
func (h *AdminSiteHandler) Suspend(c *fiber.Ctx) error {
	// El body (reason) es opcional y hoy solo queda en los logs de acceso.
	if err := h.uc.SuspendSite(c.Context(), c.Params("id")); err != nil {
		return h.mapSiteError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Site suspended successfully"})
}

// Delete godoc
// @Summary      Eliminar cualquier sitio
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Site ID"
// @Success      200  {object}  dto.DeleteSiteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/sites/{id} [delete]
func (h *AdminSiteHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.DeleteSite(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapSiteError(c, err)
	}
	return c.JSON(out)
}

func (h *AdminSiteHandler) mapSiteError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrSiteNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Site not found"})
	}
	if errors.Is(err, domain.ErrNoFieldsToUpdate) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No fields to update"})
	}
	return internalError(c, err)
}
