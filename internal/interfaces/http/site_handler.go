package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sitebuilder-api/internal/application/dto"
	"github.com/jhoicas/sitebuilder-api/internal/application/usecase"
	"github.com/jhoicas/sitebuilder-api/internal/domain"
)

// SiteHandler maneja los sitios del usuario autenticado.
type SiteHandler struct {
	uc *usecase.SiteUseCase
}

// NewSiteHandler construye el handler de sitios.
func NewSiteHandler(uc *usecase.SiteUseCase) *SiteHandler {
	return &SiteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sitio
// @Tags         sites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSiteRequest  true  "name, subdomain, plan"
// @Success      201   {object}  dto.CreateSiteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sites [post]
func (h *SiteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if msg, ok := validateStruct(in); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrSubdomainTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Subdomain already taken"})
		}
		if qe, ok := domain.IsQuotaExceeded(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: fmt.Sprintf("Site limit reached for %s plan", qe.Plan),
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid plan"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar sitios propios y donde se es miembro
// @Tags         sites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SiteListResponse
// @Router       /sites [get]
func (h *SiteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de un sitio con estadísticas
// @Tags         sites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Site ID"
// @Success      200  {object}  dto.SiteDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sites/{id} [get]
func (h *SiteHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return h.mapSiteError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar name/plan de un sitio propio
// @Tags         sites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "Site ID"
// @Param        body  body  dto.UpdateSiteRequest  true  "name, plan"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /sites/{id} [put]
func (h *SiteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if msg, ok := validateStruct(in); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
	}
	if err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in); err != nil {
		return h.mapSiteError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Site updated successfully"})
}

// Delete godoc
// @Summary      Eliminar un sitio propio
// @Tags         sites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Site ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sites/{id} [delete]
func (h *SiteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return h.mapSiteError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Site deleted successfully"})
}

// Publish godoc
// @Summary      Publicar todas las páginas draft del sitio
// @Tags         sites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Site ID"
// @Success      200  {object}  dto.PublishSiteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sites/{id}/publish [post]
func (h *SiteHandler) Publish(c *fiber.Ctx) error {
	out, err := h.uc.Publish(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return h.mapSiteError(c, err)
	}
	return c.JSON(out)
}

// mapSiteError errores comunes de los endpoints de sitios del usuario. Sitio
// inexistente y sin-acceso responden igual para no revelar existencia.
func (h *SiteHandler) mapSiteError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrSiteNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Site not found or access denied"})
	}
	if errors.Is(err, domain.ErrNoFieldsToUpdate) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No fields to update"})
	}
	return internalError(c, err)
}
