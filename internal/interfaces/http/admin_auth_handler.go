package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sitebuilder-api/internal/application/admin"
	"github.com/jhoicas/sitebuilder-api/internal/application/dto"
	"github.com/jhoicas/sitebuilder-api/internal/domain"
)

// AdminAuthHandler login de la consola de administración.
type AdminAuthHandler struct {
	uc *admin.AdminUseCase
}

// NewAdminAuthHandler construye el handler de login admin.
func NewAdminAuthHandler(uc *admin.AdminUseCase) *AdminAuthHandler {
	return &AdminAuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login del super admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminLoginRequest  true  "email, password"
// @Success      200   {object}  dto.AdminLoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /admin/login [post]
func (h *AdminAuthHandler) Login(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if msg, ok := validateStruct(in); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid admin credentials"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}
