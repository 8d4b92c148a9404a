package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sitebuilder-api/internal/application/admin"
	"github.com/jhoicas/sitebuilder-api/internal/application/dto"
	"github.com/jhoicas/sitebuilder-api/internal/domain"
)

// AdminUserHandler gestión cross-tenant de usuarios desde la consola.
type AdminUserHandler struct {
	uc *admin.AdminUseCase
}

// NewAdminUserHandler construye el handler admin de usuarios.
func NewAdminUserHandler(uc *admin.AdminUseCase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios con conteos de sitios
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "Página (default 1)"
// @Param        limit      query  int     false  "Tamaño de página (default 20, máx 100)"
// @Param        search     query  string  false  "Busca en email y name"
// @Param        status     query  string  false  "active | suspended"
// @Param        sortBy     query  string  false  "created_at | email | name | status"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Success      200  {object}  dto.AdminUserListResponse
// @Router       /admin/users [get]
func (h *AdminUserHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid query parameters"})
	}
	out, err := h.uc.ListUsers(c.Context(), q, c.Query("status"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de un usuario con sus sitios
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dto.AdminUserDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/users/{id} [get]
func (h *AdminUserHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapUserError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Alta directa de usuario
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AdminCreateUserRequest  true  "email, password, name, status"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /admin/users [post]
func (h *AdminUserHandler) Create(c *fiber.Ctx) error {
	var in dto.AdminCreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if msg, ok := validateStruct(in); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
	}
	user, err := h.uc.CreateUser(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "User already exists"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Update godoc
// @Summary      Actualizar name/status de un usuario
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                      true  "User ID"
// @Param        body  body  dto.AdminUpdateUserRequest  true  "name, status"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /admin/users/{id} [put]
func (h *AdminUserHandler) Update(c *fiber.Ctx) error {
	var in dto.AdminUpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if msg, ok := validateStruct(in); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
	}
	if err := h.uc.UpdateUser(c.Context(), c.Params("id"), in); err != nil {
		return h.mapUserError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User updated successfully"})
}

// Delete godoc
// @Summary      Baja lógica de un usuario sin sitios
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminUserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrUserHasSites) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Cannot delete user with active sites"})
		}
		return h.mapUserError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User suspended successfully"})
}

// ResetPassword godoc
// @Summary      Resetear el password de un usuario
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "User ID"
// @Param        body  body  dto.ResetPasswordRequest  true  "newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /admin/users/{id}/reset-password [post]
func (h *AdminUserHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if msg, ok := validateStruct(in); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
	}
	if err := h.uc.ResetPassword(c.Context(), c.Params("id"), in.NewPassword); err != nil {
		return h.mapUserError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Password reset successfully"})
}

func (h *AdminUserHandler) mapUserError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
	}
	if errors.Is(err, domain.ErrNoFieldsToUpdate) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No fields to update"})
	}
	return internalError(c, err)
}
