package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-api/internal/application/dto"
	"github.com/jhoicas/resto-api/internal/application/usecase"
	"github.com/jhoicas/resto-api/pkg/validator"
)

// RoleHandler maneja roles y permisos globales (protegido).
type RoleHandler struct {
	roles       *usecase.RoleUseCase
	permissions *usecase.PermissionUseCase
}

// NewRoleHandler construye el handler.
func NewRoleHandler(roles *usecase.RoleUseCase, permissions *usecase.PermissionUseCase) *RoleHandler {
	return &RoleHandler{roles: roles, permissions: permissions}
}

// CreateRole godoc
// @Summary      Crear rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoleRequest  true  "Datos del rol"
// @Success      201   {object}  dto.RoleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roles [post]
func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var in dto.CreateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	role, err := h.roles.Create(c.Context(), in.Name, in.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRole(role))
}

// GetRole godoc
// @Summary      Obtener rol por ID
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del rol"
// @Success      200  {object}  dto.RoleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [get]
func (h *RoleHandler) GetRole(c *fiber.Ctx) error {
	role, err := h.roles.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromRole(role))
}

// ListRoles godoc
// @Summary      Listar roles
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/roles [get]
func (h *RoleHandler) ListRoles(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	list, total, err := h.roles.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	roles := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		roles = append(roles, dto.FromRole(r))
	}
	return c.JSON(fiber.Map{
		"roles": roles,
		"page":  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}

// AssignPermissions godoc
// @Summary      Reemplazar los permisos de un rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del rol"
// @Param        body  body  dto.AssignPermissionsRequest  true  "IDs de permisos"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/roles/{id}/permissions [put]
func (h *RoleHandler) AssignPermissions(c *fiber.Ctx) error {
	var in dto.AssignPermissionsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	if err := h.roles.AssignPermissions(c.Context(), c.Params("id"), in.PermissionIDs); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "permisos actualizados"})
}

// CreatePermission godoc
// @Summary      Crear permiso
// @Tags         permissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePermissionRequest  true  "Datos del permiso"
// @Success      201   {object}  dto.PermissionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/permissions [post]
func (h *RoleHandler) CreatePermission(c *fiber.Ctx) error {
	var in dto.CreatePermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	perm, err := h.permissions.Create(c.Context(), in.Name, in.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPermission(perm))
}

// ListPermissions godoc
// @Summary      Listar permisos
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/permissions [get]
func (h *RoleHandler) ListPermissions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	list, total, err := h.permissions.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	perms := make([]dto.PermissionResponse, 0, len(list))
	for _, p := range list {
		perms = append(perms, dto.FromPermission(p))
	}
	return c.JSON(fiber.Map{
		"permissions": perms,
		"page":        dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}
