package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-api/internal/application/dto"
	"github.com/jhoicas/resto-api/internal/application/lifecycle"
)

// LifecycleHandler expone la eliminación lógica y la restauración de
// cualquier entidad soportada por el coordinador.
type LifecycleHandler struct {
	coordinator *lifecycle.Coordinator
}

// NewLifecycleHandler construye el handler.
func NewLifecycleHandler(coordinator *lifecycle.Coordinator) *LifecycleHandler {
	return &LifecycleHandler{coordinator: coordinator}
}

// tenantScoped indica si la entidad exige el restaurante del token en la Ref.
func tenantScoped(kind lifecycle.EntityKind) bool {
	switch kind {
	case lifecycle.KindProduct, lifecycle.KindRecipe, lifecycle.KindTable, lifecycle.KindUser:
		return true
	}
	return false
}

// Delete devuelve el handler de eliminación lógica para una entidad.
// 404 si no existe bajo el tenant o ya está eliminada; 409 con la dependencia
// bloqueante si una guardia lo impide.
func (h *LifecycleHandler) Delete(kind lifecycle.EntityKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := lifecycle.Ref{Kind: kind, ID: c.Params("id")}
		if tenantScoped(kind) {
			ref.RestaurantID = GetRestaurantID(c)
			if ref.RestaurantID == "" {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
			}
		}
		if err := h.coordinator.Delete(c.Context(), ref); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "eliminado"})
	}
}

// Restore devuelve el handler de restauración para una entidad.
// 404 si no existe; 400 si existe pero no está eliminada.
func (h *LifecycleHandler) Restore(kind lifecycle.EntityKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := lifecycle.Ref{Kind: kind, ID: c.Params("id")}
		if tenantScoped(kind) {
			ref.RestaurantID = GetRestaurantID(c)
			if ref.RestaurantID == "" {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
			}
		}
		if err := h.coordinator.Restore(c.Context(), ref); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "restaurado"})
	}
}
