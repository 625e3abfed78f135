package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-api/internal/application/dto"
	"github.com/jhoicas/resto-api/internal/application/inventory"
	"github.com/jhoicas/resto-api/internal/domain/repository"
	"github.com/jhoicas/resto-api/pkg/validator"
)

// InventoryHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	queries  *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterMovementUseCase, queries *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, queries: queries}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, kind (ENTRADA_*/SALIDA_*), quantity, reason, unit_purchase_price (solo ENTRADA_COMPRA)"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	userID := GetUserID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}

	result, err := h.register.RegisterMovement(c.Context(), inventory.MovementInput{
		RestaurantID:      restaurantID,
		UserID:            userID,
		ProductID:         in.ProductID,
		Kind:              in.Kind,
		Quantity:          in.Quantity,
		Reason:            in.Reason,
		UnitPurchasePrice: in.UnitPurchasePrice,
	})
	if err != nil {
		return respondError(c, err)
	}

	out := fiber.Map{
		"movement":  dto.FromMovement(result.Movement),
		"inventory": dto.FromInventory(result.Inventory),
	}
	if result.Product != nil {
		out["product"] = dto.FromProduct(result.Product)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetStock godoc
// @Summary      Stock actual de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	productID := c.Params("id")
	info, err := h.queries.GetCurrentStock(c.Context(), productID, restaurantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, Quantity: info.Quantity, UpdatedAt: info.UpdatedAt})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        kind    query  string  false  "Filtrar por tipo de movimiento"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta, día completo incluido (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	productID := c.Params("id")

	filters := repository.MovementFilters{
		Kind:   c.Query("kind"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
		}
		filters.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
		}
		filters.To = &t
	}

	page, err := h.queries.ListMovements(c.Context(), productID, restaurantID, filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"movements": dto.FromMovements(page.Movements),
		"page":      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: page.Total},
	})
}
