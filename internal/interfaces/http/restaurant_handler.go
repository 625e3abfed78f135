package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-api/internal/application/dto"
	"github.com/jhoicas/resto-api/internal/application/usecase"
	"github.com/jhoicas/resto-api/pkg/validator"
)

// RestaurantHandler maneja restaurantes y mesas.
type RestaurantHandler struct {
	restaurants *usecase.RestaurantUseCase
	tables      *usecase.TableUseCase
}

// NewRestaurantHandler construye el handler.
func NewRestaurantHandler(restaurants *usecase.RestaurantUseCase, tables *usecase.TableUseCase) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, tables: tables}
}

// Create godoc
// @Summary      Crear restaurante
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRestaurantRequest  true  "Datos del restaurante"
// @Success      201   {object}  dto.RestaurantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/restaurants [post]
func (h *RestaurantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRestaurantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	r, err := h.restaurants.Create(c.Context(), in.Name, in.Address, in.Phone)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRestaurant(r))
}

// GetByID godoc
// @Summary      Obtener restaurante por ID
// @Tags         restaurants
// @Produce      json
// @Param        id  path  string  true  "ID del restaurante"
// @Success      200  {object}  dto.RestaurantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id} [get]
func (h *RestaurantHandler) GetByID(c *fiber.Ctx) error {
	r, err := h.restaurants.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromRestaurant(r))
}

// List godoc
// @Summary      Listar restaurantes
// @Tags         restaurants
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/restaurants [get]
func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	list, total, err := h.restaurants.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	restaurants := make([]dto.RestaurantResponse, 0, len(list))
	for _, r := range list {
		restaurants = append(restaurants, dto.FromRestaurant(r))
	}
	return c.JSON(fiber.Map{
		"restaurants": restaurants,
		"page":        dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}

// CreateTable godoc
// @Summary      Crear mesa
// @Tags         tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTableRequest  true  "Número y capacidad"
// @Success      201   {object}  dto.TableResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tables [post]
func (h *RestaurantHandler) CreateTable(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	var in dto.CreateTableRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	t, err := h.tables.Create(c.Context(), restaurantID, in.Number, in.Capacity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTable(t))
}

// GetTable godoc
// @Summary      Obtener mesa por ID
// @Tags         tables
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la mesa"
// @Success      200  {object}  dto.TableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tables/{id} [get]
func (h *RestaurantHandler) GetTable(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	t, err := h.tables.GetByID(c.Context(), c.Params("id"), restaurantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromTable(t))
}

// ListTables godoc
// @Summary      Listar mesas del restaurante
// @Tags         tables
// @Security     Bearer
// @Produce      json
// @Param        include_deleted  query  bool  false  "Incluir eliminadas"
// @Param        limit            query  int   false  "Límite"  default(20)
// @Param        offset           query  int   false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/tables [get]
func (h *RestaurantHandler) ListTables(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	list, total, err := h.tables.List(c.Context(), restaurantID, c.QueryBool("include_deleted", false), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	tables := make([]dto.TableResponse, 0, len(list))
	for _, t := range list {
		tables = append(tables, dto.FromTable(t))
	}
	return c.JSON(fiber.Map{
		"tables": tables,
		"page":   dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}

// UpdateTableStatus godoc
// @Summary      Cambiar estado de mesa
// @Tags         tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la mesa"
// @Param        body  body  dto.UpdateTableStatusRequest  true  "libre | ocupada | reservada"
// @Success      200   {object}  dto.TableResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tables/{id}/status [put]
func (h *RestaurantHandler) UpdateTableStatus(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	var in dto.UpdateTableStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	t, err := h.tables.UpdateStatus(c.Context(), c.Params("id"), restaurantID, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromTable(t))
}
