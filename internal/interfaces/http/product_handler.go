package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-api/internal/application/catalog"
	"github.com/jhoicas/resto-api/internal/application/dto"
	"github.com/jhoicas/resto-api/internal/domain/repository"
	"github.com/jhoicas/resto-api/pkg/validator"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc *catalog.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	product, err := h.uc.Create(c.Context(), restaurantID, GetUserID(c), catalog.CreateProductInput{
		Name:            in.Name,
		Description:     in.Description,
		UnitMeasure:     in.UnitMeasure,
		MinStock:        in.MinStock,
		InitialQuantity: in.InitialQuantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProduct(product))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id               path   string  true   "ID del producto"
// @Param        include_deleted  query  bool    false  "Incluir eliminados"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	product, err := h.uc.GetByID(c.Context(), c.Params("id"), restaurantID, c.QueryBool("include_deleted", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromProduct(product))
}

// List godoc
// @Summary      Listar productos del restaurante
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        name             query  string  false  "Filtrar por nombre (contiene)"
// @Param        unit_measure     query  string  false  "Filtrar por unidad"
// @Param        include_deleted  query  bool    false  "Incluir eliminados"
// @Param        limit            query  int     false  "Límite"  default(20)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	filters := repository.ProductFilters{
		Name:           c.Query("name"),
		UnitMeasure:    c.Query("unit_measure"),
		IncludeDeleted: c.QueryBool("include_deleted", false),
		Limit:          c.QueryInt("limit", 20),
		Offset:         c.QueryInt("offset", 0),
	}
	list, total, err := h.uc.List(c.Context(), restaurantID, filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"products": dto.FromProducts(list),
		"page":     dto.PageResponse{Limit: filters.Limit, Offset: filters.Offset, Total: total},
	})
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	product, err := h.uc.Update(c.Context(), c.Params("id"), restaurantID, GetUserID(c), catalog.UpdateProductInput{
		Name:        in.Name,
		Description: in.Description,
		UnitMeasure: in.UnitMeasure,
		MinStock:    in.MinStock,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromProduct(product))
}
