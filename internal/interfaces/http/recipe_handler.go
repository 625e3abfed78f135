package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-api/internal/application/catalog"
	"github.com/jhoicas/resto-api/internal/application/dto"
	"github.com/jhoicas/resto-api/pkg/validator"
)

// RecipeHandler maneja las peticiones HTTP para Recipe (protegido).
type RecipeHandler struct {
	uc *catalog.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *catalog.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

func toIngredientInputs(in []dto.IngredientRequest) []catalog.IngredientInput {
	out := make([]catalog.IngredientInput, 0, len(in))
	for _, ing := range in {
		out = append(out, catalog.IngredientInput{
			ProductID:   ing.ProductID,
			Quantity:    ing.Quantity,
			UnitMeasure: ing.UnitMeasure,
		})
	}
	return out
}

// Create godoc
// @Summary      Crear receta con sus ingredientes
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "Datos de la receta"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	var in dto.CreateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	out, err := h.uc.Create(c.Context(), restaurantID, GetUserID(c), catalog.CreateRecipeInput{
		Name:         in.Name,
		Description:  in.Description,
		Instructions: in.Instructions,
		PrepMinutes:  in.PrepMinutes,
		Servings:     in.Servings,
		CostPrice:    in.CostPrice,
		Ingredients:  toIngredientInputs(in.Ingredients),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRecipe(out.Recipe, out.Ingredients))
}

// GetByID godoc
// @Summary      Obtener receta por ID
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id               path   string  true   "ID de la receta"
// @Param        include_deleted  query  bool    false  "Incluir eliminadas"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	out, err := h.uc.GetByID(c.Context(), c.Params("id"), restaurantID, c.QueryBool("include_deleted", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromRecipe(out.Recipe, out.Ingredients))
}

// List godoc
// @Summary      Listar recetas del restaurante
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        include_deleted  query  bool  false  "Incluir eliminadas"
// @Param        limit            query  int   false  "Límite"  default(20)
// @Param        offset           query  int   false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	list, total, err := h.uc.List(c.Context(), restaurantID, c.QueryBool("include_deleted", false), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	recipes := make([]dto.RecipeResponse, 0, len(list))
	for _, rec := range list {
		recipes = append(recipes, dto.FromRecipe(rec, nil))
	}
	return c.JSON(fiber.Map{
		"recipes": recipes,
		"page":    dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}

// Update godoc
// @Summary      Actualizar receta (reemplaza ingredientes si se envían)
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la receta"
// @Param        body  body  dto.UpdateRecipeRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RecipeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no está asociado a un restaurante"})
	}
	var in dto.UpdateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), restaurantID, GetUserID(c), catalog.UpdateRecipeInput{
		Name:               in.Name,
		Description:        in.Description,
		Instructions:       in.Instructions,
		PrepMinutes:        in.PrepMinutes,
		Servings:           in.Servings,
		CostPrice:          in.CostPrice,
		Ingredients:        toIngredientInputs(in.Ingredients),
		ReplaceIngredients: in.Ingredients != nil,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromRecipe(out.Recipe, out.Ingredients))
}
