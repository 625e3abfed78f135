package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
)

// RecipeUseCase CRUD de recetas con sus ingredientes. El reemplazo de
// ingredientes es en bloque y dentro de la transacción de la receta: nunca se
// observa una receta actualizada sin sus ingredientes.
type RecipeUseCase struct {
	txRunner       TxRunner
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.RecipeIngredientRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(txRunner TxRunner, recipeRepo repository.RecipeRepository, ingredientRepo repository.RecipeIngredientRepository) *RecipeUseCase {
	return &RecipeUseCase{txRunner: txRunner, recipeRepo: recipeRepo, ingredientRepo: ingredientRepo}
}

// IngredientInput un ingrediente de la receta.
type IngredientInput struct {
	ProductID   string
	Quantity    int64
	UnitMeasure string
}

// CreateRecipeInput datos de creación.
type CreateRecipeInput struct {
	Name         string
	Description  string
	Instructions string
	PrepMinutes  int
	Servings     int
	CostPrice    *decimal.Decimal
	Ingredients  []IngredientInput
}

// RecipeWithIngredients receta con sus filas de ingredientes.
type RecipeWithIngredients struct {
	Recipe      *entity.Recipe
	Ingredients []*entity.RecipeIngredient
}

// Create crea la receta y sus ingredientes en una transacción, validando que
// cada producto ingrediente exista y pertenezca al restaurante.
func (uc *RecipeUseCase) Create(ctx context.Context, restaurantID, userID string, in CreateRecipeInput) (*RecipeWithIngredients, error) {
	if in.Name == "" || restaurantID == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, ing := range in.Ingredients {
		if ing.ProductID == "" || ing.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	var out RecipeWithIngredients
	err := uc.txRunner.RunCatalog(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.InventoryRepository,
		recipeRepo repository.RecipeRepository,
		ingredientRepo repository.RecipeIngredientRepository,
	) error {
		existing, err := recipeRepo.GetByName(ctx, restaurantID, in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.IsDeleted() {
				return domain.ErrDuplicateDeleted
			}
			return domain.ErrDuplicate
		}
		if err := validateIngredientProducts(ctx, productRepo, restaurantID, in.Ingredients); err != nil {
			return err
		}

		now := time.Now()
		var createdBy *string
		if userID != "" {
			u := userID
			createdBy = &u
		}
		recipe := &entity.Recipe{
			ID:           uuid.New().String(),
			RestaurantID: restaurantID,
			Name:         in.Name,
			Description:  in.Description,
			Instructions: in.Instructions,
			PrepMinutes:  in.PrepMinutes,
			Servings:     in.Servings,
			CostPrice:    in.CostPrice,
			CreatedBy:    createdBy,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := recipeRepo.Create(ctx, recipe); err != nil {
			return err
		}
		rows := buildIngredientRows(recipe.ID, in.Ingredients)
		if err := ingredientRepo.ReplaceForRecipe(ctx, recipe.ID, rows); err != nil {
			return err
		}
		out = RecipeWithIngredients{Recipe: recipe, Ingredients: rows}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRecipeInput campos editables; Ingredients nil = no tocar, vacío =
// dejar la receta sin ingredientes.
type UpdateRecipeInput struct {
	Name               *string
	Description        *string
	Instructions       *string
	PrepMinutes        *int
	Servings           *int
	CostPrice          *decimal.Decimal
	Ingredients        []IngredientInput
	ReplaceIngredients bool
}

// Update actualiza la receta y, si se pide, reemplaza los ingredientes en
// bloque dentro de la misma transacción.
func (uc *RecipeUseCase) Update(ctx context.Context, id, restaurantID, userID string, in UpdateRecipeInput) (*RecipeWithIngredients, error) {
	if in.ReplaceIngredients {
		for _, ing := range in.Ingredients {
			if ing.ProductID == "" || ing.Quantity <= 0 {
				return nil, domain.ErrInvalidInput
			}
		}
	}

	var out RecipeWithIngredients
	err := uc.txRunner.RunCatalog(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.InventoryRepository,
		recipeRepo repository.RecipeRepository,
		ingredientRepo repository.RecipeIngredientRepository,
	) error {
		recipe, err := recipeRepo.GetByRestaurant(ctx, id, restaurantID)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil && *in.Name != recipe.Name {
			existing, err := recipeRepo.GetByName(ctx, restaurantID, *in.Name)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != id {
				if existing.IsDeleted() {
					return domain.ErrDuplicateDeleted
				}
				return domain.ErrDuplicate
			}
			recipe.Name = *in.Name
		}
		if in.Description != nil {
			recipe.Description = *in.Description
		}
		if in.Instructions != nil {
			recipe.Instructions = *in.Instructions
		}
		if in.PrepMinutes != nil {
			recipe.PrepMinutes = *in.PrepMinutes
		}
		if in.Servings != nil {
			recipe.Servings = *in.Servings
		}
		if in.CostPrice != nil {
			recipe.CostPrice = in.CostPrice
		}
		if userID != "" {
			u := userID
			recipe.CreatedBy = &u
		}
		recipe.UpdatedAt = time.Now()
		if err := recipeRepo.Update(ctx, recipe); err != nil {
			return err
		}

		rows, err := ingredientRepo.ListByRecipe(ctx, id, false)
		if err != nil {
			return err
		}
		if in.ReplaceIngredients {
			if err := validateIngredientProducts(ctx, productRepo, restaurantID, in.Ingredients); err != nil {
				return err
			}
			rows = buildIngredientRows(id, in.Ingredients)
			if err := ingredientRepo.ReplaceForRecipe(ctx, id, rows); err != nil {
				return err
			}
		}
		out = RecipeWithIngredients{Recipe: recipe, Ingredients: rows}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID obtiene la receta con sus ingredientes activos.
func (uc *RecipeUseCase) GetByID(ctx context.Context, id, restaurantID string, includeDeleted bool) (*RecipeWithIngredients, error) {
	var (
		recipe *entity.Recipe
		err    error
	)
	if includeDeleted {
		recipe, err = uc.recipeRepo.GetByRestaurantAny(ctx, id, restaurantID)
	} else {
		recipe, err = uc.recipeRepo.GetByRestaurant(ctx, id, restaurantID)
	}
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.ingredientRepo.ListByRecipe(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	return &RecipeWithIngredients{Recipe: recipe, Ingredients: rows}, nil
}

// List lista recetas del restaurante.
func (uc *RecipeUseCase) List(ctx context.Context, restaurantID string, includeDeleted bool, limit, offset int) ([]*entity.Recipe, int64, error) {
	if restaurantID == "" {
		return nil, 0, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.recipeRepo.ListByRestaurant(ctx, restaurantID, includeDeleted, limit, offset)
}

func validateIngredientProducts(ctx context.Context, productRepo repository.ProductRepository, restaurantID string, ingredients []IngredientInput) error {
	for _, ing := range ingredients {
		p, err := productRepo.GetByRestaurant(ctx, ing.ProductID, restaurantID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func buildIngredientRows(recipeID string, ingredients []IngredientInput) []*entity.RecipeIngredient {
	rows := make([]*entity.RecipeIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		rows = append(rows, &entity.RecipeIngredient{
			ID:          uuid.New().String(),
			RecipeID:    recipeID,
			ProductID:   ing.ProductID,
			Quantity:    ing.Quantity,
			UnitMeasure: ing.UnitMeasure,
		})
	}
	return rows
}
