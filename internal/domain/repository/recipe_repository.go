package repository

import (
	"context"
	"time"

	"github.com/jhoicas/resto-api/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia para Recipe (tenant-scoped).
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	GetByRestaurant(ctx context.Context, id, restaurantID string) (*entity.Recipe, error)
	GetByRestaurantAny(ctx context.Context, id, restaurantID string) (*entity.Recipe, error)
	GetByName(ctx context.Context, restaurantID, name string) (*entity.Recipe, error) // incluye eliminados
	Update(ctx context.Context, recipe *entity.Recipe) error
	ListByRestaurant(ctx context.Context, restaurantID string, includeDeleted bool, limit, offset int) ([]*entity.Recipe, int64, error)
	SoftDelete(ctx context.Context, id string, now time.Time) error
	Restore(ctx context.Context, id string) error
}

// RecipeIngredientRepository puerto para las filas de ingredientes, co-propiedad
// de la receta.
type RecipeIngredientRepository interface {
	// ReplaceForRecipe borra las filas actuales y crea las nuevas; debe
	// ejecutarse en la misma transacción que la actualización de la receta
	// para que nunca se observe una ventana de receta sin ingredientes.
	ReplaceForRecipe(ctx context.Context, recipeID string, rows []*entity.RecipeIngredient) error
	ListByRecipe(ctx context.Context, recipeID string, includeDeleted bool) ([]*entity.RecipeIngredient, error)
	SoftDeleteByRecipe(ctx context.Context, recipeID string, now time.Time) error
	RestoreByRecipe(ctx context.Context, recipeID string) error
	// CountActiveByProduct cuenta filas no eliminadas (de recetas no
	// eliminadas) que referencian el producto: guardia de eliminación de
	// productos.
	CountActiveByProduct(ctx context.Context, productID string) (int64, error)
}
