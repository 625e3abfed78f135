package catalog

import (
	"context"

	"github.com/jhoicas/resto-api/internal/domain/repository"
)

// TxRunner transacción para operaciones de catálogo con más de un paso
// (producto + su fila de inventario; receta + reemplazo de ingredientes).
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
		recipeRepo repository.RecipeRepository,
		ingredientRepo repository.RecipeIngredientRepository,
	) error) error
}
