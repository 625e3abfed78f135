package lifecycle

import (
	"context"

	"github.com/jhoicas/resto-api/internal/domain/repository"
)

// Repos repositorios atados a la transacción del coordinador. La guardia de
// dependencias y el volteo del tombstone comparten transacción: no hay ventana
// entre verificar y marcar.
type Repos struct {
	Restaurants repository.RestaurantRepository
	Tables      repository.TableRepository
	Users       repository.UserRepository
	Profiles    repository.UserProfileRepository
	Roles       repository.RoleRepository
	Permissions repository.PermissionRepository
	Products    repository.ProductRepository
	Inventories repository.InventoryRepository
	Recipes     repository.RecipeRepository
	Ingredients repository.RecipeIngredientRepository
}

// TxRunner abre la transacción del ciclo de vida y entrega los repos atados.
type TxRunner interface {
	RunLifecycle(ctx context.Context, fn func(repos Repos) error) error
}
