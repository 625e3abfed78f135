package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/resto-api/internal/application/auth"
	"github.com/jhoicas/resto-api/internal/application/catalog"
	"github.com/jhoicas/resto-api/internal/application/inventory"
	"github.com/jhoicas/resto-api/internal/application/lifecycle"
	"github.com/jhoicas/resto-api/internal/domain/repository"
)

// Ensure TxRunner implements the application-layer transaction ports.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ lifecycle.TxRunner = (*TxRunner)(nil)
var _ catalog.TxRunner = (*TxRunner)(nil)
var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	invRepo := NewInventoryRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(movRepo, invRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLifecycle inicia una transacción con todos los repos que el coordinador
// de eliminación/restauración puede necesitar (guardias y cascadas).
func (r *TxRunner) RunLifecycle(ctx context.Context, fn func(repos lifecycle.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := lifecycle.Repos{
		Restaurants: NewRestaurantRepository(tx),
		Tables:      NewTableRepository(tx),
		Users:       NewUserRepository(tx),
		Profiles:    NewUserProfileRepository(tx),
		Roles:       NewRoleRepository(tx),
		Permissions: NewPermissionRepository(tx),
		Products:    NewProductRepository(tx),
		Inventories: NewInventoryRepository(tx),
		Recipes:     NewRecipeRepository(tx),
		Ingredients: NewRecipeIngredientRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCatalog inicia una transacción para operaciones de catálogo
// (producto + inventario; receta + ingredientes).
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.RecipeIngredientRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	invRepo := NewInventoryRepository(tx)
	recipeRepo := NewRecipeRepository(tx)
	ingredientRepo := NewRecipeIngredientRepository(tx)

	if err := fn(productRepo, invRepo, recipeRepo, ingredientRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAccess inicia una transacción para operaciones de usuarios, roles y permisos.
func (r *TxRunner) RunAccess(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	profileRepo repository.UserProfileRepository,
	roleRepo repository.RoleRepository,
	permRepo repository.PermissionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	profileRepo := NewUserProfileRepository(tx)
	roleRepo := NewRoleRepository(tx)
	permRepo := NewPermissionRepository(tx)

	if err := fn(userRepo, profileRepo, roleRepo, permRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
