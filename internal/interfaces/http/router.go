package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-api/internal/application/auth"
	"github.com/jhoicas/resto-api/internal/application/catalog"
	"github.com/jhoicas/resto-api/internal/application/inventory"
	"github.com/jhoicas/resto-api/internal/application/lifecycle"
	"github.com/jhoicas/resto-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *inventory.RegisterMovementUseCase
	InventoryQueries *inventory.QueryUseCase
	Coordinator      *lifecycle.Coordinator
	ProductUC        *catalog.ProductUseCase
	RecipeUC         *catalog.RecipeUseCase
	RestaurantUC     *usecase.RestaurantUseCase
	TableUC          *usecase.TableUseCase
	RoleUC           *usecase.RoleUseCase
	PermissionUC     *usecase.PermissionUseCase
	AuthUC           *auth.UseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Restaurants (alta pública para el arranque de un tenant)
	restaurantHandler := NewRestaurantHandler(deps.RestaurantUC, deps.TableUC)
	restaurants := api.Group("/restaurants")
	restaurants.Post("/", restaurantHandler.Create)
	restaurants.Get("/", restaurantHandler.List)
	restaurants.Get("/:id", restaurantHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	lifecycleHandler := NewLifecycleHandler(deps.Coordinator)

	protected.Delete("/restaurants/:id", lifecycleHandler.Delete(lifecycle.KindRestaurant))
	protected.Put("/restaurants/:id/restore", lifecycleHandler.Restore(lifecycle.KindRestaurant))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", lifecycleHandler.Delete(lifecycle.KindProduct))
	products.Put("/:id/restore", lifecycleHandler.Restore(lifecycle.KindProduct))

	// Inventory: libro de movimientos y stock (protegido)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.InventoryQueries)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	products.Get("/:id/stock", inventoryHandler.GetStock)
	products.Get("/:id/movements", inventoryHandler.ListMovements)

	// Recipes (protegido)
	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Delete("/:id", lifecycleHandler.Delete(lifecycle.KindRecipe))
	recipes.Put("/:id/restore", lifecycleHandler.Restore(lifecycle.KindRecipe))

	// Roles y permisos (protegido)
	roleHandler := NewRoleHandler(deps.RoleUC, deps.PermissionUC)
	roles := protected.Group("/roles")
	roles.Post("/", roleHandler.CreateRole)
	roles.Get("/", roleHandler.ListRoles)
	roles.Get("/:id", roleHandler.GetRole)
	roles.Put("/:id/permissions", roleHandler.AssignPermissions)
	roles.Delete("/:id", lifecycleHandler.Delete(lifecycle.KindRole))
	roles.Put("/:id/restore", lifecycleHandler.Restore(lifecycle.KindRole))

	permissions := protected.Group("/permissions")
	permissions.Post("/", roleHandler.CreatePermission)
	permissions.Get("/", roleHandler.ListPermissions)
	permissions.Delete("/:id", lifecycleHandler.Delete(lifecycle.KindPermission))
	permissions.Put("/:id/restore", lifecycleHandler.Restore(lifecycle.KindPermission))

	// Users: delete/restore vía coordinador (protegido)
	users := protected.Group("/users")
	users.Delete("/:id", lifecycleHandler.Delete(lifecycle.KindUser))
	users.Put("/:id/restore", lifecycleHandler.Restore(lifecycle.KindUser))

	// Tables (protegido)
	tables := protected.Group("/tables")
	tables.Post("/", restaurantHandler.CreateTable)
	tables.Get("/", restaurantHandler.ListTables)
	tables.Get("/:id", restaurantHandler.GetTable)
	tables.Put("/:id/status", restaurantHandler.UpdateTableStatus)
	tables.Delete("/:id", lifecycleHandler.Delete(lifecycle.KindTable))
	tables.Put("/:id/restore", lifecycleHandler.Restore(lifecycle.KindTable))
}
