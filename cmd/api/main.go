package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/resto-api/internal/application/auth"
	"github.com/jhoicas/resto-api/internal/application/catalog"
	"github.com/jhoicas/resto-api/internal/application/inventory"
	"github.com/jhoicas/resto-api/internal/application/lifecycle"
	"github.com/jhoicas/resto-api/internal/application/usecase"
	"github.com/jhoicas/resto-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/resto-api/internal/interfaces/http"
	"github.com/jhoicas/resto-api/pkg/config"
	"github.com/jhoicas/resto-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	permissionRepo := postgres.NewPermissionRepository(pool)
	restaurantRepo := postgres.NewRestaurantRepository(pool)
	tableRepo := postgres.NewTableRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	ingredientRepo := postgres.NewRecipeIngredientRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, cfg.Inventory, log)
	inventoryQueries := inventory.NewQueryUseCase(productRepo, inventoryRepo, movementRepo)
	coordinator := lifecycle.NewCoordinator(txRunner, log)
	productUC := catalog.NewProductUseCase(txRunner, productRepo)
	recipeUC := catalog.NewRecipeUseCase(txRunner, recipeRepo, ingredientRepo)
	restaurantUC := usecase.NewRestaurantUseCase(restaurantRepo)
	tableUC := usecase.NewTableUseCase(tableRepo)
	roleUC := usecase.NewRoleUseCase(txRunner, roleRepo, permissionRepo)
	permissionUC := usecase.NewPermissionUseCase(permissionRepo)
	authUC := auth.NewUseCase(txRunner, userRepo, restaurantRepo, roleRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Resto API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registerMovementUC,
		InventoryQueries: inventoryQueries,
		Coordinator:      coordinator,
		ProductUC:        productUC,
		RecipeUC:         recipeUC,
		RestaurantUC:     restaurantUC,
		TableUC:          tableUC,
		RoleUC:           roleUC,
		PermissionUC:     permissionUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
