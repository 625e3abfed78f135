package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. El precio de compra y el stock no se
// editan aquí: se mueven únicamente vía el libro de movimientos.
type ProductUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, productRepo: productRepo}
}

// CreateProductInput datos de creación.
type CreateProductInput struct {
	Name            string
	Description     string
	UnitMeasure     string
	MinStock        int64
	InitialQuantity int64
}

// Create crea el producto y su fila de inventario en la misma transacción.
// El nombre es único por restaurante contando también los eliminados: si el
// duplicado está tombstoned, el conflicto sugiere restaurarlo en vez de crear.
func (uc *ProductUseCase) Create(ctx context.Context, restaurantID, userID string, in CreateProductInput) (*entity.Product, error) {
	if in.Name == "" || restaurantID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock < 0 || in.InitialQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.Product
	err := uc.txRunner.RunCatalog(ctx, func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
		_ repository.RecipeRepository,
		_ repository.RecipeIngredientRepository,
	) error {
		existing, err := productRepo.GetByName(ctx, restaurantID, in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.IsDeleted() {
				return domain.ErrDuplicateDeleted
			}
			return domain.ErrDuplicate
		}

		now := time.Now()
		var createdBy *string
		if userID != "" {
			u := userID
			createdBy = &u
		}
		product := &entity.Product{
			ID:           uuid.New().String(),
			RestaurantID: restaurantID,
			Name:         in.Name,
			Description:  in.Description,
			UnitMeasure:  in.UnitMeasure,
			MinStock:     in.MinStock,
			CreatedBy:    createdBy,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		inv := &entity.Inventory{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  in.InitialQuantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := invRepo.Create(ctx, inv); err != nil {
			return err
		}
		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID obtiene un producto del restaurante; ErrNotFound si no existe bajo
// el tenant (indistinguible de un id ajeno).
func (uc *ProductUseCase) GetByID(ctx context.Context, id, restaurantID string, includeDeleted bool) (*entity.Product, error) {
	var (
		product *entity.Product
		err     error
	)
	if includeDeleted {
		product, err = uc.productRepo.GetByRestaurantAny(ctx, id, restaurantID)
	} else {
		product, err = uc.productRepo.GetByRestaurant(ctx, id, restaurantID)
	}
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista productos del restaurante.
func (uc *ProductUseCase) List(ctx context.Context, restaurantID string, f repository.ProductFilters) ([]*entity.Product, int64, error) {
	if restaurantID == "" {
		return nil, 0, domain.ErrInvalidInput
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return uc.productRepo.ListByRestaurant(ctx, restaurantID, f)
}

// UpdateProductInput campos editables; nil = sin cambio.
type UpdateProductInput struct {
	Name        *string
	Description *string
	UnitMeasure *string
	MinStock    *int64
}

// Update actualiza los datos del producto, estampando el actor. El tombstone
// no se toca aquí: eso es del coordinador de ciclo de vida.
func (uc *ProductUseCase) Update(ctx context.Context, id, restaurantID, userID string, in UpdateProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByRestaurant(ctx, id, restaurantID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != product.Name {
		existing, err := uc.productRepo.GetByName(ctx, restaurantID, *in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			if existing.IsDeleted() {
				return nil, domain.ErrDuplicateDeleted
			}
			return nil, domain.ErrDuplicate
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if userID != "" {
		u := userID
		product.CreatedBy = &u
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
