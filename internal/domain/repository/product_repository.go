package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-api/internal/domain/entity"
)

// ProductFilters filtros de listado de productos.
type ProductFilters struct {
	Name           string // LIKE sobre nombre
	UnitMeasure    string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Toda consulta por id va acompañada del restaurante: el filtro de tenant se
// aplica en el WHERE, nunca cargando por id y verificando después.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByRestaurant excluye eliminados; GetByRestaurantAny los incluye.
	GetByRestaurant(ctx context.Context, id, restaurantID string) (*entity.Product, error)
	GetByRestaurantAny(ctx context.Context, id, restaurantID string) (*entity.Product, error)
	// GetByName busca por nombre dentro del restaurante incluyendo eliminados
	// (chequeo de duplicados que distingue "existe pero eliminado").
	GetByName(ctx context.Context, restaurantID, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdatePurchasePrice actualiza el último precio de compra y estampa quién lo movió.
	UpdatePurchasePrice(ctx context.Context, productID string, price decimal.Decimal, updatedBy string) error
	ListByRestaurant(ctx context.Context, restaurantID string, f ProductFilters) ([]*entity.Product, int64, error)
	SoftDelete(ctx context.Context, id string, now time.Time) error
	Restore(ctx context.Context, id string) error
}
