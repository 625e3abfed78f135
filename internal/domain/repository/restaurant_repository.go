package repository

import (
	"context"
	"time"

	"github.com/jhoicas/resto-api/internal/domain/entity"
)

// RestaurantRepository define el puerto de persistencia para Restaurant.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *entity.Restaurant) error
	GetByID(ctx context.Context, id string) (*entity.Restaurant, error)
	GetByIDAny(ctx context.Context, id string) (*entity.Restaurant, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Restaurant, int64, error)
	Update(ctx context.Context, restaurant *entity.Restaurant) error
	SoftDelete(ctx context.Context, id string, now time.Time) error
	Restore(ctx context.Context, id string) error
}

// TableRepository define el puerto de persistencia para Table (tenant-scoped).
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	GetByRestaurant(ctx context.Context, id, restaurantID string) (*entity.Table, error)
	GetByRestaurantAny(ctx context.Context, id, restaurantID string) (*entity.Table, error)
	ListByRestaurant(ctx context.Context, restaurantID string, includeDeleted bool, limit, offset int) ([]*entity.Table, int64, error)
	Update(ctx context.Context, table *entity.Table) error
	SoftDelete(ctx context.Context, id string, now time.Time) error
	Restore(ctx context.Context, id string) error
}
