package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
)

// RestaurantUseCase CRUD de restaurantes (tenants).
type RestaurantUseCase struct {
	repo repository.RestaurantRepository
}

// NewRestaurantUseCase construye el caso de uso.
func NewRestaurantUseCase(repo repository.RestaurantRepository) *RestaurantUseCase {
	return &RestaurantUseCase{repo: repo}
}

// Create crea un restaurante.
func (uc *RestaurantUseCase) Create(ctx context.Context, name, address, phone string) (*entity.Restaurant, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	r := &entity.Restaurant{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   address,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// GetByID obtiene un restaurante activo.
func (uc *RestaurantUseCase) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// List lista restaurantes activos.
func (uc *RestaurantUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Restaurant, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, limit, offset)
}

// TableUseCase CRUD de mesas (tenant-scoped).
type TableUseCase struct {
	repo repository.TableRepository
}

// NewTableUseCase construye el caso de uso.
func NewTableUseCase(repo repository.TableRepository) *TableUseCase {
	return &TableUseCase{repo: repo}
}

// Create crea una mesa del restaurante.
func (uc *TableUseCase) Create(ctx context.Context, restaurantID string, number, capacity int) (*entity.Table, error) {
	if restaurantID == "" || number <= 0 || capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	t := &entity.Table{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Number:       number,
		Capacity:     capacity,
		Status:       "libre",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID obtiene una mesa bajo el tenant.
func (uc *TableUseCase) GetByID(ctx context.Context, id, restaurantID string) (*entity.Table, error) {
	t, err := uc.repo.GetByRestaurant(ctx, id, restaurantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// List lista mesas del restaurante.
func (uc *TableUseCase) List(ctx context.Context, restaurantID string, includeDeleted bool, limit, offset int) ([]*entity.Table, int64, error) {
	if restaurantID == "" {
		return nil, 0, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.ListByRestaurant(ctx, restaurantID, includeDeleted, limit, offset)
}

// UpdateStatus cambia el estado de la mesa.
func (uc *TableUseCase) UpdateStatus(ctx context.Context, id, restaurantID, status string) (*entity.Table, error) {
	switch status {
	case "libre", "ocupada", "reservada":
	default:
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.repo.GetByRestaurant(ctx, id, restaurantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
