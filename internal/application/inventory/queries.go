package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el libro y el agregado.
// No abre transacciones: opera con repositorios atados al pool.
type QueryUseCase struct {
	productRepo repository.ProductRepository
	invRepo     repository.InventoryRepository
	movRepo     repository.StockMovementRepository
}

// NewQueryUseCase construye las consultas de inventario.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
) *QueryUseCase {
	return &QueryUseCase{productRepo: productRepo, invRepo: invRepo, movRepo: movRepo}
}

// StockInfo cantidad actual de un producto.
type StockInfo struct {
	Quantity  int64
	UpdatedAt *time.Time
}

// GetCurrentStock devuelve la cantidad actual del producto bajo el tenant.
// Un producto sin fila de inventario tiene stock 0 implícito, no es error.
func (uc *QueryUseCase) GetCurrentStock(ctx context.Context, productID, restaurantID string) (*StockInfo, error) {
	product, err := uc.productRepo.GetByRestaurant(ctx, productID, restaurantID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.invRepo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return &StockInfo{Quantity: 0}, nil
	}
	updated := inv.UpdatedAt
	return &StockInfo{Quantity: inv.Quantity, UpdatedAt: &updated}, nil
}

// MovementPage página de movimientos de un producto.
type MovementPage struct {
	Movements []*entity.StockMovement
	Total     int64
	Limit     int
	Offset    int
}

// ListMovements lista el historial de movimientos de un producto, del más
// reciente al más antiguo, con filtros por tipo y rango de fechas.
func (uc *QueryUseCase) ListMovements(ctx context.Context, productID, restaurantID string, f repository.MovementFilters) (*MovementPage, error) {
	if f.Kind != "" && !entity.ValidMovementKind(f.Kind) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByRestaurant(ctx, productID, restaurantID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.To != nil {
		// El filtro "hasta" incluye el día completo.
		endOfDay := time.Date(f.To.Year(), f.To.Month(), f.To.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), f.To.Location())
		f.To = &endOfDay
	}

	movements, err := uc.movRepo.ListByProduct(ctx, productID, f)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.CountByProduct(ctx, productID, f)
	if err != nil {
		return nil, err
	}
	return &MovementPage{Movements: movements, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}
