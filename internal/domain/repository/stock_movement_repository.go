package repository

import (
	"context"
	"time"

	"github.com/jhoicas/resto-api/internal/domain/entity"
)

// MovementFilters filtros de listado de movimientos.
type MovementFilters struct {
	Kind   string
	From   *time.Time
	To     *time.Time // inclusivo hasta fin de día (lo resuelve el caso de uso)
	Limit  int
	Offset int
}

// StockMovementRepository define el puerto del libro de movimientos.
// Deliberadamente sin Update ni Delete: el libro es de solo-anexado y la
// inmutabilidad es estructural, no una política.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByProduct ordena por fecha descendente con desempate por id
	// (varios movimientos pueden compartir timestamp).
	ListByProduct(ctx context.Context, productID string, f MovementFilters) ([]*entity.StockMovement, error)
	CountByProduct(ctx context.Context, productID string, f MovementFilters) (int64, error)
}
