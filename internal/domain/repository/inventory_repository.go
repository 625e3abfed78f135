package repository

import (
	"context"
	"time"

	"github.com/jhoicas/resto-api/internal/domain/entity"
)

// InventoryRepository define el puerto para el agregado de cantidad actual
// (una fila por producto). Las escrituras ocurren siempre dentro de la
// transacción del movimiento o de la cascada de eliminación.
type InventoryRepository interface {
	// GetByProduct excluye eliminados; nil sin error si no existe la fila.
	GetByProduct(ctx context.Context, productID string) (*entity.Inventory, error)
	// GetByProductForUpdate incluye eliminados y bloquea la fila
	// (SELECT ... FOR UPDATE) antes de calcular la nueva cantidad.
	// nil sin error si no existe.
	GetByProductForUpdate(ctx context.Context, productID string) (*entity.Inventory, error)
	Create(ctx context.Context, inv *entity.Inventory) error
	UpdateQuantity(ctx context.Context, productID string, quantity int64) error
	// Resurrect limpia el tombstone y resetea la cantidad a 0 en una sola
	// sentencia: reactivación con estado fresco, no restauración histórica.
	Resurrect(ctx context.Context, productID string) error
	SoftDeleteByProduct(ctx context.Context, productID string, now time.Time) error
}
