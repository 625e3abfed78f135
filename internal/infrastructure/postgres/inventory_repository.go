package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, product_id, quantity, deleted, deleted_at, created_at, updated_at`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(
		&inv.ID, &inv.ProductID, &inv.Quantity,
		&inv.Deleted, &inv.DeletedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetByProduct obtiene la fila activa del producto; nil sin error si no existe.
func (r *InventoryRepo) GetByProduct(ctx context.Context, productID string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE product_id = $1 AND deleted = false`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// GetByProductForUpdate obtiene la fila (incluyendo eliminadas) y la bloquea
// con SELECT ... FOR UPDATE. Debe llamarse dentro de una transacción.
func (r *InventoryRepo) GetByProductForUpdate(ctx context.Context, productID string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE product_id = $1 FOR UPDATE`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return inv, nil
}

// Create persiste la fila de inventario del producto.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventories (id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.ProductID, inv.Quantity)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create inventory: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad actual del producto.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, productID string, quantity int64) error {
	query := `UPDATE inventories SET quantity = $2, updated_at = now() WHERE product_id = $1`
	tag, err := r.q.Exec(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Resurrect limpia el tombstone y resetea la cantidad a 0 en una sola
// sentencia: reactivación con estado fresco, no restauración histórica.
func (r *InventoryRepo) Resurrect(ctx context.Context, productID string) error {
	query := `
		UPDATE inventories
		SET deleted = false, deleted_at = NULL, quantity = 0, updated_at = now()
		WHERE product_id = $1`
	if _, err := r.q.Exec(ctx, query, productID); err != nil {
		return fmt.Errorf("resurrect inventory: %w", err)
	}
	// Sin filas afectadas no es error: el producto puede no tener inventario aún.
	return nil
}

// SoftDeleteByProduct marca la fila como eliminada (cascada del producto).
func (r *InventoryRepo) SoftDeleteByProduct(ctx context.Context, productID string, now time.Time) error {
	query := `UPDATE inventories SET deleted = true, deleted_at = $2, updated_at = now() WHERE product_id = $1 AND deleted = false`
	if _, err := r.q.Exec(ctx, query, productID, now); err != nil {
		return fmt.Errorf("soft delete inventory: %w", err)
	}
	// Sin filas afectadas no es error: el producto puede no tener inventario aún.
	return nil
}
