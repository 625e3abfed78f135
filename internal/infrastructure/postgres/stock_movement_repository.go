package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, user_id, kind, quantity, quantity_before, quantity_after, unit_purchase_price, reason, moved_at`

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL.
// El puerto no expone Update ni Delete: las filas no se tocan una vez escritas.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create anexa un movimiento al libro.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, user_id, kind, quantity, quantity_before, quantity_after, unit_purchase_price, reason, moved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.UserID, m.Kind,
		m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.UnitPurchasePrice, m.Reason, m.MovedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil sin error si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductID, &m.UserID, &m.Kind,
		&m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
		&m.UnitPurchasePrice, &m.Reason, &m.MovedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

func movementWhere(productID string, f repository.MovementFilters) (string, []any, int) {
	where := ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if f.Kind != "" {
		where += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, f.Kind)
		pos++
	}
	if f.From != nil {
		where += fmt.Sprintf(" AND moved_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		where += fmt.Sprintf(" AND moved_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	return where, args, pos
}

// ListByProduct lista movimientos del producto, más reciente primero, con
// desempate por id (varios movimientos pueden compartir timestamp).
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, f repository.MovementFilters) ([]*entity.StockMovement, error) {
	where, args, pos := movementWhere(productID, f)
	query := `SELECT ` + movementColumns + where +
		fmt.Sprintf(" ORDER BY moved_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.UserID, &m.Kind,
			&m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
			&m.UnitPurchasePrice, &m.Reason, &m.MovedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByProduct cuenta movimientos con los mismos filtros del listado.
func (r *StockMovementRepo) CountByProduct(ctx context.Context, productID string, f repository.MovementFilters) (int64, error) {
	where, args, _ := movementWhere(productID, f)
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return total, nil
}
