package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, restaurant_id, name, description, unit_measure, purchase_price, min_stock, created_by, deleted, deleted_at, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.RestaurantID, &p.Name, &p.Description, &p.UnitMeasure,
		&p.PurchasePrice, &p.MinStock, &p.CreatedBy,
		&p.Deleted, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, restaurant_id, name, description, unit_measure, purchase_price, min_stock, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.RestaurantID, p.Name, p.Description, p.UnitMeasure,
		p.PurchasePrice, p.MinStock, p.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByRestaurant obtiene un producto activo aplicando el filtro de tenant en el WHERE.
func (r *ProductRepo) GetByRestaurant(ctx context.Context, id, restaurantID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND restaurant_id = $2 AND deleted = false`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByRestaurantAny igual que GetByRestaurant pero incluye eliminados.
func (r *ProductRepo) GetByRestaurantAny(ctx context.Context, id, restaurantID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND restaurant_id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product any: %w", err)
	}
	return p, nil
}

// GetByName busca por nombre dentro del restaurante, incluyendo eliminados.
func (r *ProductRepo) GetByName(ctx context.Context, restaurantID, name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE restaurant_id = $1 AND name = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, restaurantID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables del producto. No toca el tombstone.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, unit_measure = $4, purchase_price = $5, min_stock = $6, created_by = $7, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.UnitMeasure, p.PurchasePrice, p.MinStock, p.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePurchasePrice actualiza el último precio de compra y estampa quién lo movió.
func (r *ProductRepo) UpdatePurchasePrice(ctx context.Context, productID string, price decimal.Decimal, updatedBy string) error {
	query := `UPDATE products SET purchase_price = $2, created_by = $3, updated_at = now() WHERE id = $1`
	by := (*string)(nil)
	if updatedBy != "" {
		by = &updatedBy
	}
	tag, err := r.q.Exec(ctx, query, productID, price, by)
	if err != nil {
		return fmt.Errorf("update purchase price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByRestaurant lista productos del restaurante con filtros y total para paginar.
func (r *ProductRepo) ListByRestaurant(ctx context.Context, restaurantID string, f repository.ProductFilters) ([]*entity.Product, int64, error) {
	where := ` FROM products WHERE restaurant_id = $1`
	args := []any{restaurantID}
	pos := 2
	if !f.IncludeDeleted {
		where += " AND deleted = false"
	}
	if f.Name != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", pos)
		args = append(args, "%"+f.Name+"%")
		pos++
	}
	if f.UnitMeasure != "" {
		where += fmt.Sprintf(" AND unit_measure = $%d", pos)
		args = append(args, f.UnitMeasure)
		pos++
	}

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + where + fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.RestaurantID, &p.Name, &p.Description, &p.UnitMeasure,
			&p.PurchasePrice, &p.MinStock, &p.CreatedBy,
			&p.Deleted, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// SoftDelete marca el producto como eliminado. El par (deleted, deleted_at)
// se escribe en una sola sentencia.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string, now time.Time) error {
	query := `UPDATE products SET deleted = true, deleted_at = $2, updated_at = now() WHERE id = $1 AND deleted = false`
	tag, err := r.q.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore limpia el tombstone del producto.
func (r *ProductRepo) Restore(ctx context.Context, id string) error {
	query := `UPDATE products SET deleted = false, deleted_at = NULL, updated_at = now() WHERE id = $1 AND deleted = true`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("restore product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
