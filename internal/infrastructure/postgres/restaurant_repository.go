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

var _ repository.RestaurantRepository = (*RestaurantRepo)(nil)
var _ repository.TableRepository = (*TableRepo)(nil)

const restaurantColumns = `id, name, address, phone, deleted, deleted_at, created_at, updated_at`

// RestaurantRepo implementación de RestaurantRepository sobre PostgreSQL.
type RestaurantRepo struct {
	q Querier
}

// NewRestaurantRepository construye el adaptador de restaurantes. Pasar pool o tx (Querier).
func NewRestaurantRepository(q Querier) *RestaurantRepo {
	return &RestaurantRepo{q: q}
}

func scanRestaurant(row pgx.Row) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := row.Scan(
		&rest.ID, &rest.Name, &rest.Address, &rest.Phone,
		&rest.Deleted, &rest.DeletedAt, &rest.CreatedAt, &rest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// Create persiste un restaurante nuevo.
func (r *RestaurantRepo) Create(ctx context.Context, rest *entity.Restaurant) error {
	if rest.ID == "" {
		rest.ID = uuid.New().String()
	}
	query := `INSERT INTO restaurants (id, name, address, phone, created_at, updated_at) VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(ctx, query, rest.ID, rest.Name, rest.Address, rest.Phone)
	if err != nil {
		return fmt.Errorf("create restaurant: %w", err)
	}
	return nil
}

// GetByID obtiene un restaurante activo; nil sin error si no existe.
func (r *RestaurantRepo) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1 AND deleted = false`
	rest, err := scanRestaurant(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return rest, nil
}

// GetByIDAny igual que GetByID pero incluye eliminados.
func (r *RestaurantRepo) GetByIDAny(ctx context.Context, id string) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	rest, err := scanRestaurant(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant any: %w", err)
	}
	return rest, nil
}

// List lista restaurantes activos con total.
func (r *RestaurantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Restaurant, int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants WHERE deleted = false`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count restaurants: %w", err)
	}

	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE deleted = false ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Restaurant
	for rows.Next() {
		var rest entity.Restaurant
		if err := rows.Scan(
			&rest.ID, &rest.Name, &rest.Address, &rest.Phone,
			&rest.Deleted, &rest.DeletedAt, &rest.CreatedAt, &rest.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan restaurant: %w", err)
		}
		list = append(list, &rest)
	}
	return list, total, rows.Err()
}

// Update actualiza los campos editables del restaurante.
func (r *RestaurantRepo) Update(ctx context.Context, rest *entity.Restaurant) error {
	query := `UPDATE restaurants SET name = $2, address = $3, phone = $4, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, rest.ID, rest.Name, rest.Address, rest.Phone)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el restaurante como eliminado.
func (r *RestaurantRepo) SoftDelete(ctx context.Context, id string, now time.Time) error {
	query := `UPDATE restaurants SET deleted = true, deleted_at = $2, updated_at = now() WHERE id = $1 AND deleted = false`
	tag, err := r.q.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("soft delete restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore limpia el tombstone del restaurante.
func (r *RestaurantRepo) Restore(ctx context.Context, id string) error {
	query := `UPDATE restaurants SET deleted = false, deleted_at = NULL, updated_at = now() WHERE id = $1 AND deleted = true`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("restore restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const tableColumns = `id, restaurant_id, number, capacity, status, deleted, deleted_at, created_at, updated_at`

// TableRepo implementación de TableRepository sobre PostgreSQL.
type TableRepo struct {
	q Querier
}

// NewTableRepository construye el adaptador de mesas. Pasar pool o tx (Querier).
func NewTableRepository(q Querier) *TableRepo {
	return &TableRepo{q: q}
}

func scanTable(row pgx.Row) (*entity.Table, error) {
	var t entity.Table
	err := row.Scan(
		&t.ID, &t.RestaurantID, &t.Number, &t.Capacity, &t.Status,
		&t.Deleted, &t.DeletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una mesa nueva.
func (r *TableRepo) Create(ctx context.Context, t *entity.Table) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `INSERT INTO tables (id, restaurant_id, number, capacity, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.q.Exec(ctx, query, t.ID, t.RestaurantID, t.Number, t.Capacity, t.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// GetByRestaurant obtiene una mesa activa aplicando el filtro de tenant en el WHERE.
func (r *TableRepo) GetByRestaurant(ctx context.Context, id, restaurantID string) (*entity.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE id = $1 AND restaurant_id = $2 AND deleted = false`
	t, err := scanTable(r.q.QueryRow(ctx, query, id, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get table: %w", err)
	}
	return t, nil
}

// GetByRestaurantAny igual que GetByRestaurant pero incluye eliminadas.
func (r *TableRepo) GetByRestaurantAny(ctx context.Context, id, restaurantID string) (*entity.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE id = $1 AND restaurant_id = $2`
	t, err := scanTable(r.q.QueryRow(ctx, query, id, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get table any: %w", err)
	}
	return t, nil
}

// ListByRestaurant lista mesas del restaurante ordenadas por número.
func (r *TableRepo) ListByRestaurant(ctx context.Context, restaurantID string, includeDeleted bool, limit, offset int) ([]*entity.Table, int64, error) {
	where := ` FROM tables WHERE restaurant_id = $1`
	if !includeDeleted {
		where += " AND deleted = false"
	}

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+where, restaurantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tables: %w", err)
	}

	query := `SELECT ` + tableColumns + where + ` ORDER BY number ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, restaurantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var list []*entity.Table
	for rows.Next() {
		var t entity.Table
		if err := rows.Scan(
			&t.ID, &t.RestaurantID, &t.Number, &t.Capacity, &t.Status,
			&t.Deleted, &t.DeletedAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan table: %w", err)
		}
		list = append(list, &t)
	}
	return list, total, rows.Err()
}

// Update actualiza los campos editables de la mesa.
func (r *TableRepo) Update(ctx context.Context, t *entity.Table) error {
	query := `UPDATE tables SET number = $2, capacity = $3, status = $4, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, t.ID, t.Number, t.Capacity, t.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca la mesa como eliminada.
func (r *TableRepo) SoftDelete(ctx context.Context, id string, now time.Time) error {
	query := `UPDATE tables SET deleted = true, deleted_at = $2, updated_at = now() WHERE id = $1 AND deleted = false`
	tag, err := r.q.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("soft delete table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore limpia el tombstone de la mesa.
func (r *TableRepo) Restore(ctx context.Context, id string) error {
	query := `UPDATE tables SET deleted = false, deleted_at = NULL, updated_at = now() WHERE id = $1 AND deleted = true`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("restore table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
