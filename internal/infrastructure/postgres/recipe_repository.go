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

var _ repository.RecipeRepository = (*RecipeRepo)(nil)
var _ repository.RecipeIngredientRepository = (*RecipeIngredientRepo)(nil)

const recipeColumns = `id, restaurant_id, name, description, instructions, prep_minutes, servings, cost_price, created_by, deleted, deleted_at, created_at, updated_at`

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := row.Scan(
		&rec.ID, &rec.RestaurantID, &rec.Name, &rec.Description, &rec.Instructions,
		&rec.PrepMinutes, &rec.Servings, &rec.CostPrice, &rec.CreatedBy,
		&rec.Deleted, &rec.DeletedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create persiste una receta nueva.
func (r *RecipeRepo) Create(ctx context.Context, rec *entity.Recipe) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	query := `
		INSERT INTO recipes (id, restaurant_id, name, description, instructions, prep_minutes, servings, cost_price, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.RestaurantID, rec.Name, rec.Description, rec.Instructions,
		rec.PrepMinutes, rec.Servings, rec.CostPrice, rec.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

// GetByRestaurant obtiene una receta activa aplicando el filtro de tenant en el WHERE.
func (r *RecipeRepo) GetByRestaurant(ctx context.Context, id, restaurantID string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1 AND restaurant_id = $2 AND deleted = false`
	rec, err := scanRecipe(r.q.QueryRow(ctx, query, id, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return rec, nil
}

// GetByRestaurantAny igual que GetByRestaurant pero incluye eliminadas.
func (r *RecipeRepo) GetByRestaurantAny(ctx context.Context, id, restaurantID string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1 AND restaurant_id = $2`
	rec, err := scanRecipe(r.q.QueryRow(ctx, query, id, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe any: %w", err)
	}
	return rec, nil
}

// GetByName busca por nombre dentro del restaurante, incluyendo eliminadas.
func (r *RecipeRepo) GetByName(ctx context.Context, restaurantID, name string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE restaurant_id = $1 AND name = $2`
	rec, err := scanRecipe(r.q.QueryRow(ctx, query, restaurantID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe by name: %w", err)
	}
	return rec, nil
}

// Update actualiza los campos editables de la receta. No toca el tombstone.
func (r *RecipeRepo) Update(ctx context.Context, rec *entity.Recipe) error {
	query := `
		UPDATE recipes
		SET name = $2, description = $3, instructions = $4, prep_minutes = $5, servings = $6, cost_price = $7, created_by = $8, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		rec.ID, rec.Name, rec.Description, rec.Instructions,
		rec.PrepMinutes, rec.Servings, rec.CostPrice, rec.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByRestaurant lista recetas del restaurante con total.
func (r *RecipeRepo) ListByRestaurant(ctx context.Context, restaurantID string, includeDeleted bool, limit, offset int) ([]*entity.Recipe, int64, error) {
	where := ` FROM recipes WHERE restaurant_id = $1`
	if !includeDeleted {
		where += " AND deleted = false"
	}

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+where, restaurantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	query := `SELECT ` + recipeColumns + where + ` ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, restaurantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(
			&rec.ID, &rec.RestaurantID, &rec.Name, &rec.Description, &rec.Instructions,
			&rec.PrepMinutes, &rec.Servings, &rec.CostPrice, &rec.CreatedBy,
			&rec.Deleted, &rec.DeletedAt, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	return list, total, rows.Err()
}

// SoftDelete marca la receta como eliminada.
func (r *RecipeRepo) SoftDelete(ctx context.Context, id string, now time.Time) error {
	query := `UPDATE recipes SET deleted = true, deleted_at = $2, updated_at = now() WHERE id = $1 AND deleted = false`
	tag, err := r.q.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("soft delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore limpia el tombstone de la receta.
func (r *RecipeRepo) Restore(ctx context.Context, id string) error {
	query := `UPDATE recipes SET deleted = false, deleted_at = NULL, updated_at = now() WHERE id = $1 AND deleted = true`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("restore recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecipeIngredientRepo implementación de RecipeIngredientRepository sobre PostgreSQL.
type RecipeIngredientRepo struct {
	q Querier
}

// NewRecipeIngredientRepository construye el adaptador de ingredientes. Pasar pool o tx (Querier).
func NewRecipeIngredientRepository(q Querier) *RecipeIngredientRepo {
	return &RecipeIngredientRepo{q: q}
}

// ReplaceForRecipe borra las filas actuales y crea las nuevas. Debe ejecutarse
// en la misma transacción que la actualización de la receta.
func (r *RecipeIngredientRepo) ReplaceForRecipe(ctx context.Context, recipeID string, rows []*entity.RecipeIngredient) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID); err != nil {
		return fmt.Errorf("clear recipe ingredients: %w", err)
	}
	for _, ing := range rows {
		if ing.ID == "" {
			ing.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO recipe_ingredients (id, recipe_id, product_id, quantity, unit_measure)
			VALUES ($1, $2, $3, $4, $5)`,
			ing.ID, recipeID, ing.ProductID, ing.Quantity, ing.UnitMeasure,
		)
		if err != nil {
			return fmt.Errorf("insert recipe ingredient: %w", err)
		}
	}
	return nil
}

// ListByRecipe lista los ingredientes de la receta.
func (r *RecipeIngredientRepo) ListByRecipe(ctx context.Context, recipeID string, includeDeleted bool) ([]*entity.RecipeIngredient, error) {
	query := `
		SELECT id, recipe_id, product_id, quantity, unit_measure, deleted, deleted_at
		FROM recipe_ingredients WHERE recipe_id = $1`
	if !includeDeleted {
		query += " AND deleted = false"
	}

	rows, err := r.q.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()

	var list []*entity.RecipeIngredient
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(
			&ing.ID, &ing.RecipeID, &ing.ProductID, &ing.Quantity, &ing.UnitMeasure,
			&ing.Deleted, &ing.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		list = append(list, &ing)
	}
	return list, rows.Err()
}

// SoftDeleteByRecipe marca los ingredientes como eliminados (cascada de la receta).
func (r *RecipeIngredientRepo) SoftDeleteByRecipe(ctx context.Context, recipeID string, now time.Time) error {
	query := `UPDATE recipe_ingredients SET deleted = true, deleted_at = $2 WHERE recipe_id = $1 AND deleted = false`
	if _, err := r.q.Exec(ctx, query, recipeID, now); err != nil {
		return fmt.Errorf("soft delete recipe ingredients: %w", err)
	}
	return nil
}

// RestoreByRecipe limpia el tombstone de los ingredientes (cascada de la receta).
func (r *RecipeIngredientRepo) RestoreByRecipe(ctx context.Context, recipeID string) error {
	query := `UPDATE recipe_ingredients SET deleted = false, deleted_at = NULL WHERE recipe_id = $1 AND deleted = true`
	if _, err := r.q.Exec(ctx, query, recipeID); err != nil {
		return fmt.Errorf("restore recipe ingredients: %w", err)
	}
	return nil
}

// CountActiveByProduct cuenta filas no eliminadas de recetas no eliminadas que
// referencian el producto (guardia de eliminación de productos).
func (r *RecipeIngredientRepo) CountActiveByProduct(ctx context.Context, productID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM recipe_ingredients ri
		JOIN recipes rec ON rec.id = ri.recipe_id AND rec.deleted = false
		WHERE ri.product_id = $1 AND ri.deleted = false`, productID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ingredients by product: %w", err)
	}
	return n, nil
}
