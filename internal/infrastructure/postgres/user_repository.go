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

var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.UserProfileRepository = (*UserProfileRepo)(nil)

const userColumns = `id, restaurant_id, role_id, name, email, password_hash, active, deleted, deleted_at, created_at, updated_at`

// UserRepo implementación de UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.RestaurantID, &u.RoleID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Active, &u.Deleted, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	query := `
		INSERT INTO users (id, restaurant_id, role_id, name, email, password_hash, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.q.Exec(ctx, query, u.ID, u.RestaurantID, u.RoleID, u.Name, u.Email, u.PasswordHash, u.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario activo por ID; nil sin error si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted = false`
	u, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByIDAny igual que GetByID pero incluye eliminados.
func (r *UserRepo) GetByIDAny(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user any: %w", err)
	}
	return u, nil
}

// GetByRestaurantAny carga por (id, restaurante) incluyendo eliminados.
func (r *UserRepo) GetByRestaurantAny(ctx context.Context, id, restaurantID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND restaurant_id = $2`
	u, err := scanUser(r.q.QueryRow(ctx, query, id, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by restaurant: %w", err)
	}
	return u, nil
}

// GetByEmail busca por email incluyendo eliminados (login y duplicados).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// ListByRestaurant lista usuarios activos del restaurante con total.
func (r *UserRepo) ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*entity.User, int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE restaurant_id = $1 AND deleted = false`, restaurantID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE restaurant_id = $1 AND deleted = false ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, restaurantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.RestaurantID, &u.RoleID, &u.Name, &u.Email, &u.PasswordHash,
			&u.Active, &u.Deleted, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, total, rows.Err()
}

// Update actualiza los campos editables del usuario. No toca el tombstone.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET role_id = $2, name = $3, email = $4, password_hash = $5, active = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, u.ID, u.RoleID, u.Name, u.Email, u.PasswordHash, u.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el usuario como eliminado (par en una sola sentencia).
func (r *UserRepo) SoftDelete(ctx context.Context, id string, now time.Time) error {
	query := `UPDATE users SET deleted = true, deleted_at = $2, updated_at = now() WHERE id = $1 AND deleted = false`
	tag, err := r.q.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore limpia el tombstone del usuario.
func (r *UserRepo) Restore(ctx context.Context, id string) error {
	query := `UPDATE users SET deleted = false, deleted_at = NULL, updated_at = now() WHERE id = $1 AND deleted = true`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("restore user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountActiveByRole cuenta usuarios activos y no eliminados con el rol.
func (r *UserRepo) CountActiveByRole(ctx context.Context, roleID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role_id = $1 AND active = true AND deleted = false`, roleID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

// CountActiveByRestaurant cuenta usuarios activos y no eliminados del restaurante.
func (r *UserRepo) CountActiveByRestaurant(ctx context.Context, restaurantID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE restaurant_id = $1 AND active = true AND deleted = false`, restaurantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users by restaurant: %w", err)
	}
	return n, nil
}

// UserProfileRepo implementación de UserProfileRepository sobre PostgreSQL.
type UserProfileRepo struct {
	q Querier
}

// NewUserProfileRepository construye el adaptador de perfiles. Pasar pool o tx (Querier).
func NewUserProfileRepository(q Querier) *UserProfileRepo {
	return &UserProfileRepo{q: q}
}

// Create persiste el perfil del usuario.
func (r *UserProfileRepo) Create(ctx context.Context, p *entity.UserProfile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO user_profiles (id, user_id, phone, address, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.q.Exec(ctx, query, p.ID, p.UserID, p.Phone, p.Address, p.AvatarURL)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create user profile: %w", err)
	}
	return nil
}

// GetByUserAny obtiene el perfil del usuario incluyendo eliminados; nil si no existe.
func (r *UserProfileRepo) GetByUserAny(ctx context.Context, userID string) (*entity.UserProfile, error) {
	query := `
		SELECT id, user_id, phone, address, avatar_url, deleted, deleted_at, created_at, updated_at
		FROM user_profiles WHERE user_id = $1`
	var p entity.UserProfile
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Phone, &p.Address, &p.AvatarURL,
		&p.Deleted, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return &p, nil
}

// SoftDeleteByUser marca el perfil como eliminado (cascada del usuario).
func (r *UserProfileRepo) SoftDeleteByUser(ctx context.Context, userID string, now time.Time) error {
	query := `UPDATE user_profiles SET deleted = true, deleted_at = $2, updated_at = now() WHERE user_id = $1 AND deleted = false`
	if _, err := r.q.Exec(ctx, query, userID, now); err != nil {
		return fmt.Errorf("soft delete user profile: %w", err)
	}
	// Sin filas afectadas no es error: el usuario puede no tener perfil.
	return nil
}

// RestoreByUser limpia el tombstone del perfil (cascada del usuario).
func (r *UserProfileRepo) RestoreByUser(ctx context.Context, userID string) error {
	query := `UPDATE user_profiles SET deleted = false, deleted_at = NULL, updated_at = now() WHERE user_id = $1 AND deleted = true`
	if _, err := r.q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("restore user profile: %w", err)
	}
	return nil
}
