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

var _ repository.RoleRepository = (*RoleRepo)(nil)
var _ repository.PermissionRepository = (*PermissionRepo)(nil)

const roleColumns = `id, name, description, deleted, deleted_at, created_at, updated_at`

// RoleRepo implementación de RoleRepository sobre PostgreSQL (usable con pool o tx).
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de roles. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func scanRole(row pgx.Row) (*entity.Role, error) {
	var role entity.Role
	err := row.Scan(
		&role.ID, &role.Name, &role.Description,
		&role.Deleted, &role.DeletedAt, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Create persiste un rol nuevo.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	if role.ID == "" {
		role.ID = uuid.New().String()
	}
	query := `INSERT INTO roles (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, now(), now())`
	_, err := r.q.Exec(ctx, query, role.ID, role.Name, role.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

// GetByID obtiene un rol activo; nil sin error si no existe.
func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE id = $1 AND deleted = false`
	role, err := scanRole(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

// GetByIDAny igual que GetByID pero incluye eliminados.
func (r *RoleRepo) GetByIDAny(ctx context.Context, id string) (*entity.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE id = $1`
	role, err := scanRole(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role any: %w", err)
	}
	return role, nil
}

// GetByName busca por nombre incluyendo eliminados.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE name = $1`
	role, err := scanRole(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return role, nil
}

// List lista roles activos con total.
func (r *RoleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Role, int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM roles WHERE deleted = false`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}

	query := `SELECT ` + roleColumns + ` FROM roles WHERE deleted = false ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(
			&role.ID, &role.Name, &role.Description,
			&role.Deleted, &role.DeletedAt, &role.CreatedAt, &role.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, total, rows.Err()
}

// SoftDelete marca el rol como eliminado.
func (r *RoleRepo) SoftDelete(ctx context.Context, id string, now time.Time) error {
	query := `UPDATE roles SET deleted = true, deleted_at = $2, updated_at = now() WHERE id = $1 AND deleted = false`
	tag, err := r.q.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("soft delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore limpia el tombstone del rol.
func (r *RoleRepo) Restore(ctx context.Context, id string) error {
	query := `UPDATE roles SET deleted = false, deleted_at = NULL, updated_at = now() WHERE id = $1 AND deleted = true`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("restore role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplacePermissions reemplaza en bloque las asignaciones del rol.
// Debe ejecutarse dentro de una transacción.
func (r *RoleRepo) ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("clear role permissions: %w", err)
	}
	for _, permID := range permissionIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`, roleID, permID)
		if err != nil {
			return fmt.Errorf("assign permission: %w", err)
		}
	}
	return nil
}

// CountActiveWithPermission cuenta roles no eliminados que tienen el permiso asignado.
func (r *RoleRepo) CountActiveWithPermission(ctx context.Context, permissionID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM role_permissions rp
		JOIN roles ro ON ro.id = rp.role_id AND ro.deleted = false
		WHERE rp.permission_id = $1`, permissionID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count roles with permission: %w", err)
	}
	return n, nil
}

const permissionColumns = `id, name, description, deleted, deleted_at, created_at, updated_at`

// PermissionRepo implementación de PermissionRepository sobre PostgreSQL.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador de permisos. Pasar pool o tx (Querier).
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

func scanPermission(row pgx.Row) (*entity.Permission, error) {
	var p entity.Permission
	err := row.Scan(
		&p.ID, &p.Name, &p.Description,
		&p.Deleted, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un permiso nuevo.
func (r *PermissionRepo) Create(ctx context.Context, p *entity.Permission) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `INSERT INTO permissions (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, now(), now())`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create permission: %w", err)
	}
	return nil
}

// GetByID obtiene un permiso activo; nil sin error si no existe.
func (r *PermissionRepo) GetByID(ctx context.Context, id string) (*entity.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE id = $1 AND deleted = false`
	p, err := scanPermission(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return p, nil
}

// GetByIDAny igual que GetByID pero incluye eliminados.
func (r *PermissionRepo) GetByIDAny(ctx context.Context, id string) (*entity.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE id = $1`
	p, err := scanPermission(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission any: %w", err)
	}
	return p, nil
}

// GetByName busca por nombre incluyendo eliminados.
func (r *PermissionRepo) GetByName(ctx context.Context, name string) (*entity.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE name = $1`
	p, err := scanPermission(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission by name: %w", err)
	}
	return p, nil
}

// GetManyByIDs obtiene los permisos activos cuyos ids estén en la lista.
func (r *PermissionRepo) GetManyByIDs(ctx context.Context, ids []string) ([]*entity.Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE id = ANY($1) AND deleted = false`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get permissions by ids: %w", err)
	}
	defer rows.Close()

	var list []*entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description,
			&p.Deleted, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List lista permisos activos con total.
func (r *PermissionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Permission, int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM permissions WHERE deleted = false`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count permissions: %w", err)
	}

	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE deleted = false ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description,
			&p.Deleted, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// SoftDelete marca el permiso como eliminado.
func (r *PermissionRepo) SoftDelete(ctx context.Context, id string, now time.Time) error {
	query := `UPDATE permissions SET deleted = true, deleted_at = $2, updated_at = now() WHERE id = $1 AND deleted = false`
	tag, err := r.q.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("soft delete permission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore limpia el tombstone del permiso.
func (r *PermissionRepo) Restore(ctx context.Context, id string) error {
	query := `UPDATE permissions SET deleted = false, deleted_at = NULL, updated_at = now() WHERE id = $1 AND deleted = true`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("restore permission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
