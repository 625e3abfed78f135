package repository

import (
	"context"
	"time"

	"github.com/jhoicas/resto-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role (global, sin tenant).
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByIDAny(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error) // incluye eliminados
	List(ctx context.Context, limit, offset int) ([]*entity.Role, int64, error)
	SoftDelete(ctx context.Context, id string, now time.Time) error
	Restore(ctx context.Context, id string) error
	// ReplacePermissions reemplaza en bloque las asignaciones del rol.
	ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string) error
	// CountActiveWithPermission cuenta roles no eliminados que tienen asignado
	// el permiso (guardia de eliminación de permisos).
	CountActiveWithPermission(ctx context.Context, permissionID string) (int64, error)
}

// PermissionRepository define el puerto de persistencia para Permission.
type PermissionRepository interface {
	Create(ctx context.Context, permission *entity.Permission) error
	GetByID(ctx context.Context, id string) (*entity.Permission, error)
	GetByIDAny(ctx context.Context, id string) (*entity.Permission, error)
	GetByName(ctx context.Context, name string) (*entity.Permission, error) // incluye eliminados
	GetManyByIDs(ctx context.Context, ids []string) ([]*entity.Permission, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Permission, int64, error)
	SoftDelete(ctx context.Context, id string, now time.Time) error
	Restore(ctx context.Context, id string) error
}
