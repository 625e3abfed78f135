package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
)

// AccessTxRunner transacción para operaciones de roles/permisos de varios pasos.
type AccessTxRunner interface {
	RunAccess(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		profileRepo repository.UserProfileRepository,
		roleRepo repository.RoleRepository,
		permRepo repository.PermissionRepository,
	) error) error
}

// RoleUseCase CRUD de roles y asignación de permisos.
type RoleUseCase struct {
	txRunner AccessTxRunner
	roleRepo repository.RoleRepository
	permRepo repository.PermissionRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(txRunner AccessTxRunner, roleRepo repository.RoleRepository, permRepo repository.PermissionRepository) *RoleUseCase {
	return &RoleUseCase{txRunner: txRunner, roleRepo: roleRepo, permRepo: permRepo}
}

// Create crea un rol. El nombre es único contando eliminados.
func (uc *RoleUseCase) Create(ctx context.Context, name, description string) (*entity.Role, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.roleRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsDeleted() {
			return nil, domain.ErrDuplicateDeleted
		}
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// GetByID obtiene un rol activo.
func (uc *RoleUseCase) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	return role, nil
}

// List lista roles activos.
func (uc *RoleUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Role, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.roleRepo.List(ctx, limit, offset)
}

// AssignPermissions reemplaza en bloque los permisos del rol dentro de una
// transacción, validando que todos los ids existan y estén activos.
func (uc *RoleUseCase) AssignPermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	if roleID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunAccess(ctx, func(
		_ repository.UserRepository,
		_ repository.UserProfileRepository,
		roleRepo repository.RoleRepository,
		permRepo repository.PermissionRepository,
	) error {
		role, err := roleRepo.GetByID(ctx, roleID)
		if err != nil {
			return err
		}
		if role == nil {
			return domain.ErrNotFound
		}
		if len(permissionIDs) > 0 {
			perms, err := permRepo.GetManyByIDs(ctx, permissionIDs)
			if err != nil {
				return err
			}
			if len(perms) != len(permissionIDs) {
				return domain.ErrInvalidInput
			}
		}
		return roleRepo.ReplacePermissions(ctx, roleID, permissionIDs)
	})
}

// PermissionUseCase CRUD de permisos.
type PermissionUseCase struct {
	permRepo repository.PermissionRepository
}

// NewPermissionUseCase construye el caso de uso.
func NewPermissionUseCase(permRepo repository.PermissionRepository) *PermissionUseCase {
	return &PermissionUseCase{permRepo: permRepo}
}

// Create crea un permiso. El nombre es único contando eliminados.
func (uc *PermissionUseCase) Create(ctx context.Context, name, description string) (*entity.Permission, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.permRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsDeleted() {
			return nil, domain.ErrDuplicateDeleted
		}
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	perm := &entity.Permission{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.permRepo.Create(ctx, perm); err != nil {
		return nil, err
	}
	return perm, nil
}

// List lista permisos activos.
func (uc *PermissionUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Permission, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.permRepo.List(ctx, limit, offset)
}
