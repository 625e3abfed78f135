package repository

import (
	"context"
	"time"

	"github.com/jhoicas/resto-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDAny(ctx context.Context, id string) (*entity.User, error)
	// GetByRestaurantAny carga por (id, restaurante) incluyendo eliminados:
	// el filtro de tenant va en el WHERE, nunca verificando después de cargar.
	GetByRestaurantAny(ctx context.Context, id, restaurantID string) (*entity.User, error)
	// GetByEmail incluye eliminados (login y chequeo de duplicados).
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*entity.User, int64, error)
	Update(ctx context.Context, user *entity.User) error
	SoftDelete(ctx context.Context, id string, now time.Time) error
	Restore(ctx context.Context, id string) error
	// CountActiveByRole cuenta usuarios activos y no eliminados con el rol
	// (guardia de eliminación de roles).
	CountActiveByRole(ctx context.Context, roleID string) (int64, error)
	// CountActiveByRestaurant guardia de eliminación de restaurantes.
	CountActiveByRestaurant(ctx context.Context, restaurantID string) (int64, error)
}

// UserProfileRepository puerto para el perfil co-propiedad del usuario.
type UserProfileRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	GetByUserAny(ctx context.Context, userID string) (*entity.UserProfile, error)
	SoftDeleteByUser(ctx context.Context, userID string, now time.Time) error
	RestoreByUser(ctx context.Context, userID string) error
}
