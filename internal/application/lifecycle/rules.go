package lifecycle

import (
	"context"
	"time"

	"github.com/jhoicas/resto-api/internal/domain"
)

// entityState resultado de cargar la entidad incluyendo eliminados.
type entityState struct {
	found   bool
	deleted bool
}

// guard evalúa una dependencia que bloquea la eliminación; devuelve el nombre
// de la clase bloqueante o cadena vacía.
type guard func(ctx context.Context, repos Repos, ref Ref) (string, error)

// entityRules comportamiento por tipo de entidad: carga, guardias, volteo del
// tombstone y cascadas a filas co-propiedad (las que nacen con el padre y no
// tienen ciclo de vida independiente).
type entityRules struct {
	load           func(ctx context.Context, repos Repos, ref Ref) (entityState, error)
	guards         []guard
	softDelete     func(ctx context.Context, repos Repos, ref Ref, now time.Time) error
	restore        func(ctx context.Context, repos Repos, ref Ref) error
	cascadeDelete  func(ctx context.Context, repos Repos, ref Ref, now time.Time) error
	cascadeRestore func(ctx context.Context, repos Repos, ref Ref) error
}

// rulesFor resuelve las reglas del tipo. Las entidades con tenant exigen
// RestaurantID; las globales lo ignoran.
func rulesFor(ref Ref) (*entityRules, error) {
	if ref.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch ref.Kind {
	case KindProduct, KindRecipe, KindTable, KindUser:
		if ref.RestaurantID == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	switch ref.Kind {
	case KindProduct:
		return &entityRules{
			load: func(ctx context.Context, repos Repos, ref Ref) (entityState, error) {
				p, err := repos.Products.GetByRestaurantAny(ctx, ref.ID, ref.RestaurantID)
				if err != nil || p == nil {
					return entityState{}, err
				}
				return entityState{found: true, deleted: p.IsDeleted()}, nil
			},
			guards: []guard{
				// Un producto referenciado por ingredientes de recetas activas
				// no se puede eliminar.
				func(ctx context.Context, repos Repos, ref Ref) (string, error) {
					n, err := repos.Ingredients.CountActiveByProduct(ctx, ref.ID)
					if err != nil {
						return "", err
					}
					if n > 0 {
						return "ingredientes de recetas activas que lo usan", nil
					}
					return "", nil
				},
			},
			softDelete: func(ctx context.Context, repos Repos, ref Ref, now time.Time) error {
				return repos.Products.SoftDelete(ctx, ref.ID, now)
			},
			restore: func(ctx context.Context, repos Repos, ref Ref) error {
				return repos.Products.Restore(ctx, ref.ID)
			},
			cascadeDelete: func(ctx context.Context, repos Repos, ref Ref, now time.Time) error {
				return repos.Inventories.SoftDeleteByProduct(ctx, ref.ID, now)
			},
			cascadeRestore: func(ctx context.Context, repos Repos, ref Ref) error {
				// El historial del libro se conserva; el agregado no: vuelve en 0.
				return repos.Inventories.Resurrect(ctx, ref.ID)
			},
		}, nil

	case KindRole:
		return &entityRules{
			load: func(ctx context.Context, repos Repos, ref Ref) (entityState, error) {
				r, err := repos.Roles.GetByIDAny(ctx, ref.ID)
				if err != nil || r == nil {
					return entityState{}, err
				}
				return entityState{found: true, deleted: r.IsDeleted()}, nil
			},
			guards: []guard{
				func(ctx context.Context, repos Repos, ref Ref) (string, error) {
					n, err := repos.Users.CountActiveByRole(ctx, ref.ID)
					if err != nil {
						return "", err
					}
					if n > 0 {
						return "usuarios activos con el rol", nil
					}
					return "", nil
				},
			},
			softDelete: func(ctx context.Context, repos Repos, ref Ref, now time.Time) error {
				return repos.Roles.SoftDelete(ctx, ref.ID, now)
			},
			restore: func(ctx context.Context, repos Repos, ref Ref) error {
				return repos.Roles.Restore(ctx, ref.ID)
			},
		}, nil

	case KindPermission:
		return &entityRules{
			load: func(ctx context.Context, repos Repos, ref Ref) (entityState, error) {
				p, err := repos.Permissions.GetByIDAny(ctx, ref.ID)
				if err != nil || p == nil {
					return entityState{}, err
				}
				return entityState{found: true, deleted: p.IsDeleted()}, nil
			},
			guards: []guard{
				func(ctx context.Context, repos Repos, ref Ref) (string, error) {
					n, err := repos.Roles.CountActiveWithPermission(ctx, ref.ID)
					if err != nil {
						return "", err
					}
					if n > 0 {
						return "roles activos con el permiso asignado", nil
					}
					return "", nil
				},
			},
			softDelete: func(ctx context.Context, repos Repos, ref Ref, now time.Time) error {
				return repos.Permissions.SoftDelete(ctx, ref.ID, now)
			},
			restore: func(ctx context.Context, repos Repos, ref Ref) error {
				return repos.Permissions.Restore(ctx, ref.ID)
			},
		}, nil

	case KindRecipe:
		return &entityRules{
			load: func(ctx context.Context, repos Repos, ref Ref) (entityState, error) {
				r, err := repos.Recipes.GetByRestaurantAny(ctx, ref.ID, ref.RestaurantID)
				if err != nil || r == nil {
					return entityState{}, err
				}
				return entityState{found: true, deleted: r.IsDeleted()}, nil
			},
			softDelete: func(ctx context.Context, repos Repos, ref Ref, now time.Time) error {
				return repos.Recipes.SoftDelete(ctx, ref.ID, now)
			},
			restore: func(ctx context.Context, repos Repos, ref Ref) error {
				return repos.Recipes.Restore(ctx, ref.ID)
			},
			cascadeDelete: func(ctx context.Context, repos Repos, ref Ref, now time.Time) error {
				return repos.Ingredients.SoftDeleteByRecipe(ctx, ref.ID, now)
			},
			cascadeRestore: func(ctx context.Context, repos Repos, ref Ref) error {
				return repos.Ingredients.RestoreByRecipe(ctx, ref.ID)
			},
		}, nil

	case KindUser:
		return &entityRules{
			load: func(ctx context.Context, repos Repos, ref Ref) (entityState, error) {
				u, err := repos.Users.GetByRestaurantAny(ctx, ref.ID, ref.RestaurantID)
				if err != nil || u == nil {
					return entityState{}, err
				}
				return entityState{found: true, deleted: u.IsDeleted()}, nil
			},
			softDelete: func(ctx context.Context, repos Repos, ref Ref, now time.Time) error {
				return repos.Users.SoftDelete(ctx, ref.ID, now)
			},
			restore: func(ctx context.Context, repos Repos, ref Ref) error {
				return repos.Users.Restore(ctx, ref.ID)
			},
			cascadeDelete: func(ctx context.Context, repos Repos, ref Ref, now time.Time) error {
				return repos.Profiles.SoftDeleteByUser(ctx, ref.ID, now)
			},
			cascadeRestore: func(ctx context.Context, repos Repos, ref Ref) error {
				return repos.Profiles.RestoreByUser(ctx, ref.ID)
			},
		}, nil

	case KindRestaurant:
		return &entityRules{
			load: func(ctx context.Context, repos Repos, ref Ref) (entityState, error) {
				r, err := repos.Restaurants.GetByIDAny(ctx, ref.ID)
				if err != nil || r == nil {
					return entityState{}, err
				}
				return entityState{found: true, deleted: r.IsDeleted()}, nil
			},
			guards: []guard{
				func(ctx context.Context, repos Repos, ref Ref) (string, error) {
					n, err := repos.Users.CountActiveByRestaurant(ctx, ref.ID)
					if err != nil {
						return "", err
					}
					if n > 0 {
						return "usuarios activos del restaurante", nil
					}
					return "", nil
				},
			},
			softDelete: func(ctx context.Context, repos Repos, ref Ref, now time.Time) error {
				return repos.Restaurants.SoftDelete(ctx, ref.ID, now)
			},
			restore: func(ctx context.Context, repos Repos, ref Ref) error {
				return repos.Restaurants.Restore(ctx, ref.ID)
			},
		}, nil

	case KindTable:
		return &entityRules{
			load: func(ctx context.Context, repos Repos, ref Ref) (entityState, error) {
				t, err := repos.Tables.GetByRestaurantAny(ctx, ref.ID, ref.RestaurantID)
				if err != nil || t == nil {
					return entityState{}, err
				}
				return entityState{found: true, deleted: t.IsDeleted()}, nil
			},
			softDelete: func(ctx context.Context, repos Repos, ref Ref, now time.Time) error {
				return repos.Tables.SoftDelete(ctx, ref.ID, now)
			},
			restore: func(ctx context.Context, repos Repos, ref Ref) error {
				return repos.Tables.Restore(ctx, ref.ID)
			},
		}, nil
	}
	return nil, domain.ErrInvalidInput
}
