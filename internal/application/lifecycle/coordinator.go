package lifecycle

import (
	"context"
	"time"

	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/pkg/logger"
)

// EntityKind entidades con eliminación lógica coordinada.
type EntityKind string

const (
	KindRestaurant EntityKind = "restaurante"
	KindTable      EntityKind = "mesa"
	KindUser       EntityKind = "usuario"
	KindRole       EntityKind = "rol"
	KindPermission EntityKind = "permiso"
	KindProduct    EntityKind = "producto"
	KindRecipe     EntityKind = "receta"
)

// Ref identifica la entidad objetivo. RestaurantID va vacío en entidades
// globales (roles, permisos, restaurantes) y es obligatorio en las demás:
// el filtro de tenant se aplica en la consulta, no después.
type Ref struct {
	Kind         EntityKind
	ID           string
	RestaurantID string
}

// Coordinator ejecuta delete/restore genéricos: guardias de dependencia, el
// volteo atómico del par (deleted, deleted_at) y las cascadas a filas
// co-propiedad, todo dentro de una transacción.
type Coordinator struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewCoordinator construye el coordinador.
func NewCoordinator(txRunner TxRunner, log *logger.Logger) *Coordinator {
	return &Coordinator{txRunner: txRunner, log: log}
}

// Delete elimina lógicamente la entidad referida.
// ErrNotFound si no existe bajo el tenant o ya está eliminada;
// DependencyError (409) si una guardia encuentra dependencias activas.
func (c *Coordinator) Delete(ctx context.Context, ref Ref) error {
	r, err := rulesFor(ref)
	if err != nil {
		return err
	}
	err = c.txRunner.RunLifecycle(ctx, func(repos Repos) error {
		state, err := r.load(ctx, repos, ref)
		if err != nil {
			return err
		}
		if !state.found || state.deleted {
			return domain.ErrNotFound
		}
		for _, g := range r.guards {
			dependency, err := g(ctx, repos, ref)
			if err != nil {
				return err
			}
			if dependency != "" {
				return &domain.DependencyError{Entity: string(ref.Kind), Dependency: dependency}
			}
		}
		now := time.Now()
		if err := r.softDelete(ctx, repos, ref, now); err != nil {
			return err
		}
		if r.cascadeDelete != nil {
			if err := r.cascadeDelete(ctx, repos, ref, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.log.Info().Str("entity", string(ref.Kind)).Str("id", ref.ID).Msg("eliminación lógica aplicada")
	return nil
}

// Restore revierte la eliminación lógica, cascadas incluidas.
// ErrNotFound si la entidad no existe; ErrNotDeleted si existe pero está
// activa (restaurar algo no eliminado se rechaza, no es un no-op: enmascarar
// esa llamada escondería bugs del caller).
func (c *Coordinator) Restore(ctx context.Context, ref Ref) error {
	r, err := rulesFor(ref)
	if err != nil {
		return err
	}
	err = c.txRunner.RunLifecycle(ctx, func(repos Repos) error {
		state, err := r.load(ctx, repos, ref)
		if err != nil {
			return err
		}
		if !state.found {
			return domain.ErrNotFound
		}
		if !state.deleted {
			return domain.ErrNotDeleted
		}
		if err := r.restore(ctx, repos, ref); err != nil {
			return err
		}
		if r.cascadeRestore != nil {
			if err := r.cascadeRestore(ctx, repos, ref); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.log.Info().Str("entity", string(ref.Kind)).Str("id", ref.ID).Msg("restauración aplicada")
	return nil
}
