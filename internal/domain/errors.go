package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrDuplicateDeleted  = errors.New("recurso duplicado pero eliminado; considere restaurarlo")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrNotDeleted        = errors.New("el recurso no está eliminado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// DependencyError bloquea una eliminación lógica nombrando la clase de
// dependencia activa (ej. "usuarios activos con el rol"). Unwrap devuelve
// ErrConflict para que el mapeo HTTP lo trate como 409.
type DependencyError struct {
	Entity     string // entidad que se intentó eliminar
	Dependency string // clase de dependencia que bloquea
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("no se puede eliminar %s: existen %s", e.Entity, e.Dependency)
}

func (e *DependencyError) Unwrap() error { return ErrConflict }
