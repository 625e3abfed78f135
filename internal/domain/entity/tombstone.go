package entity

import "time"

// Tombstone es el par (Deleted, DeletedAt) de la eliminación lógica.
// Invariante: Deleted == (DeletedAt != nil); ambos campos se escriben siempre
// juntos, en una misma sentencia, nunca por separado.
type Tombstone struct {
	Deleted   bool
	DeletedAt *time.Time
}

// IsDeleted informa si la fila está eliminada lógicamente.
func (t Tombstone) IsDeleted() bool { return t.Deleted }

// Consistent verifica el invariante del par.
func (t Tombstone) Consistent() bool { return t.Deleted == (t.DeletedAt != nil) }
