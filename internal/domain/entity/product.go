package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product insumo de un restaurante. PurchasePrice es el último precio de
// compra registrado vía movimientos ENTRADA_COMPRA; el stock vive en
// Inventory. Nunca se elimina físicamente una vez referenciado por un
// movimiento.
type Product struct {
	ID            string
	RestaurantID  string
	Name          string
	Description   string
	UnitMeasure   string
	PurchasePrice *decimal.Decimal
	MinStock      int64
	CreatedBy     *string // usuario que registró o modificó por última vez
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Tombstone
}

// Inventory agregado de cantidad actual: exactamente uno por producto.
// Se crea perezosamente con el primer movimiento; si está eliminado y llega
// un movimiento, se resucita con cantidad 0 (el libro, no el agregado, es la
// fuente de verdad).
type Inventory struct {
	ID        string
	ProductID string
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Tombstone
}
