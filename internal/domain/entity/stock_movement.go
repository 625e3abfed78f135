package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. La dirección está implícita en el prefijo:
// ENTRADA_* suma, SALIDA_* resta. La cantidad movida se guarda siempre positiva.
const (
	MovementPurchaseIn       = "ENTRADA_COMPRA"              // ingreso por compra a proveedor
	MovementAdjustmentIn     = "ENTRADA_AJUSTE"              // ajuste positivo
	MovementCustomerReturnIn = "ENTRADA_DEVOLUCION_CLIENTE"  // devolución de un cliente
	MovementSaleOut          = "SALIDA_VENTA"                // venta
	MovementInternalUseOut   = "SALIDA_CONSUMO_INTERNO"      // consumo interno de cocina
	MovementShrinkageOut     = "SALIDA_MERMA"                // merma
	MovementAdjustmentOut    = "SALIDA_AJUSTE"               // ajuste negativo
	MovementSupplierReturn   = "SALIDA_DEVOLUCION_PROVEEDOR" // devolución a proveedor
)

// MovementKinds enumeración cerrada de tipos válidos.
var MovementKinds = []string{
	MovementPurchaseIn,
	MovementAdjustmentIn,
	MovementCustomerReturnIn,
	MovementSaleOut,
	MovementInternalUseOut,
	MovementShrinkageOut,
	MovementAdjustmentOut,
	MovementSupplierReturn,
}

// ValidMovementKind informa si kind pertenece a la enumeración.
func ValidMovementKind(kind string) bool {
	for _, k := range MovementKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// IsInbound / IsOutbound derivan la dirección del movimiento del prefijo del tipo.
func IsInbound(kind string) bool  { return strings.HasPrefix(kind, "ENTRADA_") }
func IsOutbound(kind string) bool { return strings.HasPrefix(kind, "SALIDA_") }

// StockMovement es una entrada del libro de inventario: inmutable una vez
// escrita (las correcciones son movimientos compensatorios, nunca ediciones).
// QuantityBefore/QuantityAfter son instantáneas que hacen el libro
// auto-auditable aunque el agregado se corrompa después.
type StockMovement struct {
	ID                string
	ProductID         string
	UserID            *string // nil en movimientos generados por el sistema
	Kind              string
	Quantity          int64 // siempre > 0; el tipo define si suma o resta
	QuantityBefore    int64
	QuantityAfter     int64
	UnitPurchasePrice *decimal.Decimal // solo relevante en ENTRADA_COMPRA
	Reason            string
	MovedAt           time.Time
}

// Applies verifica la invariante aritmética del movimiento:
// after - before == ±quantity según la dirección del tipo.
func (m *StockMovement) Applies() bool {
	if IsInbound(m.Kind) {
		return m.QuantityAfter-m.QuantityBefore == m.Quantity
	}
	return m.QuantityBefore-m.QuantityAfter == m.Quantity
}
