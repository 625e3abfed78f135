package dto

import "github.com/shopspring/decimal"

// RegisterMovementRequest solicitud de registro de movimiento de stock.
type RegisterMovementRequest struct {
	ProductID         string           `json:"product_id" validate:"required,uuid4"`
	Kind              string           `json:"kind" validate:"required"`
	Quantity          int64            `json:"quantity" validate:"required,gt=0"`
	Reason            string           `json:"reason" validate:"omitempty,max=500"`
	UnitPurchasePrice *decimal.Decimal `json:"unit_purchase_price" validate:"-"`
}
