package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidMovementKind(t *testing.T) {
	for _, k := range MovementKinds {
		assert.True(t, ValidMovementKind(k), k)
	}
	assert.False(t, ValidMovementKind(""))
	assert.False(t, ValidMovementKind("ENTRADA_REGALO"))
	assert.False(t, ValidMovementKind("entrada_compra")) // sensible a mayúsculas
}

func TestMovementDirection(t *testing.T) {
	inbound := []string{MovementPurchaseIn, MovementAdjustmentIn, MovementCustomerReturnIn}
	outbound := []string{MovementSaleOut, MovementInternalUseOut, MovementShrinkageOut, MovementAdjustmentOut, MovementSupplierReturn}

	for _, k := range inbound {
		assert.True(t, IsInbound(k), k)
		assert.False(t, IsOutbound(k), k)
	}
	for _, k := range outbound {
		assert.True(t, IsOutbound(k), k)
		assert.False(t, IsInbound(k), k)
	}
}

func TestMovementApplies(t *testing.T) {
	cases := []struct {
		name    string
		m       StockMovement
		applies bool
	}{
		{"entrada correcta", StockMovement{Kind: MovementPurchaseIn, Quantity: 10, QuantityBefore: 5, QuantityAfter: 15}, true},
		{"salida correcta", StockMovement{Kind: MovementSaleOut, Quantity: 3, QuantityBefore: 5, QuantityAfter: 2}, true},
		{"salida a negativo", StockMovement{Kind: MovementShrinkageOut, Quantity: 8, QuantityBefore: 5, QuantityAfter: -3}, true},
		{"entrada inconsistente", StockMovement{Kind: MovementAdjustmentIn, Quantity: 10, QuantityBefore: 5, QuantityAfter: 10}, false},
		{"salida inconsistente", StockMovement{Kind: MovementSaleOut, Quantity: 3, QuantityBefore: 5, QuantityAfter: 5}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.applies, tc.m.Applies())
		})
	}
}

func TestTombstoneConsistent(t *testing.T) {
	now := time.Now()

	assert.True(t, Tombstone{}.Consistent())
	assert.True(t, Tombstone{Deleted: true, DeletedAt: &now}.Consistent())
	assert.False(t, Tombstone{Deleted: true}.Consistent())
	assert.False(t, Tombstone{DeletedAt: &now}.Consistent())
}
