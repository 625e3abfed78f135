package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
	"github.com/jhoicas/resto-api/pkg/config"
	"github.com/jhoicas/resto-api/pkg/logger"
)

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional: anexa el movimiento al libro, recalcula el agregado con la
// fila bloqueada (SELECT FOR UPDATE) y, en compras, actualiza el precio del
// producto. Commit o rollback completo, nunca estado parcial.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	policy   config.InventoryConfig
	log      *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, policy config.InventoryConfig, log *logger.Logger) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, policy: policy, log: log}
}

// MovementInput entrada para registrar un movimiento.
// Quantity es siempre positiva; Kind define si suma o resta.
// UnitPurchasePrice solo aplica a ENTRADA_COMPRA.
type MovementInput struct {
	RestaurantID      string
	UserID            string // actor responsable; vacío en movimientos del sistema
	ProductID         string
	Kind              string
	Quantity          int64
	Reason            string
	UnitPurchasePrice *decimal.Decimal
}

// MovementResult resultado del registro: el movimiento anexado, el agregado
// actualizado y el producto solo si cambió su precio de compra.
type MovementResult struct {
	Movement  *entity.StockMovement
	Inventory *entity.Inventory
	Product   *entity.Product
}

// RegisterMovement valida la entrada y ejecuta el algoritmo del libro dentro
// de una sola transacción:
//  1. carga el producto filtrado por (id, restaurante); no existe => 404
//  2. carga el agregado incluyendo eliminados con FOR UPDATE; si falta lo crea
//     en 0; si está tombstoned lo resucita con cantidad 0
//  3. calcula cantidad nueva según el prefijo del tipo
//  4. si queda negativa: la permite con warning o la rechaza, según política
//  5. persiste agregado, precio (si compra) y movimiento con ambas instantáneas
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if input.ProductID == "" || input.RestaurantID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementKind(input.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitPurchasePrice != nil && input.UnitPurchasePrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var result MovementResult

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByRestaurant(ctx, input.ProductID, input.RestaurantID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		now := time.Now()

		// Bloquea la fila del agregado antes de calcular: dos movimientos
		// concurrentes sobre el mismo producto se serializan aquí.
		inv, err := invRepo.GetByProductForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		switch {
		case inv == nil:
			inv = &entity.Inventory{
				ID:        uuid.New().String(),
				ProductID: input.ProductID,
				Quantity:  0,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := invRepo.Create(ctx, inv); err != nil {
				return err
			}
		case inv.IsDeleted():
			// Reactivación con estado fresco: el libro, no el agregado, es la
			// fuente de verdad, así que la secuencia reinicia en 0.
			if err := invRepo.Resurrect(ctx, input.ProductID); err != nil {
				return err
			}
			inv.Quantity = 0
			inv.Deleted = false
			inv.DeletedAt = nil
		}

		before := inv.Quantity
		var after int64
		if entity.IsInbound(input.Kind) {
			after = before + input.Quantity
		} else {
			after = before - input.Quantity
			if after < 0 {
				if !uc.policy.AllowNegativeStock {
					return domain.ErrInsufficientStock
				}
				uc.log.Warn().
					Str("product_id", input.ProductID).
					Int64("quantity_before", before).
					Int64("quantity_moved", input.Quantity).
					Int64("quantity_after", after).
					Msg("stock negativo tras salida")
			}
		}

		if err := invRepo.UpdateQuantity(ctx, input.ProductID, after); err != nil {
			return err
		}
		inv.Quantity = after
		inv.UpdatedAt = now

		if input.Kind == entity.MovementPurchaseIn && input.UnitPurchasePrice != nil {
			if err := productRepo.UpdatePurchasePrice(ctx, input.ProductID, *input.UnitPurchasePrice, input.UserID); err != nil {
				return err
			}
			price := *input.UnitPurchasePrice
			product.PurchasePrice = &price
			if input.UserID != "" {
				userID := input.UserID
				product.CreatedBy = &userID
			}
			product.UpdatedAt = now
			result.Product = product
		}

		var actor *string
		if input.UserID != "" {
			userID := input.UserID
			actor = &userID
		}
		var price *decimal.Decimal
		if input.Kind == entity.MovementPurchaseIn && input.UnitPurchasePrice != nil {
			p := *input.UnitPurchasePrice
			price = &p
		}
		mov := &entity.StockMovement{
			ID:                uuid.New().String(),
			ProductID:         input.ProductID,
			UserID:            actor,
			Kind:              input.Kind,
			Quantity:          input.Quantity,
			QuantityBefore:    before,
			QuantityAfter:     after,
			UnitPurchasePrice: price,
			Reason:            input.Reason,
			MovedAt:           now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		result.Movement = mov
		result.Inventory = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
