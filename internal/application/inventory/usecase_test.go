package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resto-api/internal/application/inventory"
	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
	"github.com/jhoicas/resto-api/pkg/config"
	"github.com/jhoicas/resto-api/pkg/logger"
)

// Fakes en memoria sobre los puertos de repositorio. Replican el contrato de
// la capa postgres: filtros de tenant en la consulta, nil sin error cuando no
// hay fila, ErrNotFound cuando una escritura no afecta filas.

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByRestaurant(_ context.Context, id, restaurantID string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok || p.RestaurantID != restaurantID || p.IsDeleted() {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByRestaurantAny(_ context.Context, id, restaurantID string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok || p.RestaurantID != restaurantID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByName(_ context.Context, restaurantID, name string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.RestaurantID == restaurantID && p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdatePurchasePrice(_ context.Context, productID string, price decimal.Decimal, updatedBy string) error {
	p, ok := r.products[productID]
	if !ok || p.IsDeleted() {
		return domain.ErrNotFound
	}
	cp := price
	p.PurchasePrice = &cp
	if updatedBy != "" {
		by := updatedBy
		p.CreatedBy = &by
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakeProductRepo) ListByRestaurant(_ context.Context, restaurantID string, f repository.ProductFilters) ([]*entity.Product, int64, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.RestaurantID != restaurantID {
			continue
		}
		if p.IsDeleted() && !f.IncludeDeleted {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) SoftDelete(_ context.Context, id string, now time.Time) error {
	p, ok := r.products[id]
	if !ok || p.IsDeleted() {
		return domain.ErrNotFound
	}
	p.Deleted = true
	p.DeletedAt = &now
	return nil
}

func (r *fakeProductRepo) Restore(_ context.Context, id string) error {
	p, ok := r.products[id]
	if !ok || !p.IsDeleted() {
		return domain.ErrNotFound
	}
	p.Deleted = false
	p.DeletedAt = nil
	return nil
}

type fakeInventoryRepo struct {
	byProduct map[string]*entity.Inventory
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{byProduct: make(map[string]*entity.Inventory)}
}

func (r *fakeInventoryRepo) GetByProduct(_ context.Context, productID string) (*entity.Inventory, error) {
	inv, ok := r.byProduct[productID]
	if !ok || inv.IsDeleted() {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInventoryRepo) GetByProductForUpdate(_ context.Context, productID string) (*entity.Inventory, error) {
	inv, ok := r.byProduct[productID]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	cp := *inv
	r.byProduct[inv.ProductID] = &cp
	return nil
}

func (r *fakeInventoryRepo) UpdateQuantity(_ context.Context, productID string, quantity int64) error {
	inv, ok := r.byProduct[productID]
	if !ok || inv.IsDeleted() {
		return domain.ErrNotFound
	}
	inv.Quantity = quantity
	inv.UpdatedAt = time.Now()
	return nil
}

func (r *fakeInventoryRepo) Resurrect(_ context.Context, productID string) error {
	inv, ok := r.byProduct[productID]
	if !ok {
		return nil
	}
	inv.Deleted = false
	inv.DeletedAt = nil
	inv.Quantity = 0
	return nil
}

func (r *fakeInventoryRepo) SoftDeleteByProduct(_ context.Context, productID string, now time.Time) error {
	inv, ok := r.byProduct[productID]
	if !ok || inv.IsDeleted() {
		return nil
	}
	inv.Deleted = true
	inv.DeletedAt = &now
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeMovementRepo) matches(m *entity.StockMovement, productID string, f repository.MovementFilters) bool {
	if m.ProductID != productID {
		return false
	}
	if f.Kind != "" && m.Kind != f.Kind {
		return false
	}
	if f.From != nil && m.MovedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && m.MovedAt.After(*f.To) {
		return false
	}
	return true
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID string, f repository.MovementFilters) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	// Los movimientos se anexan en orden cronológico; el listado va del más
	// reciente al más antiguo.
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.matches(r.movements[i], productID, f) {
			cp := *r.movements[i]
			out = append(out, &cp)
		}
	}
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeMovementRepo) CountByProduct(_ context.Context, productID string, f repository.MovementFilters) (int64, error) {
	var n int64
	for _, m := range r.movements {
		if r.matches(m, productID, f) {
			n++
		}
	}
	return n, nil
}

func (r *fakeInventoryRepo) clone() map[string]*entity.Inventory {
	out := make(map[string]*entity.Inventory, len(r.byProduct))
	for k, v := range r.byProduct {
		cp := *v
		out[k] = &cp
	}
	return out
}

func (r *fakeProductRepo) clone() map[string]*entity.Product {
	out := make(map[string]*entity.Product, len(r.products))
	for k, v := range r.products {
		cp := *v
		out[k] = &cp
	}
	return out
}

// failingMovementRepo simula un insert del libro que falla dentro de la tx.
type failingMovementRepo struct {
	*fakeMovementRepo
	err error
}

func (r failingMovementRepo) Create(context.Context, *entity.StockMovement) error {
	return r.err
}

// fakeTxRunner entrega los fakes directamente y, si fn falla, revierte los
// stores al estado previo para emular el rollback de la transacción.
type fakeTxRunner struct {
	movements *fakeMovementRepo
	invs      *fakeInventoryRepo
	products  *fakeProductRepo
	movErr    error // si no es nil, el insert del movimiento falla
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
) error) error {
	invSnap := r.invs.clone()
	prodSnap := r.products.clone()
	movCount := len(r.movements.movements)

	var movRepo repository.StockMovementRepository = r.movements
	if r.movErr != nil {
		movRepo = failingMovementRepo{fakeMovementRepo: r.movements, err: r.movErr}
	}
	err := fn(movRepo, r.invs, r.products)
	if err != nil {
		r.invs.byProduct = invSnap
		r.products.products = prodSnap
		r.movements.movements = r.movements.movements[:movCount]
	}
	return err
}

type fixture struct {
	products  *fakeProductRepo
	invs      *fakeInventoryRepo
	movements *fakeMovementRepo
	runner    *fakeTxRunner
	uc        *inventory.RegisterMovementUseCase
}

func newFixture(allowNegative bool) *fixture {
	f := &fixture{
		products:  newFakeProductRepo(),
		invs:      newFakeInventoryRepo(),
		movements: &fakeMovementRepo{},
	}
	f.runner = &fakeTxRunner{movements: f.movements, invs: f.invs, products: f.products}
	f.uc = inventory.NewRegisterMovementUseCase(
		f.runner,
		config.InventoryConfig{AllowNegativeStock: allowNegative},
		logger.NewNop(),
	)
	return f
}

func (f *fixture) seedProduct(id, restaurantID string) *entity.Product {
	p := &entity.Product{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         "Harina 000",
		UnitMeasure:  "kg",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.products.products[id] = p
	return p
}

func (f *fixture) seedInventory(productID string, quantity int64) *entity.Inventory {
	inv := &entity.Inventory{
		ID:        "inv-" + productID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.invs.byProduct[productID] = inv
	return inv
}

func TestRegisterMovement_PurchaseCreatesInventoryAndUpdatesPrice(t *testing.T) {
	f := newFixture(true)
	f.seedProduct("p1", "r1")
	price := decimal.NewFromFloat(12.50)

	res, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		RestaurantID:      "r1",
		UserID:            "u1",
		ProductID:         "p1",
		Kind:              entity.MovementPurchaseIn,
		Quantity:          30,
		Reason:            "compra semanal",
		UnitPurchasePrice: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.Movement.QuantityBefore)
	assert.Equal(t, int64(30), res.Movement.QuantityAfter)
	assert.True(t, res.Movement.Applies())
	require.NotNil(t, res.Movement.UserID)
	assert.Equal(t, "u1", *res.Movement.UserID)
	require.NotNil(t, res.Movement.UnitPurchasePrice)
	assert.True(t, res.Movement.UnitPurchasePrice.Equal(price))

	assert.Equal(t, int64(30), res.Inventory.Quantity)
	require.NotNil(t, res.Product)
	assert.True(t, res.Product.PurchasePrice.Equal(price))

	stored := f.products.products["p1"]
	require.NotNil(t, stored.PurchasePrice)
	assert.True(t, stored.PurchasePrice.Equal(price))
	require.NotNil(t, stored.CreatedBy)
	assert.Equal(t, "u1", *stored.CreatedBy)
}

func TestRegisterMovement_OutboundDecrementsStock(t *testing.T) {
	f := newFixture(true)
	f.seedProduct("p1", "r1")
	f.seedInventory("p1", 50)

	res, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		RestaurantID: "r1",
		ProductID:    "p1",
		Kind:         entity.MovementSaleOut,
		Quantity:     20,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), res.Movement.QuantityBefore)
	assert.Equal(t, int64(30), res.Movement.QuantityAfter)
	assert.Equal(t, int64(30), f.invs.byProduct["p1"].Quantity)
	// Movimiento sin actor y sin precio: no es compra.
	assert.Nil(t, res.Movement.UserID)
	assert.Nil(t, res.Movement.UnitPurchasePrice)
	assert.Nil(t, res.Product)
}

func TestRegisterMovement_NegativeStockAllowedByPolicy(t *testing.T) {
	f := newFixture(true)
	f.seedProduct("p1", "r1")
	f.seedInventory("p1", 5)

	res, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		RestaurantID: "r1",
		ProductID:    "p1",
		Kind:         entity.MovementShrinkageOut,
		Quantity:     8,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-3), res.Movement.QuantityAfter)
	assert.Equal(t, int64(-3), f.invs.byProduct["p1"].Quantity)
}

func TestRegisterMovement_NegativeStockRejectedByPolicy(t *testing.T) {
	f := newFixture(false)
	f.seedProduct("p1", "r1")
	f.seedInventory("p1", 5)

	_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		RestaurantID: "r1",
		ProductID:    "p1",
		Kind:         entity.MovementSaleOut,
		Quantity:     8,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), f.invs.byProduct["p1"].Quantity)
	assert.Empty(t, f.movements.movements)
}

func TestRegisterMovement_ExactDrainToZeroAllowed(t *testing.T) {
	f := newFixture(false)
	f.seedProduct("p1", "r1")
	f.seedInventory("p1", 8)

	res, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		RestaurantID: "r1",
		ProductID:    "p1",
		Kind:         entity.MovementSaleOut,
		Quantity:     8,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Movement.QuantityAfter)
}

func TestRegisterMovement_ResurrectsDeletedInventoryAtZero(t *testing.T) {
	f := newFixture(true)
	f.seedProduct("p1", "r1")
	inv := f.seedInventory("p1", 40)
	now := time.Now()
	inv.Deleted = true
	inv.DeletedAt = &now

	res, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		RestaurantID: "r1",
		ProductID:    "p1",
		Kind:         entity.MovementAdjustmentIn,
		Quantity:     10,
	})
	require.NoError(t, err)

	// La secuencia reinicia en 0: la cantidad previa al tombstone no cuenta.
	assert.Equal(t, int64(0), res.Movement.QuantityBefore)
	assert.Equal(t, int64(10), res.Movement.QuantityAfter)
	assert.False(t, f.invs.byProduct["p1"].IsDeleted())
	assert.Equal(t, int64(10), f.invs.byProduct["p1"].Quantity)
}

func TestRegisterMovement_ValidationErrors(t *testing.T) {
	f := newFixture(true)
	f.seedProduct("p1", "r1")
	negative := decimal.NewFromInt(-1)

	cases := []struct {
		name  string
		input inventory.MovementInput
	}{
		{"producto vacío", inventory.MovementInput{RestaurantID: "r1", Kind: entity.MovementSaleOut, Quantity: 1}},
		{"restaurante vacío", inventory.MovementInput{ProductID: "p1", Kind: entity.MovementSaleOut, Quantity: 1}},
		{"tipo desconocido", inventory.MovementInput{RestaurantID: "r1", ProductID: "p1", Kind: "ENTRADA_REGALO", Quantity: 1}},
		{"cantidad cero", inventory.MovementInput{RestaurantID: "r1", ProductID: "p1", Kind: entity.MovementSaleOut, Quantity: 0}},
		{"cantidad negativa", inventory.MovementInput{RestaurantID: "r1", ProductID: "p1", Kind: entity.MovementSaleOut, Quantity: -5}},
		{"precio negativo", inventory.MovementInput{RestaurantID: "r1", ProductID: "p1", Kind: entity.MovementPurchaseIn, Quantity: 1, UnitPurchasePrice: &negative}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.RegisterMovement(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.movements.movements)
}

func TestRegisterMovement_ForeignTenantProductNotFound(t *testing.T) {
	f := newFixture(true)
	f.seedProduct("p1", "r1")

	_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		RestaurantID: "r2",
		ProductID:    "p1",
		Kind:         entity.MovementSaleOut,
		Quantity:     1,
	})
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRegisterMovement_DeletedProductNotFound(t *testing.T) {
	f := newFixture(true)
	p := f.seedProduct("p1", "r1")
	now := time.Now()
	p.Deleted = true
	p.DeletedAt = &now

	_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		RestaurantID: "r1",
		ProductID:    "p1",
		Kind:         entity.MovementAdjustmentIn,
		Quantity:     1,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_PriceIgnoredOnNonPurchase(t *testing.T) {
	f := newFixture(true)
	f.seedProduct("p1", "r1")
	f.seedInventory("p1", 10)
	price := decimal.NewFromInt(99)

	res, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		RestaurantID:      "r1",
		ProductID:         "p1",
		Kind:              entity.MovementCustomerReturnIn,
		Quantity:          2,
		UnitPurchasePrice: &price,
	})
	require.NoError(t, err)
	assert.Nil(t, res.Product)
	assert.Nil(t, res.Movement.UnitPurchasePrice)
	assert.Nil(t, f.products.products["p1"].PurchasePrice)
}

func TestRegisterMovement_LedgerInsertFailureLeavesNoPartialState(t *testing.T) {
	f := newFixture(true)
	f.seedProduct("p1", "r1")
	f.seedInventory("p1", 50)
	f.runner.movErr = errors.New("insert del movimiento falló")
	price := decimal.NewFromInt(7)

	// Compra: para cuando el insert del libro falla ya se escribieron el
	// agregado y el precio; nada de eso debe quedar visible.
	_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		RestaurantID:      "r1",
		UserID:            "u1",
		ProductID:         "p1",
		Kind:              entity.MovementPurchaseIn,
		Quantity:          30,
		UnitPurchasePrice: &price,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert del movimiento falló")

	assert.Equal(t, int64(50), f.invs.byProduct["p1"].Quantity)
	assert.Nil(t, f.products.products["p1"].PurchasePrice)
	assert.Nil(t, f.products.products["p1"].CreatedBy)
	assert.Empty(t, f.movements.movements)
}

func TestRegisterMovement_SnapshotsChainAcrossMovements(t *testing.T) {
	f := newFixture(true)
	f.seedProduct("p1", "r1")

	steps := []struct {
		kind string
		qty  int64
	}{
		{entity.MovementAdjustmentIn, 100},
		{entity.MovementSaleOut, 30},
		{entity.MovementInternalUseOut, 20},
		{entity.MovementSupplierReturn, 10},
	}
	for _, s := range steps {
		_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
			RestaurantID: "r1",
			ProductID:    "p1",
			Kind:         s.kind,
			Quantity:     s.qty,
		})
		require.NoError(t, err)
	}

	require.Len(t, f.movements.movements, 4)
	var prev int64
	for _, m := range f.movements.movements {
		assert.Equal(t, prev, m.QuantityBefore)
		assert.True(t, m.Applies())
		prev = m.QuantityAfter
	}
	assert.Equal(t, int64(40), f.invs.byProduct["p1"].Quantity)
}
