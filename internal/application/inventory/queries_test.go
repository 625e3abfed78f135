package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resto-api/internal/application/inventory"
	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
)

func newQueryFixture() (*fixture, *inventory.QueryUseCase) {
	f := newFixture(true)
	q := inventory.NewQueryUseCase(f.products, f.invs, f.movements)
	return f, q
}

func (f *fixture) seedMovement(productID, kind string, qty int64, movedAt time.Time) {
	f.movements.movements = append(f.movements.movements, &entity.StockMovement{
		ID:        "m-" + movedAt.Format(time.RFC3339Nano),
		ProductID: productID,
		Kind:      kind,
		Quantity:  qty,
		MovedAt:   movedAt,
	})
}

func TestGetCurrentStock_ImplicitZeroWithoutRow(t *testing.T) {
	f, q := newQueryFixture()
	f.seedProduct("p1", "r1")

	info, err := q.GetCurrentStock(context.Background(), "p1", "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Quantity)
	assert.Nil(t, info.UpdatedAt)
}

func TestGetCurrentStock_ReturnsAggregate(t *testing.T) {
	f, q := newQueryFixture()
	f.seedProduct("p1", "r1")
	f.seedInventory("p1", 42)

	info, err := q.GetCurrentStock(context.Background(), "p1", "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.Quantity)
	require.NotNil(t, info.UpdatedAt)
}

func TestGetCurrentStock_UnknownProduct(t *testing.T) {
	_, q := newQueryFixture()

	_, err := q.GetCurrentStock(context.Background(), "nope", "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetCurrentStock_ForeignTenant(t *testing.T) {
	f, q := newQueryFixture()
	f.seedProduct("p1", "r1")

	_, err := q.GetCurrentStock(context.Background(), "p1", "r2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_RejectsUnknownKind(t *testing.T) {
	f, q := newQueryFixture()
	f.seedProduct("p1", "r1")

	_, err := q.ListMovements(context.Background(), "p1", "r1", repository.MovementFilters{Kind: "TELETRANSPORTE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_DefaultsAndOrder(t *testing.T) {
	f, q := newQueryFixture()
	f.seedProduct("p1", "r1")
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		f.seedMovement("p1", entity.MovementSaleOut, 1, base.Add(time.Duration(i)*time.Hour))
	}

	page, err := q.ListMovements(context.Background(), "p1", "r1", repository.MovementFilters{})
	require.NoError(t, err)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, int64(25), page.Total)
	require.Len(t, page.Movements, 20)
	// Del más reciente al más antiguo.
	for i := 1; i < len(page.Movements); i++ {
		assert.True(t, !page.Movements[i].MovedAt.After(page.Movements[i-1].MovedAt))
	}
}

func TestListMovements_KindFilter(t *testing.T) {
	f, q := newQueryFixture()
	f.seedProduct("p1", "r1")
	now := time.Now()
	f.seedMovement("p1", entity.MovementPurchaseIn, 10, now.Add(-2*time.Hour))
	f.seedMovement("p1", entity.MovementSaleOut, 3, now.Add(-1*time.Hour))
	f.seedMovement("p1", entity.MovementPurchaseIn, 5, now)

	page, err := q.ListMovements(context.Background(), "p1", "r1", repository.MovementFilters{Kind: entity.MovementPurchaseIn})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	for _, m := range page.Movements {
		assert.Equal(t, entity.MovementPurchaseIn, m.Kind)
	}
}

func TestListMovements_ToFilterIncludesWholeDay(t *testing.T) {
	f, q := newQueryFixture()
	f.seedProduct("p1", "r1")
	f.seedMovement("p1", entity.MovementSaleOut, 1, time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC))
	f.seedMovement("p1", entity.MovementSaleOut, 1, time.Date(2026, 5, 21, 8, 0, 0, 0, time.UTC))

	to := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	page, err := q.ListMovements(context.Background(), "p1", "r1", repository.MovementFilters{To: &to})
	require.NoError(t, err)
	// El día 20 entra completo; el 21 queda fuera.
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Movements, 1)
	assert.Equal(t, 20, page.Movements[0].MovedAt.Day())
}

func TestListMovements_UnknownProduct(t *testing.T) {
	_, q := newQueryFixture()

	_, err := q.ListMovements(context.Background(), "nope", "r1", repository.MovementFilters{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
