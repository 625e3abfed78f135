package lifecycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resto-api/internal/application/lifecycle"
	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
	"github.com/jhoicas/resto-api/pkg/logger"
)

// memStore implementa todos los puertos de repositorio sobre mapas en memoria,
// con la misma semántica que la capa postgres: SoftDelete/Restore devuelven
// ErrNotFound cuando no afectan filas; las cascadas toleran cero filas.
type memStore struct {
	restaurants map[string]*entity.Restaurant
	tables      map[string]*entity.Table
	users       map[string]*entity.User
	profiles    map[string]*entity.UserProfile // por userID
	roles       map[string]*entity.Role
	perms       map[string]*entity.Permission
	rolePerms   map[string][]string
	products    map[string]*entity.Product
	invs        map[string]*entity.Inventory // por productID
	recipes     map[string]*entity.Recipe
	ingredients []*entity.RecipeIngredient
}

func newMemStore() *memStore {
	return &memStore{
		restaurants: make(map[string]*entity.Restaurant),
		tables:      make(map[string]*entity.Table),
		users:       make(map[string]*entity.User),
		profiles:    make(map[string]*entity.UserProfile),
		roles:       make(map[string]*entity.Role),
		perms:       make(map[string]*entity.Permission),
		rolePerms:   make(map[string][]string),
		products:    make(map[string]*entity.Product),
		invs:        make(map[string]*entity.Inventory),
		recipes:     make(map[string]*entity.Recipe),
	}
}

func markDeleted(t *entity.Tombstone, now time.Time) error {
	if t.Deleted {
		return domain.ErrNotFound
	}
	t.Deleted = true
	t.DeletedAt = &now
	return nil
}

func markRestored(t *entity.Tombstone) error {
	if !t.Deleted {
		return domain.ErrNotFound
	}
	t.Deleted = false
	t.DeletedAt = nil
	return nil
}

// --- RestaurantRepository ---

func (s *memStore) Create(_ context.Context, r *entity.Restaurant) error {
	s.restaurants[r.ID] = r
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.Restaurant, error) {
	r, ok := s.restaurants[id]
	if !ok || r.IsDeleted() {
		return nil, nil
	}
	return r, nil
}

func (s *memStore) GetByIDAny(_ context.Context, id string) (*entity.Restaurant, error) {
	r, ok := s.restaurants[id]
	if !ok {
		return nil, nil
	}
	return r, nil
}

func (s *memStore) List(_ context.Context, _, _ int) ([]*entity.Restaurant, int64, error) {
	return nil, 0, nil
}

func (s *memStore) Update(_ context.Context, r *entity.Restaurant) error {
	s.restaurants[r.ID] = r
	return nil
}

func (s *memStore) SoftDelete(_ context.Context, id string, now time.Time) error {
	r, ok := s.restaurants[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markDeleted(&r.Tombstone, now)
}

func (s *memStore) Restore(_ context.Context, id string) error {
	r, ok := s.restaurants[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markRestored(&r.Tombstone)
}

// --- TableRepository (vía wrapper para no chocar firmas con Restaurant) ---

type tableStore struct{ s *memStore }

func (t tableStore) Create(_ context.Context, tb *entity.Table) error {
	t.s.tables[tb.ID] = tb
	return nil
}

func (t tableStore) GetByRestaurant(_ context.Context, id, restaurantID string) (*entity.Table, error) {
	tb, ok := t.s.tables[id]
	if !ok || tb.RestaurantID != restaurantID || tb.IsDeleted() {
		return nil, nil
	}
	return tb, nil
}

func (t tableStore) GetByRestaurantAny(_ context.Context, id, restaurantID string) (*entity.Table, error) {
	tb, ok := t.s.tables[id]
	if !ok || tb.RestaurantID != restaurantID {
		return nil, nil
	}
	return tb, nil
}

func (t tableStore) ListByRestaurant(_ context.Context, _ string, _ bool, _, _ int) ([]*entity.Table, int64, error) {
	return nil, 0, nil
}

func (t tableStore) Update(_ context.Context, tb *entity.Table) error {
	t.s.tables[tb.ID] = tb
	return nil
}

func (t tableStore) SoftDelete(_ context.Context, id string, now time.Time) error {
	tb, ok := t.s.tables[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markDeleted(&tb.Tombstone, now)
}

func (t tableStore) Restore(_ context.Context, id string) error {
	tb, ok := t.s.tables[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markRestored(&tb.Tombstone)
}

// --- UserRepository ---

type userStore struct{ s *memStore }

func (u userStore) Create(_ context.Context, usr *entity.User) error {
	u.s.users[usr.ID] = usr
	return nil
}

func (u userStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	usr, ok := u.s.users[id]
	if !ok || usr.IsDeleted() {
		return nil, nil
	}
	return usr, nil
}

func (u userStore) GetByIDAny(_ context.Context, id string) (*entity.User, error) {
	usr, ok := u.s.users[id]
	if !ok {
		return nil, nil
	}
	return usr, nil
}

func (u userStore) GetByRestaurantAny(_ context.Context, id, restaurantID string) (*entity.User, error) {
	usr, ok := u.s.users[id]
	if !ok || usr.RestaurantID != restaurantID {
		return nil, nil
	}
	return usr, nil
}

func (u userStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, usr := range u.s.users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return nil, nil
}

func (u userStore) ListByRestaurant(_ context.Context, _ string, _, _ int) ([]*entity.User, int64, error) {
	return nil, 0, nil
}

func (u userStore) Update(_ context.Context, usr *entity.User) error {
	u.s.users[usr.ID] = usr
	return nil
}

func (u userStore) SoftDelete(_ context.Context, id string, now time.Time) error {
	usr, ok := u.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markDeleted(&usr.Tombstone, now)
}

func (u userStore) Restore(_ context.Context, id string) error {
	usr, ok := u.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markRestored(&usr.Tombstone)
}

func (u userStore) CountActiveByRole(_ context.Context, roleID string) (int64, error) {
	var n int64
	for _, usr := range u.s.users {
		if usr.RoleID == roleID && usr.Active && !usr.IsDeleted() {
			n++
		}
	}
	return n, nil
}

func (u userStore) CountActiveByRestaurant(_ context.Context, restaurantID string) (int64, error) {
	var n int64
	for _, usr := range u.s.users {
		if usr.RestaurantID == restaurantID && usr.Active && !usr.IsDeleted() {
			n++
		}
	}
	return n, nil
}

// --- UserProfileRepository ---

type profileStore struct{ s *memStore }

func (p profileStore) Create(_ context.Context, pr *entity.UserProfile) error {
	p.s.profiles[pr.UserID] = pr
	return nil
}

func (p profileStore) GetByUserAny(_ context.Context, userID string) (*entity.UserProfile, error) {
	pr, ok := p.s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return pr, nil
}

func (p profileStore) SoftDeleteByUser(_ context.Context, userID string, now time.Time) error {
	pr, ok := p.s.profiles[userID]
	if !ok || pr.IsDeleted() {
		return nil
	}
	pr.Deleted = true
	pr.DeletedAt = &now
	return nil
}

func (p profileStore) RestoreByUser(_ context.Context, userID string) error {
	pr, ok := p.s.profiles[userID]
	if !ok || !pr.IsDeleted() {
		return nil
	}
	pr.Deleted = false
	pr.DeletedAt = nil
	return nil
}

// --- RoleRepository ---

type roleStore struct{ s *memStore }

func (r roleStore) Create(_ context.Context, role *entity.Role) error {
	r.s.roles[role.ID] = role
	return nil
}

func (r roleStore) GetByID(_ context.Context, id string) (*entity.Role, error) {
	role, ok := r.s.roles[id]
	if !ok || role.IsDeleted() {
		return nil, nil
	}
	return role, nil
}

func (r roleStore) GetByIDAny(_ context.Context, id string) (*entity.Role, error) {
	role, ok := r.s.roles[id]
	if !ok {
		return nil, nil
	}
	return role, nil
}

func (r roleStore) GetByName(_ context.Context, name string) (*entity.Role, error) {
	for _, role := range r.s.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, nil
}

func (r roleStore) List(_ context.Context, _, _ int) ([]*entity.Role, int64, error) {
	return nil, 0, nil
}

func (r roleStore) SoftDelete(_ context.Context, id string, now time.Time) error {
	role, ok := r.s.roles[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markDeleted(&role.Tombstone, now)
}

func (r roleStore) Restore(_ context.Context, id string) error {
	role, ok := r.s.roles[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markRestored(&role.Tombstone)
}

func (r roleStore) ReplacePermissions(_ context.Context, roleID string, permissionIDs []string) error {
	r.s.rolePerms[roleID] = permissionIDs
	return nil
}

func (r roleStore) CountActiveWithPermission(_ context.Context, permissionID string) (int64, error) {
	var n int64
	for roleID, permIDs := range r.s.rolePerms {
		role, ok := r.s.roles[roleID]
		if !ok || role.IsDeleted() {
			continue
		}
		for _, id := range permIDs {
			if id == permissionID {
				n++
				break
			}
		}
	}
	return n, nil
}

// --- PermissionRepository ---

type permStore struct{ s *memStore }

func (p permStore) Create(_ context.Context, perm *entity.Permission) error {
	p.s.perms[perm.ID] = perm
	return nil
}

func (p permStore) GetByID(_ context.Context, id string) (*entity.Permission, error) {
	perm, ok := p.s.perms[id]
	if !ok || perm.IsDeleted() {
		return nil, nil
	}
	return perm, nil
}

func (p permStore) GetByIDAny(_ context.Context, id string) (*entity.Permission, error) {
	perm, ok := p.s.perms[id]
	if !ok {
		return nil, nil
	}
	return perm, nil
}

func (p permStore) GetByName(_ context.Context, name string) (*entity.Permission, error) {
	for _, perm := range p.s.perms {
		if perm.Name == name {
			return perm, nil
		}
	}
	return nil, nil
}

func (p permStore) GetManyByIDs(_ context.Context, ids []string) ([]*entity.Permission, error) {
	var out []*entity.Permission
	for _, id := range ids {
		if perm, ok := p.s.perms[id]; ok && !perm.IsDeleted() {
			out = append(out, perm)
		}
	}
	return out, nil
}

func (p permStore) List(_ context.Context, _, _ int) ([]*entity.Permission, int64, error) {
	return nil, 0, nil
}

func (p permStore) SoftDelete(_ context.Context, id string, now time.Time) error {
	perm, ok := p.s.perms[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markDeleted(&perm.Tombstone, now)
}

func (p permStore) Restore(_ context.Context, id string) error {
	perm, ok := p.s.perms[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markRestored(&perm.Tombstone)
}

// --- ProductRepository ---

type productStore struct{ s *memStore }

func (p productStore) Create(_ context.Context, prod *entity.Product) error {
	p.s.products[prod.ID] = prod
	return nil
}

func (p productStore) GetByRestaurant(_ context.Context, id, restaurantID string) (*entity.Product, error) {
	prod, ok := p.s.products[id]
	if !ok || prod.RestaurantID != restaurantID || prod.IsDeleted() {
		return nil, nil
	}
	return prod, nil
}

func (p productStore) GetByRestaurantAny(_ context.Context, id, restaurantID string) (*entity.Product, error) {
	prod, ok := p.s.products[id]
	if !ok || prod.RestaurantID != restaurantID {
		return nil, nil
	}
	return prod, nil
}

func (p productStore) GetByName(_ context.Context, restaurantID, name string) (*entity.Product, error) {
	for _, prod := range p.s.products {
		if prod.RestaurantID == restaurantID && prod.Name == name {
			return prod, nil
		}
	}
	return nil, nil
}

func (p productStore) Update(_ context.Context, prod *entity.Product) error {
	p.s.products[prod.ID] = prod
	return nil
}

func (p productStore) UpdatePurchasePrice(_ context.Context, productID string, price decimal.Decimal, _ string) error {
	prod, ok := p.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := price
	prod.PurchasePrice = &cp
	return nil
}

func (p productStore) ListByRestaurant(_ context.Context, _ string, _ repository.ProductFilters) ([]*entity.Product, int64, error) {
	return nil, 0, nil
}

func (p productStore) SoftDelete(_ context.Context, id string, now time.Time) error {
	prod, ok := p.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markDeleted(&prod.Tombstone, now)
}

func (p productStore) Restore(_ context.Context, id string) error {
	prod, ok := p.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markRestored(&prod.Tombstone)
}

// --- InventoryRepository ---

type invStore struct{ s *memStore }

func (i invStore) GetByProduct(_ context.Context, productID string) (*entity.Inventory, error) {
	inv, ok := i.s.invs[productID]
	if !ok || inv.IsDeleted() {
		return nil, nil
	}
	return inv, nil
}

func (i invStore) GetByProductForUpdate(_ context.Context, productID string) (*entity.Inventory, error) {
	inv, ok := i.s.invs[productID]
	if !ok {
		return nil, nil
	}
	return inv, nil
}

func (i invStore) Create(_ context.Context, inv *entity.Inventory) error {
	i.s.invs[inv.ProductID] = inv
	return nil
}

func (i invStore) UpdateQuantity(_ context.Context, productID string, quantity int64) error {
	inv, ok := i.s.invs[productID]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Quantity = quantity
	return nil
}

func (i invStore) Resurrect(_ context.Context, productID string) error {
	inv, ok := i.s.invs[productID]
	if !ok {
		return nil
	}
	inv.Deleted = false
	inv.DeletedAt = nil
	inv.Quantity = 0
	return nil
}

func (i invStore) SoftDeleteByProduct(_ context.Context, productID string, now time.Time) error {
	inv, ok := i.s.invs[productID]
	if !ok || inv.IsDeleted() {
		return nil
	}
	inv.Deleted = true
	inv.DeletedAt = &now
	return nil
}

// --- RecipeRepository ---

type recipeStore struct{ s *memStore }

func (r recipeStore) Create(_ context.Context, rec *entity.Recipe) error {
	r.s.recipes[rec.ID] = rec
	return nil
}

func (r recipeStore) GetByRestaurant(_ context.Context, id, restaurantID string) (*entity.Recipe, error) {
	rec, ok := r.s.recipes[id]
	if !ok || rec.RestaurantID != restaurantID || rec.IsDeleted() {
		return nil, nil
	}
	return rec, nil
}

func (r recipeStore) GetByRestaurantAny(_ context.Context, id, restaurantID string) (*entity.Recipe, error) {
	rec, ok := r.s.recipes[id]
	if !ok || rec.RestaurantID != restaurantID {
		return nil, nil
	}
	return rec, nil
}

func (r recipeStore) GetByName(_ context.Context, restaurantID, name string) (*entity.Recipe, error) {
	for _, rec := range r.s.recipes {
		if rec.RestaurantID == restaurantID && rec.Name == name {
			return rec, nil
		}
	}
	return nil, nil
}

func (r recipeStore) Update(_ context.Context, rec *entity.Recipe) error {
	r.s.recipes[rec.ID] = rec
	return nil
}

func (r recipeStore) ListByRestaurant(_ context.Context, _ string, _ bool, _, _ int) ([]*entity.Recipe, int64, error) {
	return nil, 0, nil
}

func (r recipeStore) SoftDelete(_ context.Context, id string, now time.Time) error {
	rec, ok := r.s.recipes[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markDeleted(&rec.Tombstone, now)
}

func (r recipeStore) Restore(_ context.Context, id string) error {
	rec, ok := r.s.recipes[id]
	if !ok {
		return domain.ErrNotFound
	}
	return markRestored(&rec.Tombstone)
}

// --- RecipeIngredientRepository ---

type ingredientStore struct{ s *memStore }

func (i ingredientStore) ReplaceForRecipe(_ context.Context, recipeID string, rows []*entity.RecipeIngredient) error {
	var kept []*entity.RecipeIngredient
	for _, row := range i.s.ingredients {
		if row.RecipeID != recipeID {
			kept = append(kept, row)
		}
	}
	i.s.ingredients = append(kept, rows...)
	return nil
}

func (i ingredientStore) ListByRecipe(_ context.Context, recipeID string, includeDeleted bool) ([]*entity.RecipeIngredient, error) {
	var out []*entity.RecipeIngredient
	for _, row := range i.s.ingredients {
		if row.RecipeID != recipeID {
			continue
		}
		if row.IsDeleted() && !includeDeleted {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (i ingredientStore) SoftDeleteByRecipe(_ context.Context, recipeID string, now time.Time) error {
	for _, row := range i.s.ingredients {
		if row.RecipeID == recipeID && !row.IsDeleted() {
			row.Deleted = true
			row.DeletedAt = &now
		}
	}
	return nil
}

func (i ingredientStore) RestoreByRecipe(_ context.Context, recipeID string) error {
	for _, row := range i.s.ingredients {
		if row.RecipeID == recipeID && row.IsDeleted() {
			row.Deleted = false
			row.DeletedAt = nil
		}
	}
	return nil
}

func (i ingredientStore) CountActiveByProduct(_ context.Context, productID string) (int64, error) {
	var n int64
	for _, row := range i.s.ingredients {
		if row.ProductID != productID || row.IsDeleted() {
			continue
		}
		rec, ok := i.s.recipes[row.RecipeID]
		if ok && !rec.IsDeleted() {
			n++
		}
	}
	return n, nil
}

func cloneMap[T any](in map[string]*T) map[string]*T {
	out := make(map[string]*T, len(in))
	for k, v := range in {
		cp := *v
		out[k] = &cp
	}
	return out
}

// clone copia profunda del store, para revertir al fallar una operación.
func (s *memStore) clone() *memStore {
	out := &memStore{
		restaurants: cloneMap(s.restaurants),
		tables:      cloneMap(s.tables),
		users:       cloneMap(s.users),
		profiles:    cloneMap(s.profiles),
		roles:       cloneMap(s.roles),
		perms:       cloneMap(s.perms),
		rolePerms:   make(map[string][]string, len(s.rolePerms)),
		products:    cloneMap(s.products),
		invs:        cloneMap(s.invs),
		recipes:     cloneMap(s.recipes),
	}
	for k, v := range s.rolePerms {
		out.rolePerms[k] = append([]string(nil), v...)
	}
	for _, row := range s.ingredients {
		cp := *row
		out.ingredients = append(out.ingredients, &cp)
	}
	return out
}

// fakeLifecycleTx entrega los repos en memoria; si fn falla, revierte el
// store al estado previo para emular el rollback de la transacción.
type fakeLifecycleTx struct {
	s *memStore
	// ingredients permite inyectar un repo que falla en la cascada.
	ingredients repository.RecipeIngredientRepository
}

func (f *fakeLifecycleTx) RunLifecycle(_ context.Context, fn func(repos lifecycle.Repos) error) error {
	ingredients := f.ingredients
	if ingredients == nil {
		ingredients = ingredientStore{f.s}
	}
	snap := f.s.clone()
	err := fn(lifecycle.Repos{
		Restaurants: f.s,
		Tables:      tableStore{f.s},
		Users:       userStore{f.s},
		Profiles:    profileStore{f.s},
		Roles:       roleStore{f.s},
		Permissions: permStore{f.s},
		Products:    productStore{f.s},
		Inventories: invStore{f.s},
		Recipes:     recipeStore{f.s},
		Ingredients: ingredients,
	})
	if err != nil {
		*f.s = *snap
	}
	return err
}

func newCoordinator() (*memStore, *lifecycle.Coordinator) {
	s := newMemStore()
	return s, lifecycle.NewCoordinator(&fakeLifecycleTx{s: s}, logger.NewNop())
}

func seedProductWithInventory(s *memStore, productID, restaurantID string, qty int64) {
	s.products[productID] = &entity.Product{ID: productID, RestaurantID: restaurantID, Name: "Tomate"}
	s.invs[productID] = &entity.Inventory{ID: "inv-" + productID, ProductID: productID, Quantity: qty}
}

func TestDelete_ProductCascadesToInventory(t *testing.T) {
	s, c := newCoordinator()
	seedProductWithInventory(s, "p1", "r1", 12)

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: lifecycle.KindProduct, ID: "p1", RestaurantID: "r1"})
	require.NoError(t, err)

	assert.True(t, s.products["p1"].IsDeleted())
	assert.True(t, s.products["p1"].Consistent())
	assert.True(t, s.invs["p1"].IsDeleted())
}

func TestDelete_ProductBlockedByActiveRecipeIngredient(t *testing.T) {
	s, c := newCoordinator()
	seedProductWithInventory(s, "p1", "r1", 12)
	s.recipes["rec1"] = &entity.Recipe{ID: "rec1", RestaurantID: "r1", Name: "Salsa"}
	s.ingredients = append(s.ingredients, &entity.RecipeIngredient{ID: "i1", RecipeID: "rec1", ProductID: "p1", Quantity: 2})

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: lifecycle.KindProduct, ID: "p1", RestaurantID: "r1"})

	var depErr *domain.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, string(lifecycle.KindProduct), depErr.Entity)
	assert.Contains(t, depErr.Dependency, "recetas activas")
	assert.ErrorIs(t, err, domain.ErrConflict)
	// La guardia corre antes del volteo: nada quedó marcado.
	assert.False(t, s.products["p1"].IsDeleted())
	assert.False(t, s.invs["p1"].IsDeleted())
}

func TestDelete_ProductUnblockedAfterRecipeDeleted(t *testing.T) {
	s, c := newCoordinator()
	seedProductWithInventory(s, "p1", "r1", 12)
	s.recipes["rec1"] = &entity.Recipe{ID: "rec1", RestaurantID: "r1", Name: "Salsa"}
	s.ingredients = append(s.ingredients, &entity.RecipeIngredient{ID: "i1", RecipeID: "rec1", ProductID: "p1", Quantity: 2})

	ctx := context.Background()
	require.NoError(t, c.Delete(ctx, lifecycle.Ref{Kind: lifecycle.KindRecipe, ID: "rec1", RestaurantID: "r1"}))
	// La receta cayó con sus ingredientes; el producto ya no tiene dependientes.
	assert.True(t, s.ingredients[0].IsDeleted())
	require.NoError(t, c.Delete(ctx, lifecycle.Ref{Kind: lifecycle.KindProduct, ID: "p1", RestaurantID: "r1"}))
}

func TestRestore_ProductResurrectsInventoryAtZero(t *testing.T) {
	s, c := newCoordinator()
	seedProductWithInventory(s, "p1", "r1", 37)
	ctx := context.Background()
	require.NoError(t, c.Delete(ctx, lifecycle.Ref{Kind: lifecycle.KindProduct, ID: "p1", RestaurantID: "r1"}))

	require.NoError(t, c.Restore(ctx, lifecycle.Ref{Kind: lifecycle.KindProduct, ID: "p1", RestaurantID: "r1"}))

	assert.False(t, s.products["p1"].IsDeleted())
	assert.False(t, s.invs["p1"].IsDeleted())
	// Reactivación con estado fresco, no restauración histórica.
	assert.Equal(t, int64(0), s.invs["p1"].Quantity)
}

func TestDelete_AlreadyDeletedIsNotFound(t *testing.T) {
	s, c := newCoordinator()
	seedProductWithInventory(s, "p1", "r1", 1)
	ctx := context.Background()
	ref := lifecycle.Ref{Kind: lifecycle.KindProduct, ID: "p1", RestaurantID: "r1"}
	require.NoError(t, c.Delete(ctx, ref))

	err := c.Delete(ctx, ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestore_ActiveEntityIsRejected(t *testing.T) {
	s, c := newCoordinator()
	seedProductWithInventory(s, "p1", "r1", 1)

	err := c.Restore(context.Background(), lifecycle.Ref{Kind: lifecycle.KindProduct, ID: "p1", RestaurantID: "r1"})
	assert.ErrorIs(t, err, domain.ErrNotDeleted)
}

func TestDelete_ForeignTenantIsNotFound(t *testing.T) {
	s, c := newCoordinator()
	seedProductWithInventory(s, "p1", "r1", 1)

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: lifecycle.KindProduct, ID: "p1", RestaurantID: "r2"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, s.products["p1"].IsDeleted())
}

func TestDelete_TenantScopedKindRequiresRestaurant(t *testing.T) {
	_, c := newCoordinator()

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: lifecycle.KindProduct, ID: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_EmptyIDRejected(t *testing.T) {
	_, c := newCoordinator()

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: lifecycle.KindRole})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_UnknownKindRejected(t *testing.T) {
	_, c := newCoordinator()

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: "sucursal", ID: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_RoleBlockedByActiveUsers(t *testing.T) {
	s, c := newCoordinator()
	s.roles["rol1"] = &entity.Role{ID: "rol1", Name: "bodeguero"}
	s.users["u1"] = &entity.User{ID: "u1", RestaurantID: "r1", RoleID: "rol1", Active: true}

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: lifecycle.KindRole, ID: "rol1"})

	var depErr *domain.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Contains(t, depErr.Dependency, "usuarios activos")
	assert.False(t, s.roles["rol1"].IsDeleted())
}

func TestDelete_RoleAllowedAfterUserDeleted(t *testing.T) {
	s, c := newCoordinator()
	s.roles["rol1"] = &entity.Role{ID: "rol1", Name: "bodeguero"}
	s.users["u1"] = &entity.User{ID: "u1", RestaurantID: "r1", RoleID: "rol1", Active: true}
	s.profiles["u1"] = &entity.UserProfile{ID: "pr1", UserID: "u1"}

	ctx := context.Background()
	require.NoError(t, c.Delete(ctx, lifecycle.Ref{Kind: lifecycle.KindUser, ID: "u1", RestaurantID: "r1"}))
	assert.True(t, s.profiles["u1"].IsDeleted())

	require.NoError(t, c.Delete(ctx, lifecycle.Ref{Kind: lifecycle.KindRole, ID: "rol1"}))
	assert.True(t, s.roles["rol1"].IsDeleted())
}

func TestDelete_UserForeignTenantIsNotFound(t *testing.T) {
	s, c := newCoordinator()
	s.users["u1"] = &entity.User{ID: "u1", RestaurantID: "r1", RoleID: "rol1", Active: true}

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: lifecycle.KindUser, ID: "u1", RestaurantID: "r2"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, s.users["u1"].IsDeleted())
}

func TestRestore_UserCascadesToProfile(t *testing.T) {
	s, c := newCoordinator()
	s.users["u1"] = &entity.User{ID: "u1", RestaurantID: "r1", RoleID: "rol1", Active: true}
	s.profiles["u1"] = &entity.UserProfile{ID: "pr1", UserID: "u1"}
	ctx := context.Background()
	require.NoError(t, c.Delete(ctx, lifecycle.Ref{Kind: lifecycle.KindUser, ID: "u1", RestaurantID: "r1"}))

	require.NoError(t, c.Restore(ctx, lifecycle.Ref{Kind: lifecycle.KindUser, ID: "u1", RestaurantID: "r1"}))

	assert.False(t, s.users["u1"].IsDeleted())
	assert.False(t, s.profiles["u1"].IsDeleted())
}

func TestDelete_PermissionBlockedByAssignedRole(t *testing.T) {
	s, c := newCoordinator()
	s.perms["perm1"] = &entity.Permission{ID: "perm1", Name: "inventario:escribir"}
	s.roles["rol1"] = &entity.Role{ID: "rol1", Name: "bodeguero"}
	s.rolePerms["rol1"] = []string{"perm1"}

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: lifecycle.KindPermission, ID: "perm1"})

	var depErr *domain.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Contains(t, depErr.Dependency, "roles activos")
}

func TestDelete_PermissionAllowedWhenRoleDeleted(t *testing.T) {
	s, c := newCoordinator()
	s.perms["perm1"] = &entity.Permission{ID: "perm1", Name: "inventario:escribir"}
	now := time.Now()
	s.roles["rol1"] = &entity.Role{ID: "rol1", Name: "bodeguero", Tombstone: entity.Tombstone{Deleted: true, DeletedAt: &now}}
	s.rolePerms["rol1"] = []string{"perm1"}

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: lifecycle.KindPermission, ID: "perm1"})
	require.NoError(t, err)
	assert.True(t, s.perms["perm1"].IsDeleted())
}

func TestDelete_RestaurantBlockedByActiveUsers(t *testing.T) {
	s, c := newCoordinator()
	s.restaurants["r1"] = &entity.Restaurant{ID: "r1", Name: "La Esquina"}
	s.users["u1"] = &entity.User{ID: "u1", RestaurantID: "r1", Active: true}

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: lifecycle.KindRestaurant, ID: "r1"})

	var depErr *domain.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Contains(t, depErr.Dependency, "usuarios activos del restaurante")
}

func TestDeleteRestore_TableRoundTrip(t *testing.T) {
	s, c := newCoordinator()
	s.tables["t1"] = &entity.Table{ID: "t1", RestaurantID: "r1", Number: 4, Status: "libre"}
	ctx := context.Background()
	ref := lifecycle.Ref{Kind: lifecycle.KindTable, ID: "t1", RestaurantID: "r1"}

	require.NoError(t, c.Delete(ctx, ref))
	assert.True(t, s.tables["t1"].IsDeleted())

	require.NoError(t, c.Restore(ctx, ref))
	assert.False(t, s.tables["t1"].IsDeleted())
	assert.True(t, s.tables["t1"].Consistent())
}

// failingIngredientStore falla la cascada de ingredientes a mitad de operación.
type failingIngredientStore struct {
	ingredientStore
	err error
}

func (f failingIngredientStore) SoftDeleteByRecipe(context.Context, string, time.Time) error {
	return f.err
}

func TestDelete_CascadeFailureLeavesNoPartialTombstone(t *testing.T) {
	s := newMemStore()
	tx := &fakeLifecycleTx{
		s:           s,
		ingredients: failingIngredientStore{ingredientStore{s}, errors.New("cascada de ingredientes falló")},
	}
	c := lifecycle.NewCoordinator(tx, logger.NewNop())

	s.recipes["rec1"] = &entity.Recipe{ID: "rec1", RestaurantID: "r1", Name: "Salsa"}
	s.ingredients = append(s.ingredients, &entity.RecipeIngredient{ID: "i1", RecipeID: "rec1", ProductID: "p1", Quantity: 2})

	err := c.Delete(context.Background(), lifecycle.Ref{Kind: lifecycle.KindRecipe, ID: "rec1", RestaurantID: "r1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cascada de ingredientes falló")

	// La receta se marcó antes de la cascada; el rollback deja todo como estaba.
	assert.False(t, s.recipes["rec1"].IsDeleted())
	assert.True(t, s.recipes["rec1"].Consistent())
	assert.False(t, s.ingredients[0].IsDeleted())
}

func TestRestore_RecipeCascadesToIngredients(t *testing.T) {
	s, c := newCoordinator()
	s.recipes["rec1"] = &entity.Recipe{ID: "rec1", RestaurantID: "r1", Name: "Salsa"}
	s.ingredients = append(s.ingredients,
		&entity.RecipeIngredient{ID: "i1", RecipeID: "rec1", ProductID: "p1", Quantity: 2},
		&entity.RecipeIngredient{ID: "i2", RecipeID: "rec1", ProductID: "p2", Quantity: 1},
	)
	ctx := context.Background()
	ref := lifecycle.Ref{Kind: lifecycle.KindRecipe, ID: "rec1", RestaurantID: "r1"}
	require.NoError(t, c.Delete(ctx, ref))

	require.NoError(t, c.Restore(ctx, ref))

	for _, row := range s.ingredients {
		assert.False(t, row.IsDeleted())
		assert.True(t, row.Consistent())
	}
}
