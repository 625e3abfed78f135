package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-api/internal/domain/entity"
)

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID            string           `json:"id"`
	RestaurantID  string           `json:"restaurant_id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	UnitMeasure   string           `json:"unit_measure"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	MinStock      int64            `json:"min_stock"`
	Deleted       bool             `json:"deleted"`
	DeletedAt     *time.Time       `json:"deleted_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// FromProduct mapea la entidad a su respuesta.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		RestaurantID:  p.RestaurantID,
		Name:          p.Name,
		Description:   p.Description,
		UnitMeasure:   p.UnitMeasure,
		PurchasePrice: p.PurchasePrice,
		MinStock:      p.MinStock,
		Deleted:       p.Deleted,
		DeletedAt:     p.DeletedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromProducts mapea una lista de productos.
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

// InventoryResponse representación HTTP del agregado de stock.
type InventoryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromInventory mapea la entidad a su respuesta.
func FromInventory(inv *entity.Inventory) InventoryResponse {
	return InventoryResponse{
		ID:        inv.ID,
		ProductID: inv.ProductID,
		Quantity:  inv.Quantity,
		UpdatedAt: inv.UpdatedAt,
	}
}

// MovementResponse representación HTTP de una entrada del libro.
type MovementResponse struct {
	ID                string           `json:"id"`
	ProductID         string           `json:"product_id"`
	UserID            *string          `json:"user_id,omitempty"`
	Kind              string           `json:"kind"`
	Quantity          int64            `json:"quantity"`
	QuantityBefore    int64            `json:"quantity_before"`
	QuantityAfter     int64            `json:"quantity_after"`
	UnitPurchasePrice *decimal.Decimal `json:"unit_purchase_price,omitempty"`
	Reason            string           `json:"reason,omitempty"`
	MovedAt           time.Time        `json:"moved_at"`
}

// FromMovement mapea la entidad a su respuesta.
func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:                m.ID,
		ProductID:         m.ProductID,
		UserID:            m.UserID,
		Kind:              m.Kind,
		Quantity:          m.Quantity,
		QuantityBefore:    m.QuantityBefore,
		QuantityAfter:     m.QuantityAfter,
		UnitPurchasePrice: m.UnitPurchasePrice,
		Reason:            m.Reason,
		MovedAt:           m.MovedAt,
	}
}

// FromMovements mapea una lista de movimientos.
func FromMovements(list []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// IngredientResponse una línea de ingrediente de una receta.
type IngredientResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	UnitMeasure string `json:"unit_measure"`
}

// RecipeResponse representación HTTP de una receta con sus ingredientes.
type RecipeResponse struct {
	ID           string               `json:"id"`
	RestaurantID string               `json:"restaurant_id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Instructions string               `json:"instructions"`
	PrepMinutes  int                  `json:"prep_minutes"`
	Servings     int                  `json:"servings"`
	CostPrice    *decimal.Decimal     `json:"cost_price,omitempty"`
	Deleted      bool                 `json:"deleted"`
	DeletedAt    *time.Time           `json:"deleted_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	Ingredients  []IngredientResponse `json:"ingredients"`
}

// FromRecipe mapea la receta y sus ingredientes a su respuesta.
func FromRecipe(rec *entity.Recipe, ingredients []*entity.RecipeIngredient) RecipeResponse {
	ings := make([]IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		ings = append(ings, IngredientResponse{
			ID:          ing.ID,
			ProductID:   ing.ProductID,
			Quantity:    ing.Quantity,
			UnitMeasure: ing.UnitMeasure,
		})
	}
	return RecipeResponse{
		ID:           rec.ID,
		RestaurantID: rec.RestaurantID,
		Name:         rec.Name,
		Description:  rec.Description,
		Instructions: rec.Instructions,
		PrepMinutes:  rec.PrepMinutes,
		Servings:     rec.Servings,
		CostPrice:    rec.CostPrice,
		Deleted:      rec.Deleted,
		DeletedAt:    rec.DeletedAt,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
		Ingredients:  ings,
	}
}

// UserResponse representación HTTP de un usuario (sin hash).
type UserResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	RoleID       string    `json:"role_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromUser mapea la entidad a su respuesta.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		RestaurantID: u.RestaurantID,
		RoleID:       u.RoleID,
		Name:         u.Name,
		Email:        u.Email,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
	}
}

// LoginResponse token emitido y datos del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
	Role  string       `json:"role,omitempty"`
}

// RoleResponse representación HTTP de un rol.
type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromRole mapea la entidad a su respuesta.
func FromRole(r *entity.Role) RoleResponse {
	return RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description, CreatedAt: r.CreatedAt}
}

// PermissionResponse representación HTTP de un permiso.
type PermissionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromPermission mapea la entidad a su respuesta.
func FromPermission(p *entity.Permission) PermissionResponse {
	return PermissionResponse{ID: p.ID, Name: p.Name, Description: p.Description, CreatedAt: p.CreatedAt}
}

// RestaurantResponse representación HTTP de un restaurante.
type RestaurantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// FromRestaurant mapea la entidad a su respuesta.
func FromRestaurant(r *entity.Restaurant) RestaurantResponse {
	return RestaurantResponse{ID: r.ID, Name: r.Name, Address: r.Address, Phone: r.Phone, CreatedAt: r.CreatedAt}
}

// TableResponse representación HTTP de una mesa.
type TableResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Number       int       `json:"number"`
	Capacity     int       `json:"capacity"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromTable mapea la entidad a su respuesta.
func FromTable(t *entity.Table) TableResponse {
	return TableResponse{
		ID:           t.ID,
		RestaurantID: t.RestaurantID,
		Number:       t.Number,
		Capacity:     t.Capacity,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt,
	}
}

// StockResponse cantidad actual de un producto.
type StockResponse struct {
	ProductID string     `json:"product_id"`
	Quantity  int64      `json:"quantity"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
