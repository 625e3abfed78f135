package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto en el catálogo. El precio de compra
// no se fija aquí: lo mueve el libro con los movimientos ENTRADA_COMPRA.
type CreateProductRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=150"`
	Description     string `json:"description" validate:"omitempty,max=500"`
	UnitMeasure     string `json:"unit_measure" validate:"required,max=30"`
	MinStock        int64  `json:"min_stock" validate:"omitempty,min=0"`
	InitialQuantity int64  `json:"initial_quantity" validate:"omitempty,min=0"`
}

// UpdateProductRequest actualización parcial de producto.
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=150"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	UnitMeasure *string `json:"unit_measure" validate:"omitempty,max=30"`
	MinStock    *int64  `json:"min_stock" validate:"omitempty,min=0"`
}

// IngredientRequest línea de ingrediente de una receta.
type IngredientRequest struct {
	ProductID   string `json:"product_id" validate:"required,uuid4"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	UnitMeasure string `json:"unit_measure" validate:"required,max=30"`
}

// CreateRecipeRequest alta de receta con sus ingredientes.
type CreateRecipeRequest struct {
	Name         string              `json:"name" validate:"required,min=2,max=150"`
	Description  string              `json:"description" validate:"omitempty,max=500"`
	Instructions string              `json:"instructions" validate:"omitempty,max=2000"`
	PrepMinutes  int                 `json:"prep_minutes" validate:"omitempty,min=0"`
	Servings     int                 `json:"servings" validate:"omitempty,min=1"`
	CostPrice    *decimal.Decimal    `json:"cost_price" validate:"-"`
	Ingredients  []IngredientRequest `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeRequest actualización de receta. Si Ingredients no es nil
// se reemplaza la lista completa de ingredientes.
type UpdateRecipeRequest struct {
	Name         *string             `json:"name" validate:"omitempty,min=2,max=150"`
	Description  *string             `json:"description" validate:"omitempty,max=500"`
	Instructions *string             `json:"instructions" validate:"omitempty,max=2000"`
	PrepMinutes  *int                `json:"prep_minutes" validate:"omitempty,min=0"`
	Servings     *int                `json:"servings" validate:"omitempty,min=1"`
	CostPrice    *decimal.Decimal    `json:"cost_price" validate:"-"`
	Ingredients  []IngredientRequest `json:"ingredients" validate:"omitempty,dive"`
}
