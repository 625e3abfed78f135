package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe receta de un restaurante. Los ingredientes son filas co-propiedad:
// se reemplazan en bloque dentro de la misma transacción que actualiza la
// receta y caen/restauran en cascada con ella.
type Recipe struct {
	ID           string
	RestaurantID string
	Name         string
	Description  string
	Instructions string
	PrepMinutes  int
	Servings     int
	CostPrice    *decimal.Decimal
	CreatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Tombstone
}

// RecipeIngredient fila de la relación receta-producto con la cantidad usada.
type RecipeIngredient struct {
	ID          string
	RecipeID    string
	ProductID   string
	Quantity    int64
	UnitMeasure string
	Tombstone
}
