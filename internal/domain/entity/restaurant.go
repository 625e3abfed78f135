package entity

import "time"

// Restaurant es el tenant: todo producto, receta, mesa y usuario pertenece a
// exactamente un restaurante y ninguna operación cruza esa frontera.
type Restaurant struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Tombstone
}

// Table mesa de un restaurante.
type Table struct {
	ID           string
	RestaurantID string
	Number       int
	Capacity     int
	Status       string // "libre" | "ocupada" | "reservada"
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Tombstone
}
