package entity

import "time"

// User usuario del sistema, asociado a un restaurante y a un rol.
type User struct {
	ID           string
	RestaurantID string
	RoleID       string
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Tombstone
}

// UserProfile datos de perfil co-propiedad del usuario: se crea con él y no
// tiene ciclo de vida propio (cae y se restaura en cascada con el usuario).
type UserProfile struct {
	ID        string
	UserID    string
	Phone     string
	Address   string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
	Tombstone
}

// Role rol global del sistema (no pertenece a un restaurante).
type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Tombstone
}

// Permission permiso asignable a roles.
type Permission struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Tombstone
}
