package dto

// RegisterRequest alta de usuario.
type RegisterRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required,uuid4"`
	RoleID       string `json:"role_id" validate:"required,uuid4"`
	Name         string `json:"name" validate:"required,min=2,max=150"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
	Address      string `json:"address" validate:"omitempty,max=300"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateRoleRequest alta de rol global.
type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description" validate:"omitempty,max=300"`
}

// CreatePermissionRequest alta de permiso global.
type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description" validate:"omitempty,max=300"`
}

// AssignPermissionsRequest reemplazo del conjunto de permisos de un rol.
type AssignPermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" validate:"required,dive,uuid4"`
}

// CreateRestaurantRequest alta de restaurante.
type CreateRestaurantRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=150"`
	Address string `json:"address" validate:"omitempty,max=300"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
}

// CreateTableRequest alta de mesa.
type CreateTableRequest struct {
	Number   int `json:"number" validate:"required,min=1"`
	Capacity int `json:"capacity" validate:"required,min=1"`
}

// UpdateTableStatusRequest cambio de estado de mesa.
type UpdateTableStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=libre ocupada reservada"`
}
