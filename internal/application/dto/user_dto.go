package dto

import "time"

// RegisterRequest entrada para registrar un usuario.
// StoreID es obligatorio para rol vendedor; los admin lo dejan vacío.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	StoreID  string `json:"store_id"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID        string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateUserRequest entrada para editar un usuario (admin).
type UpdateUserRequest struct {
	Name    *string `json:"name"`
	Role    *string `json:"role"`
	StoreID *string `json:"store_id"`
	Status  *string `json:"status"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
