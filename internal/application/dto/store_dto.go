package dto

import "time"

// CreateStoreRequest entrada para crear una tienda.
type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address"`
}

// UpdateStoreRequest entrada para actualizar nombre o dirección de una tienda.
type UpdateStoreRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID        string    `json:"store_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreListResponse lista paginada de tiendas.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
