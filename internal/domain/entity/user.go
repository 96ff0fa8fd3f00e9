package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// AllStores es el sentinel de StoreID para usuarios admin (acceso a todas las tiendas).
const AllStores = ""

// User representa un usuario del sistema. Los vendedores quedan ligados a una
// tienda; los admin llevan StoreID vacío (todas las tiendas).
type User struct {
	ID           string
	StoreID      string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, vendedor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
