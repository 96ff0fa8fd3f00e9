// Package access implementa el filtro de alcance por tienda: cada lectura y
// cada operación sensible recibe la identidad del caller de forma explícita,
// nunca de estado ambiente.
package access

import (
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// Caller identidad resuelta del usuario que invoca una operación.
// Role vacío significa que la identidad no pudo resolverse.
type Caller struct {
	UserID  string
	Role    string
	StoreID string
}

// IsAdmin indica si el caller tiene privilegio sobre todas las tiendas.
func (c Caller) IsAdmin() bool {
	return c.Role == entity.RoleAdmin
}

// CanAccessStore indica si el caller puede operar sobre la tienda dada.
func (c Caller) CanAccessStore(storeID string) bool {
	if c.IsAdmin() {
		return true
	}
	return c.Role == entity.RoleVendedor && c.StoreID == storeID && storeID != ""
}

// Scope resuelve el predicado de lectura del caller: storeID vacío significa
// sin restricción (admin). Retorna ErrUnauthorized si el rol no se resuelve.
func (c Caller) Scope() (storeID string, err error) {
	switch c.Role {
	case entity.RoleAdmin:
		return entity.AllStores, nil
	case entity.RoleVendedor:
		if c.StoreID == "" {
			return "", domain.ErrUnauthorized
		}
		return c.StoreID, nil
	default:
		return "", domain.ErrUnauthorized
	}
}
