package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/access"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

func TestCaller_AdminAccedeACualquierTienda(t *testing.T) {
	admin := access.Caller{UserID: "u1", Role: entity.RoleAdmin, StoreID: entity.AllStores}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanAccessStore("store-a"))
	assert.True(t, admin.CanAccessStore("store-b"))

	scope, err := admin.Scope()
	require.NoError(t, err)
	assert.Equal(t, entity.AllStores, scope, "el alcance del admin no restringe por tienda")
}

func TestCaller_VendedorSoloSuTienda(t *testing.T) {
	vend := access.Caller{UserID: "u2", Role: entity.RoleVendedor, StoreID: "store-a"}

	assert.False(t, vend.IsAdmin())
	assert.True(t, vend.CanAccessStore("store-a"))
	assert.False(t, vend.CanAccessStore("store-b"), "un vendedor no accede a otra tienda")
	assert.False(t, vend.CanAccessStore(""), "la tienda vacía no es accesible para un vendedor")

	scope, err := vend.Scope()
	require.NoError(t, err)
	assert.Equal(t, "store-a", scope)
}

func TestCaller_RolNoResuelto_Unauthorized(t *testing.T) {
	casos := []access.Caller{
		{UserID: "u3"},                                     // sin rol
		{UserID: "u4", Role: "gerente"},                    // rol desconocido
		{UserID: "u5", Role: entity.RoleVendedor},          // vendedor sin tienda
	}
	for _, c := range casos {
		_, err := c.Scope()
		assert.ErrorIs(t, err, domain.ErrUnauthorized, "caller %+v debe quedar sin alcance", c)
	}
}
