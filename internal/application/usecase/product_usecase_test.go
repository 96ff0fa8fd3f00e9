package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/access"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para el CRUD de catálogo
// ──────────────────────────────────────────────────────────────────────────────

type fakeStoreRepo struct {
	stores  map[string]*entity.Store
	deleted []string
}

func newFakeStoreRepo(ids ...string) *fakeStoreRepo {
	r := &fakeStoreRepo{stores: make(map[string]*entity.Store)}
	for _, id := range ids {
		r.stores[id] = &entity.Store{ID: id, Name: "Tienda " + id}
	}
	return r
}

func (r *fakeStoreRepo) Create(s *entity.Store) error { r.stores[s.ID] = s; return nil }
func (r *fakeStoreRepo) GetByID(id string) (*entity.Store, error) {
	return r.stores[id], nil
}
func (r *fakeStoreRepo) Update(s *entity.Store) error { r.stores[s.ID] = s; return nil }
func (r *fakeStoreRepo) ListAll(_, _ int) ([]*entity.Store, error) {
	out := make([]*entity.Store, 0, len(r.stores))
	for _, s := range r.stores {
		out = append(out, s)
	}
	return out, nil
}
func (r *fakeStoreRepo) Delete(id string) error {
	delete(r.stores, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeProductRepo struct {
	products     map[string]*entity.Product
	lastUpdated  *entity.Product
	countByStore map[string]int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:     make(map[string]*entity.Product),
		countByStore: make(map[string]int),
	}
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.lastUpdated = &cp
	if cur, ok := r.products[p.ID]; ok {
		cp.Stock = cur.Stock
		r.products[p.ID] = &cp
	}
	return nil
}
func (r *fakeProductRepo) DeductStock(string, int) error  { return nil }
func (r *fakeProductRepo) RestoreStock(string, int) error { return nil }
func (r *fakeProductRepo) ListAll(_, _ int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ListByStore(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) CountByStore(storeID string) (int, error) {
	return r.countByStore[storeID], nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

type fakeSaleCounter struct {
	countByProduct map[string]int
}

func (r *fakeSaleCounter) Create(*entity.Sale) error                 { return nil }
func (r *fakeSaleCounter) GetByID(string) (*entity.Sale, error)      { return nil, nil }
func (r *fakeSaleCounter) GetForUpdate(string) (*entity.Sale, error) { return nil, nil }
func (r *fakeSaleCounter) Update(*entity.Sale) error                 { return nil }
func (r *fakeSaleCounter) Delete(string) error                       { return nil }
func (r *fakeSaleCounter) ListAll(_, _ int) ([]*entity.Sale, error)  { return nil, nil }
func (r *fakeSaleCounter) ListByStore(string, int, int) ([]*entity.Sale, error) {
	return nil, nil
}
func (r *fakeSaleCounter) CountByProduct(productID string) (int, error) {
	return r.countByProduct[productID], nil
}

func admin() access.Caller {
	return access.Caller{UserID: "admin-1", Role: entity.RoleAdmin}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProductUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_TiendaInexistente(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), newFakeStoreRepo(), &fakeSaleCounter{})

	_, err := uc.Create(admin(), dto.CreateProductRequest{
		StoreID: "no-existe", Name: "Café", Price: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

func TestProductCreate_VendedorSoloEnSuTienda(t *testing.T) {
	stores := newFakeStoreRepo("store-a", "store-b")
	uc := usecase.NewProductUseCase(newFakeProductRepo(), stores, &fakeSaleCounter{})
	vend := access.Caller{UserID: "v1", Role: entity.RoleVendedor, StoreID: "store-a"}

	_, err := uc.Create(vend, dto.CreateProductRequest{
		StoreID: "store-b", Name: "Café", Price: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Create(vend, dto.CreateProductRequest{
		StoreID: "store-a", Name: "Café", Price: decimal.NewFromInt(100), Stock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "store-a", out.StoreID)
	assert.Equal(t, 5, out.Stock, "el stock inicial solo se acepta al crear")
}

func TestProductCreate_DatosInvalidos(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), newFakeStoreRepo("store-a"), &fakeSaleCounter{})

	_, err := uc.Create(admin(), dto.CreateProductRequest{StoreID: "store-a", Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(admin(), dto.CreateProductRequest{
		StoreID: "store-a", Name: "Café", Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(admin(), dto.CreateProductRequest{
		StoreID: "store-a", Name: "Café", Price: decimal.NewFromInt(10), Stock: -3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Update jamás toca el stock, aunque el cliente intente colarlo: el DTO ni
// siquiera expone el campo y el repositorio conserva el valor vigente.
func TestProductUpdate_NuncaTocaElStock(t *testing.T) {
	products := newFakeProductRepo()
	products.products["p1"] = &entity.Product{
		ID: "p1", StoreID: "store-a", Name: "Café", Price: decimal.NewFromInt(100), Stock: 7,
	}
	uc := usecase.NewProductUseCase(products, newFakeStoreRepo("store-a"), &fakeSaleCounter{})

	nombre := "Café premium"
	precio := decimal.NewFromInt(150)
	out, err := uc.Update(admin(), "p1", dto.UpdateProductRequest{Name: &nombre, Price: &precio})
	require.NoError(t, err)

	assert.Equal(t, "Café premium", out.Name)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 7, products.products["p1"].Stock, "el stock debe quedar intacto tras el update")
}

func TestProductUpdate_NombreVacioRechazado(t *testing.T) {
	products := newFakeProductRepo()
	products.products["p1"] = &entity.Product{ID: "p1", StoreID: "store-a", Name: "Café"}
	uc := usecase.NewProductUseCase(products, newFakeStoreRepo("store-a"), &fakeSaleCounter{})

	vacio := ""
	_, err := uc.Update(admin(), "p1", dto.UpdateProductRequest{Name: &vacio})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDelete_ConVentas_Rechazado(t *testing.T) {
	products := newFakeProductRepo()
	products.products["p1"] = &entity.Product{ID: "p1", StoreID: "store-a", Name: "Café"}
	sales := &fakeSaleCounter{countByProduct: map[string]int{"p1": 3}}
	uc := usecase.NewProductUseCase(products, newFakeStoreRepo("store-a"), sales)

	err := uc.Delete(admin(), "p1")
	assert.ErrorIs(t, err, domain.ErrProductInUse,
		"un producto con ventas históricas no puede eliminarse")
	assert.Contains(t, products.products, "p1")
}

func TestProductDelete_SinVentas_Eliminado(t *testing.T) {
	products := newFakeProductRepo()
	products.products["p1"] = &entity.Product{ID: "p1", StoreID: "store-a", Name: "Café"}
	uc := usecase.NewProductUseCase(products, newFakeStoreRepo("store-a"), &fakeSaleCounter{countByProduct: map[string]int{}})

	require.NoError(t, uc.Delete(admin(), "p1"))
	assert.NotContains(t, products.products, "p1")
}

func TestProductDelete_Inexistente(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), newFakeStoreRepo(), &fakeSaleCounter{})
	assert.ErrorIs(t, uc.Delete(admin(), "nada"), domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests StoreUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestStoreDelete_ConProductos_Rechazado(t *testing.T) {
	stores := newFakeStoreRepo("store-a")
	products := newFakeProductRepo()
	products.countByStore["store-a"] = 2
	uc := usecase.NewStoreUseCase(stores, products)

	err := uc.Delete("store-a")
	assert.ErrorIs(t, err, domain.ErrStoreNotEmpty,
		"una tienda con productos no puede eliminarse")
	assert.Contains(t, stores.stores, "store-a")
}

func TestStoreDelete_Vacia_Eliminada(t *testing.T) {
	stores := newFakeStoreRepo("store-a")
	uc := usecase.NewStoreUseCase(stores, newFakeProductRepo())

	require.NoError(t, uc.Delete("store-a"))
	assert.Equal(t, []string{"store-a"}, stores.deleted)
}

func TestStoreDelete_Inexistente(t *testing.T) {
	uc := usecase.NewStoreUseCase(newFakeStoreRepo(), newFakeProductRepo())
	assert.ErrorIs(t, uc.Delete("nada"), domain.ErrStoreNotFound)
}

func TestStoreCreateUpdate_Validaciones(t *testing.T) {
	stores := newFakeStoreRepo()
	uc := usecase.NewStoreUseCase(stores, newFakeProductRepo())

	_, err := uc.Create(dto.CreateStoreRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Create(dto.CreateStoreRequest{Name: "Tienda Centro", Address: "Calle 10"})
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)

	vacio := ""
	_, err = uc.Update(out.ID, dto.UpdateStoreRequest{Name: &vacio})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	nuevo := "Tienda Norte"
	updated, err := uc.Update(out.ID, dto.UpdateStoreRequest{Name: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, "Tienda Norte", updated.Name)
	assert.Equal(t, out.ID, updated.ID, "el ID es inmutable")
}
