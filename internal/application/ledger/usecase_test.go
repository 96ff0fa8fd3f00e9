package ledger_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/access"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ledger"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos. El fakeTxRunner toma el lock por toda la
// transacción y restaura un snapshot si la función falla: venta y stock
// cambian juntos o no cambian en absoluto, igual que con la tx real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	sales    map[string]*entity.Sale
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		sales:    make(map[string]*entity.Sale),
	}
}

func (s *memStore) snapshot() (map[string]entity.Product, map[string]entity.Sale) {
	ps := make(map[string]entity.Product, len(s.products))
	for id, p := range s.products {
		ps[id] = *p
	}
	ss := make(map[string]entity.Sale, len(s.sales))
	for id, sa := range s.sales {
		ss[id] = *sa
	}
	return ps, ss
}

func (s *memStore) restore(ps map[string]entity.Product, ss map[string]entity.Sale) {
	s.products = make(map[string]*entity.Product, len(ps))
	for id := range ps {
		p := ps[id]
		s.products[id] = &p
	}
	s.sales = make(map[string]*entity.Sale, len(ss))
	for id := range ss {
		sa := ss[id]
		s.sales[id] = &sa
	}
}

type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.SaleRepository, repository.ProductRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ps, ss := r.s.snapshot()
	if err := fn(&fakeSaleRepo{s: r.s}, &fakeProductRepo{s: r.s}); err != nil {
		r.s.restore(ps, ss)
		return err
	}
	return nil
}

// flakyTxRunner falla con ErrConcurrentUpdate un número de veces antes de
// delegar en el runner real, para ejercitar el reintento acotado.
type flakyTxRunner struct {
	inner    ledger.TxRunner
	failures int
	calls    int
}

func (r *flakyTxRunner) Run(ctx context.Context, fn func(repository.SaleRepository, repository.ProductRepository) error) error {
	r.calls++
	if r.calls <= r.failures {
		return fmt.Errorf("%w: simulado", domain.ErrConcurrentUpdate)
	}
	return r.inner.Run(ctx, fn)
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	stock := cur.Stock // Update nunca toca el stock
	cp := *p
	cp.Stock = stock
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) DeductStock(productID string, qty int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *fakeProductRepo) RestoreStock(productID string, qty int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

func (r *fakeProductRepo) ListAll(_, _ int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListByStore(_ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) CountByStore(_ string) (int, error) { return 0, nil }
func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type fakeSaleRepo struct{ s *memStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sa, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sa
	return &cp, nil
}

func (r *fakeSaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *fakeSaleRepo) Update(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) Delete(id string) error {
	delete(r.s.sales, id)
	return nil
}

func (r *fakeSaleRepo) ListAll(_, _ int) ([]*entity.Sale, error) { return nil, nil }
func (r *fakeSaleRepo) ListByStore(_ string, _, _ int) ([]*entity.Sale, error) {
	return nil, nil
}
func (r *fakeSaleRepo) CountByProduct(productID string) (int, error) {
	n := 0
	for _, sa := range r.s.sales {
		if sa.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	tiendaA = "store-a"
	tiendaB = "store-b"
)

func adminCaller() access.Caller {
	return access.Caller{UserID: "user-admin", Role: entity.RoleAdmin, StoreID: entity.AllStores}
}

func vendedorCaller(storeID string) access.Caller {
	return access.Caller{UserID: "user-vend", Role: entity.RoleVendedor, StoreID: storeID}
}

func seedProduct(s *memStore, id, storeID, name string, price float64, stock int) {
	s.products[id] = &entity.Product{
		ID:      id,
		StoreID: storeID,
		Name:    name,
		Price:   decimal.NewFromFloat(price),
		Stock:   stock,
	}
}

func buildUseCase(s *memStore) *ledger.UseCase {
	return ledger.NewUseCase(&fakeTxRunner{s: s}, &fakeSaleRepo{s: s})
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_DescuentaStockYCapturaPrecio(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	uc := buildUseCase(s)

	out, err := uc.RecordSale(context.Background(), vendedorCaller(tiendaA), dto.RecordSaleRequest{
		StoreID: tiendaA, ProductID: "prod-1", Quantity: 3,
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 7, s.products["prod-1"].Stock, "el stock debe bajar en la cantidad vendida")
	assert.Equal(t, "Café molido", out.ProductName, "el nombre se captura al vender")
	assert.True(t, out.UnitPrice.Equal(decimal.NewFromFloat(18500)), "el precio se captura al vender")
	assert.True(t, out.TotalPrice.Equal(decimal.NewFromFloat(55500)), "total = cantidad * precio unitario")
	assert.Equal(t, "user-vend", out.UserID)

	persisted, err := (&fakeSaleRepo{s: s}).GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted, "la venta debe quedar persistida")
}

func TestRecordSale_StockInsuficiente_NoPersisteNada(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Panela", 6200, 2)
	uc := buildUseCase(s)

	_, err := uc.RecordSale(context.Background(), adminCaller(), dto.RecordSaleRequest{
		StoreID: tiendaA, ProductID: "prod-1", Quantity: 5,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 2, s.products["prod-1"].Stock, "el stock no debe cambiar si la venta falla")
	assert.Empty(t, s.sales, "ninguna venta debe quedar persistida")
}

func TestRecordSale_CantidadInvalida(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Arroz", 4800, 10)
	uc := buildUseCase(s)

	for _, qty := range []int{0, -3} {
		_, err := uc.RecordSale(context.Background(), adminCaller(), dto.RecordSaleRequest{
			StoreID: tiendaA, ProductID: "prod-1", Quantity: qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d debe rechazarse", qty)
	}
	assert.Equal(t, 10, s.products["prod-1"].Stock)
}

func TestRecordSale_VendedorOtraTienda_Forbidden(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Aceite", 12900, 10)
	uc := buildUseCase(s)

	_, err := uc.RecordSale(context.Background(), vendedorCaller(tiendaB), dto.RecordSaleRequest{
		StoreID: tiendaA, ProductID: "prod-1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 10, s.products["prod-1"].Stock)
}

func TestRecordSale_ProductoDeOtraTienda_NotFound(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-b", tiendaB, "Azúcar", 5000, 10)
	uc := buildUseCase(s)

	// El producto existe pero pertenece a otra tienda: para esta tienda no existe.
	_, err := uc.RecordSale(context.Background(), adminCaller(), dto.RecordSaleRequest{
		StoreID: tiendaA, ProductID: "prod-b", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRecordSale_ReintentaAnteConflictoConcurrente(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	flaky := &flakyTxRunner{inner: &fakeTxRunner{s: s}, failures: 2}
	uc := ledger.NewUseCase(flaky, &fakeSaleRepo{s: s})

	out, err := uc.RecordSale(context.Background(), adminCaller(), dto.RecordSaleRequest{
		StoreID: tiendaA, ProductID: "prod-1", Quantity: 1,
	})
	require.NoError(t, err, "dos conflictos seguidos deben absorberse con reintentos")
	require.NotNil(t, out)
	assert.Equal(t, 3, flaky.calls)
	assert.Equal(t, 9, s.products["prod-1"].Stock)
}

func TestRecordSale_AgotaReintentos_RetornaConflicto(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	flaky := &flakyTxRunner{inner: &fakeTxRunner{s: s}, failures: 100}
	uc := ledger.NewUseCase(flaky, &fakeSaleRepo{s: s})

	_, err := uc.RecordSale(context.Background(), adminCaller(), dto.RecordSaleRequest{
		StoreID: tiendaA, ProductID: "prod-1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)
	assert.Equal(t, 10, s.products["prod-1"].Stock, "sin venta no hay descuento")
}

// Dos vendedores compitiendo por las últimas unidades: el stock jamás queda
// negativo y se venden exactamente las unidades disponibles.
func TestRecordSale_ConcurrenciaNoDejaStockNegativo(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Panela", 6200, 10)
	uc := buildUseCase(s)

	const intentos = 25
	var wg sync.WaitGroup
	errs := make(chan error, intentos)
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordSale(context.Background(), adminCaller(), dto.RecordSaleRequest{
				StoreID: tiendaA, ProductID: "prod-1", Quantity: 1,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	exitosas, rechazadas := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			exitosas++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			rechazadas++
		}
	}
	assert.Equal(t, 10, exitosas, "deben venderse exactamente las unidades disponibles")
	assert.Equal(t, intentos-10, rechazadas)
	assert.Equal(t, 0, s.products["prod-1"].Stock)
	assert.Len(t, s.sales, 10)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReviseSale
// ──────────────────────────────────────────────────────────────────────────────

func recordSaleHelper(t *testing.T, uc *ledger.UseCase, storeID, productID string, qty int) *dto.SaleResponse {
	t.Helper()
	out, err := uc.RecordSale(context.Background(), adminCaller(), dto.RecordSaleRequest{
		StoreID: storeID, ProductID: productID, Quantity: qty,
	})
	require.NoError(t, err)
	return out
}

func TestReviseSale_AumentaCantidad_AjustaStockPorDiferencia(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	uc := buildUseCase(s)
	sale := recordSaleHelper(t, uc, tiendaA, "prod-1", 3) // stock: 7

	qty := 5
	out, err := uc.ReviseSale(context.Background(), adminCaller(), sale.ID, dto.ReviseSaleRequest{Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, 5, out.Quantity)
	assert.Equal(t, 5, s.products["prod-1"].Stock, "stock = 10 - 5 tras la revisión")
	assert.True(t, out.TotalPrice.Equal(decimal.NewFromFloat(92500)))
}

// La disponibilidad efectiva incluye lo que la propia venta devuelve: con
// stock 0 y una venta de 10, revisar a 10 sigue siendo posible; a 11 no.
func TestReviseSale_DisponibilidadEfectivaIncluyeLoDevuelto(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Panela", 6200, 10)
	uc := buildUseCase(s)
	sale := recordSaleHelper(t, uc, tiendaA, "prod-1", 10) // stock: 0

	qty := 10
	_, err := uc.ReviseSale(context.Background(), adminCaller(), sale.ID, dto.ReviseSaleRequest{Quantity: &qty})
	require.NoError(t, err, "revisar a la misma cantidad con stock 0 debe ser posible")
	assert.Equal(t, 0, s.products["prod-1"].Stock)

	qty = 11
	_, err = uc.ReviseSale(context.Background(), adminCaller(), sale.ID, dto.ReviseSaleRequest{Quantity: &qty})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 0, s.products["prod-1"].Stock, "la revisión fallida no debe tocar el stock")
	assert.Equal(t, 10, s.sales[sale.ID].Quantity, "la revisión fallida no debe tocar la venta")
}

func TestReviseSale_RecapturaPrecioYNombreVigentes(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	uc := buildUseCase(s)
	sale := recordSaleHelper(t, uc, tiendaA, "prod-1", 2)

	// El catálogo cambia después de la venta; la venta histórica no se altera.
	s.products["prod-1"].Name = "Café molido premium"
	s.products["prod-1"].Price = decimal.NewFromFloat(21000)
	assert.Equal(t, "Café molido", s.sales[sale.ID].ProductName)

	qty := 4
	out, err := uc.ReviseSale(context.Background(), adminCaller(), sale.ID, dto.ReviseSaleRequest{Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, "Café molido premium", out.ProductName, "la revisión recaptura el nombre vigente")
	assert.True(t, out.UnitPrice.Equal(decimal.NewFromFloat(21000)), "la revisión recaptura el precio vigente")
	assert.True(t, out.TotalPrice.Equal(decimal.NewFromFloat(84000)))
}

func TestReviseSale_CambioDeProducto_MueveElStock(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	seedProduct(s, "prod-2", tiendaA, "Panela", 6200, 8)
	uc := buildUseCase(s)
	sale := recordSaleHelper(t, uc, tiendaA, "prod-1", 4) // prod-1: 6

	newProduct := "prod-2"
	qty := 2
	out, err := uc.ReviseSale(context.Background(), adminCaller(), sale.ID, dto.ReviseSaleRequest{
		Quantity: &qty, ProductID: &newProduct,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, s.products["prod-1"].Stock, "el producto anterior recupera sus unidades")
	assert.Equal(t, 6, s.products["prod-2"].Stock, "el producto nuevo descuenta la nueva cantidad")
	assert.Equal(t, "prod-2", out.ProductID)
	assert.Equal(t, "Panela", out.ProductName)
}

func TestReviseSale_ProductoDeOtraTienda_Rechazado(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	seedProduct(s, "prod-b", tiendaB, "Azúcar", 5000, 10)
	uc := buildUseCase(s)
	sale := recordSaleHelper(t, uc, tiendaA, "prod-1", 1)

	otro := "prod-b"
	_, err := uc.ReviseSale(context.Background(), adminCaller(), sale.ID, dto.ReviseSaleRequest{ProductID: &otro})
	assert.ErrorIs(t, err, domain.ErrProductNotFound, "no se puede mover una venta a un producto de otra tienda")
	assert.Equal(t, 9, s.products["prod-1"].Stock, "nada debe cambiar")
}

func TestReviseSale_VentaInexistente(t *testing.T) {
	s := newMemStore()
	uc := buildUseCase(s)

	qty := 1
	_, err := uc.ReviseSale(context.Background(), adminCaller(), "no-existe", dto.ReviseSaleRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestReviseSale_CantidadInvalida(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	uc := buildUseCase(s)
	sale := recordSaleHelper(t, uc, tiendaA, "prod-1", 1)

	qty := 0
	_, err := uc.ReviseSale(context.Background(), adminCaller(), sale.ID, dto.ReviseSaleRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteSale
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteSale_DevuelveStock(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	uc := buildUseCase(s)
	sale := recordSaleHelper(t, uc, tiendaA, "prod-1", 4) // stock: 6

	err := uc.DeleteSale(context.Background(), adminCaller(), sale.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, s.products["prod-1"].Stock, "eliminar la venta devuelve la cantidad al stock")
	assert.Empty(t, s.sales)
}

func TestDeleteSale_DobleDelete_NoAcreditaDosVeces(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	uc := buildUseCase(s)
	sale := recordSaleHelper(t, uc, tiendaA, "prod-1", 4)

	require.NoError(t, uc.DeleteSale(context.Background(), adminCaller(), sale.ID))
	err := uc.DeleteSale(context.Background(), adminCaller(), sale.ID)

	assert.ErrorIs(t, err, domain.ErrSaleNotFound, "el segundo delete encuentra la fila ausente")
	assert.Equal(t, 10, s.products["prod-1"].Stock, "el stock jamás se acredita dos veces")
}

func TestDeleteSale_VendedorOtraTienda_Forbidden(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	uc := buildUseCase(s)
	sale := recordSaleHelper(t, uc, tiendaA, "prod-1", 1)

	err := uc.DeleteSale(context.Background(), vendedorCaller(tiendaB), sale.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, s.sales, 1, "la venta debe seguir existiendo")
}

// Round-trip completo: registrar, revisar y eliminar deja el stock como al inicio.
func TestLedger_RoundTripRestauraElStock(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	uc := buildUseCase(s)

	sale := recordSaleHelper(t, uc, tiendaA, "prod-1", 3)
	qty := 7
	_, err := uc.ReviseSale(context.Background(), adminCaller(), sale.ID, dto.ReviseSaleRequest{Quantity: &qty})
	require.NoError(t, err)
	require.NoError(t, uc.DeleteSale(context.Background(), adminCaller(), sale.ID))

	assert.Equal(t, 10, s.products["prod-1"].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSale
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale_AlcancePorTienda(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", tiendaA, "Café molido", 18500, 10)
	uc := buildUseCase(s)
	sale := recordSaleHelper(t, uc, tiendaA, "prod-1", 1)

	out, err := uc.GetSale(context.Background(), vendedorCaller(tiendaA), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, out.ID)

	_, err = uc.GetSale(context.Background(), vendedorCaller(tiendaB), sale.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "un vendedor no ve ventas de otra tienda")

	_, err = uc.GetSale(context.Background(), adminCaller(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}
