package access

import (
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ScopedReader envuelve las lecturas de catálogo y ventas aplicando el alcance
// del caller en la propia consulta: un vendedor jamás recibe, ni siquiera de
// forma transitoria, registros de otra tienda.
type ScopedReader struct {
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewScopedReader construye el lector con alcance.
func NewScopedReader(
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) *ScopedReader {
	return &ScopedReader{storeRepo: storeRepo, productRepo: productRepo, saleRepo: saleRepo}
}

// ListStores lista tiendas. Un vendedor solo ve su propia tienda.
func (r *ScopedReader) ListStores(caller Caller, page dto.PageRequest) (*dto.StoreListResponse, error) {
	scope, err := caller.Scope()
	if err != nil {
		return nil, err
	}
	page.DefaultPage()

	var stores []*entity.Store
	if scope == entity.AllStores {
		stores, err = r.storeRepo.ListAll(page.Limit, page.Offset)
	} else {
		var store *entity.Store
		store, err = r.storeRepo.GetByID(scope)
		if store != nil {
			stores = []*entity.Store{store}
		}
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		items = append(items, *ToStoreResponse(s))
	}
	return &dto.StoreListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// ListProducts lista productos dentro del alcance del caller. Un admin puede
// acotar por tienda con storeID; para un vendedor storeID distinto al propio
// se ignora a favor de su tienda.
func (r *ScopedReader) ListProducts(caller Caller, storeID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	scope, err := caller.Scope()
	if err != nil {
		return nil, err
	}
	if scope != entity.AllStores {
		storeID = scope
	}
	page.DefaultPage()

	var products []*entity.Product
	if storeID == entity.AllStores {
		products, err = r.productRepo.ListAll(page.Limit, page.Offset)
	} else {
		products, err = r.productRepo.ListByStore(storeID, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// ListSales lista ventas dentro del alcance del caller, con la misma regla de
// acotación por tienda que ListProducts.
func (r *ScopedReader) ListSales(caller Caller, storeID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	scope, err := caller.Scope()
	if err != nil {
		return nil, err
	}
	if scope != entity.AllStores {
		storeID = scope
	}
	page.DefaultPage()

	var sales []*entity.Sale
	if storeID == entity.AllStores {
		sales, err = r.saleRepo.ListAll(page.Limit, page.Offset)
	} else {
		sales, err = r.saleRepo.ListByStore(storeID, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, *ToSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// ToStoreResponse mapea la entidad al DTO de salida.
func ToStoreResponse(s *entity.Store) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToProductResponse mapea la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToSaleResponse mapea la entidad al DTO de salida.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:          s.ID,
		StoreID:     s.StoreID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		TotalPrice:  s.TotalPrice,
		UserID:      s.UserID,
		Timestamp:   s.Timestamp,
	}
}
