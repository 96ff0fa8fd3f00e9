package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/access"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo se acepta al
// crear; después lo mueve exclusivamente el libro de ventas.
type ProductUseCase struct {
	repo      repository.ProductRepository
	storeRepo repository.StoreRepository
	saleRepo  repository.SaleRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, storeRepo repository.StoreRepository, saleRepo repository.SaleRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, storeRepo: storeRepo, saleRepo: saleRepo}
}

// Create crea un producto nuevo dentro de una tienda existente.
func (uc *ProductUseCase) Create(caller access.Caller, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.StoreID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !caller.CanAccessStore(in.StoreID) {
		return nil, domain.ErrForbidden
	}
	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrStoreNotFound
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		StoreID:     in.StoreID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return access.ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID, dentro del alcance del caller.
func (uc *ProductUseCase) GetByID(caller access.Caller, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if !caller.CanAccessStore(product.StoreID) {
		return nil, domain.ErrForbidden
	}
	return access.ToProductResponse(product), nil
}

// Update actualiza nombre, descripción, precio o imagen. No permite modificar
// Stock ni StoreID: el stock se mueve por ventas y el producto no cambia de tienda.
func (uc *ProductUseCase) Update(caller access.Caller, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if !caller.CanAccessStore(product.StoreID) {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return access.ToProductResponse(product), nil
}

// Delete elimina un producto. Se rechaza con ErrProductInUse si existen ventas
// históricas que lo referencien: las capturas deben seguir siendo auditables.
func (uc *ProductUseCase) Delete(caller access.Caller, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if !caller.CanAccessStore(product.StoreID) {
		return domain.ErrForbidden
	}
	count, err := uc.saleRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrProductInUse
	}
	return uc.repo.Delete(id)
}
