package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/access"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// StoreUseCase casos de uso CRUD para tiendas.
type StoreUseCase struct {
	repo        repository.StoreRepository
	productRepo repository.ProductRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository, productRepo repository.ProductRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo, productRepo: productRepo}
}

// Create crea una tienda nueva con ID generado.
func (uc *StoreUseCase) Create(in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	return access.ToStoreResponse(store), nil
}

// GetByID obtiene una tienda por ID.
func (uc *StoreUseCase) GetByID(id string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, nil
	}
	return access.ToStoreResponse(store), nil
}

// Update actualiza nombre o dirección. El ID y la fecha de creación son inmutables.
func (uc *StoreUseCase) Update(id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		store.Name = *in.Name
	}
	if in.Address != nil {
		store.Address = *in.Address
	}
	store.UpdatedAt = time.Now()
	if err := uc.repo.Update(store); err != nil {
		return nil, err
	}
	return access.ToStoreResponse(store), nil
}

// Delete elimina una tienda. Se rechaza con ErrStoreNotEmpty mientras existan
// productos que la referencien.
func (uc *StoreUseCase) Delete(id string) error {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrStoreNotFound
	}
	count, err := uc.productRepo.CountByStore(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrStoreNotEmpty
	}
	return uc.repo.Delete(id)
}
