package usecase

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo admin). El registro y login
// viven en application/auth.
type UserUseCase struct {
	repo      repository.UserRepository
	storeRepo repository.StoreRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, storeRepo repository.StoreRepository) *UserUseCase {
	return &UserUseCase{repo: repo, storeRepo: storeRepo}
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListAll(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita nombre, rol, tienda o estado de un usuario.
// Un vendedor debe quedar siempre ligado a una tienda existente.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if *in.Role != entity.RoleAdmin && *in.Role != entity.RoleVendedor {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.StoreID != nil {
		user.StoreID = *in.StoreID
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	if user.Role == entity.RoleVendedor {
		if user.StoreID == "" {
			return nil, domain.ErrInvalidInput
		}
		store, err := uc.storeRepo.GetByID(user.StoreID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, domain.ErrStoreNotFound
		}
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(id)
}

// ToUserResponse mapea la entidad al DTO de salida (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		StoreID:   u.StoreID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
