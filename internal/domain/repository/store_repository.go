package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	Update(store *entity.Store) error
	ListAll(limit, offset int) ([]*entity.Store, error)
	Delete(id string) error
}
