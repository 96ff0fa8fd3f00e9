package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale (DIP).
// Solo el libro de ventas (ledger) escribe a través de este puerto.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate obtiene la venta bloqueando la fila dentro de la
	// transacción en curso (SELECT FOR UPDATE). Un segundo delete de la
	// misma venta serializa aquí y encuentra la fila ausente.
	GetForUpdate(id string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	Delete(id string) error
	ListAll(limit, offset int) ([]*entity.Sale, error)
	ListByStore(storeID string, limit, offset int) ([]*entity.Sale, error)
	CountByProduct(productID string) (int, error)
}
