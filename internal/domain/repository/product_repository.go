package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// DeductStock y RestoreStock son los ÚNICOS caminos de escritura sobre
// Product.Stock; Update no toca la columna stock. DeductStock debe ser una
// actualización condicional (stock >= cantidad) para que dos vendedores
// concurrentes nunca dejen stock negativo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// Update actualiza nombre, descripción, precio e imagen; nunca el stock.
	Update(product *entity.Product) error
	// DeductStock resta qty si y solo si el stock actual alcanza.
	// Retorna domain.ErrInsufficientStock si no alcanza y
	// domain.ErrProductNotFound si el producto no existe.
	DeductStock(productID string, qty int) error
	// RestoreStock devuelve qty unidades al stock del producto.
	RestoreStock(productID string, qty int) error
	ListAll(limit, offset int) ([]*entity.Product, error)
	ListByStore(storeID string, limit, offset int) ([]*entity.Product, error)
	CountByStore(storeID string) (int, error)
	Delete(id string) error
}
