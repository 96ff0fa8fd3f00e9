// Package ledger implementa el libro de ventas: el único escritor de Sale y
// el único mutador de Product.Stock. Cada transición (registrar, revisar,
// eliminar) ajusta el stock en la misma transacción que escribe la venta.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/access"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// maxRetries reintentos ante conflicto de serialización antes de rendirse.
const maxRetries = 3

// UseCase casos de uso del libro de ventas. saleRepo (atado al pool) sirve
// las lecturas; toda escritura pasa por el TxRunner.
type UseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// RecordSale registra una venta: captura nombre y precio del producto al
// momento de la venta, calcula el total y descuenta el stock, todo en una
// sola transacción. Si el stock no alcanza no persiste nada.
func (uc *UseCase) RecordSale(ctx context.Context, caller access.Caller, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.StoreID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !caller.CanAccessStore(in.StoreID) {
		return nil, domain.ErrForbidden
	}

	var sale *entity.Sale
	err := uc.runWithRetry(ctx, func(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.StoreID != in.StoreID {
			return domain.ErrProductNotFound
		}
		if err := productRepo.DeductStock(product.ID, in.Quantity); err != nil {
			return err
		}
		sale = &entity.Sale{
			ID:          uuid.New().String(),
			StoreID:     in.StoreID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   product.Price,
			UserID:      caller.UserID,
			Timestamp:   time.Now(),
		}
		sale.ComputeTotal()
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return access.ToSaleResponse(sale), nil
}

// ReviseSale revisa una venta existente: devuelve la cantidad anterior al
// stock del producto anterior y descuenta la nueva del producto nuevo (que
// puede ser el mismo), como una sola transición atómica. La revisión es una
// nueva captura: nombre y precio se toman del producto vigente.
//
// La disponibilidad efectiva para el mismo producto es stock actual más la
// cantidad que se devuelve, porque la devolución ocurre antes del descuento
// dentro de la misma transacción.
func (uc *UseCase) ReviseSale(ctx context.Context, caller access.Caller, saleID string, in dto.ReviseSaleRequest) (*dto.SaleResponse, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.ProductID != nil && *in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}

	var sale *entity.Sale
	err := uc.runWithRetry(ctx, func(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) error {
		var err error
		sale, err = saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		if !caller.CanAccessStore(sale.StoreID) {
			return domain.ErrForbidden
		}

		newQty := sale.Quantity
		if in.Quantity != nil {
			newQty = *in.Quantity
		}
		newProductID := sale.ProductID
		if in.ProductID != nil {
			newProductID = *in.ProductID
		}

		product, err := productRepo.GetByID(newProductID)
		if err != nil {
			return err
		}
		if product == nil || product.StoreID != sale.StoreID {
			return domain.ErrProductNotFound
		}

		if err := productRepo.RestoreStock(sale.ProductID, sale.Quantity); err != nil {
			return err
		}
		if err := productRepo.DeductStock(newProductID, newQty); err != nil {
			return err
		}

		sale.ProductID = newProductID
		sale.ProductName = product.Name
		sale.UnitPrice = product.Price
		sale.Quantity = newQty
		sale.ComputeTotal()
		return saleRepo.Update(sale)
	})
	if err != nil {
		return nil, err
	}
	return access.ToSaleResponse(sale), nil
}

// DeleteSale elimina una venta devolviendo su cantidad al stock del producto.
// Un segundo delete de la misma venta encuentra la fila ausente y retorna
// ErrSaleNotFound: el stock jamás se acredita dos veces.
func (uc *UseCase) DeleteSale(ctx context.Context, caller access.Caller, saleID string) error {
	if saleID == "" {
		return domain.ErrInvalidInput
	}
	return uc.runWithRetry(ctx, func(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		if !caller.CanAccessStore(sale.StoreID) {
			return domain.ErrForbidden
		}
		if err := productRepo.RestoreStock(sale.ProductID, sale.Quantity); err != nil {
			return err
		}
		return saleRepo.Delete(sale.ID)
	})
}

// GetSale obtiene una venta verificando el alcance del caller.
func (uc *UseCase) GetSale(_ context.Context, caller access.Caller, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	if !caller.CanAccessStore(sale.StoreID) {
		return nil, domain.ErrForbidden
	}
	return access.ToSaleResponse(sale), nil
}

// runWithRetry ejecuta la transacción reintentando ante conflictos de
// actualización concurrente, hasta maxRetries intentos.
func (uc *UseCase) runWithRetry(ctx context.Context, fn func(repository.SaleRepository, repository.ProductRepository) error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = uc.txRunner.Run(ctx, fn)
		if !errors.Is(err, domain.ErrConcurrentUpdate) {
			return err
		}
	}
	return err
}
