package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/application/access"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ReceiptPDFGenerator genera la representación gráfica de un comprobante de venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, store *entity.Store) ([]byte, error)
}

// ReceiptUseCase genera el comprobante PDF de una venta.
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	storeRepo repository.StoreRepository
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	storeRepo repository.StoreRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, storeRepo: storeRepo, generator: generator}
}

// DownloadReceiptPDF recupera la venta, verifica el alcance del caller y
// genera el PDF. El comprobante usa las capturas de la venta (nombre y precio
// al momento de vender), no el catálogo vigente.
//
// Retorna:
//   - (pdfBytes, filename, nil)   si todo sale bien.
//   - domain.ErrSaleNotFound      si la venta no existe.
//   - domain.ErrForbidden         si la venta es de otra tienda.
func (uc *ReceiptUseCase) DownloadReceiptPDF(
	ctx context.Context,
	caller access.Caller,
	saleID string,
) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrSaleNotFound
	}
	if !caller.CanAccessStore(sale.StoreID) {
		return nil, "", domain.ErrForbidden
	}

	store, err := uc.storeRepo.GetByID(sale.StoreID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener tienda: %w", err)
	}
	if store == nil {
		return nil, "", domain.ErrStoreNotFound
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, sale, store)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("venta_%s.pdf", sale.ID)
	return pdfBytes, filename, nil
}
