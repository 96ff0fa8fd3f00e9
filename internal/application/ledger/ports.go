package ledger

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que venta y stock cambien juntos
// o no cambien en absoluto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}
