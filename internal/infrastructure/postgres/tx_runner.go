package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/application/ledger"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los fallos de serialización y deadlocks se mapean a
// domain.ErrConcurrentUpdate para que el ledger reintente.
func (r *TxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saleRepo := NewSaleRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(saleRepo, productRepo); err != nil {
		if isConcurrencyConflict(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrentUpdate, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isConcurrencyConflict(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrentUpdate, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
