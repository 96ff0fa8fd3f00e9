package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, store_id, product_id, product_name, quantity, unit_price, total_price, user_id, created_at`

// Create persiste una venta nueva con sus capturas de nombre y precio.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, store_id, product_id, product_name, quantity, unit_price, total_price, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.StoreID, sale.ProductID, sale.ProductName,
		sale.Quantity, sale.UnitPrice, sale.TotalPrice, sale.UserID, sale.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la venta bloqueando la fila (SELECT FOR UPDATE).
// Dos eliminaciones concurrentes de la misma venta serializan aquí; la
// segunda ve la fila ausente y el stock no se acredita dos veces.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update reescribe los campos revisables de una venta. created_at es inmutable.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET product_id = $2, product_name = $3, quantity = $4, unit_price = $5, total_price = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ProductID, sale.ProductName, sale.Quantity, sale.UnitPrice, sale.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// ListAll lista ventas de todas las tiendas, más recientes primero.
func (r *SaleRepo) ListAll(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

// ListByStore lista ventas de una tienda, más recientes primero.
func (r *SaleRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales by store: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

// CountByProduct cuenta las ventas que referencian un producto.
func (r *SaleRepo) CountByProduct(productID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales WHERE product_id = $1`, productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales by product: %w", err)
	}
	return count, nil
}

func (r *SaleRepo) scanOne(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.StoreID, &s.ProductID, &s.ProductName,
		&s.Quantity, &s.UnitPrice, &s.TotalPrice, &s.UserID, &s.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

func scanSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.StoreID, &s.ProductID, &s.ProductName,
			&s.Quantity, &s.UnitPrice, &s.TotalPrice, &s.UserID, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
