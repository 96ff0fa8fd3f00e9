package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, store_id, name, description, price, stock, image_url, created_at, updated_at`

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, store_id, name, description, price, stock, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.StoreID, product.Name, product.Description,
		product.Price, product.Stock, product.ImageURL, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente. La columna stock queda fuera: solo
// DeductStock/RestoreStock la tocan.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, image_url = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price,
		product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// DeductStock resta qty con guarda condicional (stock >= qty) en un solo
// UPDATE: dos vendedores concurrentes nunca dejan stock negativo. Cero filas
// afectadas significa producto ausente o stock insuficiente; se relee para
// distinguir.
func (r *ProductRepo) DeductStock(productID string, qty int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock - $2, updated_at = now()
		 WHERE id = $1 AND stock >= $2`,
		productID, qty,
	)
	if err != nil {
		return fmt.Errorf("deduct stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		err := r.q.QueryRow(context.Background(),
			`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("deduct stock: verificar producto: %w", err)
		}
		if !exists {
			return domain.ErrProductNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// RestoreStock devuelve qty unidades al stock del producto.
func (r *ProductRepo) RestoreStock(productID string, qty int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		productID, qty,
	)
	if err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// ListAll lista productos de todas las tiendas con paginación.
func (r *ProductRepo) ListAll(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListByStore lista productos de una tienda con paginación.
func (r *ProductRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products by store: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// CountByStore cuenta los productos que referencian una tienda.
func (r *ProductRepo) CountByStore(storeID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE store_id = $1`, storeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by store: %w", err)
	}
	return count, nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
