package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes de ventas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetSalesMetrics agrega número de ventas, unidades e ingresos del rango.
// storeID vacío agrega sobre todas las tiendas.
func (r *ReportRepo) GetSalesMetrics(
	ctx context.Context,
	storeID string,
	startDate, endDate time.Time,
) (*repository.SalesMetricsResult, error) {
	const query = `
	SELECT
	    COUNT(*)                           AS sale_count,
	    COALESCE(SUM(quantity), 0)         AS units_sold,
	    COALESCE(SUM(total_price), 0)      AS revenue
	FROM sales
	WHERE created_at BETWEEN $1 AND $2
	  AND ($3 = '' OR store_id::text = $3)`

	var m repository.SalesMetricsResult
	err := r.pool.QueryRow(ctx, query, startDate, endDate, storeID).Scan(
		&m.SaleCount, &m.UnitsSold, &m.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.GetSalesMetrics: %w", err)
	}
	return &m, nil
}

// GetTopProducts ranking de productos por ingresos en el rango. El nombre
// sale de la captura en la venta: refleja cómo se llamaba el producto cuando
// se vendió, no el catálogo vigente.
func (r *ReportRepo) GetTopProducts(
	ctx context.Context,
	storeID string,
	startDate, endDate time.Time,
	limit int,
) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    product_id,
	    MAX(product_name)                  AS product_name,
	    COALESCE(SUM(quantity), 0)         AS units_sold,
	    COALESCE(SUM(total_price), 0)      AS revenue
	FROM sales
	WHERE created_at BETWEEN $1 AND $2
	  AND ($3 = '' OR store_id::text = $3)
	GROUP BY product_id
	ORDER BY revenue DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, startDate, endDate, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("reports.GetTopProducts scan: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}
