package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetricsResult agregados de ventas en un rango de fechas.
type SalesMetricsResult struct {
	SaleCount int
	UnitsSold int
	Revenue   decimal.Decimal
}

// TopProductResult un producto dentro del ranking por ingresos.
// ProductName proviene de la captura en la venta, no del catálogo vigente.
type TopProductResult struct {
	ProductID   string
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes de ventas.
// storeID vacío agrega sobre todas las tiendas (solo alcanzable por admin).
type ReportRepository interface {
	GetSalesMetrics(ctx context.Context, storeID string, startDate, endDate time.Time) (*SalesMetricsResult, error)
	GetTopProducts(ctx context.Context, storeID string, startDate, endDate time.Time, limit int) ([]TopProductResult, error)
}
