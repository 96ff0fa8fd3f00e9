package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProductDTO un producto en el ranking por ingresos del período.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// SalesSummaryDTO resumen de ventas de un período para una tienda
// (o todas, si el caller es admin y no acota por tienda).
type SalesSummaryDTO struct {
	StoreID     string          `json:"store_id,omitempty"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	SaleCount   int             `json:"sale_count"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
	TopProducts []TopProductDTO `json:"top_products"`
}
