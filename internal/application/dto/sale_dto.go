package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest entrada para registrar una venta. El precio unitario y el
// nombre del producto NO se aceptan del cliente: se capturan del catálogo al
// momento de la venta.
type RecordSaleRequest struct {
	StoreID   string `json:"store_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// ReviseSaleRequest entrada para revisar una venta existente. Los campos nil
// conservan el valor actual; la revisión vuelve a capturar precio y nombre.
type ReviseSaleRequest struct {
	Quantity  *int    `json:"quantity" validate:"omitempty,gt=0"`
	ProductID *string `json:"product_id"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string          `json:"sale_id"`
	StoreID     string          `json:"store_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	UserID      string          `json:"user_id"`
	Timestamp   time.Time       `json:"timestamp"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
