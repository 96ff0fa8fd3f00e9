package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es el registro financiero de una venta en un punto del tiempo.
// ProductName y UnitPrice son capturas al momento de la venta: ediciones
// posteriores del producto (nombre, precio) no alteran ventas históricas.
// Una revisión vuelve a capturar ambos campos desde el producto vigente.
type Sale struct {
	ID          string
	StoreID     string
	ProductID   string
	ProductName string          // captura, no join en vivo
	Quantity    int             // > 0
	UnitPrice   decimal.Decimal // captura de Product.Price al vender/revisar
	TotalPrice  decimal.Decimal // Quantity * UnitPrice, derivado en cada escritura
	UserID      string
	Timestamp   time.Time // momento de creación, inmutable
}

// ComputeTotal recalcula TotalPrice a partir de Quantity y UnitPrice.
func (s *Sale) ComputeTotal() {
	s.TotalPrice = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
