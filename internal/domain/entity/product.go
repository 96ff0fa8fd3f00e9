package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo vendible de una tienda.
// Stock nunca se modifica por el CRUD de catálogo: solo el libro de ventas
// lo ajusta como efecto de registrar, revisar o eliminar ventas.
type Product struct {
	ID          string
	StoreID     string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta vigente
	Stock       int             // siempre >= 0
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
