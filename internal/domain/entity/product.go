package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold umbral de stock bajo cuando el producto no define uno propio.
const DefaultLowStockThreshold = 10

// Product representa un producto del inventario.
// QuantityInStock es un valor derivado del libro de movimientos: SIEMPRE debe ser
// igual a la suma de QuantityChanged de sus StockMovement. Solo el motor de stock
// (application/stock) lo escribe; la edición de producto nunca lo toca.
type Product struct {
	ID                string
	SKU               string // código único
	Name              string
	Description       string
	Price             decimal.Decimal // precio de venta por unidad
	QuantityInStock   int64
	LowStockThreshold int64
	SupplierID        string // opcional; "" = sin proveedor asignado
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral de stock bajo.
func (p *Product) IsLowStock() bool {
	return p.QuantityInStock <= p.LowStockThreshold
}
