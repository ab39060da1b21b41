package entity

import "github.com/shopspring/decimal"

// PurchaseOrderItem línea de una orden de compra.
// Invariante del ciclo de vida: 0 ≤ QuantityReceived ≤ QuantityOrdered.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	QuantityOrdered  int64
	UnitPrice        decimal.Decimal
	QuantityReceived int64
}

// Remaining unidades ordenadas aún no recibidas.
func (i *PurchaseOrderItem) Remaining() int64 {
	return i.QuantityOrdered - i.QuantityReceived
}
