package entity

import "time"

// MovementType tipo de movimiento de stock.
type MovementType string

const (
	MovementTypeAddition        MovementType = "ADDITION"
	MovementTypeReduction       MovementType = "REDUCTION"
	MovementTypeAdjustmentIn    MovementType = "ADJUSTMENT_IN"
	MovementTypeAdjustmentOut   MovementType = "ADJUSTMENT_OUT"
	MovementTypePurchaseReceipt MovementType = "PURCHASE_RECEIPT"
	MovementTypeSaleShipment    MovementType = "SALE_SHIPMENT"
)

// IsValid verifica que el tipo sea uno de los conocidos.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeAddition, MovementTypeReduction, MovementTypeAdjustmentIn,
		MovementTypeAdjustmentOut, MovementTypePurchaseReceipt, MovementTypeSaleShipment:
		return true
	}
	return false
}

// StockMovement asiento del libro de movimientos de stock: registra cada cambio
// de QuantityInStock con su firma (cantidad con signo, motivo, quién y de dónde).
// Append-only: nunca se actualiza ni se elimina después de creado.
type StockMovement struct {
	ID                    string
	ProductID             string
	MovementDate          time.Time
	Type                  MovementType
	QuantityChanged       int64  // con signo: positivo entra, negativo sale
	Reason                string
	SourcePurchaseOrderID string // "" si no proviene de una orden de compra
	PurchaseOrderItemID   string // "" si no está ligado a una línea de orden
	PerformedByUserID     string // "" si se desconoce
	CreatedAt             time.Time
}
