package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de compra.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"    // creada, sin procesar
	OrderStatusProcessing OrderStatus = "PROCESSING" // en preparación por el proveedor
	OrderStatusShipped    OrderStatus = "SHIPPED"    // despachada por el proveedor
	OrderStatusReceived   OrderStatus = "RECEIVED"   // recibida; estado terminal
	OrderStatusCancelled  OrderStatus = "CANCELLED"  // cancelada; estado terminal
)

// IsValid verifica que el estado sea uno de los conocidos.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusReceived || s == OrderStatusCancelled
}

// CanTransitionTo valida la tabla de transiciones del ciclo de vida:
// PENDING → PROCESSING → SHIPPED → RECEIVED, y cancelación desde cualquier
// estado no terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusReceived || target == OrderStatusCancelled
	case OrderStatusReceived, OrderStatusCancelled:
		return false
	}
	return false
}

// PurchaseOrder representa una orden de compra a un proveedor.
type PurchaseOrder struct {
	ID                   string
	SupplierID           string
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time // se fija al recibir la orden completa
	Status               OrderStatus
	Notes                string
	CreatedByUserID      string // "" si se desconoce
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Items                []*PurchaseOrderItem
}

// TotalAmount valor derivado: suma de QuantityOrdered × UnitPrice de los ítems.
// Nunca se persiste.
func (o *PurchaseOrder) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.QuantityOrdered)))
	}
	return total
}

// FullyReceived indica si todos los ítems fueron recibidos por completo.
func (o *PurchaseOrder) FullyReceived() bool {
	for _, item := range o.Items {
		if item.QuantityReceived < item.QuantityOrdered {
			return false
		}
	}
	return true
}
