package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea del set editable de la orden.
type OrderItemRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	QuantityOrdered int64           `json:"quantity_ordered" validate:"required,min=1"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// SaveOrderRequest crea o actualiza una orden de compra. Las líneas enviadas
// reemplazan por completo a las existentes (sin diffing parcial).
type SaveOrderRequest struct {
	SupplierID           string             `json:"supplier_id" validate:"required"`
	OrderDate            *time.Time         `json:"order_date"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date"`
	Notes                string             `json:"notes" validate:"max=1000"`
	Items                []OrderItemRequest `json:"items" validate:"dive"`
}

// UpdateOrderStatusRequest transición de estado de una orden.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ReceiveItemRequest recepción parcial de una línea: cantidad adicional recibida.
type ReceiveItemRequest struct {
	Quantity int64 `json:"quantity" validate:"required,min=1"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityOrdered  int64           `json:"quantity_ordered"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	QuantityReceived int64           `json:"quantity_received"`
}

// OrderResponse representación de orden en respuestas. TotalAmount es derivado,
// nunca persistido.
type OrderResponse struct {
	ID                   string              `json:"id"`
	SupplierID           string              `json:"supplier_id"`
	OrderDate            time.Time           `json:"order_date"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time          `json:"actual_delivery_date,omitempty"`
	Status               string              `json:"status"`
	Notes                string              `json:"notes"`
	TotalAmount          decimal.Decimal     `json:"total_amount"`
	CreatedByUserID      string              `json:"created_by_user_id,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
	Items                []OrderItemResponse `json:"items"`
}

// OrderListResponse listado de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
