package dto

import "time"

// AdjustmentRequest ajuste de stock a una cantidad absoluta contada.
type AdjustmentRequest struct {
	NewQuantity int64  `json:"new_quantity" validate:"min=0"`
	Reason      string `json:"reason" validate:"required,max=500"`
}

// SaleRequest salida de stock por venta.
type SaleRequest struct {
	Quantity int64  `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason" validate:"max=500"`
}

// MovementResponse asiento del libro de stock en respuestas.
type MovementResponse struct {
	ID                    string    `json:"id"`
	ProductID             string    `json:"product_id"`
	MovementDate          time.Time `json:"movement_date"`
	Type                  string    `json:"type"`
	QuantityChanged       int64     `json:"quantity_changed"`
	Reason                string    `json:"reason"`
	SourcePurchaseOrderID string    `json:"source_purchase_order_id,omitempty"`
	PurchaseOrderItemID   string    `json:"purchase_order_item_id,omitempty"`
	PerformedByUserID     string    `json:"performed_by_user_id,omitempty"`
}

// StockLevelResponse cantidad en stock de un producto.
type StockLevelResponse struct {
	ProductID       string `json:"product_id"`
	QuantityInStock int64  `json:"quantity_in_stock"`
}
