package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockRow fila del reporte de stock bajo.
type LowStockRow struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	Name              string `json:"name"`
	QuantityInStock   int64  `json:"quantity_in_stock"`
	LowStockThreshold int64  `json:"low_stock_threshold"`
	SupplierName      string `json:"supplier_name,omitempty"`
}

// MovementRow fila del reporte de movimientos con total acumulado por producto.
type MovementRow struct {
	MovementDate    time.Time `json:"movement_date"`
	ProductID       string    `json:"product_id"`
	SKU             string    `json:"sku"`
	Type            string    `json:"type"`
	QuantityChanged int64     `json:"quantity_changed"`
	RunningTotal    int64     `json:"running_total"`
	Reason          string    `json:"reason"`
}

// OrderSummaryRow agregado de órdenes por estado.
type OrderSummaryRow struct {
	Status      string          `json:"status"`
	OrderCount  int64           `json:"order_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// DashboardSummary contadores para el tablero.
type DashboardSummary struct {
	ProductCount      int64 `json:"product_count"`
	SupplierCount     int64 `json:"supplier_count"`
	PendingOrderCount int64 `json:"pending_order_count"`
	LowStockCount     int64 `json:"low_stock_count"`
}
