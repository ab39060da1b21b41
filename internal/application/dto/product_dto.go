package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. El stock inicial SIEMPRE es 0: las
// entradas se registran vía movimientos (ajuste o recepción de orden).
type CreateProductRequest struct {
	SKU               string          `json:"sku" validate:"required,max=50"`
	Name              string          `json:"name" validate:"required,max=200"`
	Description       string          `json:"description" validate:"max=1000"`
	Price             decimal.Decimal `json:"price"`
	LowStockThreshold *int64          `json:"low_stock_threshold" validate:"omitempty,min=0"`
	SupplierID        string          `json:"supplier_id" validate:"omitempty,uuid4"`
}

// UpdateProductRequest edición parcial de producto. No permite tocar el stock.
type UpdateProductRequest struct {
	SKU               *string          `json:"sku" validate:"omitempty,max=50"`
	Name              *string          `json:"name" validate:"omitempty,max=200"`
	Description       *string          `json:"description" validate:"omitempty,max=1000"`
	Price             *decimal.Decimal `json:"price"`
	LowStockThreshold *int64           `json:"low_stock_threshold" validate:"omitempty,min=0"`
	SupplierID        *string          `json:"supplier_id"`
}

// ProductResponse representación de producto en respuestas.
type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	QuantityInStock   int64           `json:"quantity_in_stock"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	SupplierID        string          `json:"supplier_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
