package repository

import (
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateQuantity es de uso exclusivo del motor de stock; la edición de producto
// usa Update, que no toca QuantityInStock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(productID string, quantity int64) error
	List(limit, offset int) ([]*entity.Product, error)
	// ListLowStock productos con QuantityInStock ≤ su LowStockThreshold.
	ListLowStock() ([]*entity.Product, error)
	CountBySupplier(supplierID string) (int64, error)
	Count() (int64, error)
	Delete(id string) error
}
