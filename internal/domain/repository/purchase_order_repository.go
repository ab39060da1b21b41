package repository

import (
	"time"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder.
// GetByID y los listados devuelven la orden con sus ítems cargados.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate obtiene la orden (con ítems) bloqueando la fila de la orden.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	Update(order *entity.PurchaseOrder) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByStatus(status entity.OrderStatus) ([]*entity.PurchaseOrder, error)
	ListByDateRange(from, to time.Time) ([]*entity.PurchaseOrder, error)
	ListBySupplier(supplierID string) ([]*entity.PurchaseOrder, error)
	CountBySupplier(supplierID string) (int64, error)
	CountByStatus(status entity.OrderStatus) (int64, error)
	Delete(id string) error
}

// PurchaseOrderItemRepository define el puerto de persistencia para las líneas
// de una orden. El reemplazo total de líneas al guardar una orden se compone con
// estas operaciones dentro de la misma transacción.
type PurchaseOrderItemRepository interface {
	Create(item *entity.PurchaseOrderItem) error
	GetByID(id string) (*entity.PurchaseOrderItem, error)
	Update(item *entity.PurchaseOrderItem) error
	UpdateReceived(itemID string, quantityReceived int64) error
	ListByOrder(orderID string) ([]*entity.PurchaseOrderItem, error)
	Delete(id string) error
}
