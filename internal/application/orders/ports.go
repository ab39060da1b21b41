package orders

import (
	"context"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que toca el ciclo de vida de órdenes. La recepción de una orden
// completa muta N productos, N asientos del libro, las líneas y la orden: todo
// confirma en un único commit o no confirma nada.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		itemRepo repository.PurchaseOrderItemRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
