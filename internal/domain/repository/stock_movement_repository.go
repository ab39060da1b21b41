package repository

import (
	"time"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos. Es append-only: no expone Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByDateRange(from, to time.Time) ([]*entity.StockMovement, error)
	// SumByProduct suma QuantityChanged de todos los movimientos del producto.
	// Debe coincidir con Product.QuantityInStock (invariante del libro).
	SumByProduct(productID string) (int64, error)
}
