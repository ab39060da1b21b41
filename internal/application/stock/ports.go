package stock

import (
	"context"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// la mutación de QuantityInStock y su asiento en el libro confirman juntos
// o no confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
