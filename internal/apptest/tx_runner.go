package apptest

import (
	"context"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/orders"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/stock"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner unit of work en memoria. Antes de ejecutar el callback toma un
// snapshot del store; si el callback falla, lo restaura completo: mismo
// contrato de atomicidad que la transacción PostgreSQL real.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con los repositorios del motor de stock y rollback por snapshot.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(NewProductRepo(r.s), NewMovementRepo(r.s)); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// RunOrder ejecuta fn con los repositorios del ciclo de vida de órdenes y
// rollback por snapshot.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	itemRepo repository.PurchaseOrderItemRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(NewOrderRepo(r.s), NewOrderItemRepo(r.s), NewProductRepo(r.s), NewMovementRepo(r.s)); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
