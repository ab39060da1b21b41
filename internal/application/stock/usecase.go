package stock

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AimaKoraki/Inventory-management-system/internal/domain"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/repository"
)

// LedgerUseCase es el motor del libro de stock: el ÚNICO camino por el que
// cambia Product.QuantityInStock. Cada cambio de cantidad queda emparejado,
// en la misma transacción, con exactamente un StockMovement que lo justifica.
//
// Operaciones de nivel superior (RecordAdjustment, RecordSale) abren y
// confirman su propia transacción. Las variantes Stage* NO confirman: operan
// sobre repositorios atados a la transacción del caller, para que operaciones
// compuestas (p. ej. recepción de orden completa) agrupen todo en un commit.
type LedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewLedgerUseCase construye el motor de stock.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// RecordAdjustment ajusta el stock de un producto a una cantidad absoluta.
// Calcula el delta contra la cantidad actual (con la fila bloqueada), lo
// clasifica como ADJUSTMENT_IN o ADJUSTMENT_OUT y confirma. Delta cero es
// no-op: no se crea asiento. Idempotente si se repite con la misma cantidad.
func (uc *LedgerUseCase) RecordAdjustment(ctx context.Context, productID string, newQuantity int64, reason, userID string) error {
	if newQuantity < 0 {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(reason) == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		delta := newQuantity - product.QuantityInStock
		if delta == 0 {
			return nil
		}
		movType := entity.MovementTypeAdjustmentIn
		if delta < 0 {
			movType = entity.MovementTypeAdjustmentOut
		}
		return uc.stageMovement(productRepo, movementRepo, product, delta, movType, reason, userID, "", "")
	})
}

// RecordSale registra una salida de stock por venta. quantitySold debe ser
// positivo y el stock resultante no puede quedar negativo.
func (uc *LedgerUseCase) RecordSale(ctx context.Context, productID string, quantitySold int64, reason, userID string) error {
	if quantitySold <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.QuantityInStock < quantitySold {
			return domain.ErrInsufficientStock
		}
		return uc.stageMovement(productRepo, movementRepo, product, -quantitySold, entity.MovementTypeSaleShipment, reason, userID, "", "")
	})
}

// StagePurchaseReceipt prepara una entrada por recepción de orden de compra
// sobre los repositorios del caller, SIN confirmar. El caller (ciclo de vida
// de órdenes) es dueño del límite de la transacción.
func (uc *LedgerUseCase) StagePurchaseReceipt(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	product *entity.Product,
	quantityReceived int64,
	reason, userID, sourceOrderID, orderItemID string,
) error {
	if quantityReceived <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.stageMovement(productRepo, movementRepo, product, quantityReceived, entity.MovementTypePurchaseReceipt, reason, userID, sourceOrderID, orderItemID)
}

// stageMovement muta QuantityInStock del producto y crea el asiento que lo
// justifica, usando los repositorios recibidos (pool o tx). Nunca confirma.
func (uc *LedgerUseCase) stageMovement(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	product *entity.Product,
	quantityChange int64,
	movType entity.MovementType,
	reason, userID, sourceOrderID, orderItemID string,
) error {
	product.QuantityInStock += quantityChange
	if err := productRepo.UpdateQuantity(product.ID, product.QuantityInStock); err != nil {
		return err
	}
	now := time.Now().UTC()
	movement := &entity.StockMovement{
		ID:                    uuid.New().String(),
		ProductID:             product.ID,
		MovementDate:          now,
		Type:                  movType,
		QuantityChanged:       quantityChange,
		Reason:                reason,
		SourcePurchaseOrderID: sourceOrderID,
		PurchaseOrderItemID:   orderItemID,
		PerformedByUserID:     userID,
		CreatedAt:             now,
	}
	return movementRepo.Create(movement)
}

// MovementsForProduct lista los movimientos de un producto (más recientes primero).
func (uc *LedgerUseCase) MovementsForProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListByProduct(productID, limit, offset)
}

// MovementsByDateRange lista los movimientos en un rango de fechas.
func (uc *LedgerUseCase) MovementsByDateRange(ctx context.Context, from, to time.Time) ([]*entity.StockMovement, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByDateRange(from, to)
}

// CurrentStockLevel devuelve la cantidad en stock de un producto.
func (uc *LedgerUseCase) CurrentStockLevel(ctx context.Context, productID string) (int64, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	return product.QuantityInStock, nil
}
