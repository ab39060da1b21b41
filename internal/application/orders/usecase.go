package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/stock"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/repository"
)

// OrderUseCase implementa el ciclo de vida de órdenes de compra: creación y
// edición con reemplazo total de líneas, transiciones de estado validadas y
// recepción de mercancía, que delega los cambios de stock en el motor del
// libro (staging sin commit) bajo la transacción de la orden.
type OrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	ledger       *stock.LedgerUseCase
}

// NewOrderUseCase construye el caso de uso del ciclo de vida de órdenes.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	ledger *stock.LedgerUseCase,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		ledger:       ledger,
	}
}

// OrderItemInput línea enviada desde el formulario de edición de la orden.
type OrderItemInput struct {
	ProductID       string
	QuantityOrdered int64
	UnitPrice       decimal.Decimal
}

// OrderInput entrada para crear o actualizar una orden. ID vacío = orden nueva.
type OrderInput struct {
	ID                   string
	SupplierID           string
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	Notes                string
	Items                []OrderItemInput
}

func validateInput(in OrderInput) error {
	if in.SupplierID == "" {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.QuantityOrdered <= 0 || item.UnitPrice.IsNegative() {
			return domain.ErrInvalidInput
		}
		// La identidad de línea es producto+orden: no se admiten líneas duplicadas.
		if seen[item.ProductID] {
			return domain.ErrInvalidInput
		}
		seen[item.ProductID] = true
	}
	return nil
}

// CreateOrUpdate crea una orden nueva (estado PENDING) o actualiza una
// existente reemplazando sus líneas por completo a partir del set enviado:
// una línea presente en el set viejo y ausente del nuevo se elimina; la
// coincidencia es por identidad producto+orden y conserva QuantityReceived.
func (uc *OrderUseCase) CreateOrUpdate(ctx context.Context, in OrderInput, userID string) (*entity.PurchaseOrder, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	var result *entity.PurchaseOrder
	err = uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		itemRepo repository.PurchaseOrderItemRepository,
		productRepo repository.ProductRepository,
		_ repository.StockMovementRepository,
	) error {
		for _, item := range in.Items {
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
		}
		if in.ID == "" {
			order, err := uc.createOrder(orderRepo, itemRepo, in, userID)
			if err != nil {
				return err
			}
			result = order
			return nil
		}
		order, err := uc.updateOrder(orderRepo, itemRepo, in)
		if err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *OrderUseCase) createOrder(
	orderRepo repository.PurchaseOrderRepository,
	itemRepo repository.PurchaseOrderItemRepository,
	in OrderInput,
	userID string,
) (*entity.PurchaseOrder, error) {
	now := time.Now().UTC()
	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	order := &entity.PurchaseOrder{
		ID:                   uuid.New().String(),
		SupplierID:           in.SupplierID,
		OrderDate:            orderDate,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		Status:               entity.OrderStatusPending,
		Notes:                in.Notes,
		CreatedByUserID:      userID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := orderRepo.Create(order); err != nil {
		return nil, err
	}
	for _, itemIn := range in.Items {
		item := &entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: order.ID,
			ProductID:       itemIn.ProductID,
			QuantityOrdered: itemIn.QuantityOrdered,
			UnitPrice:       itemIn.UnitPrice,
		}
		if err := itemRepo.Create(item); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	return order, nil
}

func (uc *OrderUseCase) updateOrder(
	orderRepo repository.PurchaseOrderRepository,
	itemRepo repository.PurchaseOrderItemRepository,
	in OrderInput,
) (*entity.PurchaseOrder, error) {
	order, err := orderRepo.GetForUpdate(in.ID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status.IsTerminal() {
		return nil, domain.ErrConflict
	}

	existingByProduct := make(map[string]*entity.PurchaseOrderItem, len(order.Items))
	for _, item := range order.Items {
		existingByProduct[item.ProductID] = item
	}

	var newItems []*entity.PurchaseOrderItem
	wanted := make(map[string]bool, len(in.Items))
	for _, itemIn := range in.Items {
		wanted[itemIn.ProductID] = true
		if existing, ok := existingByProduct[itemIn.ProductID]; ok {
			// Una línea con recepciones no puede quedar por debajo de lo ya recibido.
			if itemIn.QuantityOrdered < existing.QuantityReceived {
				return nil, domain.ErrInvalidInput
			}
			existing.QuantityOrdered = itemIn.QuantityOrdered
			existing.UnitPrice = itemIn.UnitPrice
			if err := itemRepo.Update(existing); err != nil {
				return nil, err
			}
			newItems = append(newItems, existing)
			continue
		}
		item := &entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: order.ID,
			ProductID:       itemIn.ProductID,
			QuantityOrdered: itemIn.QuantityOrdered,
			UnitPrice:       itemIn.UnitPrice,
		}
		if err := itemRepo.Create(item); err != nil {
			return nil, err
		}
		newItems = append(newItems, item)
	}
	for _, item := range order.Items {
		if !wanted[item.ProductID] {
			if err := itemRepo.Delete(item.ID); err != nil {
				return nil, err
			}
		}
	}

	order.SupplierID = in.SupplierID
	if !in.OrderDate.IsZero() {
		order.OrderDate = in.OrderDate
	}
	order.ExpectedDeliveryDate = in.ExpectedDeliveryDate
	order.Notes = in.Notes
	order.UpdatedAt = time.Now().UTC()
	order.Items = newItems
	if err := orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus cambia el estado de una orden validando la tabla de
// transiciones. Repetir el estado actual es no-op; una transición ilegal
// devuelve ErrConflict. La recepción de mercancía NO pasa por aquí: usar
// ReceiveFullOrder / ReceiveItem para que el stock quede registrado.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID string, newStatus entity.OrderStatus, userID string) error {
	if !newStatus.IsValid() {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.PurchaseOrderItemRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == newStatus {
			return nil
		}
		if !order.Status.CanTransitionTo(newStatus) {
			return domain.ErrConflict
		}
		order.Status = newStatus
		order.UpdatedAt = time.Now().UTC()
		return orderRepo.Update(order)
	})
}

// ReceiveFullOrder recibe todas las líneas pendientes de una orden: por cada
// línea con remanente > 0 suma el remanente al stock del producto y asienta un
// movimiento PURCHASE_RECEIPT ligado a la línea y la orden; luego marca la
// orden como RECEIVED con fecha real de entrega. Todo bajo UNA transacción:
// si cualquier línea falla no se aplica nada. Repetirla sobre una orden ya
// recibida es no-op de stock y deja el estado igual.
func (uc *OrderUseCase) ReceiveFullOrder(ctx context.Context, orderID, userID string) error {
	return uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		itemRepo repository.PurchaseOrderItemRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCancelled {
			return domain.ErrConflict
		}

		reason := fmt.Sprintf("Recepción completa de la orden %s", order.ID)
		for _, item := range order.Items {
			remaining := item.Remaining()
			if remaining <= 0 {
				continue
			}
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if err := uc.ledger.StagePurchaseReceipt(productRepo, movementRepo, product, remaining, reason, userID, order.ID, item.ID); err != nil {
				return err
			}
			item.QuantityReceived = item.QuantityOrdered
			if err := itemRepo.UpdateReceived(item.ID, item.QuantityReceived); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		order.Status = entity.OrderStatusReceived
		if order.ActualDeliveryDate == nil {
			order.ActualDeliveryDate = &now
		}
		order.UpdatedAt = now
		return orderRepo.Update(order)
	})
}

// ReceiveItem recibe una cantidad adicional de UNA línea de la orden:
// primitiva componible para recepciones parciales. quantity debe ser positiva
// y no puede llevar QuantityReceived por encima de QuantityOrdered. Si tras la
// recepción todas las líneas quedan completas, la orden pasa a RECEIVED.
func (uc *OrderUseCase) ReceiveItem(ctx context.Context, orderID, itemID string, quantity int64, userID string) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		itemRepo repository.PurchaseOrderItemRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status.IsTerminal() {
			return domain.ErrConflict
		}

		var item *entity.PurchaseOrderItem
		for _, candidate := range order.Items {
			if candidate.ID == itemID {
				item = candidate
				break
			}
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.QuantityReceived+quantity > item.QuantityOrdered {
			return domain.ErrInvalidInput
		}

		product, err := productRepo.GetForUpdate(item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		reason := fmt.Sprintf("Recepción parcial de la orden %s", order.ID)
		if err := uc.ledger.StagePurchaseReceipt(productRepo, movementRepo, product, quantity, reason, userID, order.ID, item.ID); err != nil {
			return err
		}
		item.QuantityReceived += quantity
		if err := itemRepo.UpdateReceived(item.ID, item.QuantityReceived); err != nil {
			return err
		}

		now := time.Now().UTC()
		if order.FullyReceived() {
			order.Status = entity.OrderStatusReceived
			if order.ActualDeliveryDate == nil {
				order.ActualDeliveryDate = &now
			}
		}
		order.UpdatedAt = now
		return orderRepo.Update(order)
	})
}

// GetByID obtiene una orden con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes con paginación (más recientes primero).
func (uc *OrderUseCase) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.List(limit, offset)
}

// ListByStatus lista órdenes por estado.
func (uc *OrderUseCase) ListByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.PurchaseOrder, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.ListByStatus(status)
}

// ListByDateRange lista órdenes por rango de fecha de orden.
func (uc *OrderUseCase) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.PurchaseOrder, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.ListByDateRange(from, to)
}

// ListBySupplier lista las órdenes de un proveedor.
func (uc *OrderUseCase) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.ListBySupplier(supplierID)
}
