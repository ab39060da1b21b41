package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/orders"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/stock"
	"github.com/AimaKoraki/Inventory-management-system/internal/apptest"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSupplierID = "00000000-0000-0000-0000-0000000000s1"
	testUserID     = "00000000-0000-0000-0000-0000000000u1"
)

type fixture struct {
	uc    *orders.OrderUseCase
	store *apptest.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := apptest.NewStore()
	runner := apptest.NewTxRunner(store)
	ledger := stock.NewLedgerUseCase(runner, apptest.NewProductRepo(store), apptest.NewMovementRepo(store))
	uc := orders.NewOrderUseCase(runner, apptest.NewOrderRepo(store), apptest.NewSupplierRepo(store), ledger)

	store.SeedSupplier(&entity.Supplier{ID: testSupplierID, Name: "Proveedor Uno"})
	return &fixture{uc: uc, store: store}
}

func (f *fixture) seedProduct(t *testing.T, qty int64) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now().UTC()
	f.store.SeedProduct(&entity.Product{
		ID:                id,
		SKU:               "SKU-" + id[:8],
		Name:              "Producto " + id[:8],
		QuantityInStock:   qty,
		LowStockThreshold: entity.DefaultLowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	return id
}

func itemInput(productID string, qty int64, price float64) orders.OrderItemInput {
	return orders.OrderItemInput{
		ProductID:       productID,
		QuantityOrdered: qty,
		UnitPrice:       decimal.NewFromFloat(price),
	}
}

func (f *fixture) createOrder(t *testing.T, items ...orders.OrderItemInput) *entity.PurchaseOrder {
	t.Helper()
	order, err := f.uc.CreateOrUpdate(context.Background(), orders.OrderInput{
		SupplierID: testSupplierID,
		Items:      items,
	}, testUserID)
	require.NoError(t, err)
	return order
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrUpdate — creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_NaceEnPending(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)

	order := f.createOrder(t, itemInput(p1, 10, 2.50))

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, testUserID, order.CreatedByUserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(0), order.Items[0].QuantityReceived, "una línea nueva nace sin recepciones")
	assert.True(t, order.TotalAmount().Equal(decimal.NewFromFloat(25.0)), "total = 10 × 2.50")

	stored := f.store.Order(order.ID)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 1)
}

func TestCreateOrder_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)

	_, err := f.uc.CreateOrUpdate(context.Background(), orders.OrderInput{
		SupplierID: "no-existe",
		Items:      []orders.OrderItemInput{itemInput(p1, 1, 1)},
	}, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_ProductoInexistenteEnLinea(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateOrUpdate(context.Background(), orders.OrderInput{
		SupplierID: testSupplierID,
		Items:      []orders.OrderItemInput{itemInput("no-existe", 1, 1)},
	}, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_LineasDuplicadasRechazadas(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)

	_, err := f.uc.CreateOrUpdate(context.Background(), orders.OrderInput{
		SupplierID: testSupplierID,
		Items: []orders.OrderItemInput{
			itemInput(p1, 1, 1),
			itemInput(p1, 2, 1),
		},
	}, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "dos líneas del mismo producto no se admiten")
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrUpdate — edición con reemplazo total de líneas
// ──────────────────────────────────────────────────────────────────────────────

// El set enviado reemplaza al existente: la línea ausente se elimina, la
// coincidente (por producto) conserva QuantityReceived, la nueva se crea.
func TestUpdateOrder_ReemplazoTotalDeLineas(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	p2 := f.seedProduct(t, 0)
	p3 := f.seedProduct(t, 0)

	order := f.createOrder(t, itemInput(p1, 10, 1), itemInput(p2, 5, 2))

	// Recibir parcialmente la línea de p1 para verificar que sobrevive la edición.
	var itemP1 string
	for _, it := range order.Items {
		if it.ProductID == p1 {
			itemP1 = it.ID
		}
	}
	require.NoError(t, f.uc.ReceiveItem(context.Background(), order.ID, itemP1, 4, testUserID))

	// Editar: mantener p1 (más unidades), quitar p2, agregar p3.
	updated, err := f.uc.CreateOrUpdate(context.Background(), orders.OrderInput{
		ID:         order.ID,
		SupplierID: testSupplierID,
		Items:      []orders.OrderItemInput{itemInput(p1, 12, 1), itemInput(p3, 7, 3)},
	}, testUserID)
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)

	byProduct := make(map[string]*entity.PurchaseOrderItem)
	for _, it := range updated.Items {
		byProduct[it.ProductID] = it
	}
	require.Contains(t, byProduct, p1)
	require.Contains(t, byProduct, p3)
	assert.NotContains(t, byProduct, p2, "la línea ausente del set nuevo debe eliminarse")
	assert.Equal(t, int64(12), byProduct[p1].QuantityOrdered)
	assert.Equal(t, int64(4), byProduct[p1].QuantityReceived, "la edición conserva lo ya recibido")
	assert.Equal(t, itemP1, byProduct[p1].ID, "la línea coincidente conserva su identidad")
	assert.Equal(t, int64(0), byProduct[p3].QuantityReceived)
}

// Reducir lo ordenado por debajo de lo ya recibido es inválido.
func TestUpdateOrder_NoPuedeQuedarDebajoDeLoRecibido(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)

	order := f.createOrder(t, itemInput(p1, 10, 1))
	require.NoError(t, f.uc.ReceiveItem(context.Background(), order.ID, order.Items[0].ID, 6, testUserID))

	_, err := f.uc.CreateOrUpdate(context.Background(), orders.OrderInput{
		ID:         order.ID,
		SupplierID: testSupplierID,
		Items:      []orders.OrderItemInput{itemInput(p1, 5, 1)},
	}, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateOrder_OrdenTerminalNoEditable(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)

	order := f.createOrder(t, itemInput(p1, 10, 1))
	require.NoError(t, f.uc.UpdateStatus(context.Background(), order.ID, entity.OrderStatusCancelled, testUserID))

	_, err := f.uc.CreateOrUpdate(context.Background(), orders.OrderInput{
		ID:         order.ID,
		SupplierID: testSupplierID,
		Items:      []orders.OrderItemInput{itemInput(p1, 3, 1)},
	}, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus — tabla de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_CaminoFeliz(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 1, 1))

	ctx := context.Background()
	require.NoError(t, f.uc.UpdateStatus(ctx, order.ID, entity.OrderStatusProcessing, testUserID))
	require.NoError(t, f.uc.UpdateStatus(ctx, order.ID, entity.OrderStatusShipped, testUserID))

	assert.Equal(t, entity.OrderStatusShipped, f.store.Order(order.ID).Status)
}

func TestUpdateStatus_SaltoIlegalRechazado(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 1, 1))

	err := f.uc.UpdateStatus(context.Background(), order.ID, entity.OrderStatusShipped, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict, "PENDING → SHIPPED no está en la tabla")
	assert.Equal(t, entity.OrderStatusPending, f.store.Order(order.ID).Status)
}

func TestUpdateStatus_MismoEstadoEsNoOp(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 1, 1))

	err := f.uc.UpdateStatus(context.Background(), order.ID, entity.OrderStatusPending, testUserID)
	assert.NoError(t, err, "repetir el estado actual no es error")
}

func TestUpdateStatus_TerminalInmutable(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 1, 1))

	ctx := context.Background()
	require.NoError(t, f.uc.UpdateStatus(ctx, order.ID, entity.OrderStatusCancelled, testUserID))

	err := f.uc.UpdateStatus(ctx, order.ID, entity.OrderStatusPending, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden cancelada no revive")
}

func TestUpdateStatus_EstadoDesconocidoRechazado(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 1, 1))

	err := f.uc.UpdateStatus(context.Background(), order.ID, entity.OrderStatus("LIMBO"), testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveFullOrder
// ──────────────────────────────────────────────────────────────────────────────

// Recepción completa: por cada línea con remanente entra el remanente al stock
// con UN asiento PURCHASE_RECEIPT ligado a la línea, y la orden queda RECEIVED.
func TestReceiveFullOrder_RemanentesEntranAlStock(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 3)
	p2 := f.seedProduct(t, 0)

	order := f.createOrder(t, itemInput(p1, 10, 1), itemInput(p2, 5, 2))

	// p2 ya se recibió por completo antes: su línea no debe generar entrada.
	var itemP2 string
	for _, it := range order.Items {
		if it.ProductID == p2 {
			itemP2 = it.ID
		}
	}
	require.NoError(t, f.uc.ReceiveItem(context.Background(), order.ID, itemP2, 5, testUserID))

	require.NoError(t, f.uc.ReceiveFullOrder(context.Background(), order.ID, testUserID))

	assert.Equal(t, int64(13), f.store.Product(p1).QuantityInStock, "3 + remanente 10")
	assert.Equal(t, int64(5), f.store.Product(p2).QuantityInStock, "sin doble entrada para la línea completa")

	movsP1 := f.store.MovementsForProduct(p1)
	require.Len(t, movsP1, 1)
	assert.Equal(t, entity.MovementTypePurchaseReceipt, movsP1[0].Type)
	assert.Equal(t, int64(10), movsP1[0].QuantityChanged)
	assert.Equal(t, order.ID, movsP1[0].SourcePurchaseOrderID)
	assert.Len(t, f.store.MovementsForProduct(p2), 1, "solo el asiento de la recepción parcial previa")

	stored := f.store.Order(order.ID)
	assert.Equal(t, entity.OrderStatusReceived, stored.Status)
	require.NotNil(t, stored.ActualDeliveryDate)
	for _, it := range stored.Items {
		assert.Equal(t, it.QuantityOrdered, it.QuantityReceived)
	}
}

// Repetir la recepción de una orden ya recibida es no-op de stock.
func TestReceiveFullOrder_RepetirEsNoOp(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 10, 1))

	ctx := context.Background()
	require.NoError(t, f.uc.ReceiveFullOrder(ctx, order.ID, testUserID))
	firstDelivery := f.store.Order(order.ID).ActualDeliveryDate
	require.NoError(t, f.uc.ReceiveFullOrder(ctx, order.ID, testUserID))

	assert.Equal(t, int64(10), f.store.Product(p1).QuantityInStock, "la segunda recepción no duplica stock")
	assert.Len(t, f.store.MovementsForProduct(p1), 1)
	assert.Equal(t, firstDelivery, f.store.Order(order.ID).ActualDeliveryDate, "la fecha real de entrega no se pisa")
}

func TestReceiveFullOrder_CanceladaRechazada(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 10, 1))

	ctx := context.Background()
	require.NoError(t, f.uc.UpdateStatus(ctx, order.ID, entity.OrderStatusCancelled, testUserID))

	err := f.uc.ReceiveFullOrder(ctx, order.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(0), f.store.Product(p1).QuantityInStock)
}

// Atomicidad: si una línea falla a mitad de la recepción (producto borrado en
// paralelo), NINGÚN producto queda tocado y la orden no cambia.
func TestReceiveFullOrder_FalloIntermedioNoDejaNada(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	p2 := f.seedProduct(t, 0)
	p3 := f.seedProduct(t, 0)

	order := f.createOrder(t, itemInput(p1, 5, 1), itemInput(p2, 5, 1), itemInput(p3, 5, 1))

	// Borrado concurrente de un producto intermedio.
	f.store.DeleteProductDirect(p2)

	err := f.uc.ReceiveFullOrder(context.Background(), order.ID, testUserID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, int64(0), f.store.Product(p1).QuantityInStock, "el rollback debe deshacer la primera línea")
	assert.Equal(t, int64(0), f.store.Product(p3).QuantityInStock)
	assert.Empty(t, f.store.Movements(), "ningún asiento debe sobrevivir al rollback")

	stored := f.store.Order(order.ID)
	assert.Equal(t, entity.OrderStatusPending, stored.Status)
	for _, it := range stored.Items {
		assert.Equal(t, int64(0), it.QuantityReceived)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveItem
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveItem_RecepcionParcial(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 10, 1))

	require.NoError(t, f.uc.ReceiveItem(context.Background(), order.ID, order.Items[0].ID, 4, testUserID))

	assert.Equal(t, int64(4), f.store.Product(p1).QuantityInStock)
	stored := f.store.Order(order.ID)
	assert.Equal(t, int64(4), stored.Items[0].QuantityReceived)
	assert.Equal(t, entity.OrderStatusPending, stored.Status, "recepción parcial no cierra la orden")

	movs := f.store.MovementsForProduct(p1)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypePurchaseReceipt, movs[0].Type)
	assert.Equal(t, order.Items[0].ID, movs[0].PurchaseOrderItemID)
}

// La última recepción parcial que completa todas las líneas cierra la orden.
func TestReceiveItem_UltimaRecepcionCierraLaOrden(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 10, 1))

	ctx := context.Background()
	require.NoError(t, f.uc.ReceiveItem(ctx, order.ID, order.Items[0].ID, 4, testUserID))
	require.NoError(t, f.uc.ReceiveItem(ctx, order.ID, order.Items[0].ID, 6, testUserID))

	stored := f.store.Order(order.ID)
	assert.Equal(t, entity.OrderStatusReceived, stored.Status)
	require.NotNil(t, stored.ActualDeliveryDate)
	assert.Equal(t, int64(10), f.store.Product(p1).QuantityInStock)
	assert.Len(t, f.store.MovementsForProduct(p1), 2, "un asiento por cada recepción parcial")
}

// Recibir por encima de lo ordenado se rechaza.
func TestReceiveItem_ExcesoRechazado(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 10, 1))

	ctx := context.Background()
	require.NoError(t, f.uc.ReceiveItem(ctx, order.ID, order.Items[0].ID, 8, testUserID))

	err := f.uc.ReceiveItem(ctx, order.ID, order.Items[0].ID, 3, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "8 + 3 > 10 ordenadas")
	assert.Equal(t, int64(8), f.store.Product(p1).QuantityInStock)
}

func TestReceiveItem_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 10, 1))

	assert.ErrorIs(t, f.uc.ReceiveItem(context.Background(), order.ID, order.Items[0].ID, 0, testUserID), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.uc.ReceiveItem(context.Background(), order.ID, order.Items[0].ID, -1, testUserID), domain.ErrInvalidInput)
}

func TestReceiveItem_LineaInexistente(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 10, 1))

	err := f.uc.ReceiveItem(context.Background(), order.ID, "no-existe", 1, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiveItem_OrdenTerminalRechazada(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, 0)
	order := f.createOrder(t, itemInput(p1, 10, 1))

	ctx := context.Background()
	require.NoError(t, f.uc.UpdateStatus(ctx, order.ID, entity.OrderStatusCancelled, testUserID))

	err := f.uc.ReceiveItem(ctx, order.ID, order.Items[0].ID, 1, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
