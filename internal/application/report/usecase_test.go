package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/dto"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/report"
	"github.com/AimaKoraki/Inventory-management-system/internal/apptest"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
)

// stubRenderer registra las filas que recibe y devuelve un PDF de mentira.
type stubRenderer struct {
	lowStockRows []dto.LowStockRow
	movementRows []dto.MovementRow
}

func (r *stubRenderer) RenderLowStock(rows []dto.LowStockRow, generatedAt time.Time) ([]byte, error) {
	r.lowStockRows = rows
	return []byte("%PDF-stub"), nil
}

func (r *stubRenderer) RenderMovements(rows []dto.MovementRow, from, to time.Time) ([]byte, error) {
	r.movementRows = rows
	return []byte("%PDF-stub"), nil
}

func newReportUC(t *testing.T) (*report.ReportUseCase, *apptest.Store, *stubRenderer) {
	t.Helper()
	store := apptest.NewStore()
	renderer := &stubRenderer{}
	uc := report.NewReportUseCase(
		apptest.NewProductRepo(store),
		apptest.NewSupplierRepo(store),
		apptest.NewOrderRepo(store),
		apptest.NewMovementRepo(store),
		renderer,
	)
	return uc, store, renderer
}

func seedProduct(store *apptest.Store, id, sku, supplierID string, qty, threshold int64) {
	now := time.Now().UTC()
	store.SeedProduct(&entity.Product{
		ID: id, SKU: sku, Name: "Producto " + sku,
		QuantityInStock: qty, LowStockThreshold: threshold, SupplierID: supplierID,
		CreatedAt: now, UpdatedAt: now,
	})
}

func seedMovement(t *testing.T, store *apptest.Store, productID string, date time.Time, qty int64) {
	t.Helper()
	mtype := entity.MovementTypeAdjustmentIn
	if qty < 0 {
		mtype = entity.MovementTypeAdjustmentOut
	}
	err := apptest.NewMovementRepo(store).Create(&entity.StockMovement{
		ID:              "m-" + productID + date.Format("150405.000000000"),
		ProductID:       productID,
		MovementDate:    date,
		Type:            mtype,
		QuantityChanged: qty,
		Reason:          "test",
		CreatedAt:       date,
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// LowStock
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStock_IncluyeNombreDeProveedor(t *testing.T) {
	uc, store, _ := newReportUC(t)

	store.SeedSupplier(&entity.Supplier{ID: "s1", Name: "Acme"})
	seedProduct(store, "p1", "SKU-1", "s1", 2, 5)
	seedProduct(store, "p2", "SKU-2", "", 0, 5)
	seedProduct(store, "p3", "SKU-3", "s1", 99, 5)

	rows, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2, "solo los productos en o bajo el umbral")

	byID := make(map[string]dto.LowStockRow)
	for _, r := range rows {
		byID[r.ProductID] = r
	}
	assert.Equal(t, "Acme", byID["p1"].SupplierName)
	assert.Empty(t, byID["p2"].SupplierName, "producto sin proveedor queda en blanco")
}

// ──────────────────────────────────────────────────────────────────────────────
// Movements
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_AcumuladoPorProducto(t *testing.T) {
	uc, store, _ := newReportUC(t)

	seedProduct(store, "p1", "SKU-1", "", 0, 5)
	seedProduct(store, "p2", "SKU-2", "", 0, 5)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedMovement(t, store, "p1", base, 10)
	seedMovement(t, store, "p2", base.Add(time.Minute), 4)
	seedMovement(t, store, "p1", base.Add(2*time.Minute), -3)
	seedMovement(t, store, "p1", base.Add(3*time.Minute), 5)

	rows, err := uc.Movements(context.Background(), base.Add(-time.Hour), base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// El acumulado corre por producto, no global.
	var p1Totals []int64
	for _, r := range rows {
		if r.ProductID == "p1" {
			p1Totals = append(p1Totals, r.RunningTotal)
			assert.Equal(t, "SKU-1", r.SKU)
		}
	}
	assert.Equal(t, []int64{10, 7, 12}, p1Totals)
	for _, r := range rows {
		if r.ProductID == "p2" {
			assert.Equal(t, int64(4), r.RunningTotal)
		}
	}
}

func TestMovements_RangoInvertidoRechazado(t *testing.T) {
	uc, _, _ := newReportUC(t)

	now := time.Now().UTC()
	_, err := uc.Movements(context.Background(), now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// OrderSummary / Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func seedOrder(store *apptest.Store, id string, status entity.OrderStatus, qty int64, price float64) {
	now := time.Now().UTC()
	store.SeedOrder(&entity.PurchaseOrder{
		ID: id, SupplierID: "s1", OrderDate: now, Status: status,
		CreatedAt: now, UpdatedAt: now,
		Items: []*entity.PurchaseOrderItem{
			{ID: id + "-i1", PurchaseOrderID: id, ProductID: "p1", QuantityOrdered: qty, UnitPrice: decimal.NewFromFloat(price)},
		},
	})
}

func TestOrderSummary_MontosPorEstado(t *testing.T) {
	uc, store, _ := newReportUC(t)

	seedOrder(store, "o1", entity.OrderStatusPending, 10, 2.50)
	seedOrder(store, "o2", entity.OrderStatusPending, 4, 1.00)
	seedOrder(store, "o3", entity.OrderStatusReceived, 2, 3.00)

	rows, err := uc.OrderSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 5, "una fila por estado, aun sin órdenes")

	byStatus := make(map[string]dto.OrderSummaryRow)
	for _, r := range rows {
		byStatus[r.Status] = r
	}
	assert.Equal(t, int64(2), byStatus["PENDING"].OrderCount)
	assert.True(t, byStatus["PENDING"].TotalAmount.Equal(decimal.NewFromFloat(29.0)), "25 + 4")
	assert.Equal(t, int64(1), byStatus["RECEIVED"].OrderCount)
	assert.True(t, byStatus["RECEIVED"].TotalAmount.Equal(decimal.NewFromFloat(6.0)))
	assert.Equal(t, int64(0), byStatus["CANCELLED"].OrderCount)
	assert.True(t, byStatus["CANCELLED"].TotalAmount.IsZero())
}

func TestDashboard_Contadores(t *testing.T) {
	uc, store, _ := newReportUC(t)

	store.SeedSupplier(&entity.Supplier{ID: "s1", Name: "Acme"})
	seedProduct(store, "p1", "SKU-1", "s1", 2, 5)
	seedProduct(store, "p2", "SKU-2", "", 50, 5)
	seedOrder(store, "o1", entity.OrderStatusPending, 1, 1)
	seedOrder(store, "o2", entity.OrderStatusShipped, 1, 1)

	out, err := uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.ProductCount)
	assert.Equal(t, int64(1), out.SupplierCount)
	assert.Equal(t, int64(1), out.PendingOrderCount)
	assert.Equal(t, int64(1), out.LowStockCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Variantes PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockPDF_PasaLasFilasAlRenderer(t *testing.T) {
	uc, store, renderer := newReportUC(t)
	seedProduct(store, "p1", "SKU-1", "", 2, 5)

	out, err := uc.LowStockPDF(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	require.Len(t, renderer.lowStockRows, 1)
	assert.Equal(t, "SKU-1", renderer.lowStockRows[0].SKU)
}

func TestMovementsPDF_RangoInvertidoNoRenderiza(t *testing.T) {
	uc, _, renderer := newReportUC(t)

	now := time.Now().UTC()
	_, err := uc.MovementsPDF(context.Background(), now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, renderer.movementRows)
}
