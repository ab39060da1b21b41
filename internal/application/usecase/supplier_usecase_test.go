package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/dto"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/usecase"
	"github.com/AimaKoraki/Inventory-management-system/internal/apptest"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
)

func newSupplierUC(t *testing.T) (*usecase.SupplierUseCase, *apptest.Store) {
	t.Helper()
	store := apptest.NewStore()
	uc := usecase.NewSupplierUseCase(
		apptest.NewSupplierRepo(store),
		apptest.NewProductRepo(store),
		apptest.NewOrderRepo(store),
	)
	return uc, store
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplierCreate_NombreUnico(t *testing.T) {
	uc, _ := newSupplierUC(t)

	_, err := uc.Create(context.Background(), dto.CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateSupplierRequest{Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSupplierCreate_NombreEnBlancoRechazado(t *testing.T) {
	uc, _ := newSupplierUC(t)

	_, err := uc.Create(context.Background(), dto.CreateSupplierRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplierUpdate_NombreNuevoDebeSerUnico(t *testing.T) {
	uc, _ := newSupplierUC(t)

	a, err := uc.Create(context.Background(), dto.CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateSupplierRequest{Name: "Umbrella"})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), a.ID, dto.UpdateSupplierRequest{Name: strPtr("Umbrella")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — bloqueado con referencias vivas
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplierDelete_BloqueadoConProductos(t *testing.T) {
	uc, store := newSupplierUC(t)

	sup, err := uc.Create(context.Background(), dto.CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)

	now := time.Now().UTC()
	store.SeedProduct(&entity.Product{
		ID: "p1", SKU: "S1", Name: "Producto", SupplierID: sup.ID,
		LowStockThreshold: entity.DefaultLowStockThreshold, CreatedAt: now, UpdatedAt: now,
	})

	err = uc.Delete(context.Background(), sup.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSupplierDelete_BloqueadoConOrdenes(t *testing.T) {
	uc, store := newSupplierUC(t)

	sup, err := uc.Create(context.Background(), dto.CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)

	now := time.Now().UTC()
	store.SeedOrder(&entity.PurchaseOrder{
		ID:         "o1",
		SupplierID: sup.ID,
		OrderDate:  now,
		Status:     entity.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
		Items: []*entity.PurchaseOrderItem{
			{ID: "i1", PurchaseOrderID: "o1", ProductID: "p1", QuantityOrdered: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	})

	err = uc.Delete(context.Background(), sup.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "un proveedor con órdenes históricas no se elimina")
}

func TestSupplierDelete_SinReferenciasPermitido(t *testing.T) {
	uc, _ := newSupplierUC(t)

	sup, err := uc.Create(context.Background(), dto.CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)

	assert.NoError(t, uc.Delete(context.Background(), sup.ID))
}

func TestSupplierDelete_Inexistente(t *testing.T) {
	uc, _ := newSupplierUC(t)

	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
