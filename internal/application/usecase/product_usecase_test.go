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

func newProductUC(t *testing.T) (*usecase.ProductUseCase, *apptest.Store) {
	t.Helper()
	store := apptest.NewStore()
	uc := usecase.NewProductUseCase(apptest.NewProductRepo(store), apptest.NewSupplierRepo(store))
	return uc, store
}

func createRequest(sku string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:   sku,
		Name:  "Producto " + sku,
		Price: decimal.NewFromFloat(9.99),
	}
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_StockInicialSiempreCero(t *testing.T) {
	uc, _ := newProductUC(t)

	out, err := uc.Create(context.Background(), createRequest("ABC-001"))
	require.NoError(t, err)

	assert.Equal(t, int64(0), out.QuantityInStock, "el stock inicial nunca viene del request")
	assert.Equal(t, int64(entity.DefaultLowStockThreshold), out.LowStockThreshold)
	assert.True(t, out.LowStock, "0 está debajo del umbral por defecto")
}

func TestProductCreate_UmbralExplicito(t *testing.T) {
	uc, _ := newProductUC(t)

	in := createRequest("ABC-001")
	in.LowStockThreshold = int64Ptr(25)
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(25), out.LowStockThreshold)
}

func TestProductCreate_SKUDuplicadoRechazado(t *testing.T) {
	uc, _ := newProductUC(t)

	_, err := uc.Create(context.Background(), createRequest("ABC-001"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), createRequest("ABC-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_PrecioNegativoRechazado(t *testing.T) {
	uc, _ := newProductUC(t)

	in := createRequest("ABC-001")
	in.Price = decimal.NewFromFloat(-1)
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_ProveedorInexistente(t *testing.T) {
	uc, _ := newProductUC(t)

	in := createRequest("ABC-001")
	in.SupplierID = "no-existe"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_NoTocaElStock(t *testing.T) {
	uc, store := newProductUC(t)

	out, err := uc.Create(context.Background(), createRequest("ABC-001"))
	require.NoError(t, err)

	// Stock movido por fuera del CRUD (vía motor de stock en producción).
	p := store.Product(out.ID)
	p.QuantityInStock = 7
	store.SeedProduct(p)

	updated, err := uc.Update(context.Background(), out.ID, dto.UpdateProductRequest{
		Name: strPtr("Nombre nuevo"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nombre nuevo", updated.Name)
	assert.Equal(t, int64(7), store.Product(out.ID).QuantityInStock, "la edición no pisa el stock")
}

func TestProductUpdate_SKUNuevoDebeSerUnico(t *testing.T) {
	uc, _ := newProductUC(t)

	a, err := uc.Create(context.Background(), createRequest("ABC-001"))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), createRequest("ABC-002"))
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), a.ID, dto.UpdateProductRequest{SKU: strPtr("ABC-002")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_MismoSKUPermitido(t *testing.T) {
	uc, _ := newProductUC(t)

	a, err := uc.Create(context.Background(), createRequest("ABC-001"))
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), a.ID, dto.UpdateProductRequest{SKU: strPtr("ABC-001")})
	assert.NoError(t, err, "conservar el propio SKU no es duplicado")
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc, _ := newProductUC(t)

	_, err := uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestProductDelete_BloqueadoConStock(t *testing.T) {
	uc, store := newProductUC(t)

	out, err := uc.Create(context.Background(), createRequest("ABC-001"))
	require.NoError(t, err)

	p := store.Product(out.ID)
	p.QuantityInStock = 3
	store.SeedProduct(p)

	err = uc.Delete(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "primero hay que ajustar el stock a cero")
	assert.NotNil(t, store.Product(out.ID))
}

func TestProductDelete_SinStockPermitido(t *testing.T) {
	uc, store := newProductUC(t)

	out, err := uc.Create(context.Background(), createRequest("ABC-001"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), out.ID))
	assert.Nil(t, store.Product(out.ID))
}

func TestProductDelete_Inexistente(t *testing.T) {
	uc, _ := newProductUC(t)

	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestProductListLowStock(t *testing.T) {
	uc, store := newProductUC(t)
	now := time.Now().UTC()

	store.SeedProduct(&entity.Product{ID: "p-bajo", SKU: "S1", Name: "Bajo", QuantityInStock: 2, LowStockThreshold: 5, CreatedAt: now, UpdatedAt: now})
	store.SeedProduct(&entity.Product{ID: "p-justo", SKU: "S2", Name: "Justo", QuantityInStock: 5, LowStockThreshold: 5, CreatedAt: now, UpdatedAt: now})
	store.SeedProduct(&entity.Product{ID: "p-sano", SKU: "S3", Name: "Sano", QuantityInStock: 50, LowStockThreshold: 5, CreatedAt: now, UpdatedAt: now})

	items, err := uc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2, "en el umbral cuenta como stock bajo")
	for _, it := range items {
		assert.True(t, it.LowStock)
		assert.NotEqual(t, "p-sano", it.ID)
	}
}

func TestProductGetByID_Inexistente(t *testing.T) {
	uc, _ := newProductUC(t)

	_, err := uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
