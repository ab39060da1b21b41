package report

import (
	"context"
	"time"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/dto"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/repository"
)

// ReportUseCase reportes de solo lectura: stock bajo, movimientos por rango de
// fechas, resumen de órdenes y contadores del tablero. La salida tabular es
// del adaptador de presentación; aquí solo se arman las filas.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	orderRepo    repository.PurchaseOrderRepository
	movementRepo repository.StockMovementRepository
	renderer     Renderer
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	orderRepo repository.PurchaseOrderRepository,
	movementRepo repository.StockMovementRepository,
	renderer Renderer,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
		movementRepo: movementRepo,
		renderer:     renderer,
	}
}

// LowStock filas del reporte de stock bajo con el nombre del proveedor.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockRow, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	supplierNames := make(map[string]string)
	rows := make([]dto.LowStockRow, 0, len(products))
	for _, p := range products {
		name := ""
		if p.SupplierID != "" {
			cached, ok := supplierNames[p.SupplierID]
			if !ok {
				supplier, err := uc.supplierRepo.GetByID(p.SupplierID)
				if err != nil {
					return nil, err
				}
				if supplier != nil {
					cached = supplier.Name
				}
				supplierNames[p.SupplierID] = cached
			}
			name = cached
		}
		rows = append(rows, dto.LowStockRow{
			ProductID:         p.ID,
			SKU:               p.SKU,
			Name:              p.Name,
			QuantityInStock:   p.QuantityInStock,
			LowStockThreshold: p.LowStockThreshold,
			SupplierName:      name,
		})
	}
	return rows, nil
}

// Movements filas del reporte de movimientos en un rango, en orden
// cronológico, con total acumulado por producto.
func (uc *ReportUseCase) Movements(ctx context.Context, from, to time.Time) ([]dto.MovementRow, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	movements, err := uc.movementRepo.ListByDateRange(from, to)
	if err != nil {
		return nil, err
	}
	skus := make(map[string]string)
	running := make(map[string]int64)
	rows := make([]dto.MovementRow, 0, len(movements))
	for _, m := range movements {
		sku, ok := skus[m.ProductID]
		if !ok {
			product, err := uc.productRepo.GetByID(m.ProductID)
			if err != nil {
				return nil, err
			}
			if product != nil {
				sku = product.SKU
			}
			skus[m.ProductID] = sku
		}
		running[m.ProductID] += m.QuantityChanged
		rows = append(rows, dto.MovementRow{
			MovementDate:    m.MovementDate,
			ProductID:       m.ProductID,
			SKU:             sku,
			Type:            string(m.Type),
			QuantityChanged: m.QuantityChanged,
			RunningTotal:    running[m.ProductID],
			Reason:          m.Reason,
		})
	}
	return rows, nil
}

// OrderSummary agregado de órdenes por estado con monto total derivado.
func (uc *ReportUseCase) OrderSummary(ctx context.Context) ([]dto.OrderSummaryRow, error) {
	statuses := []entity.OrderStatus{
		entity.OrderStatusPending,
		entity.OrderStatusProcessing,
		entity.OrderStatusShipped,
		entity.OrderStatusReceived,
		entity.OrderStatusCancelled,
	}
	rows := make([]dto.OrderSummaryRow, 0, len(statuses))
	for _, status := range statuses {
		list, err := uc.orderRepo.ListByStatus(status)
		if err != nil {
			return nil, err
		}
		row := dto.OrderSummaryRow{Status: string(status)}
		for _, order := range list {
			row.OrderCount++
			row.TotalAmount = row.TotalAmount.Add(order.TotalAmount())
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Dashboard contadores para el tablero principal.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardSummary, error) {
	productCount, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}
	supplierCount, err := uc.supplierRepo.Count()
	if err != nil {
		return nil, err
	}
	pending, err := uc.orderRepo.CountByStatus(entity.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummary{
		ProductCount:      productCount,
		SupplierCount:     supplierCount,
		PendingOrderCount: pending,
		LowStockCount:     int64(len(lowStock)),
	}, nil
}

// LowStockPDF reporte de stock bajo renderizado como PDF.
func (uc *ReportUseCase) LowStockPDF(ctx context.Context) ([]byte, error) {
	rows, err := uc.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderLowStock(rows, time.Now().UTC())
}

// MovementsPDF reporte de movimientos renderizado como PDF.
func (uc *ReportUseCase) MovementsPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	rows, err := uc.Movements(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderMovements(rows, from, to)
}
