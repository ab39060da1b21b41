package report

import (
	"time"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/dto"
)

// Renderer puerto de generación de documentos de reporte (PDF).
// Implementado en infrastructure/pdf; el caso de uso no conoce la librería.
type Renderer interface {
	RenderLowStock(rows []dto.LowStockRow, generatedAt time.Time) ([]byte, error)
	RenderMovements(rows []dto.MovementRow, from, to time.Time) ([]byte, error)
}
