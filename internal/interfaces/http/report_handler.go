package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/dto"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/report"
)

// ReportHandler reportes de solo lectura. Con ?format=pdf los reportes de
// stock bajo y movimientos salen como documento PDF.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Reporte de productos con stock bajo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "json (default) o pdf"
// @Success      200     {array}  dto.LowStockRow
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	if c.Query("format") == "pdf" {
		doc, err := h.uc.LowStockPDF(c.UserContext())
		if err != nil {
			return respondDomainError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="low_stock.pdf"`)
		return c.Send(doc)
	}
	rows, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(rows)
}

// Movements godoc
// @Summary      Reporte de movimientos de stock en un rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  true   "Desde (RFC3339)"
// @Param        to      query  string  true   "Hasta (RFC3339)"
// @Param        format  query  string  false  "json (default) o pdf"
// @Success      200     {array}  dto.MovementRow
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}
	if c.Query("format") == "pdf" {
		doc, err := h.uc.MovementsPDF(c.UserContext(), from, to)
		if err != nil {
			return respondDomainError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock_movements.pdf"`)
		return c.Send(doc)
	}
	rows, err := h.uc.Movements(c.UserContext(), from, to)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(rows)
}

// OrderSummary godoc
// @Summary      Resumen de órdenes por estado (conteo y monto total)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderSummaryRow
// @Router       /api/reports/order-summary [get]
func (h *ReportHandler) OrderSummary(c *fiber.Ctx) error {
	rows, err := h.uc.OrderSummary(c.UserContext())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(rows)
}

// Dashboard godoc
// @Summary      Contadores del tablero principal
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
