// Package pdf implementa los reportes imprimibles del inventario con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte + fecha de generación            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: filas del reporte                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total de filas                                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/dto"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

var _ report.Renderer = (*MarotoReportRenderer)(nil)

// MarotoReportRenderer implementa report.Renderer usando Maroto v2.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

// RenderLowStock genera el PDF del reporte de stock bajo.
func (g *MarotoReportRenderer) RenderLowStock(rows []dto.LowStockRow, generatedAt time.Time) ([]byte, error) {
	m := newDocument("Reporte de stock bajo")

	m.AddRows(titleRow("REPORTE DE STOCK BAJO", "Generado: "+generatedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(7).Add(
		headerCell("SKU", 2),
		headerCell("Producto", 4),
		headerCell("Stock", 2),
		headerCell("Umbral", 2),
		headerCell("Proveedor", 2),
	))
	for _, r := range rows {
		stockColor := colorGray
		if r.QuantityInStock == 0 {
			stockColor = colorAlert
		}
		m.AddRows(row.New(6).Add(
			bodyCell(r.SKU, 2, colorGray),
			bodyCell(r.Name, 4, nil),
			bodyCell(fmt.Sprintf("%d", r.QuantityInStock), 2, stockColor),
			bodyCell(fmt.Sprintf("%d", r.LowStockThreshold), 2, colorGray),
			bodyCell(nonEmpty(r.SupplierName, "—"), 2, colorGray),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(fmt.Sprintf("%d producto(s) en o por debajo del umbral", len(rows))))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderMovements genera el PDF del reporte de movimientos en un rango.
func (g *MarotoReportRenderer) RenderMovements(rows []dto.MovementRow, from, to time.Time) ([]byte, error) {
	m := newDocument("Reporte de movimientos de stock")

	period := fmt.Sprintf("Período: %s — %s", from.Format("02/01/2006"), to.Format("02/01/2006"))
	m.AddRows(titleRow("MOVIMIENTOS DE STOCK", period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(7).Add(
		headerCell("Fecha", 2),
		headerCell("SKU", 2),
		headerCell("Tipo", 3),
		headerCell("Cantidad", 2),
		headerCell("Acumulado", 2),
		headerCell("Motivo", 1),
	))
	for _, r := range rows {
		qtyColor := colorGray
		if r.QuantityChanged < 0 {
			qtyColor = colorAlert
		}
		m.AddRows(row.New(6).Add(
			bodyCell(r.MovementDate.Format("02/01/2006"), 2, colorGray),
			bodyCell(r.SKU, 2, colorGray),
			bodyCell(r.Type, 3, nil),
			bodyCell(fmt.Sprintf("%+d", r.QuantityChanged), 2, qtyColor),
			bodyCell(fmt.Sprintf("%d", r.RunningTotal), 2, colorGray),
			bodyCell(nonEmpty(r.Reason, "—"), 1, colorGray),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(fmt.Sprintf("%d movimiento(s) en el período", len(rows))))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(title, subtitle string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
	)
}

func headerCell(label string, size int) core.Col {
	return col.New(size).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}),
	)
}

func bodyCell(value string, size int, color *props.Color) core.Col {
	p := props.Text{Size: 8}
	if color != nil {
		p.Color = color
	}
	return col.New(size).Add(text.New(value, p))
}

func footerRow(summary string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(summary, props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 2}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
