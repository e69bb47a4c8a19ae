// Package pdf genera el reporte del tablero del almacén.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de almacén   │  Fecha de generación         │
//	│  KPIs: Stock total | Stock bajo | Entradas | Salidas | Neto  │
//	│  TABLA: productos con stock bajo                             │
//	│  TABLA: balance neto de los últimos 30 días                  │
//	│  TABLA: movimientos recientes                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/almacen-api/internal/application/reporting"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorOK      = &props.Color{Red: 20, Green: 120, Blue: 60}
)

var _ reporting.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reporting.ReportPDFGenerator con Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador. title aparece en la cabecera y en los metadatos.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Reporte de almacén"
	}
	return &MarotoReportGenerator{title: title}
}

// GenerateSummaryPDF arma el documento y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSummaryPDF(_ context.Context, s reporting.Summary, recent []entity.Movement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(s))
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionTitle(fmt.Sprintf("Stock bajo (%d)", len(s.LowStock))))
	m.AddRows(tableHeader([]string{"SKU", "Producto", "Actual", "Mínimo", "Estado"}, []int{2, 4, 2, 2, 2}))
	for _, p := range s.LowStock {
		m.AddRows(lowStockRow(p))
	}
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionTitle(fmt.Sprintf("Balance neto últimos %d días", reporting.ChartDays)))
	m.AddRows(tableHeader([]string{"Fecha", "Entradas", "Salidas", "Neto", "Barra %"}, []int{4, 2, 2, 2, 2}))
	for _, d := range s.Daily30 {
		m.AddRows(dailyRow(d))
	}
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionTitle("Movimientos recientes"))
	m.AddRows(tableHeader([]string{"Fecha", "Tipo", "Producto", "Cant.", "Trabajador / Motivo"}, []int{2, 1, 4, 1, 4}))
	for _, mv := range recent {
		m.AddRows(movementRow(mv))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReportGenerator) headerRow(s reporting.Summary) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(g.title, props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado: "+s.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 5,
		})),
	)
}

func kpiRow(s reporting.Summary) core.Row {
	kpi := func(label string, value int64) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(strconv.FormatInt(value, 10), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6,
			}),
		)
	}
	return row.New(16).Add(
		kpi("Stock total", s.TotalStock),
		kpi("Stock bajo", int64(len(s.LowStock))),
		kpi("Entradas 90d", s.QuarterlyIn),
		kpi("Salidas 90d", s.QuarterlyOut),
		kpi("Neto 90d", s.QuarterlyNet),
		col.New(2),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1,
	})))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func cell(size int, value string, color *props.Color) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Top: 1, Left: 1, Color: color}))
}

func lowStockRow(p entity.Product) core.Row {
	status := inventory.ClassifyStock(p.StockActual, p.StockMinimo)
	return row.New(5).Add(
		cell(2, p.SKU, nil),
		cell(4, p.Name, nil),
		cell(2, strconv.FormatInt(p.StockActual, 10), nil),
		cell(2, strconv.FormatInt(p.StockMinimo, 10), nil),
		cell(2, string(status), colorDanger),
	)
}

func dailyRow(d reporting.DailyNet) core.Row {
	color := colorOK
	if d.Net < 0 {
		color = colorDanger
	}
	return row.New(5).Add(
		cell(4, d.Date, nil),
		cell(2, strconv.FormatInt(d.In, 10), nil),
		cell(2, strconv.FormatInt(d.Out, 10), nil),
		cell(2, strconv.FormatInt(d.Net, 10), color),
		cell(2, d.BarHeight.StringFixed(2), colorGray),
	)
}

func movementRow(m entity.Movement) core.Row {
	label, detail := "SALIDA", m.Worker
	if m.Type == entity.MovementTypeIN {
		label, detail = "ENTRADA", m.Reason
		if detail == "" {
			detail = m.Worker
		}
	}
	return row.New(5).Add(
		cell(2, m.Date, nil),
		cell(1, label, nil),
		cell(4, m.ProductName, nil),
		cell(1, strconv.FormatInt(m.Quantity, 10), nil),
		cell(4, detail, colorGray),
	)
}
