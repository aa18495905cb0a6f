// Package pdf renderiza los reportes de InventoryPro con Maroto v2.
//
// Layout de un reporte por rango (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: InventoryPro + título │ Período + fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN EJECUTIVO: tarjetas de totales                      │
//	│  TABLAS: categorías / ranking / despachos                    │
//	│  ACTIVIDAD + TENDENCIA + RECOMENDACIONES                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda │ Confidential │ Page i of n                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/inventorypro-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 59, Green: 130, Blue: 246}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorLight   = &props.Color{Red: 241, Green: 245, Blue: 249}
)

const brand = "InventoryPro"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa report.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateRangeReport reporte de inventario o de despachos.
func (g *MarotoPDFGenerator) GenerateRangeReport(_ context.Context, r *report.RangeReport) ([]byte, error) {
	title := "Inventory Analysis Report"
	if r.Kind == report.KindShipment {
		title = "Shipment Analysis Report"
	}
	m := newDocument(title)
	if err := m.RegisterFooter(rangeFooterRow()); err != nil {
		return nil, fmt.Errorf("pdf: registrar footer: %w", err)
	}

	m.AddRows(headerRow(title, "Report Period: "+r.Range.Label, generatedAt(r.GeneratedAt)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(executiveSummaryRows(r)...)

	if r.Kind == report.KindShipment {
		m.AddRows(shipmentAnalysisRows(r)...)
	} else {
		m.AddRows(categoryAnalysisRows(r.Categories)...)
		m.AddRows(stockAnalysisRows(r.TopStock)...)
	}
	m.AddRows(activityRows(r.Activity)...)
	m.AddRows(trendRows(r.Trend)...)
	m.AddRows(recommendationRows(r.Recommendations)...)

	return generate(m)
}

// GenerateDailyReport actividad del día en una tabla.
func (g *MarotoPDFGenerator) GenerateDailyReport(_ context.Context, r *report.DailyReport) ([]byte, error) {
	const title = "Daily Activity Report"
	m := newDocument(title)
	if err := m.RegisterFooter(dailyFooterRow()); err != nil {
		return nil, fmt.Errorf("pdf: registrar footer: %w", err)
	}

	m.AddRows(headerRow(title, "Report Date: "+r.Date.Format("Monday, January 2, 2006"), generatedAt(r.Date)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(dailySummaryRows(r.Summary)...)
	m.AddRows(dailyTableRows(r.Entries)...)

	return generate(m)
}

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithPageNumber(props.PageNumber{Pattern: "Page {current} of {total}", Place: props.RightBottom, Size: 8, Color: colorGray}).
		WithTitle(brand+" - "+title, true).
		WithAuthor(brand, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func generatedAt(t time.Time) string {
	return "Generated: " + t.Format("Monday, January 2, 2006") + " at " + t.Format("3:04:05 PM")
}

// ── Secciones comunes ────────────────────────────────────────────────────────

// headerRow: marca + título (izq) y período + fecha de generación (der).
func headerRow(title, period, generated string) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			text.New(brand, props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{
				Size: 11, Top: 10, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3,
			}),
			text.New(generated, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 4}),
	))
}

func emptyNote(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 9, Color: colorGray, Top: 1, Left: 2}),
	))
}

// column describe una columna de tabla; size suma 12 por fila.
type column struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera con fondo de color.
func tableHeaderRow(cols []column) core.Row {
	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRow: valores en el mismo orden que cols; filas pares sombreadas.
func tableRow(cols []column, values []string, i int) core.Row {
	r := row.New(7)
	for j, c := range cols {
		r.Add(col.New(c.size).Add(text.New(values[j], props.Text{
			Size: 8, Align: c.align, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	if i%2 == 1 {
		r.WithStyle(&props.Cell{BackgroundColor: colorLight})
	}
	return r
}

func table(cols []column, data [][]string) []core.Row {
	rows := make([]core.Row, 0, len(data)+1)
	rows = append(rows, tableHeaderRow(cols))
	for i, values := range data {
		rows = append(rows, tableRow(cols, values, i))
	}
	return rows
}

func bulletRows(lines []string) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(l, props.Text{Size: 9, Top: 1, Left: 4}),
		)))
	}
	return rows
}

func footerRow(left, center string) core.Row {
	return row.New(8).Add(
		col.New(5).Add(text.New(left, props.Text{Size: 7, Color: colorGray, Top: 2})),
		col.New(5).Add(text.New(center, props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Center})),
		col.New(2),
	)
}

// truncate recorta nombres largos en las tablas.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
