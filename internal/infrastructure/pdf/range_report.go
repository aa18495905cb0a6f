package pdf

import (
	"strconv"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventorypro-api/internal/application/report"
)

type summaryCard struct {
	label string
	value string
}

// executiveSummaryRows: tarjetas de totales en filas de tres.
func executiveSummaryRows(r *report.RangeReport) []core.Row {
	var cards []summaryCard
	if r.Kind == report.KindShipment {
		s := r.Shipment
		cards = []summaryCard{
			{"Total Shipments", report.FormatInt(s.TotalShipments) + " items"},
			{"Total Quantity", report.FormatInt(s.TotalQuantity) + " units"},
			{"Total Value", report.FormatMoney(s.TotalValue)},
			{"GST Collected", report.FormatMoney(s.GSTCollected)},
			{"Shipping Revenue", report.FormatMoney(s.ShippingRevenue)},
		}
	} else {
		s := r.Inventory
		cards = []summaryCard{
			{"Total Products", report.FormatInt(s.TotalProducts) + " SKUs"},
			{"Total Inventory Value", report.FormatMoney(s.TotalValue)},
			{"Low Stock Items", report.FormatInt(s.LowStockItems) + " products"},
			{"Activities", report.FormatInt(s.Activities) + " transactions"},
			{"Avg Stock Level", report.FormatInt(s.AvgStockLevel) + " units/product"},
		}
	}

	rows := []core.Row{sectionTitle("Executive Summary")}
	for i := 0; i < len(cards); i += 3 {
		r := row.New(16)
		for _, c := range cards[i:min(i+3, len(cards))] {
			r.Add(col.New(4).Add(
				text.New(c.label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 2, Left: 2}),
				text.New(c.value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 8, Left: 2}),
			))
		}
		rows = append(rows, r.WithStyle(&props.Cell{BackgroundColor: colorLight}), row.New(2))
	}
	return rows
}

func categoryAnalysisRows(categories []report.CategoryValue) []core.Row {
	rows := []core.Row{sectionTitle("Category Analysis")}
	if len(categories) == 0 {
		return append(rows, emptyNote("No category data available"))
	}
	cols := []column{
		{"Category", 4, align.Left},
		{"Total Stock", 2, align.Right},
		{"Value", 3, align.Right},
		{"% of Total", 3, align.Right},
	}
	data := make([][]string, 0, len(categories))
	for _, c := range categories {
		data = append(data, []string{c.Name, report.FormatInt(c.Stock), report.FormatMoney(c.Value), report.FormatPercent(c.Share)})
	}
	return append(rows, table(cols, data)...)
}

func stockAnalysisRows(levels []report.StockLevel) []core.Row {
	rows := []core.Row{sectionTitle("Top Products by Stock Level")}
	if len(levels) == 0 {
		return append(rows, emptyNote("No products available"))
	}
	cols := []column{
		{"Rank", 1, align.Center},
		{"Product Name", 6, align.Left},
		{"Current Stock", 3, align.Right},
		{"Stock Level", 2, align.Center},
	}
	data := make([][]string, 0, len(levels))
	for _, l := range levels {
		data = append(data, []string{strconv.Itoa(l.Rank), truncate(l.Name, 40), report.FormatInt(l.Stock), l.Level})
	}
	return append(rows, table(cols, data)...)
}

func shipmentAnalysisRows(r *report.RangeReport) []core.Row {
	rows := []core.Row{sectionTitle("Shipment Analysis")}
	if len(r.TopShipments) == 0 {
		return append(rows, emptyNote("No shipment data available"))
	}
	cols := []column{
		{"Rank", 1, align.Center},
		{"Product Name", 4, align.Left},
		{"Quantity", 1, align.Right},
		{"Unit Price", 2, align.Right},
		{"GST Amount", 2, align.Right},
		{"Total Value", 2, align.Right},
	}
	data := make([][]string, 0, len(r.TopShipments))
	for i, s := range r.TopShipments {
		data = append(data, []string{
			strconv.Itoa(i + 1), truncate(s.ProductName, 25), report.FormatInt(s.Quantity),
			report.FormatMoney(s.PricePerUnit), report.FormatMoney(s.GSTAmount), report.FormatMoney(s.TotalValue),
		})
	}
	rows = append(rows, table(cols, data)...)

	rows = append(rows, sectionTitle("Shipments by Category"))
	catCols := []column{
		{"Category", 3, align.Left},
		{"Quantity", 2, align.Right},
		{"Total Value", 3, align.Right},
		{"GST Amount", 2, align.Right},
		{"% of Total", 2, align.Right},
	}
	catData := make([][]string, 0, len(r.ShipmentCategories))
	for _, c := range r.ShipmentCategories {
		catData = append(catData, []string{
			c.Name, report.FormatInt(c.Quantity), report.FormatMoney(c.TotalValue),
			report.FormatMoney(c.GSTAmount), report.FormatPercent(c.Share),
		})
	}
	return append(rows, table(catCols, catData)...)
}

func activityRows(a report.ActivitySummary) []core.Row {
	rows := []core.Row{sectionTitle("Activity Summary")}
	rows = append(rows, table(
		[]column{{"Activity Type", 8, align.Left}, {"Count", 4, align.Right}},
		[][]string{
			{"Stock Additions", report.FormatInt(a.Additions)},
			{"Stock Removals", report.FormatInt(a.Removals)},
			{"Total Activities", report.FormatInt(a.Total)},
		},
	)...)
	if len(a.Recent) == 0 {
		return rows
	}

	rows = append(rows, sectionTitle("Recent Activities"))
	cols := []column{
		{"Date", 3, align.Left},
		{"Product", 5, align.Left},
		{"Action", 2, align.Center},
		{"Quantity", 2, align.Right},
	}
	data := make([][]string, 0, len(a.Recent))
	for _, l := range a.Recent {
		data = append(data, []string{l.Timestamp.Format("01/02/2006"), truncate(l.ProductName, 30), l.Action, report.FormatInt(l.Quantity)})
	}
	return append(rows, table(cols, data)...)
}

func trendRows(points []report.TrendPoint) []core.Row {
	rows := []core.Row{sectionTitle("Trend Analysis")}
	if len(points) == 0 {
		return append(rows, emptyNote("No trend data available for the selected time period"))
	}
	cols := []column{
		{"Period", 3, align.Left},
		{"Units Added", 2, align.Right},
		{"Units Removed", 3, align.Right},
		{"Net Change", 2, align.Right},
		{"Activities", 2, align.Right},
	}
	data := make([][]string, 0, len(points))
	for _, p := range points {
		data = append(data, []string{p.Label, report.FormatInt(p.Added), report.FormatInt(p.Removed), strconv.Itoa(p.Net()), report.FormatInt(p.Activities)})
	}
	return append(rows, table(cols, data)...)
}

func recommendationRows(recs []string) []core.Row {
	rows := []core.Row{sectionTitle("Recommendations")}
	return append(rows, bulletRows(recs)...)
}

func rangeFooterRow() core.Row {
	return footerRow("InventoryPro - Comprehensive Analysis Report", "Confidential - Internal Use Only")
}
